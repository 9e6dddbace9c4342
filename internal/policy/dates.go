package policy

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var longDatePattern = regexp.MustCompile(`(\d{1,2})\s+de\s+(\p{L}+)\s+(?:del?\s+)?(\d{4})`)

var months = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var numericLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"2/1/06",
	"2.1.2006",
}

// ParseDate reads an issue date as printed on a document. It accepts the
// Spanish long form ("15 de marzo de 2025", "3 de setiembre del 2024")
// anywhere in the string, otherwise one of the numeric day-first layouts or
// ISO year-month-day. The result is a calendar date in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}

	if m := longDatePattern.FindStringSubmatch(s); m != nil {
		return longDate(m[1], m[2], m[3])
	}

	for _, layout := range numericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func longDate(day, month, year string) (time.Time, bool) {
	mon, ok := months[month]
	if !ok {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(y, mon, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != mon {
		return time.Time{}, false
	}
	return t, true
}

// DaysSince returns the whole calendar days from date to now, taking now's
// calendar date in its own location. Negative values mean date is in the
// future.
func DaysSince(date, now time.Time) int {
	ny, nm, nd := now.Date()
	dy, dm, dd := date.Date()

	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	then := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)

	return int(today.Sub(then).Hours() / 24)
}
