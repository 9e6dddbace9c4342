package oracle

import (
	"encoding/json"
	"slices"
)

// Mode selects how a document is analyzed.
type Mode string

// Analysis modes.
const (
	ModeSingle Mode = "single"
	ModePair   Mode = "pair"
)

var modes = []Mode{
	ModeSingle,
	ModePair,
}

// Modes returns the list of valid analysis modes.
func Modes() []Mode {
	return modes
}

// UnmarshalJSON validates that the decoded string is a known mode.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseMode(raw)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode validates a string as a known analysis mode.
func ParseMode(s string) (Mode, error) {
	v := Mode(s)
	if !slices.Contains(modes, v) {
		return "", ErrInvalidMode
	}
	return v, nil
}
