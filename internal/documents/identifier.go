package documents

import (
	"fmt"
	"regexp"

	"golang.org/x/text/encoding/charmap"
)

// Identifier is the (issuing year, sequence number) pair that the registry's
// document exchange system assigns to every record. Two identifiers are
// equal only when both components are identical strings.
type Identifier struct {
	Year   string `json:"year"`
	Number string `json:"number"`
}

// String renders the identifier in its canonical IF-YYYY-N form.
func (id Identifier) String() string {
	return fmt.Sprintf("IF-%s-%s", id.Year, id.Number)
}

var (
	textIdentifierPattern = regexp.MustCompile(`(?i)IF[\s\-_]+(\d{4})[\s\-_]+(\d+)`)
	rawIdentifierPattern  = regexp.MustCompile(`IF[\s-]+(\d{4})[\s-]+(\d+)`)
)

// ExtractIdentifier returns the first IF identifier found in text.
// Separators between segments may be any run of spaces, hyphens or underscores.
func ExtractIdentifier(text string) *Identifier {
	return match(textIdentifierPattern, text)
}

// ExtractIdentifierFromRawBytes searches the undecoded PDF stream for an
// identifier. The exchange system embeds it as structural text even when the
// visible page is a scanned image without a text layer. The marker must be
// uppercase here: raw streams are full of lowercase "if" sequences. Bytes are
// read as ISO-8859-1 so decoding never fails.
func ExtractIdentifierFromRawBytes(raw []byte) *Identifier {
	if len(raw) == 0 {
		return nil
	}
	return match(rawIdentifierPattern, decodeLatin1(raw))
}

func match(pattern *regexp.Regexp, s string) *Identifier {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return &Identifier{Year: m[1], Number: m[2]}
}

func decodeLatin1(raw []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
