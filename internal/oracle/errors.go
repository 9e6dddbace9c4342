package oracle

import "errors"

// Oracle errors.
var (
	ErrInvalidMode       = errors.New("invalid analysis mode")
	ErrEmptyDocument     = errors.New("document is empty")
	ErrNoTextContent     = errors.New("no text content in oracle response")
	ErrMalformedResponse = errors.New("malformed oracle response")
)
