package workflow

import "errors"

// ErrNoInputs is returned when Execute is called without documents.
var ErrNoInputs = errors.New("no documents to review")
