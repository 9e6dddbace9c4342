package policy

import "errors"

// ErrInvalidStatus is returned when a status name or value is not recognized.
var ErrInvalidStatus = errors.New("invalid status")
