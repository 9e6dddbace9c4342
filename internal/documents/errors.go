package documents

import "errors"

// ErrInvalidRole indicates a role value outside the known set.
var ErrInvalidRole = errors.New("invalid document role")
