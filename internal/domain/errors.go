package domain

import "errors"

// ErrInvalidParams is returned when simulation parameters fail validation.
var ErrInvalidParams = errors.New("invalid simulation parameters")
