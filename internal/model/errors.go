package model

import "errors"

// ErrInvalidArgument is returned when an operation is called with an
// out-of-range or missing value. The entity is left unchanged.
var ErrInvalidArgument = errors.New("invalid argument")
