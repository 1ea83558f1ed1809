package localmove

import "errors"

// ErrInvalidParameter indicates a localmove configuration violates a
// documented precondition (e.g. a non-positive randomness parameter).
var ErrInvalidParameter = errors.New("localmove: invalid parameter")
