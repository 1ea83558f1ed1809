package search

import "errors"

// ErrUninitialised indicates a driver was invoked without a network.
var ErrUninitialised = errors.New("search: uninitialised")

// ErrInvalidParameter indicates a driver configuration violates a
// documented precondition.
var ErrInvalidParameter = errors.New("search: invalid parameter")
