package network

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by this package. Construction is all-or-nothing:
// a Network is either fully built and valid, or the constructor returns one
// of these wrapped in a descriptive message.
var (
	// ErrInvalidNetwork indicates an integrity-check failure at construction
	// time: unsorted neighbours, a missing reverse edge, an asymmetric
	// weight, or a malformed array length. The wrapped message names the
	// specific invariant that failed.
	ErrInvalidNetwork = errors.New("network: invalid network")

	// ErrInvalidParameter indicates a caller-supplied parameter is out of
	// range for the requested operation (e.g. a negative node count, a
	// negative pruning bound, mismatched edge-array lengths).
	ErrInvalidParameter = errors.New("network: invalid parameter")
)

// invalidNetworkf wraps ErrInvalidNetwork with a formatted reason.
func invalidNetworkf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidNetwork}, args...)...)
}

// invalidParameterf wraps ErrInvalidParameter with a formatted reason.
func invalidParameterf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidParameter}, args...)...)
}
