package gradient

import "errors"

// ErrInvalidParameter indicates a Config violates a documented precondition.
var ErrInvalidParameter = errors.New("gradient: invalid parameter")
