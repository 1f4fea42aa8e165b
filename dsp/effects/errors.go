package effects

import "errors"

// ErrInvalidParameter is returned by constructors and options for parameters
// that cannot produce a working effect. Errors wrap it with detail.
var ErrInvalidParameter = errors.New("effects: invalid parameter")
