package cyclic

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every error caused by an invalid
// combination of construction, copy or resample parameters.
var ErrConfiguration = errors.New("cyclic: invalid configuration")

// ErrNotFound is returned by IndexOf when the value is absent.
var ErrNotFound = errors.New("cyclic: value not found")

var (
	ErrEmpty             = fmt.Errorf("%w: empty values", ErrConfiguration)
	ErrAmbiguousBound    = fmt.Errorf("%w: both limit and cycle count given", ErrConfiguration)
	ErrAmbiguousResample = fmt.Errorf("%w: both intervals and step given", ErrConfiguration)
	ErrUnbounded         = fmt.Errorf("%w: cannot materialize an unbounded sequence", ErrConfiguration)
)
