package freqlist

import (
	"errors"
	"fmt"
)

var (
	// ErrElementRequired is the panic value for nil elements. Node and
	// snapshot paths return it wrapped in ErrInvalidArgument instead.
	ErrElementRequired = errors.New("element required")

	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoMoreElements  = errors.New("no more elements")

	// ErrUnordered is returned when a bulk operation is handed a source
	// without a defined iteration order. It wraps ErrInvalidArgument.
	ErrUnordered = fmt.Errorf("%w: unordered source", ErrInvalidArgument)
)
