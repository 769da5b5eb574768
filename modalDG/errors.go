package modalDG

import "errors"

var (
	ErrUnsupportedDimension  = errors.New("unsupported dimension")
	ErrUnsupportedOrder      = errors.New("unsupported polynomial order")
	ErrMissingPolyOrder      = errors.New("polynomial order not specified and not available from data")
	ErrGridDimensionMismatch = errors.New("grid dimension mismatch")
	ErrShapeMismatch         = errors.New("data shape mismatch")
	ErrUnknownBasis          = errors.New("unknown basis type")
	ErrUnknownFunction       = errors.New("unknown function type")
)
