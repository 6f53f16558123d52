package tensor

import "errors"

// Errors reported by the engine. Operations wrap them with context; test with errors.Is.
var (
	ErrInvalidShape     = errors.New("invalid shape")
	ErrShapeMismatch    = errors.New("shapes not compatible for broadcasting")
	ErrMatMulShape      = errors.New("invalid matmul shapes")
	ErrDTypeMismatch    = errors.New("data types must match")
	ErrIndex            = errors.New("index out of range")
	ErrAllocation       = errors.New("allocation failed")
	ErrUnsupportedDType = errors.New("unsupported data type")
)
