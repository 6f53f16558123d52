package tensor

import "math"

// Scalar is a bare numeric value mixed into a tensor operation.
//
// Integer tensors combined with an integral scalar compute in int64 and wrap to
// the element width. Every other combination computes in float64 and narrows
// with CastFloat.
type Scalar struct {
	f       float64
	i       int64
	integer bool
}

// NewScalar classifies v for use with tensors of any dtype.
func NewScalar(v float64) Scalar {
	s := Scalar{f: v}
	if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		s.i = int64(v)
		s.integer = true
	}
	return s
}

// Float returns the scalar as float64.
func (s Scalar) Float() float64 {
	return s.f
}

// Int returns the scalar as int64 and whether it is integral.
func (s Scalar) Int() (int64, bool) {
	return s.i, s.integer
}

// ResultType returns the promoted type of dt combined with s. The result of the
// operation is always narrowed back to dt.
func (s Scalar) ResultType(dt DataType) DataType {
	if dt.IsInteger() && s.integer {
		return dt
	}
	return Float32
}

// CastFloat narrows a float64 to T: floats round to nearest, integers truncate
// toward zero and saturate to T's range, NaN becomes 0.
func CastFloat[T Numeric](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(float32(v))
	case uint8:
		return T(saturate(v, 0, math.MaxUint8))
	case int32:
		return T(saturate(v, math.MinInt32, math.MaxInt32))
	default:
		panic("unsupported element type")
	}
}

// WrapInt narrows an int64 to T by keeping its low-order bits.
func WrapInt[T Numeric](v int64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(float32(v))
	case uint8:
		return T(uint8(v)) //nolint:gosec // G115: wrapping is the documented narrowing
	case int32:
		return T(int32(v)) //nolint:gosec // G115: wrapping is the documented narrowing
	default:
		panic("unsupported element type")
	}
}

func saturate(v, lo, hi float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= lo:
		return int64(lo)
	case v >= hi:
		return int64(hi)
	default:
		return int64(math.Trunc(v))
	}
}
