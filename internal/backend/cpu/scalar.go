package cpu

import (
	"fmt"

	"github.com/born-ml/strided/internal/tensor"
)

// scalarOp is an arithmetic operation between an element and a bare scalar,
// in both compute domains (see tensor.Scalar).
type scalarOp struct {
	name   string
	ints   func(a, b int64) int64
	floats func(a, b float64) float64
}

var (
	scalarAdd = scalarOp{
		name:   "add",
		ints:   func(a, b int64) int64 { return a + b },
		floats: func(a, b float64) float64 { return a + b },
	}
	scalarMul = scalarOp{
		name:   "mul",
		ints:   func(a, b int64) int64 { return a * b },
		floats: func(a, b float64) float64 { return a * b },
	}
)

// AddScalar returns a new tensor holding x + value.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, value float64) (*tensor.RawTensor, error) {
	return cpu.scalar(x, value, scalarAdd)
}

// MulScalar returns a new tensor holding x * value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, value float64) (*tensor.RawTensor, error) {
	return cpu.scalar(x, value, scalarMul)
}

// AddScalarInPlace adds value to every element reachable through x.
// When x is a view the parent observes the change.
func (cpu *CPUBackend) AddScalarInPlace(x *tensor.RawTensor, value float64) {
	scalarInPlace(x, tensor.NewScalar(value), scalarAdd)
}

// MulScalarInPlace multiplies every element reachable through x by value.
// When x is a view the parent observes the change.
func (cpu *CPUBackend) MulScalarInPlace(x *tensor.RawTensor, value float64) {
	scalarInPlace(x, tensor.NewScalar(value), scalarMul)
}

func (cpu *CPUBackend) scalar(x *tensor.RawTensor, value float64, op scalarOp) (*tensor.RawTensor, error) {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		return nil, fmt.Errorf("%sScalar: %w", op.name, err)
	}

	s := tensor.NewScalar(value)
	switch x.DType() {
	case tensor.Uint8:
		scalarInto(result.AsUint8(), x, scalarFunc[uint8](x.DType(), s, op))
	case tensor.Int32:
		scalarInto(result.AsInt32(), x, scalarFunc[int32](x.DType(), s, op))
	case tensor.Float32:
		scalarInto(result.AsFloat32(), x, scalarFunc[float32](x.DType(), s, op))
	}
	return result, nil
}

func scalarInPlace(x *tensor.RawTensor, s tensor.Scalar, op scalarOp) {
	switch x.DType() {
	case tensor.Uint8:
		applyInPlace(x, scalarFunc[uint8](x.DType(), s, op))
	case tensor.Int32:
		applyInPlace(x, scalarFunc[int32](x.DType(), s, op))
	case tensor.Float32:
		applyInPlace(x, scalarFunc[float32](x.DType(), s, op))
	}
}

// scalarFunc selects the compute domain once and returns the per-element function.
// On integer dtypes an integral scalar wraps on overflow while a fractional one
// saturates: uint8 200 + 100 is 44, 200 + 100.5 is 255.
func scalarFunc[T tensor.Numeric](dtype tensor.DataType, s tensor.Scalar, op scalarOp) func(T) T {
	if s.ResultType(dtype).IsInteger() {
		iv, _ := s.Int()
		return func(v T) T {
			return tensor.WrapInt[T](op.ints(int64(v), iv))
		}
	}
	fv := s.Float()
	return func(v T) T {
		return tensor.CastFloat[T](op.floats(float64(v), fv))
	}
}

func scalarInto[T tensor.Numeric](dst []T, x *tensor.RawTensor, f func(T) T) {
	src := tensor.Elements[T](x)
	x.ForEachOffset(func(i, off int) {
		dst[i] = f(src[off])
	})
}

func applyInPlace[T tensor.Numeric](x *tensor.RawTensor, f func(T) T) {
	data := tensor.Elements[T](x)
	x.ForEachOffset(func(_, off int) {
		data[off] = f(data[off])
	})
}
