package cpu

import (
	"fmt"

	"github.com/born-ml/strided/internal/tensor"
)

// Add returns the element-wise sum of two tensors of equal shape and dtype.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.elementwise("add", a, b, addTyped[uint8], addTyped[int32], addTyped[float32])
}

// Mul returns the element-wise product of two tensors of equal shape and dtype.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return cpu.elementwise("mul", a, b, mulTyped[uint8], mulTyped[int32], mulTyped[float32])
}

func (cpu *CPUBackend) elementwise(
	name string,
	a, b *tensor.RawTensor,
	u8 func(x, y uint8) uint8,
	i32 func(x, y int32) int32,
	f32 func(x, y float32) float32,
) (*tensor.RawTensor, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("%s: %w: %s vs %s", name, tensor.ErrDTypeMismatch, a.DType(), b.DType())
	}
	if !a.Shape().Equal(b.Shape()) {
		return nil, fmt.Errorf("%s: %w: %v vs %v", name, tensor.ErrShapeMismatch, a.Shape(), b.Shape())
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	switch a.DType() {
	case tensor.Uint8:
		binaryInto(result.AsUint8(), a, b, u8)
	case tensor.Int32:
		binaryInto(result.AsInt32(), a, b, i32)
	case tensor.Float32:
		binaryInto(result.AsFloat32(), a, b, f32)
	}
	return result, nil
}

func binaryInto[T tensor.Numeric](dst []T, a, b *tensor.RawTensor, op func(x, y T) T) {
	aData := tensor.Elements[T](a)
	bData := tensor.Elements[T](b)

	// Fast path: both operands contiguous.
	if a.IsContiguous() && b.IsContiguous() {
		aOff, bOff := a.Offset(), b.Offset()
		for i := range dst {
			dst[i] = op(aData[aOff+i], bData[bOff+i])
		}
		return
	}

	bOffsets := make([]int, 0, len(dst))
	b.ForEachOffset(func(_, off int) {
		bOffsets = append(bOffsets, off)
	})
	a.ForEachOffset(func(i, off int) {
		dst[i] = op(aData[off], bData[bOffsets[i]])
	})
}

func addTyped[T tensor.Numeric](x, y T) T { return x + y }

func mulTyped[T tensor.Numeric](x, y T) T { return x * y }
