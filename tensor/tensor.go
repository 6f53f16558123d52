// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"

	"github.com/born-ml/strided/internal/tensor"
)

// DataType is the element type of a tensor.
type DataType = tensor.DataType

// Data type constants, in promotion order.
const (
	Uint8   DataType = tensor.Uint8
	Int32   DataType = tensor.Int32
	Float32 DataType = tensor.Float32
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level strided tensor a Tensor wraps.
type RawTensor = tensor.RawTensor

// ParseDataType resolves a dtype name such as "int32" or "f32".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// SetAllocLimit caps the size in bytes of a single tensor allocation (0 means
// unlimited) and returns the previous cap. The initial cap comes from
// STRIDED_MAX_ALLOC_BYTES.
func SetAllocLimit(n int64) int64 {
	return tensor.SetAllocLimit(n)
}

// Tensor is a strided view over a shared, reference-counted buffer.
//
// A Tensor returned by a factory or an arithmetic operation owns fresh storage.
// Index, Narrow and Reshape return views: writes through a view are visible
// through every tensor sharing the buffer.
//
// Example:
//
//	a, _ := tensor.Ones(tensor.Shape{2, 5, 8}, tensor.Int32)
//	b, _ := tensor.Ones(tensor.Shape{2, 8, 5}, tensor.Int32)
//	first, _ := a.Index(0)
//	first.MulInPlace(2).AddInPlace(1.5) // a[0] is now all 3
//	c, _ := tensor.MatMul(a, b)
type Tensor struct {
	raw     *tensor.RawTensor
	backend Backend
}

// New wraps raw. Operations on the result dispatch to b, or to the default
// backend when b is nil.
func New(raw *RawTensor, b Backend) *Tensor {
	if b == nil {
		b = DefaultBackend()
	}
	return &Tensor{raw: raw, backend: b}
}

// Fill creates a tensor of the given shape with every element set to value,
// narrowed to dtype (truncated toward zero and saturated for integer dtypes).
func Fill(shape Shape, dtype DataType, value float64) (*Tensor, error) {
	b := DefaultBackend()
	raw, err := b.Fill(shape, dtype, value)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) (*Tensor, error) {
	return Fill(shape, dtype, 1)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) (*Tensor, error) {
	return Fill(shape, dtype, 0)
}

// FromSlice copies data into a new tensor of the given shape. The dtype
// follows T, which must be uint8, int32 or float32.
func FromSlice[T uint8 | int32 | float32](data []T, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	raw, err := tensor.NewRaw(shape, tensor.DataTypeOf[T]())
	if err != nil {
		return nil, err
	}
	copy(tensor.Elements[T](raw), data)
	return New(raw, nil), nil
}

// MatMul multiplies the trailing two dimensions of a and b, broadcasting the
// leading (batch) dimensions. Both tensors must have the same dtype.
func MatMul(a, b *Tensor) (*Tensor, error) {
	return a.MatMul(b)
}

// Raw returns the underlying raw tensor.
func (t *Tensor) Raw() *RawTensor { return t.raw }

// Backend returns the backend t dispatches to.
func (t *Tensor) Backend() Backend { return t.backend }

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape { return t.raw.Shape().Clone() }

// Strides returns the per-dimension element strides.
func (t *Tensor) Strides() []int { return append([]int(nil), t.raw.Strides()...) }

// DType returns the element type.
func (t *Tensor) DType() DataType { return t.raw.DType() }

// Offset returns the element offset of the first element in the buffer.
func (t *Tensor) Offset() int { return t.raw.Offset() }

// NumElements returns the number of elements.
func (t *Tensor) NumElements() int { return t.raw.NumElements() }

// IsView reports whether t shares storage it did not allocate.
func (t *Tensor) IsView() bool { return t.raw.IsView() }

// IsContiguous reports whether t is laid out row-major without gaps.
func (t *Tensor) IsContiguous() bool { return t.raw.IsContiguous() }

// SharesStorage reports whether t and o are backed by the same buffer.
func (t *Tensor) SharesStorage(o *Tensor) bool { return t.raw.SharesBuffer(o.raw) }

// At returns the element at indices widened to float64.
func (t *Tensor) At(indices ...int) (float64, error) {
	off, err := t.raw.ElementOffset(indices...)
	if err != nil {
		return 0, err
	}
	switch t.raw.DType() {
	case Uint8:
		return float64(tensor.Elements[uint8](t.raw)[off]), nil
	case Int32:
		return float64(tensor.Elements[int32](t.raw)[off]), nil
	default:
		return float64(tensor.Elements[float32](t.raw)[off]), nil
	}
}

// Release drops t's reference to its buffer. The storage is freed once the
// last tensor sharing it is released; t must not be used afterwards.
// Releasing t again has no effect.
func (t *Tensor) Release() { t.raw.Release() }

// String renders the values followed by shape, strides, dtype and offset.
func (t *Tensor) String() string { return t.raw.String() }
