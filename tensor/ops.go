// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"

	"github.com/born-ml/strided/internal/tensor"
)

// Index returns the view t[i] along the leading dimension.
func (t *Tensor) Index(i int) (*Tensor, error) {
	raw, err := t.raw.Index(i)
	if err != nil {
		return nil, err
	}
	return t.wrap(raw), nil
}

// Narrow returns the view of length elements starting at start along dim.
// Narrowing any dimension but the first yields a non-contiguous view.
func (t *Tensor) Narrow(dim, start, length int) (*Tensor, error) {
	raw, err := t.raw.Narrow(dim, start, length)
	if err != nil {
		return nil, err
	}
	return t.wrap(raw), nil
}

// Reshape returns a view of a contiguous tensor with a new shape holding the
// same number of elements.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	raw, err := t.raw.Reshape(Shape(shape))
	if err != nil {
		return nil, err
	}
	return t.wrap(raw), nil
}

// Contiguous returns a row-major copy of t with its own storage.
func (t *Tensor) Contiguous() (*Tensor, error) {
	raw, err := t.raw.Contiguous()
	if err != nil {
		return nil, err
	}
	return t.wrap(raw), nil
}

// AddInPlace adds v to every element of t and returns t.
//
// On integer dtypes an integral v overflows by wrapping and a fractional v by
// saturating, so a uint8 200 becomes 44 after AddInPlace(100) but 255 after
// AddInPlace(100.5).
func (t *Tensor) AddInPlace(v float64) *Tensor {
	t.backend.AddScalarInPlace(t.raw, v)
	return t
}

// MulInPlace multiplies every element of t by v and returns t.
func (t *Tensor) MulInPlace(v float64) *Tensor {
	t.backend.MulScalarInPlace(t.raw, v)
	return t
}

// AddScalar returns t + v in new storage.
func (t *Tensor) AddScalar(v float64) (*Tensor, error) {
	return t.result(t.backend.AddScalar(t.raw, v))
}

// MulScalar returns t * v in new storage.
func (t *Tensor) MulScalar(v float64) (*Tensor, error) {
	return t.result(t.backend.MulScalar(t.raw, v))
}

// Add returns the element-wise sum of two tensors of equal shape and dtype.
func (t *Tensor) Add(o *Tensor) (*Tensor, error) {
	if o == nil {
		return nil, fmt.Errorf("add: %w: nil operand", ErrInvalidShape)
	}
	return t.result(t.backend.Add(t.raw, o.raw))
}

// MulElementwise returns the element-wise product of two tensors of equal
// shape and dtype.
func (t *Tensor) MulElementwise(o *Tensor) (*Tensor, error) {
	if o == nil {
		return nil, fmt.Errorf("mul: %w: nil operand", ErrInvalidShape)
	}
	return t.result(t.backend.Mul(t.raw, o.raw))
}

// MatMul returns the batched matrix product t @ o.
func (t *Tensor) MatMul(o *Tensor) (*Tensor, error) {
	if o == nil {
		return nil, fmt.Errorf("matmul: %w: nil operand", ErrInvalidShape)
	}
	return t.result(t.backend.MatMul(t.raw, o.raw))
}

// Mul multiplies t by operand: a *Tensor gives the batched matrix product, a
// Go number scales every element into new storage.
func (t *Tensor) Mul(operand any) (*Tensor, error) {
	switch v := operand.(type) {
	case *Tensor:
		return t.MatMul(v)
	case float64:
		return t.MulScalar(v)
	case float32:
		return t.MulScalar(float64(v))
	case int:
		return t.MulScalar(float64(v))
	case int32:
		return t.MulScalar(float64(v))
	case int64:
		return t.MulScalar(float64(v))
	case uint8:
		return t.MulScalar(float64(v))
	}
	return nil, fmt.Errorf("mul: %w: operand of type %T", ErrUnsupportedDType, operand)
}

func (t *Tensor) wrap(raw *tensor.RawTensor) *Tensor {
	return &Tensor{raw: raw, backend: t.backend}
}

func (t *Tensor) result(raw *tensor.RawTensor, err error) (*Tensor, error) {
	if err != nil {
		return nil, err
	}
	return t.wrap(raw), nil
}
