// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/strided/internal/interop"
	"gonum.org/v1/gonum/mat"
)

// Array is a tensor exported as raw bytes with byte strides and a dtype name.
type Array = interop.Array

// ToArray exports t. Contiguous tensors are exported without copying
// (Array.Borrowed is true); strided views are copied first.
func ToArray(t *Tensor) (*Array, error) {
	return interop.ToArray(t.raw)
}

// FromArray imports a. Unknown dtypes fail with ErrUnsupportedDType.
func FromArray(a *Array) (*Tensor, error) {
	raw, err := interop.FromArray(a)
	if err != nil {
		return nil, err
	}
	return New(raw, nil), nil
}

// ToDense copies a 2D tensor into a gonum matrix.
func ToDense(t *Tensor) (*mat.Dense, error) {
	return interop.ToDense(t.raw)
}

// FromDense copies a gonum matrix into a new tensor of the given dtype.
func FromDense(m mat.Matrix, dtype DataType) (*Tensor, error) {
	raw, err := interop.FromDense(m, dtype)
	if err != nil {
		return nil, err
	}
	return New(raw, nil), nil
}
