// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"sync/atomic"

	"github.com/born-ml/strided/internal/backend/cpu"
	"github.com/born-ml/strided/internal/tensor"
)

// Backend is the set of kernels a Tensor dispatches to.
//
// Implementations:
//   - internal/backend/cpu: dtype-dispatched strided kernels in pure Go
//
// Every method validates its inputs before allocating or mutating anything.
type Backend interface {
	Name() string

	// Creation.
	Fill(shape Shape, dtype DataType, value float64) (*tensor.RawTensor, error)

	// Scalar operations; the in-place forms visit every element reachable
	// through the tensor's strides.
	AddScalar(x *tensor.RawTensor, value float64) (*tensor.RawTensor, error)
	MulScalar(x *tensor.RawTensor, value float64) (*tensor.RawTensor, error)
	AddScalarInPlace(x *tensor.RawTensor, value float64)
	MulScalarInPlace(x *tensor.RawTensor, value float64)

	// Tensor-tensor operations.
	Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) // Element-wise addition.
	Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) // Element-wise multiplication.
	MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error)
}

var defaultBackend atomic.Pointer[backendHolder]

type backendHolder struct{ Backend }

func init() {
	defaultBackend.Store(&backendHolder{cpu.New()})
}

// DefaultBackend returns the backend used by the package-level factories.
func DefaultBackend() Backend {
	return defaultBackend.Load().Backend
}

// SetDefaultBackend replaces the backend used by the package-level factories
// and returns the previous one. Existing tensors keep their backend.
func SetDefaultBackend(b Backend) Backend {
	return defaultBackend.Swap(&backendHolder{b}).Backend
}
