// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/strided/internal/tensor"

// Errors returned by tensor operations. They are wrapped with context; test
// for them with errors.Is.
var (
	ErrInvalidShape     = tensor.ErrInvalidShape
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrMatMulShape      = tensor.ErrMatMulShape
	ErrDTypeMismatch    = tensor.ErrDTypeMismatch
	ErrIndex            = tensor.ErrIndex
	ErrAllocation       = tensor.ErrAllocation
	ErrUnsupportedDType = tensor.ErrUnsupportedDType
)
