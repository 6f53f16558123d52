// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense strided tensors of uint8, int32 and float32.
//
// # Basic Usage
//
//	a, _ := tensor.Ones(tensor.Shape{2, 5, 8}, tensor.Int32)
//	b, _ := tensor.Ones(tensor.Shape{2, 8, 5}, tensor.Int32)
//
//	first, _ := a.Index(0)          // view of a[0]
//	first.MulInPlace(2)             // a[0] is now 2
//	first.AddInPlace(1.5)           // 2 + 1.5 = 3.5, truncated to 3
//
//	c, _ := tensor.MatMul(a, b)     // shape [2 5 5], c[0] is all 24
//	d, _ := a.Mul(b)                // same as MatMul
//	e, _ := a.Mul(3)                // scales into new storage
//
// # Scalars
//
// Integer tensors combined with integral scalars use native fixed-width
// arithmetic and wrap on overflow. Every other combination is computed in
// float64 and narrowed back: float32 rounds, integer dtypes truncate toward
// zero and saturate.
//
// # Batched MatMul
//
// MatMul multiplies the trailing two dimensions. Leading dimensions are
// right-aligned and broadcast when one side has size 1 or is missing:
//
//	[1 2 5 8] @ [1 2 8 5] -> [1 2 5 5]
//	[5 8]     @ [3 8 4]   -> [3 5 4]
//
// # Memory Management
//
// Storage is reference counted. Views share it with their parent; Release
// drops a reference and the buffer is freed when the last one goes.
//
// # Configuration
//
// STRIDED_NUM_THREADS enables batch-parallel MatMul, STRIDED_MAX_ALLOC_BYTES
// caps single allocations and STRIDED_DEBUG turns on debug logging.
package tensor
