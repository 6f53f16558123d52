// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for strided tensors.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/strided/backend/cpu"
//	    "github.com/born-ml/strided/tensor"
//	)
//
//	func main() {
//	    backend := cpu.NewWithWorkers(4)
//	    raw, _ := backend.Ones(tensor.Shape{8, 64, 64}, tensor.Float32)
//	    x := tensor.New(raw, backend)
//	    y, _ := x.MatMul(x)
//	}
//
// Kernels dispatch on the tensor's dtype and walk operands through their
// strides, so views produced by Index and Narrow need no copy.
package cpu
