// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/strided/internal/backend/cpu"
	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend configured from STRIDED_NUM_THREADS.
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend whose batched matmul spreads batches
// over n goroutines. n <= 1 runs every operation on the calling goroutine.
//
// Example:
//
//	prev := tensor.SetDefaultBackend(cpu.NewWithWorkers(runtime.NumCPU()))
//	defer tensor.SetDefaultBackend(prev)
func NewWithWorkers(n int) *Backend {
	return internalcpu.NewWithConfig(parallel.WithWorkers(n))
}
