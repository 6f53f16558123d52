// Package cpu implements the dtype-dispatched kernels of the strided engine.
package cpu

import (
	"log/slog"

	"github.com/born-ml/strided/internal/parallel"
)

// CPUBackend runs tensor kernels on the CPU.
//
// Every method validates its inputs before allocating or mutating anything and
// returns one of the tensor.Err* sentinels (wrapped) on failure.
type CPUBackend struct {
	parallel parallel.Config
}

// New creates a CPU backend configured from the environment (STRIDED_NUM_THREADS).
func New() *CPUBackend {
	return NewWithConfig(parallel.FromEnv())
}

// NewWithConfig creates a CPU backend with an explicit batch-parallelism config.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	slog.Debug("cpu backend", "parallel", cfg.Enabled, "workers", cfg.NumWorkers)
	return &CPUBackend{parallel: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Parallel returns the backend's batch-parallelism config.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}
