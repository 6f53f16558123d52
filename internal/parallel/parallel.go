// Package parallel provides the batch-level worker split used by the CPU kernels.
package parallel

import (
	"sync"

	"github.com/born-ml/strided/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// Sequential returns a config that runs every item on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

// WithWorkers returns a config splitting work across n goroutines.
// n <= 1 yields Sequential.
func WithWorkers(n int) Config {
	if n <= 1 {
		return Sequential()
	}
	return Config{
		Enabled:      true,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// FromEnv builds a config from STRIDED_NUM_THREADS.
func FromEnv() Config {
	return WithWorkers(int(envconfig.NumThreads())) //nolint:gosec // G115: thread counts are small
}

// For executes f(i) for i in [0, n) and returns once every call has finished.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
