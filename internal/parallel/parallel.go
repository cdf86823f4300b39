// Package parallel shards independent row work across goroutines. The CPU
// normalization kernel uses it to process the n1 rows of a collapsed
// [n1, n2] view concurrently; rows must not share output state.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how row work is sharded.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinRows    int  // Minimum rows before goroutines are worth spawning.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinRows:    64,
	}
}

// ForRows executes f(row) for row in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is
// below MinRows. f must be safe to call concurrently for distinct rows.
func ForRows(n int, cfg Config, f func(row int)) {
	if !cfg.Enabled || n < cfg.MinRows {
		for row := 0; row < n; row++ {
			f(row)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, 1)

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for row := s; row < e; row++ {
				f(row)
			}
		}(start, end)
	}
	wg.Wait()
}
