// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items into contiguous [start, end) chunks, one per CPU
// core, and runs fn on each chunk concurrently. It returns the error of the
// lowest chunk that failed, so the result does not depend on scheduling.
func Parallelize(items int, fn func(start, end int) error) error {
	if items <= 0 {
		return nil
	}

	numWorkers := min(runtime.NumCPU(), items)
	chunkSize := (items + numWorkers - 1) / numWorkers

	errs := make([]error, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, items)
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			errs[w] = fn(s, e)
		}(i, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items <= threshold, and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int) error) error {
	if items <= threshold {
		if items <= 0 {
			return nil
		}
		return fn(0, items)
	}
	return Parallelize(items, fn)
}
