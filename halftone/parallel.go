package halftone

import (
	"runtime"
	"sync"
)

// parallel splits [0, n) into contiguous partitions and runs fn over each
// one in its own goroutine, returning once they have all finished. Small
// inputs are processed on the calling goroutine.
func parallel(n int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n < workers*2 {
		fn(0, n)
		return
	}

	size := n / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * size
		end := start + size
		if i == workers-1 {
			end = n
		}
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
