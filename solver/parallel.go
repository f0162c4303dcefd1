package solver

import "sync"

// minParallelRows is the row count below which fan-out costs more than
// the stencil work it buys.
const minParallelRows = 64

// forEachRow runs fn over contiguous sub-ranges of [0, n), fanned out
// across the given number of workers. Each call joins all workers before
// returning, so a gradient pass is fully materialized before the update
// pass that consumes it starts.
func forEachRow(n, workers int, fn func(i0, i1 int)) {
	if workers <= 1 || n < minParallelRows {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for i0 := 0; i0 < n; i0 += chunk {
		i1 := i0 + chunk
		if i1 > n {
			i1 = n
		}
		wg.Add(1)
		go func(i0, i1 int) {
			defer wg.Done()
			fn(i0, i1)
		}(i0, i1)
	}
	wg.Wait()
}
