package chisel

import "sync"

// taskRange splits [0, n) into one contiguous chunk per worker and runs fn
// on each chunk in its own goroutine. Chunks are disjoint, so workers can
// write into pre-sized result slices without synchronization.
func taskRange(workersCount, n int, fn func(start, end int)) {
	workersCount = max(1, workersCount)
	if workersCount == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
