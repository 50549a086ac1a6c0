// Package batch runs ordered work in sequential waves of bounded
// concurrency. It is the shared scheduling logic of both pipeline
// stages and knows nothing about DNS or HTTP.
package batch

import (
	"context"
	"sync"
)

// Run partitions items into consecutive waves of at most width items,
// runs all items of a wave concurrently, and calls emit with each
// result as the producing operation completes. Results within a wave
// surface in completion order; wave k+1 does not start until wave k
// has fully drained. emit is always called from the scheduling
// goroutine, so emit itself never needs to be concurrency-safe.
//
// The work function must absorb its own failures into the result
// value; Run has no error path of its own.
func Run[T, R any](ctx context.Context, items []T, width int, work func(context.Context, T) R, emit func(R)) {
	if width < 1 {
		width = 1
	}

	for start := 0; start < len(items); start += width {
		end := min(start+width, len(items))
		wave := items[start:end]

		results := make(chan R, len(wave))
		var wg sync.WaitGroup
		for _, item := range wave {
			wg.Add(1)
			go func(item T) {
				defer wg.Done()
				results <- work(ctx, item)
			}(item)
		}

		for range wave {
			emit(<-results)
		}
		wg.Wait()
	}
}

// Collect is a convenience wrapper around Run that gathers all
// results into a slice, in the order they were emitted.
func Collect[T, R any](ctx context.Context, items []T, width int, work func(context.Context, T) R) []R {
	results := make([]R, 0, len(items))
	Run(ctx, items, width, work, func(r R) {
		results = append(results, r)
	})
	return results
}
