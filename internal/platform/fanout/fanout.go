// Package fanout runs a function over a slice with a bounded number of
// workers, keeping results in input order.
package fanout

import (
	"context"
	"sync"
)

// Result is the outcome for one item. Err is set when fn failed or when the
// item was skipped because ctx was done.
type Result[R any] struct {
	Value R
	Err   error
}

// Map calls fn for every item using at most workers goroutines and returns
// the results in input order. Items not yet started when ctx is done are not
// passed to fn; their Result carries ctx.Err(). A started fn runs to
// completion and must watch ctx itself.
//
// workers below 1 is treated as 1. An empty items yields an empty, non-nil
// slice.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	workers = max(1, min(workers, len(items)))

	next := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range next {
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}
				results[i].Value, results[i].Err = fn(ctx, items[i])
			}
		})
	}

	for i := range items {
		next <- i
	}
	close(next)
	wg.Wait()

	return results
}
