package utils

import (
	"context"
	"sync"
)

// ParallelForEach calls fn for every item using at most workers goroutines.
// The returned slice holds the error of each item at the item's index.
// Items not yet started when ctx is cancelled get ctx.Err().
func ParallelForEach[T any](ctx context.Context, items []T, workers int, fn func(context.Context, T) error) []error {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				errs[idx] = fn(ctx, items[idx])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(items); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case indexes <- next:
		}
	}
	close(indexes)
	wg.Wait()

	for ; next < len(items); next++ {
		errs[next] = ctx.Err()
	}
	return errs
}

// CollectErrors returns the non-nil errors of errs
func CollectErrors(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
