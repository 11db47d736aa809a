// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"iter"
	"sync"
)

// Run feeds every item produced by items to process, keeping at most workerCount calls in flight.
// Items are never dropped: once ctx is canceled the remaining items are still handed to process,
// which is expected to observe ctx and return promptly. Run returns after every call has finished.
func Run[T any](
	ctx context.Context,
	workerCount int,
	items iter.Seq[T],
	process func(context.Context, T),
) {
	if workerCount < 1 {
		workerCount = 1
	}

	tasks := make(chan T, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				process(ctx, item)
			}
		}()
	}

	for item := range items {
		tasks <- item
	}
	close(tasks)

	wg.Wait()
}

// Slice adapts a slice to the sequence accepted by Run.
func Slice[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}
