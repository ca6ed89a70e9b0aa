package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ResolveAll calls lookup once for every distinct key using at most workers
// goroutines and blocks until the queue is drained. Keys whose lookup fails
// are left out of the result and their errors are joined. Once ctx is done
// the remaining keys are not looked up.
func ResolveAll(
	ctx context.Context,
	keys []string,
	workers int,
	lookup func(ctx context.Context, key string) (string, error),
) (map[string]string, error) {
	if workers < 1 {
		workers = 1
	}

	queue := make(chan string)
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		out    = make(map[string]string, len(keys))
		errs   []error
		queued = make(map[string]struct{}, len(keys))
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range queue {
				value, err := lookup(ctx, key)

				mu.Lock()
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", key, err))
				} else {
					out[key] = value
				}
				mu.Unlock()
			}
		}()
	}

enqueue:
	for _, key := range keys {
		if _, ok := queued[key]; ok {
			continue
		}
		queued[key] = struct{}{}

		select {
		case queue <- key:
		case <-ctx.Done():
			break enqueue
		}
	}
	close(queue)
	wg.Wait()

	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}
	return out, errors.Join(errs...)
}
