package dataflow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Stream is a read-only channel of messages.
type Stream[T any] <-chan T

// From creates a stream from a slice of data.
func From[T any](ctx context.Context, items ...T) Stream[T] {
	out := make(chan T, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// New wraps an existing channel into a Stream.
func New[T any](c <-chan T) Stream[T] {
	return Stream[T](c)
}

// Collect drains the stream into a slice. It stops early when ctx is cancelled.
func Collect[T any](ctx context.Context, input Stream[T]) []T {
	var items []T
	for {
		select {
		case <-ctx.Done():
			return items
		case msg, ok := <-input:
			if !ok {
				return items
			}
			items = append(items, msg)
		}
	}
}

// Map transforms the stream using the provided function.
// Supports parallelism via WithWorkers; output order is not preserved when workers > 1.
// Items whose fn fails after all retries are dropped and reported to the error handler.
func Map[In, Out any](ctx context.Context, input Stream[In], fn func(In) (Out, error), opts ...Option) Stream[Out] {
	cfg := newConfig(opts)

	out := make(chan Out, cfg.bufferSize)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}

				var res Out
				err := retry(ctx, cfg, func() error {
					var err error
					res, err = fn(msg)
					return err
				})
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					if cfg.errorHandler != nil {
						cfg.errorHandler(err)
					}
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Filter keeps items where fn returns true.
func Filter[T any](ctx context.Context, input Stream[T], fn func(T) bool, opts ...Option) Stream[T] {
	return Map(ctx, input, func(msg T) (T, error) {
		if fn(msg) {
			return msg, nil
		}
		return msg, errSkip
	}, append(opts, withSkip())...)
}

var errSkip = errors.New("skip item")

// withSkip wraps whatever error handler is configured so that skipped items never reach it.
func withSkip() Option {
	return func(c *config) {
		next := c.errorHandler
		c.errorHandler = func(err error) bool {
			if errors.Is(err, errSkip) {
				return true
			}
			if next != nil {
				return next(err)
			}
			return false
		}
		c.maxRetries = 0
	}
}

// Batch groups consecutive items into slices of at most size elements.
// The last batch may be shorter. A size below 1 is treated as 1.
func Batch[T any](ctx context.Context, input Stream[T], size int) Stream[[]T] {
	if size < 1 {
		size = 1
	}
	out := make(chan []T)
	go func() {
		defer close(out)
		buf := make([]T, 0, size)
		flush := func() bool {
			if len(buf) == 0 {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- buf:
			}
			buf = make([]T, 0, size)
			return true
		}
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					flush()
					return
				}
				buf = append(buf, msg)
				if len(buf) == size && !flush() {
					return
				}
			}
		}
	}()
	return out
}

// ForEach executes an action for every item in the stream.
// It blocks until the stream is exhausted, ctx is cancelled, or fn fails with an error the
// error handler does not swallow. In the last case it stops taking items and returns that error.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(T) error, opts ...Option) error {
	cfg := newConfig(opts)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-runCtx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				err := retry(runCtx, cfg, func() error { return fn(msg) })
				if err == nil || runCtx.Err() != nil {
					continue
				}
				if cfg.errorHandler != nil && cfg.errorHandler(err) {
					continue
				}
				errOnce.Do(func() {
					firstErr = err
					stop()
				})
				return
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// retry runs op once plus up to cfg.maxRetries more times, sleeping cfg.backoff between attempts.
func retry(ctx context.Context, cfg *config, op func() error) error {
	err := op()
	for i := 1; err != nil && i <= cfg.maxRetries; i++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(i)):
			}
		}
		err = op()
	}
	return err
}
