package dataflow_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/locvowork/hr_dashboard/pkg/dataflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string
	Name string
}

func TestPipeline_ParseRetryCollect(t *testing.T) {
	ctx := context.Background()

	source := dataflow.From(ctx, "1,Alice", "2,Bob", "retry,Charlie", "broken")

	var dropped int32
	parsed := dataflow.Map(ctx, source, func(s string) (row, error) {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return row{}, fmt.Errorf("invalid format %q", s)
		}
		return row{ID: parts[0], Name: parts[1]}, nil
	}, dataflow.WithWorkers(2), dataflow.WithErrorHandler(func(error) bool {
		atomic.AddInt32(&dropped, 1)
		return true
	}))

	var attempts int32
	saved := dataflow.Map(ctx, parsed, func(r row) (row, error) {
		if r.ID == "retry" && atomic.AddInt32(&attempts, 1) < 3 {
			return row{}, errors.New("transient error")
		}
		return r, nil
	}, dataflow.WithRetry(3, dataflow.ConstantBackoff(time.Millisecond)))

	var names []string
	err := dataflow.ForEach(ctx, saved, func(r row) error {
		names = append(names, r.Name)
		return nil
	})
	require.NoError(t, err)

	sort.Strings(names)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, int32(1), atomic.LoadInt32(&dropped))
}

func TestFilter(t *testing.T) {
	ctx := context.Background()

	var handled int32
	evens := dataflow.Filter(ctx, dataflow.From(ctx, 1, 2, 3, 4, 5, 6), func(n int) bool {
		return n%2 == 0
	}, dataflow.WithErrorHandler(func(error) bool {
		atomic.AddInt32(&handled, 1)
		return true
	}))

	assert.Equal(t, []int{2, 4, 6}, dataflow.Collect(ctx, evens))
	assert.Zero(t, atomic.LoadInt32(&handled), "skipped items never reach the error handler")
}

func TestBatch(t *testing.T) {
	ctx := context.Background()

	batches := dataflow.Collect(ctx, dataflow.Batch(ctx, dataflow.From(ctx, 1, 2, 3, 4, 5), 2))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, batches)

	assert.Empty(t, dataflow.Collect(ctx, dataflow.Batch(ctx, dataflow.From[int](ctx), 3)))
}

func TestForEach_ReturnsFirstUnhandledError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := dataflow.ForEach(ctx, dataflow.From(ctx, 1, 2, 3), func(n int) error {
		if n == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)

	err = dataflow.ForEach(ctx, dataflow.From(ctx, 1, 2, 3), func(n int) error {
		return boom
	}, dataflow.WithErrorHandler(func(err error) bool { return errors.Is(err, boom) }))
	assert.NoError(t, err)
}

func TestForEach_StopsAtFirstUnhandledError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	var calls int32
	err := dataflow.ForEach(ctx, dataflow.From(ctx, 1, 2, 3, 4, 5), func(n int) error {
		atomic.AddInt32(&calls, 1)
		if n == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestForEach_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	never := make(chan int)
	err := dataflow.ForEach(ctx, dataflow.New[int](never), func(int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFanIn(t *testing.T) {
	ctx := context.Background()

	merged := dataflow.FanIn(ctx, dataflow.From(ctx, 1), dataflow.From(ctx, 2))

	sum := 0
	err := dataflow.ForEach(ctx, merged, func(n int) error {
		sum += n
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sum)
}
