package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/locvowork/hr_dashboard/pkg/dataflow"
)

// SyncOptions tunes IndexSyncer.Sync.
type SyncOptions struct {
	PageSize   int
	MaxRecords int // 0 indexes the whole roster
	Workers    int
	Retries    int
	Backoff    time.Duration
	BatchSize  int
}

func (o SyncOptions) withDefaults() SyncOptions {
	if o.PageSize <= 0 {
		o.PageSize = 50
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 200
	}
	if o.Backoff <= 0 {
		o.Backoff = 500 * time.Millisecond
	}
	return o
}

// SyncResult summarizes one index sync.
type SyncResult struct {
	Total       int `json:"total"`
	Indexed     int `json:"indexed"`
	FailedPages int `json:"failedPages"`
}

// IndexSyncer copies the roster into the employee search index.
type IndexSyncer struct {
	roster *RosterService
	index  domain.EmployeeIndex
}

func NewIndexSyncer(roster *RosterService, index domain.EmployeeIndex) *IndexSyncer {
	return &IndexSyncer{roster: roster, index: index}
}

// Sync pages through the roster with concurrent fetch workers and bulk-indexes the records.
// Pages that still fail after the configured retries are skipped and counted in FailedPages.
// The first indexing failure aborts the sync; Indexed counts only the batches accepted before it.
func (s *IndexSyncer) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	opts = opts.withDefaults()

	// Cancelling on return stops the fetch stages when indexing aborts early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	first, err := s.roster.Load(ctx, 1, opts.PageSize)
	if err != nil {
		return SyncResult{}, err
	}
	total := first.Total
	if opts.MaxRecords > 0 && opts.MaxRecords < total {
		total = opts.MaxRecords
	}

	var pages []int
	for skip := opts.PageSize; skip < total; skip += opts.PageSize {
		pages = append(pages, skip/opts.PageSize+1)
	}
	logger.InfoLog(ctx, "index sync: %d records in %d pages", total, len(pages)+1)

	var failed int32
	fetched := dataflow.Map(ctx, dataflow.From(ctx, pages...), func(page int) ([]domain.Employee, error) {
		result, err := s.roster.Load(ctx, page, opts.PageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		return result.Records, nil
	},
		dataflow.WithWorkers(opts.Workers),
		dataflow.WithRetry(opts.Retries, dataflow.ConstantBackoff(opts.Backoff)),
		dataflow.WithErrorHandler(func(err error) bool {
			atomic.AddInt32(&failed, 1)
			logger.WarnLog(ctx, "index sync: skipping %v", err)
			return true
		}),
	)

	loaded := dataflow.FanIn(ctx, dataflow.From(ctx, first.Records), fetched)

	records := make(chan domain.Employee)
	go func() {
		defer close(records)
		for batch := range loaded {
			for _, e := range batch {
				select {
				case <-ctx.Done():
					return
				case records <- e:
				}
			}
		}
	}()

	var (
		mu       sync.Mutex
		accepted int
	)
	capped := dataflow.Filter(ctx, dataflow.New[domain.Employee](records), func(domain.Employee) bool {
		mu.Lock()
		defer mu.Unlock()
		if accepted >= total {
			return false
		}
		accepted++
		return true
	})

	indexed := 0
	err = dataflow.ForEach(ctx, dataflow.Batch(ctx, capped, opts.BatchSize), func(batch []domain.Employee) error {
		if err := s.index.IndexEmployees(ctx, batch); err != nil {
			return err
		}
		indexed += len(batch)
		return nil
	})

	result := SyncResult{Total: total, Indexed: indexed, FailedPages: int(atomic.LoadInt32(&failed))}
	if err != nil {
		return result, fmt.Errorf("index employees: %w", err)
	}
	logger.InfoLog(ctx, "index sync: indexed %d records, %d pages failed", result.Indexed, result.FailedPages)
	return result, nil
}
