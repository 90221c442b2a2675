package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
)

// Rater assigns the presentational rating of a roster record.
type Rater interface {
	Rate(e domain.Employee) int
}

// RaterFunc adapts a function to Rater.
type RaterFunc func(e domain.Employee) int

func (f RaterFunc) Rate(e domain.Employee) int { return f(e) }

// RandomRater draws ratings uniformly from [1,5].
type RandomRater struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomRater creates a rater seeded with seed. A zero seed uses the current time.
func NewRandomRater(seed int64) *RandomRater {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomRater{rnd: rand.New(rand.NewSource(seed))}
}

func (r *RandomRater) Rate(_ domain.Employee) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(5) + 1
}

// RosterService loads roster pages from the remote source and annotates them.
type RosterService struct {
	source domain.RosterSource
	rater  Rater
}

// NewRosterService creates a RosterService. A nil rater uses a time-seeded RandomRater.
func NewRosterService(source domain.RosterSource, rater Rater) *RosterService {
	if rater == nil {
		rater = NewRandomRater(0)
	}
	return &RosterService{source: source, rater: rater}
}

// Load fetches page (1-based) of pageSize records and rates each one.
// Failures are returned as *domain.FetchError and are not retried.
func (s *RosterService) Load(ctx context.Context, page, pageSize int) (*domain.RosterPage, error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * pageSize

	result, err := s.source.FetchPage(ctx, pageSize, skip)
	if err != nil {
		rosterFetches.WithLabelValues(outcomeError).Inc()
		logger.ErrorLog(ctx, "roster load failed: %v", err)
		return nil, err
	}
	rosterFetches.WithLabelValues(outcomeSuccess).Inc()

	records := make([]domain.Employee, len(result.Records))
	for i, e := range result.Records {
		records[i] = s.AnnotateRating(e)
	}
	logger.DebugLog(ctx, "roster loaded %d of %d records", len(records), result.Total)
	return &domain.RosterPage{Records: records, Total: result.Total}, nil
}

// AnnotateRating returns a copy of e carrying a freshly drawn rating.
func (s *RosterService) AnnotateRating(e domain.Employee) domain.Employee {
	e.Rating = s.rater.Rate(e)
	return e
}
