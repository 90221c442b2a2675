package service

import (
	"context"
	"sync"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
)

type fakeSource struct {
	mu      sync.Mutex
	records []domain.Employee
	err     error
	calls   int
	limit   int
	skip    int
}

func (f *fakeSource) FetchPage(_ context.Context, limit, skip int) (*domain.RosterPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.limit, f.skip = limit, skip
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RosterPage{Records: Paginate(f.records, skip/max(limit, 1)+1, limit), Total: len(f.records)}, nil
}

type fakeSlot struct {
	mu        sync.Mutex
	payload   []byte
	readErr   error
	writeErr  error
	writes    int
	readDelay time.Duration
}

func (s *fakeSlot) Name() string { return "bookmarkedEmployees" }

func (s *fakeSlot) Read(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.payload, nil
}

func (s *fakeSlot) Update(_ context.Context, fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return s.readErr
	}
	current := append([]byte(nil), s.payload...)
	time.Sleep(s.readDelay)

	next, err := fn(current)
	if err != nil {
		return err
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.payload = append([]byte(nil), next...)
	return nil
}

func employee(id int, first, last, dept string, rating int) domain.Employee {
	return domain.Employee{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
		Company:   domain.Company{Department: dept},
		Rating:    rating,
	}
}

func numbered(n int) []domain.Employee {
	out := make([]domain.Employee, n)
	for i := range out {
		out[i] = domain.Employee{ID: i + 1, FirstName: "Emp", LastName: string(rune('A' + i%26))}
	}
	return out
}
