package service

import (
	"context"
	"errors"
	"testing"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_Load(t *testing.T) {
	src := &fakeSource{records: numbered(20)}
	svc := NewRosterService(src, RaterFunc(func(e domain.Employee) int { return e.ID%5 + 1 }))

	page, err := svc.Load(context.Background(), 2, 8)
	require.NoError(t, err)

	assert.Equal(t, 8, src.limit)
	assert.Equal(t, 8, src.skip)
	assert.Equal(t, 20, page.Total)
	require.Len(t, page.Records, 8)
	assert.Equal(t, 9, page.Records[0].ID)
	assert.Equal(t, 9%5+1, page.Records[0].Rating)
	assert.Equal(t, 0, src.records[8].Rating, "source records are not mutated")
}

func TestRosterService_LoadFailureIsNotRetried(t *testing.T) {
	fetchErr := &domain.FetchError{URL: "http://roster/users", Err: errors.New("connection refused")}
	src := &fakeSource{err: fetchErr}
	svc := NewRosterService(src, nil)

	_, err := svc.Load(context.Background(), 1, 50)

	var target *domain.FetchError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 1, src.calls)
}

func TestRandomRater_Range(t *testing.T) {
	r := NewRandomRater(42)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Rate(domain.Employee{})
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5)
}

func TestAnnotateRating_ReturnsCopy(t *testing.T) {
	svc := NewRosterService(&fakeSource{}, RaterFunc(func(domain.Employee) int { return 4 }))
	original := employee(1, "Ada", "Lovelace", "Engineering", 0)

	rated := svc.AnnotateRating(original)
	assert.Equal(t, 4, rated.Rating)
	assert.Equal(t, 0, original.Rating)
}
