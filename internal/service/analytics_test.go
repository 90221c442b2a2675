package service

import (
	"context"
	"errors"
	"testing"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRating(t *testing.T) {
	assert.Equal(t, 3.0, AnalyticsRating(21))
	assert.Equal(t, 3.1, AnalyticsRating(1))
	assert.Equal(t, 5.0, AnalyticsRating(20))
	assert.Equal(t, 4.2, AnalyticsRating(33))
}

func TestPerformanceLabel(t *testing.T) {
	assert.Equal(t, "Excellent", PerformanceLabel(4.5))
	assert.Equal(t, "Good", PerformanceLabel(4.0))
	assert.Equal(t, "Good", PerformanceLabel(4.4))
	assert.Equal(t, "Needs Improvement", PerformanceLabel(3.9))
}

func TestAggregateDepartments(t *testing.T) {
	records := []domain.Employee{
		employee(1, "A", "A", "Sales", 0),
		employee(20, "B", "B", "Engineering", 0),
		employee(3, "C", "C", "Sales", 0),
		employee(19, "D", "D", "", 0),
	}

	stats := AggregateDepartments(records)
	require.Len(t, stats, 3)

	assert.Equal(t, "Engineering", stats[0].Department)
	assert.Equal(t, 5.0, stats[0].AverageRating)
	assert.Equal(t, "Excellent", stats[0].Performance)

	assert.Equal(t, "Unknown", stats[1].Department)
	assert.Equal(t, 4.9, stats[1].AverageRating)

	assert.Equal(t, "Sales", stats[2].Department)
	assert.Equal(t, 3.2, stats[2].AverageRating)
	assert.Equal(t, 2, stats[2].EmployeeCount)
	assert.Equal(t, "Needs Improvement", stats[2].Performance)
	assert.Equal(t, []domain.RatedEmployee{{Name: "A A", Rating: 3.1}, {Name: "C C", Rating: 3.3}}, stats[2].Employees)
}

func TestAnalyticsService_Report(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{records: []domain.Employee{
		employee(20, "B", "B", "Engineering", 0),
		employee(2, "A", "A", "Sales", 0),
	}}
	bookmarks := NewBookmarkStore(&fakeSlot{}, nil)
	_, err := bookmarks.Add(ctx, employee(2, "A", "A", "Sales", 0))
	require.NoError(t, err)

	svc := NewAnalyticsService(src, bookmarks, 100)

	report, err := svc.Report(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 100, src.limit)
	assert.Equal(t, DefaultRange, report.Range)
	assert.Len(t, report.BookmarkTrend, 6)
	assert.Equal(t, 30, report.LatestBookmarks)
	assert.Equal(t, 1, report.CurrentBookmarks)
	assert.Equal(t, []string{"Engineering", "Sales"}, report.DepartmentNames)
	assert.Equal(t, 4.1, report.OverallAverage)
	assert.Equal(t, 2, report.TotalEmployees)

	sales, err := svc.Report(ctx, "Sales", "1year")
	require.NoError(t, err)
	require.Len(t, sales.Departments, 1)
	assert.Equal(t, "Sales", sales.Departments[0].Department)
	assert.Len(t, sales.DepartmentNames, 2)
	assert.Len(t, sales.BookmarkTrend, 12)
}

func TestAnalyticsService_ReportErrors(t *testing.T) {
	svc := NewAnalyticsService(&fakeSource{}, nil, 0)
	_, err := svc.Report(context.Background(), AllDepartments, "2weeks")
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	failing := NewAnalyticsService(&fakeSource{err: &domain.FetchError{URL: "u", Err: errors.New("down")}}, nil, 0)
	_, err = failing.Report(context.Background(), AllDepartments, "3months")
	var fetchErr *domain.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}
