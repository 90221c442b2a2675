package service

import (
	"context"
	"math"
	"sort"

	"github.com/locvowork/hr_dashboard/internal/domain"
)

const (
	// AllDepartments selects every department in the analytics view.
	AllDepartments = "all"
	// DefaultRange is the bookmark trend range used when none is given.
	DefaultRange = "6months"

	unknownDepartment = "Unknown"
)

var bookmarkTrends = map[string][]domain.TrendPoint{
	"3months": {
		{Date: "2024-03", Month: "Mar", Bookmarks: 22},
		{Date: "2024-04", Month: "Apr", Bookmarks: 18},
		{Date: "2024-05", Month: "May", Bookmarks: 30},
	},
	"6months": {
		{Date: "2023-12", Month: "Dec", Bookmarks: 8},
		{Date: "2024-01", Month: "Jan", Bookmarks: 10},
		{Date: "2024-02", Month: "Feb", Bookmarks: 15},
		{Date: "2024-03", Month: "Mar", Bookmarks: 22},
		{Date: "2024-04", Month: "Apr", Bookmarks: 18},
		{Date: "2024-05", Month: "May", Bookmarks: 30},
	},
	"1year": {
		{Date: "2023-06", Month: "Jun '23", Bookmarks: 5},
		{Date: "2023-07", Month: "Jul '23", Bookmarks: 7},
		{Date: "2023-08", Month: "Aug '23", Bookmarks: 12},
		{Date: "2023-09", Month: "Sep '23", Bookmarks: 9},
		{Date: "2023-10", Month: "Oct '23", Bookmarks: 14},
		{Date: "2023-11", Month: "Nov '23", Bookmarks: 6},
		{Date: "2023-12", Month: "Dec '23", Bookmarks: 8},
		{Date: "2024-01", Month: "Jan '24", Bookmarks: 10},
		{Date: "2024-02", Month: "Feb '24", Bookmarks: 15},
		{Date: "2024-03", Month: "Mar '24", Bookmarks: 22},
		{Date: "2024-04", Month: "Apr '24", Bookmarks: 18},
		{Date: "2024-05", Month: "May '24", Bookmarks: 30},
	},
}

// TrendRanges lists the accepted bookmark trend ranges.
func TrendRanges() []string {
	return []string{"3months", "6months", "1year"}
}

// AnalyticsRating is the deterministic per-employee rating used by the analytics view.
func AnalyticsRating(id int) float64 {
	return round1(3.0 + float64(id%21)/10)
}

// PerformanceLabel buckets a department average.
func PerformanceLabel(avg float64) string {
	switch {
	case avg >= 4.5:
		return "Excellent"
	case avg >= 4.0:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// AnalyticsService aggregates department ratings and the bookmark trend.
type AnalyticsService struct {
	source     domain.RosterSource
	bookmarks  *BookmarkStore
	fetchLimit int
}

func NewAnalyticsService(source domain.RosterSource, bookmarks *BookmarkStore, fetchLimit int) *AnalyticsService {
	if fetchLimit <= 0 {
		fetchLimit = 100
	}
	return &AnalyticsService{source: source, bookmarks: bookmarks, fetchLimit: fetchLimit}
}

// Report builds the analytics payload. department is a department name or AllDepartments;
// rng is one of TrendRanges.
func (s *AnalyticsService) Report(ctx context.Context, department, rng string) (*domain.AnalyticsReport, error) {
	if department == "" {
		department = AllDepartments
	}
	if rng == "" {
		rng = DefaultRange
	}
	trend, ok := bookmarkTrends[rng]
	if !ok {
		return nil, domain.ErrInvalidRange
	}

	page, err := s.source.FetchPage(ctx, s.fetchLimit, 0)
	if err != nil {
		rosterFetches.WithLabelValues(outcomeError).Inc()
		return nil, err
	}
	rosterFetches.WithLabelValues(outcomeSuccess).Inc()

	stats := AggregateDepartments(page.Records)

	names := make([]string, len(stats))
	var sum float64
	total := 0
	for i, st := range stats {
		names[i] = st.Department
		sum += st.AverageRating
		total += st.EmployeeCount
	}

	report := &domain.AnalyticsReport{
		Departments:     stats,
		DepartmentNames: names,
		TotalEmployees:  total,
		Range:           rng,
		BookmarkTrend:   append([]domain.TrendPoint(nil), trend...),
	}
	if len(stats) > 0 {
		report.OverallAverage = round1(sum / float64(len(stats)))
	}
	if len(trend) > 0 {
		report.LatestBookmarks = trend[len(trend)-1].Bookmarks
	}
	if s.bookmarks != nil {
		report.CurrentBookmarks = len(s.bookmarks.GetAll(ctx))
	}

	if department != AllDepartments {
		selected := []domain.DepartmentStat{}
		for _, st := range stats {
			if st.Department == department {
				selected = append(selected, st)
			}
		}
		report.Departments = selected
	}
	return report, nil
}

// AggregateDepartments groups records by department and sorts by average rating, best first.
// Ties keep first-seen department order.
func AggregateDepartments(records []domain.Employee) []domain.DepartmentStat {
	type acc struct {
		total float64
		stat  domain.DepartmentStat
	}
	order := []string{}
	groups := map[string]*acc{}

	for _, e := range records {
		dept := e.Company.Department
		if dept == "" {
			dept = unknownDepartment
		}
		g, ok := groups[dept]
		if !ok {
			g = &acc{stat: domain.DepartmentStat{Department: dept, Employees: []domain.RatedEmployee{}}}
			groups[dept] = g
			order = append(order, dept)
		}
		rating := AnalyticsRating(e.ID)
		g.total += rating
		g.stat.EmployeeCount++
		g.stat.Employees = append(g.stat.Employees, domain.RatedEmployee{Name: e.FullName(), Rating: rating})
	}

	stats := make([]domain.DepartmentStat, 0, len(order))
	for _, dept := range order {
		g := groups[dept]
		g.stat.AverageRating = round1(g.total / float64(g.stat.EmployeeCount))
		g.stat.Performance = PerformanceLabel(g.stat.AverageRating)
		stats = append(stats, g.stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AverageRating > stats[j].AverageRating
	})
	return stats
}
