package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/pkg/simpleexcel"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var (
	//go:embed templates/bookmarks.yaml
	bookmarksTemplate string

	//go:embed templates/analytics.yaml
	analyticsTemplate string
)

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// NormalizeFormat maps an empty or unknown format to FormatXLSX.
func NormalizeFormat(format string) string {
	if strings.EqualFold(format, FormatCSV) {
		return FormatCSV
	}
	return FormatXLSX
}

type summaryRow struct {
	Metric string
	Value  interface{}
}

// ReportService renders bookmark and analytics exports.
type ReportService struct {
	bookmarks *BookmarkStore
	analytics *AnalyticsService
}

func NewReportService(bookmarks *BookmarkStore, analytics *AnalyticsService) *ReportService {
	return &ReportService{bookmarks: bookmarks, analytics: analytics}
}

// ExportBookmarks writes the bookmark set to w.
func (s *ReportService) ExportBookmarks(ctx context.Context, format string, w io.Writer) error {
	exporter, err := simpleexcel.NewDataExporterFromYamlConfig(bookmarksTemplate)
	if err != nil {
		return fmt.Errorf("load bookmarks template: %w", err)
	}
	exporter.
		BindSectionData("bookmarks", s.bookmarks.GetAll(ctx)).
		RegisterFormatter("department", func(v interface{}) interface{} {
			if d, ok := v.(string); ok && d == "" {
				return domain.NoDepartment
			}
			return v
		})
	return write(exporter, format, w)
}

// ExportAnalytics writes the analytics report for department and rng to w.
func (s *ReportService) ExportAnalytics(ctx context.Context, department, rng, format string, w io.Writer) error {
	report, err := s.analytics.Report(ctx, department, rng)
	if err != nil {
		return err
	}

	exporter, err := simpleexcel.NewDataExporterFromYamlConfig(analyticsTemplate)
	if err != nil {
		return fmt.Errorf("load analytics template: %w", err)
	}
	exporter.
		BindSectionData("departments", report.Departments).
		BindSectionData("trend", report.BookmarkTrend).
		BindSectionData("summary", []summaryRow{
			{Metric: "Overall Average Rating", Value: fmt.Sprintf("%.1f", report.OverallAverage)},
			{Metric: "Total Employees", Value: report.TotalEmployees},
			{Metric: "Latest Monthly Bookmarks", Value: report.LatestBookmarks},
			{Metric: "Current Bookmarks", Value: report.CurrentBookmarks},
		}).
		RegisterFormatter("one_decimal", func(v interface{}) interface{} {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.1f", f)
			}
			return v
		})
	return write(exporter, format, w)
}

func write(exporter *simpleexcel.DataExporter, format string, w io.Writer) error {
	if NormalizeFormat(format) == FormatCSV {
		return exporter.ToCSV(w)
	}
	return exporter.ToWriter(w)
}
