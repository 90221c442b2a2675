package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	reports   *service.ReportService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, reports *service.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, reports: reports}
}

func (h *AnalyticsHandler) ReportHandler(c echo.Context) error {
	report, err := h.analytics.Report(c.Request().Context(), c.QueryParam("department"), c.QueryParam("range"))
	if err != nil {
		return respondError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Analytics retrieved successfully", report)
}

func (h *AnalyticsHandler) ExportHandler(c echo.Context) error {
	format := service.NormalizeFormat(c.QueryParam("format"))

	var buf bytes.Buffer
	err := h.reports.ExportAnalytics(c.Request().Context(), c.QueryParam("department"), c.QueryParam("range"), format, &buf)
	if err != nil {
		return respondError(c, err)
	}
	return attachment(c, "analytics."+format, format, buf.Bytes())
}
