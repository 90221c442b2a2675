package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
)

const defaultSearchSize = 20

// SearchHandler runs full-text queries against the employee index. A nil index disables search.
type SearchHandler struct {
	index domain.EmployeeIndex
}

func NewSearchHandler(index domain.EmployeeIndex) *SearchHandler {
	return &SearchHandler{index: index}
}

func (h *SearchHandler) SearchHandler(c echo.Context) error {
	if h.index == nil {
		return respondError(c, domain.ErrSearchUnavailable)
	}
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing search query", nil)
	}
	size := defaultSearchSize
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid size", err)
		}
		size = n
	}

	employees, err := h.index.SearchEmployees(c.Request().Context(), query, size)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadGateway, "Search failed", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Search completed", employees)
}
