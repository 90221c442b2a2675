package handler

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
	"github.com/locvowork/hr_dashboard/internal/view"
)

// DashboardHandler serves the per-session navigation state, employee directory and employee detail.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type navigationRequest struct {
	Page       string `json:"page" validate:"required"`
	EmployeeID int    `json:"employeeId" validate:"gte=0"`
}

type promoteResponse struct {
	Notice string `json:"notice"`
}

func (h *DashboardHandler) GetNavigationHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Navigation retrieved successfully", workspaceFrom(c).Navigator.Current())
}

func (h *DashboardHandler) NavigateHandler(c echo.Context) error {
	var req navigationRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	nav := workspaceFrom(c).Navigator.Navigate(req.Page, req.EmployeeID)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Navigation updated", nav)
}

// DirectoryHandler returns the current directory page. The search, department and rating
// query parameters replace the filter (returning to page 1) when they differ from it;
// page then moves to the requested page.
func (h *DashboardHandler) DirectoryHandler(c echo.Context) error {
	dir := workspaceFrom(c).DirectoryView(c.Request().Context())

	params := c.QueryParams()
	if params.Has("search") || params.Has("department") || params.Has("rating") {
		f, err := parseFilter(c)
		if err != nil {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid rating", err)
		}
		if !sameFilter(dir.State().Filter, f) {
			dir.SetFilter(f)
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, domain.ErrInvalidPage)
		}
		dir.GoTo(page)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees retrieved successfully", dir.State())
}

func (h *DashboardHandler) ReloadDirectoryHandler(c echo.Context) error {
	dir := workspaceFrom(c).DirectoryView(c.Request().Context())
	if err := dir.Reload(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	state := dir.State()
	if state.Error != "" {
		return serviceutils.ResponseError(c, http.StatusBadGateway, "Failed to load employees", errors.New(state.Error))
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees reloaded", state)
}

func (h *DashboardHandler) GetEmployeeHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	ws := workspaceFrom(c)
	profile, err := ws.DirectoryView(c.Request().Context()).Employee(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	ws.Navigator.Navigate(view.PageEmployees, id)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee retrieved successfully", profile)
}

func (h *DashboardHandler) PromoteHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	notice, err := workspaceFrom(c).Promote(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, notice, promoteResponse{Notice: notice})
}

func parseFilter(c echo.Context) (domain.Filter, error) {
	params := c.QueryParams()
	f := domain.Filter{SearchText: params.Get("search")}
	for _, d := range params["department"] {
		if d = strings.TrimSpace(d); d != "" {
			f.Departments = append(f.Departments, d)
		}
	}
	for _, raw := range params["rating"] {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		r, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Filter{}, err
		}
		f.Ratings = append(f.Ratings, r)
	}
	return f, nil
}

func sameFilter(a, b domain.Filter) bool {
	return a.SearchText == b.SearchText &&
		slices.Equal(a.Departments, b.Departments) &&
		slices.Equal(a.Ratings, b.Ratings)
}
