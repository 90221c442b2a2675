package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
)

// toHTTPStatus maps domain errors to a status code and a user-facing message.
func toHTTPStatus(err error) (int, string) {
	var (
		fetchErr      *domain.FetchError
		authErr       *domain.AuthError
		validationErr validator.ValidationErrors
	)
	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Message
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "Please sign in"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "Failed to load employees"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found"
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, "Invalid date range"
	case errors.Is(err, domain.ErrInvalidPage):
		return http.StatusBadRequest, "Invalid page"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, domain.ErrRosterNotLoaded):
		return http.StatusConflict, "Employee directory is not loaded"
	case errors.Is(err, domain.ErrSearchUnavailable):
		return http.StatusServiceUnavailable, "Search is not configured"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func respondError(c echo.Context, err error) error {
	status, message := toHTTPStatus(err)
	return serviceutils.ResponseError(c, status, message, err)
}
