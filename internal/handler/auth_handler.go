package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
	"github.com/locvowork/hr_dashboard/internal/view"
)

type AuthHandler struct {
	auth     *service.Authenticator
	sessions *Sessions
}

func NewAuthHandler(auth *service.Authenticator, sessions *Sessions) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type loginResponse struct {
	Token      string          `json:"token"`
	User       domain.User     `json:"user"`
	Navigation view.Navigation `json:"navigation"`
}

type sessionResponse struct {
	User       domain.User     `json:"user"`
	Navigation view.Navigation `json:"navigation"`
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req domain.Credentials
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	user, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	sess := h.sessions.Create(c.Request().Context(), *user)
	c.SetCookie(sessionCookie(sess.Token, 0))
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Signed in", loginResponse{
		Token:      sess.Token,
		User:       sess.User,
		Navigation: sess.State.Navigator.Current(),
	})
}

func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	sess := sessionFrom(c)
	if err := h.sessions.End(c.Request().Context(), sess.Token); err != nil {
		return respondError(c, err)
	}
	c.SetCookie(sessionCookie("", -1))
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Signed out", nil)
}

func (h *AuthHandler) SessionHandler(c echo.Context) error {
	sess := sessionFrom(c)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Session retrieved successfully", sessionResponse{
		User:       sess.User,
		Navigation: sess.State.Navigator.Current(),
	})
}
