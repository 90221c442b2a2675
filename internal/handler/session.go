package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/locvowork/hr_dashboard/internal/view"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "hr_session"

const sessionContextKey = "session"

// Sessions holds one view workspace per logged-in user.
type Sessions = service.SessionManager[*view.Workspace]

// NewSessions creates a session manager whose sessions own a fresh workspace built from deps.
func NewSessions(deps view.Deps) *Sessions {
	return service.NewSessionManager(
		func(domain.User) *view.Workspace { return view.NewWorkspace(deps) },
		func(w *view.Workspace) { w.Close() },
	)
}

// RequireSession rejects requests without a live session token and stores the session on the echo context.
// The token is read from a Bearer Authorization header or the SessionCookie.
func RequireSession(sessions *Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.Get(tokenFrom(c))
			if err != nil {
				return respondError(c, err)
			}
			c.Set(sessionContextKey, sess)

			req := c.Request()
			ctx := logger.WithLogger(req.Context(), map[string]interface{}{"user": sess.User.Email})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) string {
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func sessionFrom(c echo.Context) *service.Session[*view.Workspace] {
	sess, _ := c.Get(sessionContextKey).(*service.Session[*view.Workspace])
	return sess
}

func workspaceFrom(c echo.Context) *view.Workspace {
	if sess := sessionFrom(c); sess != nil {
		return sess.State
	}
	return nil
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
