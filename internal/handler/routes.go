package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups the API handlers for route registration.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Bookmarks *BookmarkHandler
	Analytics *AnalyticsHandler
	Search    *SearchHandler
}

// Register mounts the /api routes on e. Everything except login requires a session.
func (h *Handlers) Register(e *echo.Echo, sessions *Sessions) {
	api := e.Group("/api")
	api.POST("/login", h.Auth.LoginHandler)

	authed := api.Group("", RequireSession(sessions))
	authed.POST("/logout", h.Auth.LogoutHandler)
	authed.GET("/session", h.Auth.SessionHandler)

	authed.GET("/navigation", h.Dashboard.GetNavigationHandler)
	authed.POST("/navigation", h.Dashboard.NavigateHandler)

	authed.GET("/directory", h.Dashboard.DirectoryHandler)
	authed.POST("/directory/reload", h.Dashboard.ReloadDirectoryHandler)
	authed.GET("/employees/:id", h.Dashboard.GetEmployeeHandler)
	authed.POST("/employees/:id/promote", h.Dashboard.PromoteHandler)

	bookmarks := authed.Group("/bookmarks")
	bookmarks.GET("", h.Bookmarks.ListHandler)
	bookmarks.GET("/events", h.Bookmarks.EventsHandler)
	bookmarks.GET("/export", h.Bookmarks.ExportHandler)
	bookmarks.POST("/:id", h.Bookmarks.AddHandler)
	bookmarks.DELETE("/:id", h.Bookmarks.RemoveHandler)
	bookmarks.POST("/:id/toggle", h.Bookmarks.ToggleHandler)

	authed.GET("/analytics", h.Analytics.ReportHandler)
	authed.GET("/analytics/export", h.Analytics.ExportHandler)

	authed.GET("/search", h.Search.SearchHandler)
}
