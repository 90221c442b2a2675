package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/locvowork/hr_dashboard/internal/service/serviceutils"
)

// BookmarkHandler serves the bookmark set, its change stream and its export.
type BookmarkHandler struct {
	store    *service.BookmarkStore
	notifier *service.Notifier
	reports  *service.ReportService
}

func NewBookmarkHandler(store *service.BookmarkStore, notifier *service.Notifier, reports *service.ReportService) *BookmarkHandler {
	return &BookmarkHandler{store: store, notifier: notifier, reports: reports}
}

type bookmarkResponse struct {
	ID         int  `json:"id"`
	Bookmarked bool `json:"bookmarked"`
	Changed    bool `json:"changed"`
}

// bookmarksEvent is the payload of one server-sent event on the change stream.
type bookmarksEvent struct {
	Count int   `json:"count"`
	IDs   []int `json:"ids"`
}

func (h *BookmarkHandler) ListHandler(c echo.Context) error {
	bv := workspaceFrom(c).BookmarksView(c.Request().Context())
	bv.SetSearch(c.QueryParam("search"))
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Bookmarks retrieved successfully", bv.State())
}

// AddHandler bookmarks a record of the session's loaded roster.
func (h *BookmarkHandler) AddHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	ctx := c.Request().Context()
	e, err := workspaceFrom(c).DirectoryView(ctx).Record(id)
	if err != nil {
		return respondError(c, err)
	}
	changed, err := h.store.Add(ctx, e)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to save bookmark", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee bookmarked", bookmarkResponse{ID: id, Bookmarked: true, Changed: changed})
}

func (h *BookmarkHandler) RemoveHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	changed, err := h.store.Remove(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to remove bookmark", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Bookmark removed", bookmarkResponse{ID: id, Bookmarked: false, Changed: changed})
}

func (h *BookmarkHandler) ToggleHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	ctx := c.Request().Context()
	bookmarked, changed, err := workspaceFrom(c).DirectoryView(ctx).ToggleBookmark(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	message := "Bookmark removed"
	if bookmarked {
		message = "Employee bookmarked"
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, message, bookmarkResponse{ID: id, Bookmarked: bookmarked, Changed: changed})
}

// EventsHandler streams the bookmark set as server-sent events: once on connect and again after
// every change. The notifier subscription ends when the client disconnects.
func (h *BookmarkHandler) EventsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	changed := make(chan struct{}, 1)
	unsubscribe := h.notifier.Subscribe(func(context.Context) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	logger.DebugLog(ctx, "bookmark stream connected")
	for {
		if err := h.writeEvent(c); err != nil {
			logger.WarnLog(ctx, "bookmark stream write failed: %v", err)
			return nil
		}
		select {
		case <-ctx.Done():
			logger.DebugLog(ctx, "bookmark stream disconnected")
			return nil
		case <-changed:
		}
	}
}

func (h *BookmarkHandler) writeEvent(c echo.Context) error {
	all := h.store.GetAll(c.Request().Context())
	evt := bookmarksEvent{Count: len(all), IDs: make([]int, len(all))}
	for i, e := range all {
		evt.IDs[i] = e.ID
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Response(), "event: bookmarks\ndata: %s\n\n", data); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}

func (h *BookmarkHandler) ExportHandler(c echo.Context) error {
	format := service.NormalizeFormat(c.QueryParam("format"))

	var buf bytes.Buffer
	if err := h.reports.ExportBookmarks(c.Request().Context(), format, &buf); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to export bookmarks", err)
	}
	return attachment(c, "bookmarks."+format, format, buf.Bytes())
}

func attachment(c echo.Context, filename, format string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, service.ContentType(format), body)
}
