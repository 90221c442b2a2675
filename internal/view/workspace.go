package view

import (
	"context"
	"errors"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/service"
)

// Deps are the shared collaborators injected into every view.
type Deps struct {
	Roster     *service.RosterService
	Bookmarks  *service.BookmarkStore
	Notifier   *service.Notifier
	Profiles   *service.ProfileGenerator
	PageSize   int
	FetchLimit int
}

// Workspace is the set of views owned by one session.
type Workspace struct {
	Navigator *Navigator
	Directory *DirectoryView
	Bookmarks *BookmarksView
}

func NewWorkspace(deps Deps) *Workspace {
	if deps.PageSize <= 0 {
		deps.PageSize = 8
	}
	if deps.FetchLimit <= 0 {
		deps.FetchLimit = 50
	}
	return &Workspace{
		Navigator: NewNavigator(),
		Directory: NewDirectoryView(deps),
		Bookmarks: NewBookmarksView(deps),
	}
}

// DirectoryView returns the directory view, mounting it on first use.
func (w *Workspace) DirectoryView(ctx context.Context) *DirectoryView {
	w.Directory.Mount(ctx)
	return w.Directory
}

// BookmarksView returns the bookmarks view, mounting it on first use.
func (w *Workspace) BookmarksView(ctx context.Context) *BookmarksView {
	w.Bookmarks.Mount(ctx)
	return w.Bookmarks
}

// Promote returns the promotion notice for id, taken from the loaded roster or, when the roster
// does not have it, from the bookmark snapshot. The roster error is returned when neither has id.
func (w *Workspace) Promote(ctx context.Context, id int) (string, error) {
	notice, err := w.DirectoryView(ctx).Promote(id)
	if err == nil {
		return notice, nil
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) && !errors.Is(err, domain.ErrRosterNotLoaded) {
		return "", err
	}
	if notice, bmErr := w.BookmarksView(ctx).Promote(id); bmErr == nil {
		return notice, nil
	}
	return "", err
}

// Close unmounts every view.
func (w *Workspace) Close() {
	w.Directory.Unmount()
	w.Bookmarks.Unmount()
}
