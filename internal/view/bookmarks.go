package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/service"
)

// BookmarksState is a snapshot of the bookmarks view.
type BookmarksState struct {
	Search  string            `json:"search"`
	Rows    []domain.Employee `json:"rows"`
	Total   int               `json:"total"`
	Shown   int               `json:"shown"`
	Summary string            `json:"summary"`
}

// BookmarksView lists the bookmark snapshots and reloads them on every change.
type BookmarksView struct {
	bookmarks *service.BookmarkStore
	notifier  *service.Notifier

	mu          sync.Mutex
	mounted     bool
	search      string
	all         []domain.Employee
	unsubscribe func()
}

func NewBookmarksView(deps Deps) *BookmarksView {
	return &BookmarksView{bookmarks: deps.Bookmarks, notifier: deps.Notifier}
}

// Mount loads the bookmark set and subscribes to changes.
func (v *BookmarksView) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.unsubscribe = v.notifier.Subscribe(v.reload)
	v.mu.Unlock()

	v.reload(ctx)
}

func (v *BookmarksView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.mounted = false
	v.all = nil
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

func (v *BookmarksView) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

func (v *BookmarksView) reload(ctx context.Context) {
	all := v.bookmarks.GetAll(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		v.all = all
	}
}

// SetSearch sets the search text.
func (v *BookmarksView) SetSearch(search string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = search
}

// Remove un-bookmarks id. The view refreshes through the notifier.
func (v *BookmarksView) Remove(ctx context.Context, id int) (bool, error) {
	return v.bookmarks.Remove(ctx, id)
}

// Promote returns the promotion notice for the bookmarked snapshot with id.
func (v *BookmarksView) Promote(id int) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, e := range v.all {
		if e.ID == id {
			return service.PromotionNotice(e), nil
		}
	}
	return "", domain.ErrEmployeeNotFound
}

func (v *BookmarksView) State() BookmarksState {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := service.FilterEmployees(v.all, domain.Filter{SearchText: v.search})
	return BookmarksState{
		Search:  v.search,
		Rows:    rows,
		Total:   len(v.all),
		Shown:   len(rows),
		Summary: fmt.Sprintf("Showing %d of %d bookmarked employees", len(rows), len(v.all)),
	}
}
