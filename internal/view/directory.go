package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/locvowork/hr_dashboard/internal/service"
)

// RatingOptions are the selectable rating filter values.
var RatingOptions = []int{1, 2, 3, 4, 5}

// DirectoryRow is one row of the directory table.
type DirectoryRow struct {
	Employee   domain.Employee `json:"employee"`
	Bookmarked bool            `json:"bookmarked"`
}

// DirectoryState is a snapshot of the directory view.
type DirectoryState struct {
	Loading       bool              `json:"loading"`
	Error         string            `json:"error,omitempty"`
	Filter        domain.Filter     `json:"filter"`
	Departments   []string          `json:"departments"`
	Ratings       []int             `json:"ratings"`
	Rows          []DirectoryRow    `json:"rows"`
	Pagination    domain.Pagination `json:"pagination"`
	Summary       string            `json:"summary"`
	RemoteTotal   int               `json:"remoteTotal"`
	BookmarkCount int               `json:"bookmarkCount"`
}

// DirectoryView holds one fetched roster and the filter and page applied to it.
type DirectoryView struct {
	roster     *service.RosterService
	bookmarks  *service.BookmarkStore
	notifier   *service.Notifier
	profiles   *service.ProfileGenerator
	pageSize   int
	fetchLimit int

	mu          sync.Mutex
	mounted     bool
	generation  int
	loading     bool
	err         error
	records     []domain.Employee
	remoteTotal int
	details     map[int]domain.EmployeeProfile
	filter      domain.Filter
	page        int
	bookmarked  map[int]bool
	unsubscribe func()
}

func NewDirectoryView(deps Deps) *DirectoryView {
	return &DirectoryView{
		roster:     deps.Roster,
		bookmarks:  deps.Bookmarks,
		notifier:   deps.Notifier,
		profiles:   deps.Profiles,
		pageSize:   deps.PageSize,
		fetchLimit: deps.FetchLimit,
		page:       1,
		bookmarked: map[int]bool{},
	}
}

// Mount subscribes to bookmark changes and fetches the roster. Mounting a mounted view is a no-op.
// The fetch runs without holding the view lock.
func (v *DirectoryView) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.unsubscribe = v.notifier.Subscribe(v.onBookmarksChanged)
	gen := v.beginLoadLocked()
	v.mu.Unlock()

	v.refreshBookmarks(ctx)
	v.load(ctx, gen)
}

// Unmount unsubscribes and drops the roster. A fetch still in flight is discarded when it completes.
func (v *DirectoryView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.mounted = false
	v.generation++
	v.loading = false
	v.records = nil
	v.details = nil
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Mounted reports whether the view is mounted.
func (v *DirectoryView) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// Reload refetches the roster, replacing ratings and synthesized details.
func (v *DirectoryView) Reload(ctx context.Context) error {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return fmt.Errorf("directory view is not mounted")
	}
	gen := v.beginLoadLocked()
	v.mu.Unlock()

	v.load(ctx, gen)
	return nil
}

func (v *DirectoryView) beginLoadLocked() int {
	v.generation++
	v.loading = true
	v.err = nil
	return v.generation
}

func (v *DirectoryView) load(ctx context.Context, gen int) {
	result, err := v.roster.Load(ctx, 1, v.fetchLimit)

	var details map[int]domain.EmployeeProfile
	if err == nil {
		details = make(map[int]domain.EmployeeProfile, len(result.Records))
		for _, e := range result.Records {
			details[e.ID] = v.profiles.Generate(e)
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation || !v.mounted {
		logger.DebugLog(ctx, "directory: discarding stale roster fetch %d", gen)
		return
	}
	v.loading = false
	if err != nil {
		v.err = err
		v.records = nil
		v.details = nil
		return
	}
	v.records = result.Records
	v.remoteTotal = result.Total
	v.details = details
	v.page = service.ClampPage(v.page, service.TotalPages(len(v.filteredLocked()), v.pageSize))
}

func (v *DirectoryView) onBookmarksChanged(ctx context.Context) {
	v.refreshBookmarks(ctx)
}

func (v *DirectoryView) refreshBookmarks(ctx context.Context) {
	ids := v.bookmarks.IDs(ctx)
	v.mu.Lock()
	v.bookmarked = ids
	v.mu.Unlock()
}

// SetFilter replaces the filter and returns to the first page.
func (v *DirectoryView) SetFilter(f domain.Filter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = f
	v.page = 1
}

// GoTo moves to page, clamped to the available pages.
func (v *DirectoryView) GoTo(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = service.ClampPage(page, service.TotalPages(len(v.filteredLocked()), v.pageSize))
}

// Next moves forward one page when possible.
func (v *DirectoryView) Next() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page < service.TotalPages(len(v.filteredLocked()), v.pageSize) {
		v.page++
	}
}

// Prev moves back one page when possible.
func (v *DirectoryView) Prev() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page > 1 {
		v.page--
	}
}

func (v *DirectoryView) filteredLocked() []domain.Employee {
	return service.FilterEmployees(v.records, v.filter)
}

// State returns a snapshot of the current page.
func (v *DirectoryView) State() DirectoryState {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := v.filteredLocked()
	pagination := service.BuildPagination(v.page, v.pageSize, len(filtered))
	v.page = pagination.Page

	rows := []DirectoryRow{}
	for _, e := range service.Paginate(filtered, pagination.Page, v.pageSize) {
		rows = append(rows, DirectoryRow{Employee: e, Bookmarked: v.bookmarked[e.ID]})
	}

	state := DirectoryState{
		Loading:       v.loading,
		Filter:        v.filter,
		Departments:   service.Departments(v.records),
		Ratings:       RatingOptions,
		Rows:          rows,
		Pagination:    pagination,
		Summary:       fmt.Sprintf("Showing %d to %d of %d results", pagination.From, pagination.To, pagination.TotalItems),
		RemoteTotal:   v.remoteTotal,
		BookmarkCount: len(v.bookmarked),
	}
	if v.err != nil {
		state.Error = v.err.Error()
	}
	return state
}

// Employee returns the detail view of id as generated for the current roster.
func (v *DirectoryView) Employee(ctx context.Context, id int) (domain.EmployeeProfile, error) {
	v.mu.Lock()
	if v.details == nil {
		v.mu.Unlock()
		return domain.EmployeeProfile{}, domain.ErrRosterNotLoaded
	}
	profile, ok := v.details[id]
	v.mu.Unlock()
	if !ok {
		return domain.EmployeeProfile{}, domain.ErrEmployeeNotFound
	}
	profile.Bookmarked = v.bookmarks.Contains(ctx, id)
	return profile, nil
}

// Record returns the roster record with id.
func (v *DirectoryView) Record(id int) (domain.Employee, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.records == nil {
		return domain.Employee{}, domain.ErrRosterNotLoaded
	}
	for _, e := range v.records {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Employee{}, domain.ErrEmployeeNotFound
}

// ToggleBookmark bookmarks or un-bookmarks the roster record with id.
// It reports whether the record is bookmarked afterwards and whether the bookmark set changed.
func (v *DirectoryView) ToggleBookmark(ctx context.Context, id int) (bookmarked, changed bool, err error) {
	e, err := v.Record(id)
	if err != nil {
		return false, false, err
	}
	return v.bookmarks.Toggle(ctx, e)
}

// Promote returns the promotion notice for id.
func (v *DirectoryView) Promote(id int) (string, error) {
	e, err := v.Record(id)
	if err != nil {
		return "", err
	}
	return service.PromotionNotice(e), nil
}
