package view

import "sync"

// Page ids.
const (
	PageDashboard = "dashboard"
	PageEmployees = "employees"
	PageAnalytics = "analytics"
	PageBookmarks = "bookmarks"
)

var knownPages = map[string]bool{
	PageDashboard: true,
	PageEmployees: true,
	PageAnalytics: true,
	PageBookmarks: true,
}

// Navigation is the current page id and its parameters.
type Navigation struct {
	Page       string `json:"page"`
	EmployeeID int    `json:"employeeId,omitempty"`
}

// Navigator keeps in-memory navigation state. Unknown page ids fall back to the dashboard.
type Navigator struct {
	mu      sync.Mutex
	current Navigation
}

func NewNavigator() *Navigator {
	return &Navigator{current: Navigation{Page: PageDashboard}}
}

// Navigate moves to page. employeeID is kept only for the employees page.
func (n *Navigator) Navigate(page string, employeeID int) Navigation {
	if !knownPages[page] {
		page = PageDashboard
	}
	if page != PageEmployees || employeeID < 0 {
		employeeID = 0
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = Navigation{Page: page, EmployeeID: employeeID}
	return n.current
}

func (n *Navigator) Current() Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
