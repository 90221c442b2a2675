package service

import (
	"strings"

	"github.com/locvowork/hr_dashboard/internal/domain"
)

// MaxVisiblePages is the width of the page-number window.
const MaxVisiblePages = 5

// FilterEmployees returns the records matching f, preserving input order.
// The search text is matched as typed, whitespace included, against full name, email or
// department, case-insensitively.
func FilterEmployees(records []domain.Employee, f domain.Filter) []domain.Employee {
	search := strings.ToLower(f.SearchText)

	departments := make(map[string]struct{}, len(f.Departments))
	for _, d := range f.Departments {
		departments[d] = struct{}{}
	}
	ratings := make(map[int]struct{}, len(f.Ratings))
	for _, r := range f.Ratings {
		ratings[r] = struct{}{}
	}

	out := make([]domain.Employee, 0, len(records))
	for _, e := range records {
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		if len(departments) > 0 {
			if _, ok := departments[e.Company.Department]; !ok {
				continue
			}
		}
		if len(ratings) > 0 {
			if _, ok := ratings[e.Rating]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e domain.Employee, search string) bool {
	return strings.Contains(strings.ToLower(e.FullName()), search) ||
		strings.Contains(strings.ToLower(e.Email), search) ||
		strings.Contains(strings.ToLower(e.Company.Department), search)
}

// Paginate returns records[(page-1)*pageSize : page*pageSize] clamped to bounds.
// Out-of-range pages yield an empty slice.
func Paginate(records []domain.Employee, page, pageSize int) []domain.Employee {
	if page < 1 || pageSize <= 0 {
		return []domain.Employee{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []domain.Employee{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage clamps page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageWindow returns up to MaxVisiblePages page numbers centred on current.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	start := current - MaxVisiblePages/2
	if start < 1 {
		start = 1
	}
	end := start + MaxVisiblePages - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start+1 < MaxVisiblePages {
		start = end - MaxVisiblePages + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}

// BuildPagination derives the paging state for totalItems records viewed at page.
func BuildPagination(page, pageSize, totalItems int) domain.Pagination {
	totalPages := TotalPages(totalItems, pageSize)
	page = ClampPage(page, totalPages)

	p := domain.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		Window:     PageWindow(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if totalItems > 0 {
		p.From = (page-1)*pageSize + 1
		p.To = page * pageSize
		if p.To > totalItems {
			p.To = totalItems
		}
	}
	return p
}

// Departments returns the distinct non-empty departments in first-seen order.
func Departments(records []domain.Employee) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range records {
		d := e.Company.Department
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
