package domain

import "strings"

// NoDepartment is displayed for records the roster source returned without a department.
const NoDepartment = "No Department"

// ==================== ROSTER ====================

// Company holds the organizational attributes of an employee.
type Company struct {
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Address is the postal address reported by the roster source.
type Address struct {
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Employee is a roster record. Rating is synthesized per fetch and is not part of the source data.
type Employee struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Age       int     `json:"age,omitempty"`
	Image     string  `json:"image,omitempty"`
	BirthDate string  `json:"birthDate,omitempty"`
	Company   Company `json:"company"`
	Address   Address `json:"address"`
	Rating    int     `json:"rating"`
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// DisplayDepartment returns the department or NoDepartment when it is missing.
func (e Employee) DisplayDepartment() string {
	if e.Company.Department == "" {
		return NoDepartment
	}
	return e.Company.Department
}

// RosterPage is one page of the remote roster.
type RosterPage struct {
	Records []Employee `json:"records"`
	Total   int        `json:"total"`
}

// ==================== FILTER & PAGINATION ====================

// Filter narrows a roster. An empty Departments or Ratings set places no constraint on that dimension.
type Filter struct {
	SearchText  string   `json:"searchText"`
	Departments []string `json:"departments"`
	Ratings     []int    `json:"ratings"`
}

// Pagination describes the derived paging state of a filtered collection.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalItems int   `json:"totalItems"`
	From       int   `json:"from"`
	To         int   `json:"to"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

// ==================== EMPLOYEE DETAIL ====================

// PerformanceEntry is one month of synthesized performance history.
type PerformanceEntry struct {
	Month    string `json:"month"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// Project is a synthesized project assignment.
type Project struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Deadline string `json:"deadline"`
	Role     string `json:"role"`
}

// Feedback is a synthesized review entry.
type Feedback struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// EmployeeProfile is the detail view of a single employee.
type EmployeeProfile struct {
	Employee           Employee           `json:"employee"`
	Bio                string             `json:"bio"`
	PerformanceHistory []PerformanceEntry `json:"performanceHistory"`
	Projects           []Project          `json:"projects"`
	Feedback           []Feedback         `json:"feedback"`
	Bookmarked         bool               `json:"bookmarked"`
}

// ==================== ANALYTICS ====================

// RatedEmployee is an employee name with its analytics rating.
type RatedEmployee struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// DepartmentStat aggregates analytics ratings for one department.
type DepartmentStat struct {
	Department    string          `json:"department"`
	AverageRating float64         `json:"averageRating"`
	EmployeeCount int             `json:"employeeCount"`
	Performance   string          `json:"performance"`
	Employees     []RatedEmployee `json:"employees"`
}

// TrendPoint is one month of the bookmark trend series.
type TrendPoint struct {
	Date      string `json:"date"`
	Month     string `json:"month"`
	Bookmarks int    `json:"bookmarks"`
}

// AnalyticsReport is the payload of the analytics view.
type AnalyticsReport struct {
	Departments      []DepartmentStat `json:"departments"`
	DepartmentNames  []string         `json:"departmentNames"`
	OverallAverage   float64          `json:"overallAverage"`
	TotalEmployees   int              `json:"totalEmployees"`
	Range            string           `json:"range"`
	BookmarkTrend    []TrendPoint     `json:"bookmarkTrend"`
	LatestBookmarks  int              `json:"latestBookmarks"`
	CurrentBookmarks int              `json:"currentBookmarks"`
}

// ==================== AUTH ====================

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User is the authenticated HR user.
type User struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}
