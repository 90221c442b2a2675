package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/locvowork/hr_dashboard/internal/domain"
)

// userDTO is the wire shape of a record returned by GET /users.
type userDTO struct {
	ID        int         `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Age       int         `json:"age"`
	Image     string      `json:"image"`
	BirthDate string      `json:"birthDate"`
	Company   *companyDTO `json:"company"`
	Address   *addressDTO `json:"address"`
}

type companyDTO struct {
	Department string `json:"department"`
	Title      string `json:"title"`
	Name       string `json:"name"`
}

type addressDTO struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type usersResponse struct {
	Users []userDTO `json:"users"`
	Total int       `json:"total"`
	Skip  int       `json:"skip"`
	Limit int       `json:"limit"`
}

func (u userDTO) toDomain() domain.Employee {
	e := domain.Employee{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Age:       u.Age,
		Image:     u.Image,
		BirthDate: u.BirthDate,
	}
	if u.Company != nil {
		e.Company = domain.Company{Department: u.Company.Department, Title: u.Company.Title, Name: u.Company.Name}
	}
	if u.Address != nil {
		e.Address = domain.Address{
			Address:    u.Address.Address,
			City:       u.Address.City,
			State:      u.Address.State,
			PostalCode: u.Address.PostalCode,
			Country:    u.Address.Country,
		}
	}
	return e
}

// RosterClient reads the public demo user directory.
type RosterClient struct {
	baseURL string
	http    *http.Client
}

// NewRosterClient creates a client for baseURL (e.g. https://dummyjson.com).
// A nil httpClient uses http.DefaultClient.
func NewRosterClient(baseURL string, httpClient *http.Client) *RosterClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RosterClient{baseURL: baseURL, http: httpClient}
}

// FetchPage implements domain.RosterSource. Every failure is a *domain.FetchError.
func (c *RosterClient) FetchPage(ctx context.Context, limit, skip int) (*domain.RosterPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	endpoint := c.baseURL + "/users?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body usersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("decode body: %w", err)}
	}

	records := make([]domain.Employee, 0, len(body.Users))
	seen := make(map[int]struct{}, len(body.Users))
	for _, u := range body.Users {
		if u.ID <= 0 {
			return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("invalid user id %d", u.ID)}
		}
		if _, dup := seen[u.ID]; dup {
			return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("duplicate user id %d", u.ID)}
		}
		seen[u.ID] = struct{}{}
		records = append(records, u.toDomain())
	}

	return &domain.RosterPage{Records: records, Total: body.Total}, nil
}
