package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/repository"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/locvowork/hr_dashboard/internal/view"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "hr.manager@company.com"
	testPassword = "hrpass123"
	testTimeout  = 2 * time.Second
	testTick     = 5 * time.Millisecond
)

type stubSource struct {
	mu      sync.Mutex
	records []domain.Employee
	err     error
}

func (s *stubSource) FetchPage(_ context.Context, limit, skip int) (*domain.RosterPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &domain.RosterPage{Records: service.Paginate(s.records, skip/limit+1, limit), Total: len(s.records)}, nil
}

type stubIndex struct {
	results []domain.Employee
	query   string
	size    int
}

func (s *stubIndex) IndexEmployees(context.Context, []domain.Employee) error { return nil }

func (s *stubIndex) SearchEmployees(_ context.Context, query string, size int) ([]domain.Employee, error) {
	s.query, s.size = query, size
	return s.results, nil
}

func (s *stubIndex) Clear(context.Context) error { return nil }

func roster(n int) []domain.Employee {
	depts := []string{"Engineering", "Sales", "Support"}
	out := make([]domain.Employee, n)
	for i := range out {
		out[i] = domain.Employee{
			ID:        i + 1,
			FirstName: fmt.Sprintf("First%d", i+1),
			LastName:  "Last",
			Email:     fmt.Sprintf("user%d@example.com", i+1),
			Company:   domain.Company{Department: depts[i%len(depts)]},
		}
	}
	return out
}

type testEnv struct {
	echo     *echo.Echo
	source   *stubSource
	store    *service.BookmarkStore
	notifier *service.Notifier
	sessions *Sessions
}

func newTestEnv(t *testing.T, index domain.EmployeeIndex) *testEnv {
	t.Helper()

	source := &stubSource{records: roster(10)}
	notifier := service.NewNotifier()
	store := service.NewBookmarkStore(repository.NewMemorySlot("bookmarkedEmployees"), notifier)
	sessions := NewSessions(view.Deps{
		Roster:     service.NewRosterService(source, service.RaterFunc(func(e domain.Employee) int { return e.ID%5 + 1 })),
		Bookmarks:  store,
		Notifier:   notifier,
		Profiles:   service.NewProfileGenerator(1),
		PageSize:   8,
		FetchLimit: 50,
	})
	analytics := service.NewAnalyticsService(source, store, 100)
	reports := service.NewReportService(store, analytics)

	e := echo.New()
	e.Validator = NewRequestValidator()
	h := &Handlers{
		Auth:      NewAuthHandler(service.NewAuthenticator(testEmail, testPassword, 0), sessions),
		Dashboard: NewDashboardHandler(),
		Bookmarks: NewBookmarkHandler(store, notifier, reports),
		Analytics: NewAnalyticsHandler(analytics, reports),
		Search:    NewSearchHandler(index),
	}
	h.Register(e, sessions)
	t.Cleanup(sessions.CloseAll)

	return &testEnv{echo: e, source: source, store: store, notifier: notifier, sessions: sessions}
}

func (env *testEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/login", "", domain.Credentials{Email: testEmail, Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp loginResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// decode unmarshals the response envelope and, when data is non-nil, its data field.
func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}
