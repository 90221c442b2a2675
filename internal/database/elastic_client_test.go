package database

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeElastic(t *testing.T, handler http.HandlerFunc) *ElasticSearchClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewElasticSearchClient(srv.URL, "employees_test")
	require.NoError(t, err)
	return client
}

func TestElasticSearchClient_SearchEmployees(t *testing.T) {
	var body string
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/employees_test/_search", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"took": 1,
			"hits": {
				"total": {"value": 1, "relation": "eq"},
				"hits": [{
					"_index": "employees_test",
					"_id": "5",
					"_source": {"id": 5, "first_name": "Emma", "last_name": "Miller", "department": "Marketing", "rating": 4}
				}]
			}
		}`))
	})

	got, err := client.SearchEmployees(context.Background(), "emma", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 5, got[0].ID)
	assert.Equal(t, "Emma Miller", got[0].FullName())
	assert.Equal(t, "Marketing", got[0].Company.Department)
	assert.Equal(t, 4, got[0].Rating)
	assert.True(t, strings.Contains(body, `"multi_match"`))
	assert.True(t, strings.Contains(body, `"size":20`))
}

func TestElasticSearchClient_IndexEmployees(t *testing.T) {
	var lines []string
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/_bulk", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		lines = strings.Split(strings.TrimSpace(string(raw)), "\n")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"took": 2, "errors": false, "items": [
			{"index": {"_index": "employees_test", "_id": "1", "status": 201}},
			{"index": {"_index": "employees_test", "_id": "2", "status": 201}}
		]}`))
	})

	err := client.IndexEmployees(context.Background(), []domain.Employee{
		{ID: 1, FirstName: "Emily", LastName: "Johnson"},
		{ID: 2, FirstName: "Michael", LastName: "Williams"},
	})
	require.NoError(t, err)
	assert.Len(t, lines, 4, "one action line and one document line per employee")
}

func TestElasticSearchClient_IndexEmployeesEmpty(t *testing.T) {
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s", r.URL.Path)
	})

	require.NoError(t, client.IndexEmployees(context.Background(), nil))
}

func TestElasticSearchClient_ClearMissingIndex(t *testing.T) {
	client := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	require.NoError(t, client.Clear(context.Background()))
}
