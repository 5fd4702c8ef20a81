package queryengine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSubmitQuery(t *testing.T) {
	var got submitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/queries", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(submitResponse{ExecutionID: "exec-9"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	id, err := client.SubmitQuery(context.Background(), Query{
		SQL:            "SELECT 1",
		Database:       "slippi",
		OutputLocation: "s3://results/",
	})
	require.NoError(t, err)
	assert.Equal(t, "exec-9", id)
	assert.Equal(t, "SELECT 1", got.SQL)
	assert.Equal(t, "slippi", got.Database)
	assert.Equal(t, "s3://results/", got.OutputLocation)
}

func TestClientSubmitRejectsEmptyExecutionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(submitResponse{})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).SubmitQuery(context.Background(), Query{SQL: "SELECT 1"})
	assert.Error(t, err)
}

func TestClientQueryStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/queries/exec-9", r.URL.Path)
		json.NewEncoder(w).Encode(statusResponse{State: StateFailed, FailureReason: "syntax error"})
	}))
	defer server.Close()

	status, err := NewClient(server.URL).QueryStatus(context.Background(), "exec-9")
	require.NoError(t, err)
	assert.Equal(t, StateFailed, status.State)
	assert.Equal(t, "syntax error", status.FailureReason)
}

func TestClientQueryResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/queries/exec-9/results", r.URL.Path)
		json.NewEncoder(w).Encode(resultsResponse{
			Columns: []string{"frame", "height"},
			Rows:    [][]string{{"3", "20"}},
		})
	}))
	defer server.Close()

	res, err := NewClient(server.URL).QueryResults(context.Background(), "exec-9")
	require.NoError(t, err)
	assert.Equal(t, []string{"frame", "height"}, res.Columns)
	assert.Equal(t, [][]string{{"3", "20"}}, res.Rows)
}

func TestClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).QueryStatus(context.Background(), "exec-9")
	assert.Error(t, err)
}
