package queryengine

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Client talks to a remote query execution service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a query engine client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type submitRequest struct {
	SQL            string `json:"sql"`
	Database       string `json:"database"`
	OutputLocation string `json:"outputLocation"`
}

type submitResponse struct {
	ExecutionID string `json:"executionId"`
}

type statusResponse struct {
	State         State  `json:"state"`
	FailureReason string `json:"failureReason"`
}

type resultsResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SubmitQuery starts an execution and returns its id.
func (c *Client) SubmitQuery(ctx context.Context, q Query) (string, error) {
	body, err := json.Marshal(submitRequest{
		SQL:            q.SQL,
		Database:       q.Database,
		OutputLocation: q.OutputLocation,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode query: %w", err)
	}

	var resp submitResponse
	if err := c.do(ctx, http.MethodPost, "/v1/queries", body, &resp); err != nil {
		return "", fmt.Errorf("failed to submit query: %w", err)
	}
	if resp.ExecutionID == "" {
		return "", fmt.Errorf("query engine returned empty execution id")
	}
	return resp.ExecutionID, nil
}

// QueryStatus fetches the current state of an execution.
func (c *Client) QueryStatus(ctx context.Context, executionID string) (Status, error) {
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/queries/"+executionID, nil, &resp); err != nil {
		return Status{}, fmt.Errorf("failed to fetch execution status: %w", err)
	}
	return Status{State: resp.State, FailureReason: resp.FailureReason}, nil
}

// QueryResults fetches the result rows of a succeeded execution.
func (c *Client) QueryResults(ctx context.Context, executionID string) (*Result, error) {
	var resp resultsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/queries/"+executionID+"/results", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch execution results: %w", err)
	}
	return &Result{Columns: resp.Columns, Rows: resp.Rows}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("query engine returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
