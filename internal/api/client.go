package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the daemon's HTTP API on behalf of the CLI.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given bind address. A bare host:port is
// promoted to an http URL.
func NewClient(address string) *Client {
	address = strings.TrimSpace(address)
	if address != "" && !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return &Client{
		baseURL: strings.TrimRight(address, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (DaemonStatus, error) {
	var out DaemonStatus
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &out)
	return out, err
}

// Project fetches the active project, creating the default one on first use.
func (c *Client) Project(ctx context.Context) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodGet, "/api/project", nil, &out)
	return out, err
}

// ListTakes fetches all takes.
func (c *Client) ListTakes(ctx context.Context) ([]Take, error) {
	var out TakeListResponse
	if err := c.do(ctx, http.MethodGet, "/api/takes", nil, &out); err != nil {
		return nil, err
	}
	return out.Takes, nil
}

// GetTake fetches one take.
func (c *Client) GetTake(ctx context.Context, id int64) (Take, error) {
	var out TakeResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/takes/%d", id), nil, &out)
	return out.Take, err
}

// CreateTake registers a new take.
func (c *Client) CreateTake(ctx context.Context, req CreateTakeRequest) (Take, error) {
	var out TakeResponse
	err := c.do(ctx, http.MethodPost, "/api/takes", req, &out)
	return out.Take, err
}

// SetAcceptStatus records a reviewer decision.
func (c *Client) SetAcceptStatus(ctx context.Context, id int64, status string) (Take, error) {
	var out TakeResponse
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/takes/%d", id), UpdateTakeRequest{AcceptStatus: status}, &out)
	return out.Take, err
}

// Process starts an asynchronous pipeline run for a take.
func (c *Client) Process(ctx context.Context, id int64) (ProcessResponse, error) {
	var out ProcessResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/takes/%d/process", id), nil, &out)
	return out, err
}

// TakeStatus polls the progress record for a take.
func (c *Client) TakeStatus(ctx context.Context, id int64) (StatusResponse, error) {
	var out StatusResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/takes/%d/status", id), nil, &out)
	return out, err
}

// DashboardStats fetches the aggregated dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (StatsResponse, error) {
	var out StatsResponse
	err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil && payload.Error != "" {
			return fmt.Errorf("daemon error (%d): %s", resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("daemon error: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
