package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/repforge/internal/models"
	"github.com/meltforce/repforge/internal/storage"
)

// HTTPClient implements DataSource by calling the RepForge REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

// QuerySessions lists sessions via GET /api/v1/sessions.
func (c *HTTPClient) QuerySessions(ctx context.Context, start, end time.Time, _ int, typeFilter string) ([]models.SessionRow, error) {
	params := timeParams(start, end)
	if typeFilter != "" {
		params.Set("type", typeFilter)
	}

	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}

	var sessions []models.SessionRow
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

// ExerciseHistory fetches per-session history via GET /api/v1/progress.
func (c *HTTPClient) ExerciseHistory(ctx context.Context, exerciseName string, start, end time.Time, _ int) ([]storage.HistoryPoint, error) {
	params := timeParams(start, end)
	params.Set("exercise", exerciseName)

	body, err := c.get(ctx, "/api/v1/progress", params)
	if err != nil {
		return nil, err
	}

	var points []storage.HistoryPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("httpclient: decode progress: %w", err)
	}
	return points, nil
}

// GetPrefs fetches the preference store via GET /api/v1/prefs.
func (c *HTTPClient) GetPrefs(ctx context.Context, _ int) ([]models.PrefRow, error) {
	body, err := c.get(ctx, "/api/v1/prefs", nil)
	if err != nil {
		return nil, err
	}

	var prefs []models.PrefRow
	if err := json.Unmarshal(body, &prefs); err != nil {
		return nil, fmt.Errorf("httpclient: decode prefs: %w", err)
	}
	return prefs, nil
}
