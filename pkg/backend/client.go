// Package backend is the HTTP client for the society backend. All SOS
// Sentinel network traffic goes through it: emergency alert creation, the
// active-alerts poll, and the notice board.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/borgmon/sos-sentinel/pkg/models"
	"github.com/google/uuid"
)

const requestTimeout = 15 * time.Second

// Client talks to one society backend on behalf of one building.
type Client struct {
	baseURL    string
	token      string
	buildingID string
	httpClient *http.Client
}

// NewClient builds a client from the current configuration.
func NewClient(cfg *models.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		token:      cfg.APIToken,
		buildingID: cfg.BuildingID,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// BuildingID returns the building this client is scoped to.
func (c *Client) BuildingID() string {
	return c.buildingID
}

// CreateAlert files an emergency alert for the given category. The server
// resolves the reporting resident and building from the bearer token.
func (c *Client) CreateAlert(ctx context.Context, category models.Category) error {
	payload, _ := json.Marshal(map[string]string{"category": string(category)})

	if _, err := c.do(ctx, http.MethodPost, "/api/sos/alerts", bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// ActiveAlerts fetches the currently active alerts for the configured
// building, possibly an empty list.
func (c *Client) ActiveAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/buildings/"+c.buildingID+"/alerts/active", nil)
	if err != nil {
		return nil, fmt.Errorf("active alerts: %w", err)
	}

	var alerts []models.AlertRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &alerts); err != nil {
			return nil, fmt.Errorf("active alerts: decode data: %w", err)
		}
	}
	return alerts, nil
}

// Notices fetches the building notice board, newest first.
func (c *Client) Notices(ctx context.Context) ([]models.Notice, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/buildings/"+c.buildingID+"/notices", nil)
	if err != nil {
		return nil, fmt.Errorf("notices: %w", err)
	}

	var notices []models.Notice
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &notices); err != nil {
			return nil, fmt.Errorf("notices: decode data: %w", err)
		}
	}
	return notices, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	env := &envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			// A non-JSON body on a 200 still counts as failure detail
			env = &envelope{Message: previewBody(raw)}
		}
	}

	if !isSuccess(resp.StatusCode, env) {
		msg := env.Message
		if msg == "" {
			msg = previewBody(raw)
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
	}

	return env, nil
}

func previewBody(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
