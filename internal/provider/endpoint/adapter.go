package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shipwatch/internal/deploy"
	"shipwatch/internal/provider"
)

// Adapter implements provider.RunProvider against a self-hosted status
// endpoint. The endpoint answers GET with {"runs": [...]} where each run
// carries the same fields as the cache format.
type Adapter struct {
	url    string
	token  string
	client *http.Client
}

var _ provider.RunProvider = (*Adapter)(nil)

// NewAdapter creates an adapter for the given status endpoint URL.
// token is optional; when set it is sent as a bearer token.
func NewAdapter(url, token string) *Adapter {
	return &Adapter{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListRuns fetches the endpoint's run list. The repository argument is
// ignored; the endpoint is already scoped to one pipeline.
func (a *Adapter) ListRuns(ctx context.Context, _ deploy.Repository) ([]deploy.Run, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status endpoint error: %s", resp.Status)
	}

	var payload struct {
		Runs []deploy.Run `json:"runs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return payload.Runs, nil
}
