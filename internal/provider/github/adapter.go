package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shipwatch/internal/deploy"
	"shipwatch/internal/provider"
)

const defaultBaseURL = "https://api.github.com"

// Adapter implements provider.RunProvider for GitHub Actions.
type Adapter struct {
	token    string
	baseURL  string
	workflow string
	limit    int
	client   *http.Client
}

var _ provider.RunProvider = (*Adapter)(nil)

// NewAdapter creates a GitHub Actions adapter.
// baseURL is used for testing; pass empty string to use the real GitHub API.
// workflow optionally names a workflow file (e.g. "deploy.yml") to restrict
// the listing to; pass empty string to list runs across all workflows.
// limit controls how many runs are fetched; must be >= 1.
func NewAdapter(token, baseURL, workflow string, limit int) *Adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		token:    token,
		baseURL:  baseURL,
		workflow: workflow,
		limit:    limit,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// ListRuns returns the most recent workflow runs for the repository,
// newest first.
func (a *Adapter) ListRuns(ctx context.Context, repo deploy.Repository) ([]deploy.Run, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/runs?per_page=%d", a.baseURL, repo.Owner, repo.Name, a.limit)
	if a.workflow != "" {
		url = fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/runs?per_page=%d",
			a.baseURL, repo.Owner, repo.Name, a.workflow, a.limit)
	}
	var result struct {
		WorkflowRuns []workflowRun `json:"workflow_runs"`
	}
	if err := a.get(ctx, url, &result); err != nil {
		return nil, err
	}
	runs := make([]deploy.Run, len(result.WorkflowRuns))
	for i, raw := range result.WorkflowRuns {
		runs[i] = raw.toRun()
	}
	return runs, nil
}

func (a *Adapter) get(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("github API error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// workflowRun is the raw GitHub API response shape for a workflow run.
type workflowRun struct {
	ID         int64 `json:"id"`
	RunNumber  int   `json:"run_number"`
	HeadCommit struct {
		Message string `json:"message"`
	} `json:"head_commit"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HTMLURL    string `json:"html_url"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (r workflowRun) toRun() deploy.Run {
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	updated, _ := time.Parse(time.RFC3339, r.UpdatedAt)
	return deploy.Run{
		ID:            strconv.FormatInt(r.ID, 10),
		Status:        normalizeStatus(r.Status),
		Conclusion:    deploy.Conclusion(r.Conclusion),
		RunNumber:     r.RunNumber,
		CreatedAt:     created,
		UpdatedAt:     updated,
		CommitMessage: r.HeadCommit.Message,
		HTMLURL:       r.HTMLURL,
	}
}

// normalizeStatus folds GitHub's pre-execution statuses (waiting, pending,
// requested) into queued so the status enum stays three-valued.
func normalizeStatus(status string) deploy.Status {
	switch status {
	case "completed":
		return deploy.StatusCompleted
	case "in_progress":
		return deploy.StatusInProgress
	default:
		return deploy.StatusQueued
	}
}
