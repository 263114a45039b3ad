package deploy

import (
	"strings"
	"time"
)

// Status represents the execution phase of a deploy run.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Conclusion represents the terminal outcome of a completed run. It is
// empty while a run is queued or in progress.
type Conclusion string

const (
	ConclusionSuccess   Conclusion = "success"
	ConclusionFailure   Conclusion = "failure"
	ConclusionCancelled Conclusion = "cancelled"
)

// Run represents a single execution of the deploy pipeline. The JSON tags
// double as the on-disk cache format.
type Run struct {
	ID            string     `json:"id"`
	Status        Status     `json:"status"`
	Conclusion    Conclusion `json:"conclusion,omitempty"`
	RunNumber     int        `json:"run_number"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CommitMessage string     `json:"commit_message,omitempty"`
	HTMLURL       string     `json:"html_url,omitempty"`
}

// Active reports whether the run is still executing.
func (r Run) Active() bool {
	return r.Status == StatusQueued || r.Status == StatusInProgress
}

// Subject returns the first line of the commit message.
func (r Run) Subject() string {
	if i := strings.Index(r.CommitMessage, "\n"); i >= 0 {
		return strings.TrimSpace(r.CommitMessage[:i])
	}
	return strings.TrimSpace(r.CommitMessage)
}

// Repository identifies the repository whose deploy pipeline is watched.
type Repository struct {
	Owner     string
	Name      string
	RemoteURL string
}

// Slug returns the repository in owner/name form.
func (r Repository) Slug() string {
	return r.Owner + "/" + r.Name
}
