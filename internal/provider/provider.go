package provider

import (
	"context"

	"shipwatch/internal/deploy"
)

// RunProvider is the port every deploy-status backend implements. Adapters
// return runs ordered most recent first; callers never re-sort.
type RunProvider interface {
	ListRuns(ctx context.Context, repo deploy.Repository) ([]deploy.Run, error)
}
