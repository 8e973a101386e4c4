package driven

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

// HistoryStore persists check runs and releases.
type HistoryStore interface {
	// SaveRun stores a completed run report with its step results.
	SaveRun(ctx context.Context, report *domain.RunReport) error

	// GetRun retrieves a run report by ID.
	GetRun(ctx context.Context, id string) (*domain.RunReport, error)

	// ListRuns returns recent run reports, most recent first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunReport, error)

	// SaveRelease stores a release record.
	SaveRelease(ctx context.Context, release *domain.Release) error

	// ListReleases returns recent releases, most recent first.
	ListReleases(ctx context.Context, limit int) ([]domain.Release, error)

	// Prune removes old entries beyond the retention limit.
	// Keeps the most recent 'keep' entries per kind.
	Prune(ctx context.Context, keep int) error
}
