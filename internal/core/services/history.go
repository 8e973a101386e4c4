package services

import (
	"context"
	"fmt"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// defaultHistoryLimit bounds listing when the caller passes no limit.
const defaultHistoryLimit = 20

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes recorded runs and releases.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Runs returns recent check runs, most recent first.
func (s *HistoryService) Runs(ctx context.Context, limit int) ([]domain.RunReport, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Releases returns recent releases, most recent first.
func (s *HistoryService) Releases(ctx context.Context, limit int) ([]domain.Release, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	releases, err := s.store.ListReleases(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	return releases, nil
}
