// Package memory provides in-memory implementations of driven ports,
// used in tests and when no database is available.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu       sync.RWMutex
	runs     map[string]domain.RunReport
	releases map[string]domain.Release
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		runs:     make(map[string]domain.RunReport),
		releases: make(map[string]domain.Release),
	}
}

// SaveRun stores or updates a run report.
func (s *HistoryStore) SaveRun(_ context.Context, report *domain.RunReport) error {
	if report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[report.ID] = *report
	return nil
}

// GetRun retrieves a run report by ID.
func (s *HistoryStore) GetRun(_ context.Context, id string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &report, nil
}

// ListRuns returns recent runs, most recent first.
func (s *HistoryStore) ListRuns(_ context.Context, limit int) ([]domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]domain.RunReport, 0, len(s.runs))
	for _, report := range s.runs {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// SaveRelease stores or updates a release record.
func (s *HistoryStore) SaveRelease(_ context.Context, release *domain.Release) error {
	if release.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases[release.ID] = *release
	return nil
}

// ListReleases returns recent releases, most recent first.
func (s *HistoryStore) ListReleases(_ context.Context, limit int) ([]domain.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	releases := make([]domain.Release, 0, len(s.releases))
	for _, release := range s.releases {
		releases = append(releases, release)
	}
	sort.Slice(releases, func(i, j int) bool {
		return releases[i].CreatedAt.After(releases[j].CreatedAt)
	})
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}
	return releases, nil
}

// Prune keeps the most recent 'keep' runs and releases.
func (s *HistoryStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		return err
	}
	releases, err := s.ListReleases(ctx, 0)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, run := range runs {
		if i >= keep {
			delete(s.runs, run.ID)
		}
	}
	for i, release := range releases {
		if i >= keep {
			delete(s.releases, release.ID)
		}
	}
	return nil
}
