package services

import (
	"context"
	"fmt"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
	"github.com/zenith-framework/zendev/internal/logger"
)

// Ensure BumpService implements the interface.
var _ driving.BumpService = (*BumpService)(nil)

// BumpService manages the project version across its version sources.
type BumpService struct {
	versionStore driven.VersionSourceStore
	vcs          driven.VCS
	settings     driving.SettingsService
}

// NewBumpService creates a new bump service.
func NewBumpService(
	versionStore driven.VersionSourceStore,
	vcs driven.VCS,
	settings driving.SettingsService,
) *BumpService {
	return &BumpService{
		versionStore: versionStore,
		vcs:          vcs,
		settings:     settings,
	}
}

// Current returns the project's current version, read from the first
// configured version source.
func (s *BumpService) Current(ctx context.Context) (domain.Version, error) {
	sources, err := s.sources()
	if err != nil {
		return domain.Version{}, err
	}

	return s.versionStore.Read(ctx, sources[0])
}

// Plan computes the bump without side effects.
func (s *BumpService) Plan(ctx context.Context, req driving.BumpRequest) (*driving.BumpPlan, error) {
	if !req.Part.IsValid() {
		return nil, fmt.Errorf("%w: bump part %q", domain.ErrInvalidInput, req.Part)
	}

	sources, err := s.sources()
	if err != nil {
		return nil, err
	}

	current, err := s.versionStore.Read(ctx, sources[0])
	if err != nil {
		return nil, fmt.Errorf("read current version: %w", err)
	}

	// All sources must agree before a bump; a drifted file would be
	// silently overwritten otherwise.
	for _, src := range sources[1:] {
		v, err := s.versionStore.Read(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.Path, err)
		}
		if v != current {
			return nil, fmt.Errorf("%w: %s has %s but %s has %s",
				domain.ErrInvalidInput, sources[0].Path, current, src.Path, v)
		}
	}

	next := current.Bump(req.Part)
	if req.Part == domain.BumpExplicit {
		next = req.Explicit
		if !req.Force && !next.GreaterThan(current) {
			return nil, fmt.Errorf("%w: %s <= %s", domain.ErrVersionNotGreater, next, current)
		}
	}

	return &driving.BumpPlan{
		Current: current,
		Next:    next,
		Sources: sources,
	}, nil
}

// Apply rewrites all version sources according to the plan.
func (s *BumpService) Apply(ctx context.Context, req driving.BumpRequest) (*driving.BumpPlan, error) {
	plan, err := s.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	status, err := s.vcs.Status(ctx)
	if err != nil {
		return nil, err
	}
	if status.Dirty && !req.AllowDirty {
		return nil, fmt.Errorf("%w: %d file(s) changed", domain.ErrDirtyWorkTree, len(status.ChangedFiles))
	}

	logger.Info("Bumping version %s -> %s", plan.Current, plan.Next)

	for i, src := range plan.Sources {
		if err := s.versionStore.Write(ctx, src, plan.Next); err != nil {
			// Roll back files already rewritten so a partial bump
			// never reaches the repository.
			for j := range i {
				if rbErr := s.versionStore.Write(ctx, plan.Sources[j], plan.Current); rbErr != nil {
					logger.Warn("Rollback of %s failed: %v", plan.Sources[j].Path, rbErr)
				}
			}
			return nil, fmt.Errorf("write %s: %w", src.Path, err)
		}
		logger.Debug("Rewrote %s", src.Path)
	}

	return plan, nil
}

// sources returns the configured version sources.
func (s *BumpService) sources() ([]domain.VersionSource, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if len(settings.VersionSources) == 0 {
		return nil, fmt.Errorf("%w: no version sources configured", domain.ErrInvalidInput)
	}
	return settings.VersionSources, nil
}
