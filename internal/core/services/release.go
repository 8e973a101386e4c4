package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
	"github.com/zenith-framework/zendev/internal/logger"
)

// Ensure ReleaseService implements the interface.
var _ driving.ReleaseService = (*ReleaseService)(nil)

// ReleaseService creates release commits, tags, and forge releases.
type ReleaseService struct {
	vcs       driven.VCS
	publisher driven.ReleasePublisher // optional
	history   driven.HistoryStore
}

// NewReleaseService creates a new release service.
// The publisher is optional - if nil, releases are tagged locally only.
func NewReleaseService(
	vcs driven.VCS,
	publisher driven.ReleasePublisher,
	history driven.HistoryStore,
) *ReleaseService {
	return &ReleaseService{
		vcs:       vcs,
		publisher: publisher,
		history:   history,
	}
}

// Release commits the version bump, tags it, and applies the requested
// side effects.
func (s *ReleaseService) Release(
	ctx context.Context,
	plan *driving.BumpPlan,
	opts driving.ReleaseOptions,
) (*domain.Release, error) {
	if plan == nil {
		return nil, domain.ErrInvalidInput
	}

	release := &domain.Release{
		ID:              uuid.NewString(),
		PreviousVersion: plan.Current,
		Version:         plan.Next,
		Tag:             plan.Next.TagName(),
		CreatedAt:       time.Now().UTC(),
	}

	// Check the tag before any side effect.
	exists, err := s.vcs.TagExists(ctx, release.Tag)
	if err != nil {
		return nil, fmt.Errorf("check tag: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrTagExists, release.Tag)
	}

	paths := make([]string, 0, len(plan.Sources))
	for _, src := range plan.Sources {
		paths = append(paths, src.Path)
	}

	hash, err := s.vcs.Commit(ctx, release.CommitMessage(), paths)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	release.CommitHash = hash
	logger.Info("Created release commit %s", hash)

	if err := s.vcs.Tag(ctx, release.Tag, "Release "+release.Version.String()); err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	logger.Info("Tagged %s", release.Tag)

	if opts.Push {
		if err := s.vcs.Push(ctx, "origin", "HEAD", release.Tag); err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
		logger.Info("Pushed commit and tag")
	}

	if opts.Publish {
		if s.publisher == nil {
			return nil, domain.ErrPublishUnavailable
		}
		url, err := s.publisher.Publish(ctx, release, opts.Notes)
		if err != nil {
			// The local tag stands; record it before reporting the
			// publish failure.
			s.record(ctx, release)
			return release, fmt.Errorf("publish: %w", err)
		}
		release.Published = true
		release.URL = url
		logger.Info("Published %s", url)
	}

	s.record(ctx, release)
	return release, nil
}

// record saves the release to history, best effort.
func (s *ReleaseService) record(ctx context.Context, release *domain.Release) {
	if err := s.history.SaveRelease(ctx, release); err != nil {
		logger.Warn("Failed to record release: %v", err)
	}
}
