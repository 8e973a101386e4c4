// Package github implements the driven.ReleasePublisher port against the
// GitHub releases API using go-github.
package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Publisher implements the interface.
var _ driven.ReleasePublisher = (*Publisher)(nil)

// Publisher creates GitHub releases for tagged versions.
type Publisher struct {
	gh       *gh.Client
	settings domain.ForgeSettings
}

// NewPublisher creates a release publisher for the configured repository.
// The client authenticates with the settings token.
func NewPublisher(ctx context.Context, settings domain.ForgeSettings) *Publisher {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: settings.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Publisher{
		gh:       gh.NewClient(tc),
		settings: settings,
	}
}

// Publish creates the GitHub release for an existing tag and returns its URL.
func (p *Publisher) Publish(ctx context.Context, release *domain.Release, notes string) (string, error) {
	if !p.settings.IsConfigured() || p.settings.Token == "" {
		return "", fmt.Errorf("%w: forge owner, repo and token must be set", domain.ErrPublishUnavailable)
	}

	logger.Debug("publishing release %s to %s/%s", release.Tag, p.settings.Owner, p.settings.Repo)

	body := notes
	if body == "" {
		body = fmt.Sprintf("Release %s", release.Version.String())
	}

	ghRelease := &gh.RepositoryRelease{
		TagName: gh.Ptr(release.Tag),
		Name:    gh.Ptr(release.Tag),
		Body:    gh.Ptr(body),
	}

	created, _, err := p.gh.Repositories.CreateRelease(ctx, p.settings.Owner, p.settings.Repo, ghRelease)
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) {
			return "", fmt.Errorf("creating release %s: %s (HTTP %d)",
				release.Tag, ghErr.Message, ghErr.Response.StatusCode)
		}
		return "", fmt.Errorf("creating release %s: %w", release.Tag, err)
	}

	return created.GetHTMLURL(), nil
}
