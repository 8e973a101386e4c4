package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for zendev resources.
	uriScheme = "zendev://"

	// historyLimit bounds how many entries a resource read returns.
	historyLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent check pipeline runs, most recent first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "releases",
		Name:        "releases",
		Description: "Recent releases, most recent first",
		MIMEType:    "application/json",
	}, s.handleReleasesResource)
}

// handleRunsResource returns recent check runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return emptyListResult(req.Params.URI), nil
	}

	runs, err := s.ports.History.Runs(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type runInfo struct {
		ID        string    `json:"id"`
		StartedAt time.Time `json:"started_at"`
		Duration  string    `json:"duration"`
		Failed    bool      `json:"failed"`
		Warnings  int       `json:"warnings"`
		Steps     []string  `json:"steps"`
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		run := &runs[i]
		steps := make([]string, len(run.Results))
		for j := range run.Results {
			steps[j] = run.Results[j].StepID + ":" + run.Results[j].Status.String()
		}
		infos[i] = runInfo{
			ID:        run.ID,
			StartedAt: run.StartedAt,
			Duration:  run.Duration().String(),
			Failed:    run.Failed,
			Warnings:  run.Warnings(),
			Steps:     steps,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleReleasesResource returns recent releases.
func (s *Server) handleReleasesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return emptyListResult(req.Params.URI), nil
	}

	releases, err := s.ports.History.Releases(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	type releaseInfo struct {
		ID        string    `json:"id"`
		Previous  string    `json:"previous"`
		Version   string    `json:"version"`
		Tag       string    `json:"tag"`
		Commit    string    `json:"commit"`
		Published bool      `json:"published"`
		URL       string    `json:"url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	infos := make([]releaseInfo, len(releases))
	for i := range releases {
		release := &releases[i]
		infos[i] = releaseInfo{
			ID:        release.ID,
			Previous:  release.PreviousVersion.String(),
			Version:   release.Version.String(),
			Tag:       release.Tag,
			Commit:    release.CommitHash,
			Published: release.Published,
			URL:       release.URL,
			CreatedAt: release.CreatedAt,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// jsonResult marshals v and wraps it in a resource read result.
func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// emptyListResult is returned when no history backend is configured.
func emptyListResult(uri string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     "[]",
		}},
	}
}
