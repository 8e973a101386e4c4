package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-framework/zendev/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestHandleRunsResource(t *testing.T) {
	history := &mockHistoryService{
		runs: []domain.RunReport{
			{
				ID:        "run-1",
				StartedAt: time.Now().UTC(),
				EndedAt:   time.Now().UTC().Add(5 * time.Second),
				Results: []domain.StepResult{
					{StepID: "test", Status: domain.StepPassed},
				},
			},
		},
	}
	server := newTestServer(t, &Ports{
		Bump:    &mockBumpService{},
		Check:   &mockCheckOrchestrator{},
		History: history,
	})

	result, err := server.handleRunsResource(context.Background(), readRequest("zendev://runs"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "run-1")
	assert.Contains(t, result.Contents[0].Text, "test:passed")
}

func TestHandleRunsResource_NoHistory(t *testing.T) {
	server := newTestServer(t, &Ports{
		Bump:  &mockBumpService{},
		Check: &mockCheckOrchestrator{},
	})

	result, err := server.handleRunsResource(context.Background(), readRequest("zendev://runs"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "[]", result.Contents[0].Text)
}

func TestHandleReleasesResource(t *testing.T) {
	history := &mockHistoryService{
		releases: []domain.Release{
			{
				ID:              "rel-1",
				PreviousVersion: domain.Version{Major: 1, Minor: 2, Patch: 3},
				Version:         domain.Version{Major: 1, Minor: 3, Patch: 0},
				Tag:             "v1.3.0",
				CommitHash:      "abcdef1234567890",
				Published:       true,
				URL:             "https://github.com/zenith-framework/zenith/releases/tag/v1.3.0",
				CreatedAt:       time.Now().UTC(),
			},
		},
	}
	server := newTestServer(t, &Ports{
		Bump:    &mockBumpService{},
		Check:   &mockCheckOrchestrator{},
		History: history,
	})

	result, err := server.handleReleasesResource(context.Background(), readRequest("zendev://releases"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "v1.3.0")
	assert.Contains(t, result.Contents[0].Text, "1.2.3")
}
