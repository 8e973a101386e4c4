package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// CurrentVersionInput is the input schema for the current_version tool.
type CurrentVersionInput struct{}

// CurrentVersionOutput is the output schema for the current_version tool.
type CurrentVersionOutput struct {
	Version string `json:"version"`
	Tag     string `json:"tag"`
}

// PlanBumpInput is the input schema for the plan_bump tool.
type PlanBumpInput struct {
	Part string `json:"part" jsonschema:"which version part to bump: patch, minor, major, or an explicit X.Y.Z version"`
}

// PlanBumpOutput is the output schema for the plan_bump tool.
type PlanBumpOutput struct {
	Current string   `json:"current"`
	Next    string   `json:"next"`
	Tag     string   `json:"tag"`
	Sources []string `json:"sources"`
}

// RunChecksInput is the input schema for the run_checks tool.
type RunChecksInput struct {
	Bench bool     `json:"bench,omitempty" jsonschema:"include benchmark steps in the run"`
	Only  []string `json:"only,omitempty" jsonschema:"restrict the run to the named step IDs"`
}

// RunChecksOutput is the output schema for the run_checks tool.
type RunChecksOutput struct {
	Passed   bool               `json:"passed"`
	Warnings int                `json:"warnings"`
	Duration string             `json:"duration"`
	Steps    []StepResultOutput `json:"steps"`
}

// StepResultOutput represents a single pipeline step result.
type StepResultOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output,omitempty"`
	Duration string `json:"duration"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current_version",
		Description: "Read the project's current version from its version sources",
	}, s.handleCurrentVersion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "bump_version",
		Description: "Compute the outcome of a version bump without touching any file",
	}, s.handlePlanBump)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_checks",
		Description: "Run the project's check pipeline (format, lint, typecheck, tests)",
	}, s.handleRunChecks)
}

// handleCurrentVersion handles the current_version tool invocation.
func (s *Server) handleCurrentVersion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CurrentVersionInput,
) (*mcp.CallToolResult, CurrentVersionOutput, error) {
	version, err := s.ports.Bump.Current(ctx)
	if err != nil {
		return nil, CurrentVersionOutput{}, err
	}

	return nil, CurrentVersionOutput{
		Version: version.String(),
		Tag:     version.TagName(),
	}, nil
}

// handlePlanBump handles the plan_bump tool invocation.
// It only computes the plan; applying a bump stays an interactive,
// human-confirmed operation.
func (s *Server) handlePlanBump(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanBumpInput,
) (*mcp.CallToolResult, PlanBumpOutput, error) {
	req := driving.BumpRequest{}
	if part, err := domain.ParseBumpPart(input.Part); err == nil {
		req.Part = part
	} else {
		explicit, parseErr := domain.ParseVersion(input.Part)
		if parseErr != nil {
			return nil, PlanBumpOutput{}, fmt.Errorf(
				"invalid part %q (expected patch, minor, major or X.Y.Z)", input.Part)
		}
		req.Part = domain.BumpExplicit
		req.Explicit = explicit
	}

	plan, err := s.ports.Bump.Plan(ctx, req)
	if err != nil {
		return nil, PlanBumpOutput{}, err
	}

	sources := make([]string, len(plan.Sources))
	for i := range plan.Sources {
		sources[i] = plan.Sources[i].Path
	}

	return nil, PlanBumpOutput{
		Current: plan.Current.String(),
		Next:    plan.Next.String(),
		Tag:     plan.Next.TagName(),
		Sources: sources,
	}, nil
}

// handleRunChecks handles the run_checks tool invocation.
func (s *Server) handleRunChecks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunChecksInput,
) (*mcp.CallToolResult, RunChecksOutput, error) {
	opts := driving.CheckOptions{Bench: input.Bench, Only: input.Only}

	report, err := s.ports.Check.Run(ctx, opts)
	if report == nil {
		// Without a report there is nothing to summarise.
		return nil, RunChecksOutput{}, err
	}

	output := RunChecksOutput{
		Passed:   !report.Failed,
		Warnings: report.Warnings(),
		Duration: report.Duration().String(),
		Steps:    make([]StepResultOutput, len(report.Results)),
	}

	for i := range report.Results {
		result := &report.Results[i]
		output.Steps[i] = StepResultOutput{
			ID:       result.StepID,
			Name:     result.Name,
			Status:   result.Status.String(),
			ExitCode: result.ExitCode,
			Output:   result.Output,
			Duration: result.Duration.String(),
		}
	}

	// A failed run is a valid result for the caller; the report says why.
	return nil, output, nil
}
