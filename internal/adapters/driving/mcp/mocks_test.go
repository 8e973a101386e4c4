package mcp

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

type mockBumpService struct {
	current    domain.Version
	currentErr error
	planErr    error
}

func (m *mockBumpService) Current(_ context.Context) (domain.Version, error) {
	return m.current, m.currentErr
}

func (m *mockBumpService) Plan(_ context.Context, req driving.BumpRequest) (*driving.BumpPlan, error) {
	if m.planErr != nil {
		return nil, m.planErr
	}
	next := m.current.Bump(req.Part)
	if req.Part == domain.BumpExplicit {
		next = req.Explicit
	}
	return &driving.BumpPlan{
		Current: m.current,
		Next:    next,
		Sources: []domain.VersionSource{{Path: "pyproject.toml", Kind: domain.VersionSourcePyproject}},
	}, nil
}

func (m *mockBumpService) Apply(ctx context.Context, req driving.BumpRequest) (*driving.BumpPlan, error) {
	return m.Plan(ctx, req)
}

type mockCheckOrchestrator struct {
	report *domain.RunReport
	runErr error
	runs   []driving.CheckOptions
}

func (m *mockCheckOrchestrator) Run(_ context.Context, opts driving.CheckOptions) (*domain.RunReport, error) {
	m.runs = append(m.runs, opts)
	return m.report, m.runErr
}

func (m *mockCheckOrchestrator) Status(_ context.Context) (*driving.CheckStatus, error) {
	return &driving.CheckStatus{}, nil
}

func (m *mockCheckOrchestrator) Watch(
	ctx context.Context,
	_ driving.CheckOptions,
	_ func(*domain.RunReport),
) error {
	<-ctx.Done()
	return ctx.Err()
}

type mockHistoryService struct {
	runs     []domain.RunReport
	releases []domain.Release
}

func (m *mockHistoryService) Runs(_ context.Context, _ int) ([]domain.RunReport, error) {
	return m.runs, nil
}

func (m *mockHistoryService) Releases(_ context.Context, _ int) ([]domain.Release, error) {
	return m.releases, nil
}
