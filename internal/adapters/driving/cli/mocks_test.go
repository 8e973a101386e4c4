package cli

import (
	"context"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// --- Mock driving services for command tests ---

type mockBumpService struct {
	current    domain.Version
	currentErr error
	plan       *driving.BumpPlan
	planErr    error
	applyErr   error
	applied    []driving.BumpRequest
}

func (m *mockBumpService) Current(_ context.Context) (domain.Version, error) {
	return m.current, m.currentErr
}

func (m *mockBumpService) Plan(_ context.Context, req driving.BumpRequest) (*driving.BumpPlan, error) {
	if m.planErr != nil {
		return nil, m.planErr
	}
	if m.plan != nil {
		return m.plan, nil
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
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	m.applied = append(m.applied, req)
	return m.Plan(ctx, req)
}

type mockReleaseService struct {
	release    *domain.Release
	releaseErr error
	calls      []driving.ReleaseOptions
}

func (m *mockReleaseService) Release(
	_ context.Context,
	plan *driving.BumpPlan,
	opts driving.ReleaseOptions,
) (*domain.Release, error) {
	if m.releaseErr != nil {
		return nil, m.releaseErr
	}
	m.calls = append(m.calls, opts)
	if m.release != nil {
		return m.release, nil
	}
	return &domain.Release{
		PreviousVersion: plan.Current,
		Version:         plan.Next,
		Tag:             plan.Next.TagName(),
		CommitHash:      "abcdef1234567890",
	}, nil
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
	opts driving.CheckOptions,
	onReport func(*domain.RunReport),
) error {
	m.runs = append(m.runs, opts)
	if onReport != nil && m.report != nil {
		onReport(m.report)
	}
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

type mockSettingsService struct {
	settings domain.AppSettings
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	settings := m.settings
	return &settings, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetForge(owner, repo, token string) error {
	m.settings.Forge = domain.ForgeSettings{Owner: owner, Repo: repo, Token: token}
	return nil
}

func (m *mockSettingsService) SetHistoryLimit(limit int) error {
	m.settings.HistoryLimit = limit
	return nil
}

func (m *mockSettingsService) Validate() error { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// resetServices restores the injected services after a test.
func resetServices() {
	SetServices(Services{})
}
