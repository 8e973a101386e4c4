package services

import (
	"fmt"
	"strings"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyProjectRoot   = "project.root"
	keyVersionFiles  = "version.files"
	keyPipelineSteps = "pipeline.steps"
	keyForgeOwner    = "forge.owner"
	keyForgeRepo     = "forge.repo"
	keyForgeToken    = "forge.token"
	keyWatchPaths    = "watch.paths"
	keyWatchExts     = "watch.extensions"
	keyWatchDebounce = "watch.debounce_seconds"
	keyHistoryLimit  = "history.limit"
)

// SettingsService manages tool settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		ProjectRoot:    s.getString(keyProjectRoot, defaults.ProjectRoot),
		VersionSources: s.getVersionSources(defaults.VersionSources),
		Pipeline:       s.getPipeline(defaults.Pipeline),
		Forge: domain.ForgeSettings{
			Owner: s.configStore.GetString(keyForgeOwner),
			Repo:  s.configStore.GetString(keyForgeRepo),
			Token: s.configStore.GetString(keyForgeToken),
		},
		Watch: domain.WatchSettings{
			Paths:           s.getStringSlice(keyWatchPaths, defaults.Watch.Paths),
			Extensions:      s.getStringSlice(keyWatchExts, defaults.Watch.Extensions),
			DebounceSeconds: s.getInt(keyWatchDebounce, defaults.Watch.DebounceSeconds),
		},
		HistoryLimit: s.getInt(keyHistoryLimit, defaults.HistoryLimit),
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyProjectRoot, settings.ProjectRoot); err != nil {
		return fmt.Errorf("save project root: %w", err)
	}

	files := make([]string, 0, len(settings.VersionSources))
	for _, src := range settings.VersionSources {
		files = append(files, src.Path)
	}
	if err := s.configStore.Set(keyVersionFiles, files); err != nil {
		return fmt.Errorf("save version files: %w", err)
	}

	steps := make([]any, 0, len(settings.Pipeline))
	for _, step := range settings.Pipeline {
		steps = append(steps, map[string]any{
			"id":       step.ID,
			"name":     step.Name,
			"command":  step.Command,
			"args":     step.Args,
			"critical": step.Critical,
			"bench":    step.Bench,
		})
	}
	if err := s.configStore.Set(keyPipelineSteps, steps); err != nil {
		return fmt.Errorf("save pipeline: %w", err)
	}

	if err := s.configStore.Set(keyForgeOwner, settings.Forge.Owner); err != nil {
		return fmt.Errorf("save forge owner: %w", err)
	}
	if err := s.configStore.Set(keyForgeRepo, settings.Forge.Repo); err != nil {
		return fmt.Errorf("save forge repo: %w", err)
	}
	if settings.Forge.Token != "" {
		if err := s.configStore.Set(keyForgeToken, settings.Forge.Token); err != nil {
			return fmt.Errorf("save forge token: %w", err)
		}
	}

	if err := s.configStore.Set(keyWatchPaths, settings.Watch.Paths); err != nil {
		return fmt.Errorf("save watch paths: %w", err)
	}
	if err := s.configStore.Set(keyWatchExts, settings.Watch.Extensions); err != nil {
		return fmt.Errorf("save watch extensions: %w", err)
	}
	if err := s.configStore.Set(keyWatchDebounce, settings.Watch.DebounceSeconds); err != nil {
		return fmt.Errorf("save watch debounce: %w", err)
	}

	if err := s.configStore.Set(keyHistoryLimit, settings.HistoryLimit); err != nil {
		return fmt.Errorf("save history limit: %w", err)
	}

	return nil
}

// SetForge configures release publishing.
func (s *SettingsService) SetForge(owner, repo, token string) error {
	if owner == "" || repo == "" {
		return fmt.Errorf("%w: owner and repo are required", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyForgeOwner, owner); err != nil {
		return fmt.Errorf("save forge owner: %w", err)
	}
	if err := s.configStore.Set(keyForgeRepo, repo); err != nil {
		return fmt.Errorf("save forge repo: %w", err)
	}
	if token != "" {
		if err := s.configStore.Set(keyForgeToken, token); err != nil {
			return fmt.Errorf("save forge token: %w", err)
		}
	}
	return nil
}

// SetHistoryLimit updates the history retention limit.
func (s *SettingsService) SetHistoryLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: history limit must be positive", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyHistoryLimit, limit)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if len(settings.VersionSources) == 0 {
		return fmt.Errorf("%w: no version sources configured", domain.ErrInvalidInput)
	}
	for _, src := range settings.VersionSources {
		if !src.Kind.IsValid() {
			return fmt.Errorf("%w: version source %s has unknown kind %q",
				domain.ErrInvalidInput, src.Path, src.Kind)
		}
	}

	if len(settings.Pipeline) == 0 {
		return domain.ErrNoSteps
	}
	seen := make(map[string]bool, len(settings.Pipeline))
	for _, step := range settings.Pipeline {
		if step.ID == "" || step.Command == "" {
			return fmt.Errorf("%w: pipeline step missing id or command", domain.ErrInvalidInput)
		}
		if seen[step.ID] {
			return fmt.Errorf("%w: duplicate pipeline step %q", domain.ErrInvalidInput, step.ID)
		}
		seen[step.ID] = true
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper functions for typed retrieval with fallbacks.

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return fallback
}

func (s *SettingsService) getStringSlice(key string, fallback []string) []string {
	if v := s.configStore.GetStringSlice(key); v != nil {
		return v
	}
	return fallback
}

// getVersionSources reads the configured version files. The source kind
// is inferred from the file name: pyproject.toml uses the TOML strategy,
// everything else is treated as a plain version file.
func (s *SettingsService) getVersionSources(fallback []domain.VersionSource) []domain.VersionSource {
	files := s.configStore.GetStringSlice(keyVersionFiles)
	if files == nil {
		return fallback
	}

	sources := make([]domain.VersionSource, 0, len(files))
	for _, path := range files {
		sources = append(sources, domain.VersionSource{
			Path: path,
			Kind: inferSourceKind(path),
		})
	}
	return sources
}

// getPipeline decodes pipeline steps from the config store.
// Steps are stored as an array of tables; TOML arrays surface as []any.
func (s *SettingsService) getPipeline(fallback []domain.Step) []domain.Step {
	raw, ok := s.configStore.Get(keyPipelineSteps)
	if !ok {
		return fallback
	}

	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return fallback
	}

	var steps []domain.Step //nolint:prealloc // malformed entries are skipped
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		step := domain.Step{
			ID:       stringValue(m["id"]),
			Name:     stringValue(m["name"]),
			Command:  stringValue(m["command"]),
			Args:     stringSliceValue(m["args"]),
			Critical: boolValue(m["critical"]),
			Bench:    boolValue(m["bench"]),
		}
		if step.Name == "" {
			step.Name = step.ID
		}
		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return fallback
	}
	return steps
}

func inferSourceKind(path string) domain.VersionSourceKind {
	if strings.HasSuffix(path, "pyproject.toml") {
		return domain.VersionSourcePyproject
	}
	return domain.VersionSourcePlain
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func stringSliceValue(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
