package driving

import "github.com/zenith-framework/zendev/internal/core/domain"

// SettingsService manages tool settings.
type SettingsService interface {
	// Get retrieves current settings.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// SetForge configures release publishing.
	SetForge(owner, repo, token string) error

	// SetHistoryLimit updates the history retention limit.
	SetHistoryLimit(limit int) error

	// Validate checks that current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
