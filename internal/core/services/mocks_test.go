package services

import (
	"context"
	"sync"

	"github.com/zenith-framework/zendev/internal/core/domain"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
)

// --- Shared mock implementations of driven ports ---

// mockVersionStore implements driven.VersionSourceStore backed by a map.
type mockVersionStore struct {
	mu       sync.Mutex
	versions map[string]domain.Version
	writeErr map[string]error
	writes   []string
}

func newMockVersionStore() *mockVersionStore {
	return &mockVersionStore{
		versions: make(map[string]domain.Version),
		writeErr: make(map[string]error),
	}
}

func (m *mockVersionStore) Read(_ context.Context, source domain.VersionSource) (domain.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.versions[source.Path]
	if !ok {
		return domain.Version{}, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockVersionStore) Write(_ context.Context, source domain.VersionSource, v domain.Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr[source.Path]; err != nil {
		return err
	}
	m.versions[source.Path] = v
	m.writes = append(m.writes, source.Path)
	return nil
}

// mockVCS implements driven.VCS with canned responses.
type mockVCS struct {
	status      domain.WorkTreeStatus
	statusErr   error
	commitHash  string
	commitErr   error
	tagErr      error
	tagExists   bool
	pushErr     error
	committed   []string
	tagged      []string
	pushedRefs  []string
	commitPaths []string
}

func (m *mockVCS) Status(_ context.Context) (*domain.WorkTreeStatus, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	status := m.status
	return &status, nil
}

func (m *mockVCS) Commit(_ context.Context, message string, paths []string) (string, error) {
	if m.commitErr != nil {
		return "", m.commitErr
	}
	m.committed = append(m.committed, message)
	m.commitPaths = paths
	if m.commitHash == "" {
		return "deadbeef", nil
	}
	return m.commitHash, nil
}

func (m *mockVCS) Tag(_ context.Context, name, _ string) error {
	if m.tagErr != nil {
		return m.tagErr
	}
	m.tagged = append(m.tagged, name)
	return nil
}

func (m *mockVCS) TagExists(_ context.Context, _ string) (bool, error) {
	return m.tagExists, nil
}

func (m *mockVCS) Push(_ context.Context, _ string, refs ...string) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.pushedRefs = append(m.pushedRefs, refs...)
	return nil
}

// mockSettings implements driving.SettingsService returning fixed settings.
type mockSettings struct {
	settings domain.AppSettings
	getErr   error
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings()}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	settings := m.settings
	return &settings, nil
}

func (m *mockSettings) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettings) SetForge(owner, repo, token string) error {
	m.settings.Forge = domain.ForgeSettings{Owner: owner, Repo: repo, Token: token}
	return nil
}

func (m *mockSettings) SetHistoryLimit(limit int) error {
	m.settings.HistoryLimit = limit
	return nil
}

func (m *mockSettings) Validate() error { return nil }

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// mockRunner implements driven.CommandRunner with per-command exit codes.
type mockRunner struct {
	mu       sync.Mutex
	exits    map[string]int
	runErr   map[string]error
	commands []string
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		exits:  make(map[string]int),
		runErr: make(map[string]error),
	}
}

func (m *mockRunner) Run(_ context.Context, _, command string, _ ...string) (*driven.CommandResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, command)
	if err := m.runErr[command]; err != nil {
		return nil, err
	}
	return &driven.CommandResult{
		ExitCode: m.exits[command],
		Output:   command + " output",
	}, nil
}

// mockPublisher implements driven.ReleasePublisher.
type mockPublisher struct {
	url        string
	publishErr error
	published  []*domain.Release
}

func (m *mockPublisher) Publish(_ context.Context, release *domain.Release, _ string) (string, error) {
	if m.publishErr != nil {
		return "", m.publishErr
	}
	m.published = append(m.published, release)
	return m.url, nil
}

// mockWatcher implements driven.Watcher delivering scripted events.
type mockWatcher struct {
	events chan string
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{events: make(chan string, 16)}
}

func (m *mockWatcher) Watch(ctx context.Context, _ []string) (<-chan string, error) {
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-m.events:
				if !ok {
					return
				}
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (m *mockWatcher) Close() error {
	close(m.events)
	return nil
}
