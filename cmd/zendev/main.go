// Command zendev is the development workflow tool for the Zenith project.
//
// It wires the driven adapters (config, version files, git, command
// runner, history storage, file watcher, forge publisher) into the core
// services and hands them to the cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zenith-framework/zendev/internal/adapters/driven/config/file"
	"github.com/zenith-framework/zendev/internal/adapters/driven/forge/github"
	"github.com/zenith-framework/zendev/internal/adapters/driven/runner"
	"github.com/zenith-framework/zendev/internal/adapters/driven/storage/memory"
	"github.com/zenith-framework/zendev/internal/adapters/driven/storage/sqlite"
	"github.com/zenith-framework/zendev/internal/adapters/driven/vcs/git"
	"github.com/zenith-framework/zendev/internal/adapters/driven/versionfile"
	"github.com/zenith-framework/zendev/internal/adapters/driven/watch"
	"github.com/zenith-framework/zendev/internal/adapters/driving/cli"
	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/core/services"
	"github.com/zenith-framework/zendev/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ZENDEV_CONFIG_DIR overrides ~/.zendev for tests and sandboxes.
	configStore, err := file.NewConfigStore(os.Getenv("ZENDEV_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	projectRoot := settings.ProjectRoot
	if projectRoot == "" {
		projectRoot = "."
	}

	historyStore := openHistoryStore()
	if closer, ok := historyStore.(interface{ Close() error }); ok {
		defer closer.Close() //nolint:errcheck
	}

	watcher, err := watch.NewWatcher()
	if err != nil {
		logger.Warn("file watching unavailable: %v", err)
		watcher = nil
	}

	var publisher driven.ReleasePublisher
	forge := settings.Forge
	if forge.Token == "" {
		forge.Token = os.Getenv("GITHUB_TOKEN")
	}
	if forge.IsConfigured() {
		publisher = github.NewPublisher(ctx, forge)
	}

	versionStore := versionfile.NewStore(projectRoot)
	vcs := git.New(projectRoot)
	commandRunner := runner.New()

	bumpService := services.NewBumpService(versionStore, vcs, settingsService)
	checkOrchestrator := services.NewCheckOrchestrator(commandRunner, historyStore, settingsService, watcherOrNil(watcher))
	releaseService := services.NewReleaseService(vcs, publisher, historyStore)
	historyService := services.NewHistoryService(historyStore)

	cli.SetServices(cli.Services{
		Bump:     bumpService,
		Check:    checkOrchestrator,
		Release:  releaseService,
		History:  historyService,
		Settings: settingsService,
	})

	return cli.ExecuteContext(ctx)
}

// openHistoryStore opens the SQLite history database, falling back to an
// in-memory store when the database cannot be opened.
func openHistoryStore() driven.HistoryStore {
	store, err := sqlite.NewStore(os.Getenv("ZENDEV_DATA_DIR"))
	if err != nil {
		logger.Warn("history database unavailable, keeping history in memory: %v", err)
		return memory.NewHistoryStore()
	}
	return store
}

// watcherOrNil avoids storing a typed nil in the orchestrator's
// watcher interface.
func watcherOrNil(w *watch.Watcher) driven.Watcher {
	if w == nil {
		return nil
	}
	return w
}
