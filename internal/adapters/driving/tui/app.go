package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/messages"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/styles"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/views/bump"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/views/check"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/views/history"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/views/menu"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// bumpView is the version bump workflow view.
	bumpView *bump.View

	// checkView is the check pipeline view.
	checkView *check.View

	// historyView is the run and release history view.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		bumpView:    bump.NewView(s, ports.Bump, ports.Release),
		checkView:   check.NewView(s, ports.Check),
		historyView: history.NewView(s, ports.History),
		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("zendev - Zenith Toolbelt"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.bumpView.SetDimensions(msg.Width, msg.Height)
		a.checkView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewBump:
			a.bumpView, cmd = a.bumpView.Update(msg)
			a.err = a.bumpView.Err()
			return a, cmd

		case messages.ViewCheck:
			a.checkView, cmd = a.checkView.Update(msg)
			a.err = a.checkView.Err()
			return a, cmd

		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
			a.err = a.historyView.Err()
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewBump:
			a.bumpView.Reset()
			return a, a.bumpView.Init()
		case messages.ViewCheck:
			a.checkView.Reset()
			return a, a.checkView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewBump:
		a.bumpView, cmd = a.bumpView.Update(msg)
	case messages.ViewCheck:
		a.checkView, cmd = a.checkView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewBump:
		return a.bumpView.View()
	case messages.ViewCheck:
		return a.checkView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Bump Version:
  j/k, ↑/↓    Select part (patch, minor, major)
  enter       Apply, commit and tag
  a           Apply without committing

Run Checks:
  enter, r    Run the pipeline
  b           Toggle benchmarks

History:
  tab         Switch between runs and releases
  r           Reload

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.bumpView.SetDimensions(width, height)
	a.checkView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
