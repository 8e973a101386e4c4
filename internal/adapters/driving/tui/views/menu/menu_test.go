package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/messages"
	"github.com/zenith-framework/zendev/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()

	view := NewView(s)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 5)
	assert.Equal(t, 0, view.selected)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	// Should create default styles
	assert.NotNil(t, view.styles)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	msg := tea.WindowSizeMsg{Width: 100, Height: 50}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(down)
	assert.Equal(t, 1, view.selected)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(down)
	view.Update(down)
	assert.Equal(t, 4, view.selected)

	// Can't go past the last item
	view.Update(down)
	assert.Equal(t, 4, view.selected)

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(up)
	assert.Equal(t, 3, view.selected)

	view.selected = 0
	view.Update(up)
	assert.Equal(t, 0, view.selected)
}

func TestView_Update_Enter_ViewChange(t *testing.T) {
	tests := []struct {
		selected int
		expected messages.ViewType
	}{
		{selected: 0, expected: messages.ViewBump},
		{selected: 1, expected: messages.ViewCheck},
		{selected: 2, expected: messages.ViewHistory},
		{selected: 3, expected: messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.selected

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.expected, changed.View)
		})
	}
}

func TestView_Update_Enter_Quit(t *testing.T) {
	view := NewView(nil)
	view.selected = 4 // Quit

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil)
	view.ready = false

	output := view.View()

	assert.Contains(t, output, "Initialising")
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil)
	view.ready = true

	output := view.View()

	assert.Contains(t, output, "Zendev")
	assert.Contains(t, output, "Bump Version")
	assert.Contains(t, output, "Run Checks")
	assert.Contains(t, output, "History")
	assert.Contains(t, output, "Quit")
	assert.Contains(t, output, ">") // Selection indicator
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil)
	view.ready = false

	view.SetDimensions(120, 60)

	assert.Equal(t, 120, view.width)
	assert.Equal(t, 60, view.height)
	assert.True(t, view.ready)
}
