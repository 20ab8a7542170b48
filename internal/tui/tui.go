package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive gallery and blocks until the user quits or ctx
// is cancelled. The scroll lock is always released on the way out.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.TUI.Theme)
	applyGlyphPreference(opts.TUI.Glyphs)

	m := newAppModel(opts)
	defer m.ctrl.Teardown()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
