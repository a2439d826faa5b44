package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/schema"
)

// Run starts the interactive schema browser.
func Run(set *schema.Set, registry *redactor.Registry) error {
	m := NewModel(set, registry)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
