package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vacmar/portfolio/internal/roadmap"
)

// NewProgram creates a program browsing store on the alternate screen.
func NewProgram(store *roadmap.Store, opts roadmap.Options, progOpts ...tea.ProgramOption) *tea.Program {
	all := append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	return tea.NewProgram(New(store, opts), all...)
}

// Run browses store until the user quits.
func Run(store *roadmap.Store, opts roadmap.Options) error {
	if _, err := NewProgram(store, opts).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
