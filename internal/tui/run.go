package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotTTY is returned when the practice cannot run interactively.
var ErrNotTTY = errors.New("practice needs an interactive terminal")

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run shows m in the alternate screen and returns the final model.
func Run(m Model) (Model, error) {
	if !IsTTY() {
		return m, ErrNotTTY
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
