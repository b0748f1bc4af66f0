package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxWidth = 72

// Model is the Bubble Tea model of a practice session.
type Model struct {
	practice Practice
	keys     KeyMap
	title    string
	input    textinput.Model

	state    State
	feedback string
	correct  bool
	err      error

	summary  *Summary
	paused   bool
	quitting bool
}

// New creates a model over p.
func New(p Practice, title string) Model {
	ti := textinput.New()
	ti.Placeholder = "type the translation"
	ti.CharLimit = 200
	ti.Width = maxWidth - 8
	ti.Focus()

	return Model{
		practice: p,
		keys:     DefaultKeyMap,
		title:    title,
		input:    ti,
		state:    p.State(),
	}
}

// Summary returns the finished practice's summary, if any.
func (m Model) Summary() *Summary { return m.summary }

// Paused reports whether the user quit before finishing.
func (m Model) Paused() bool { return m.paused }

// Err returns the last error reported by the practice.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Any key leaves the summary screen.
	if m.summary != nil {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.err = m.practice.Pause()
		m.paused = m.err == nil
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Finish):
		return m.finish()

	case key.Matches(keyMsg, m.keys.Peek):
		m.err = m.practice.Peek()
		m.refresh()
		return m, nil

	case key.Matches(keyMsg, m.keys.Remove):
		m.err = m.practice.Remove()
		m.clearInput()
		m.refresh()
		return m.finishIfComplete()

	case key.Matches(keyMsg, m.keys.Enter):
		return m.enter()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// enter checks a typed answer, or advances when the field is empty.
func (m Model) enter() (tea.Model, tea.Cmd) {
	answer := strings.TrimSpace(m.input.Value())
	if answer != "" {
		m.correct, m.err = m.practice.Submit(answer)
		if m.err == nil {
			if m.correct {
				m.feedback = "Correct!"
			} else {
				m.feedback = "Not quite, try again or press ctrl+p to see the answer."
			}
		}
		m.input.SetValue("")
		m.refresh()
		return m, nil
	}

	m.err = m.practice.Next()
	m.clearInput()
	m.refresh()
	return m.finishIfComplete()
}

func (m Model) finishIfComplete() (tea.Model, tea.Cmd) {
	if m.err == nil && m.state.Complete {
		return m.finish()
	}
	return m, nil
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	sum, err := m.practice.Finish()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.summary = &sum
	m.err = nil
	m.input.Blur()
	return m, nil
}

func (m *Model) refresh() {
	m.state = m.practice.State()
}

func (m *Model) clearInput() {
	m.input.SetValue("")
	m.feedback = ""
	m.correct = false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.summary != nil {
		return boxStyle.Render(m.summaryView())
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(dimStyle.Render(m.title) + "\n")
	}
	done := m.state.Total - m.state.Remaining
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d done · %d missed", done, m.state.Total, m.state.Missed)))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(m.state.Prompt))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.feedback != "" {
		style := errorStyle
		if m.correct {
			style = successStyle
		}
		b.WriteString("\n" + style.Render(m.feedback) + "\n")
	}
	if m.state.Revealed {
		b.WriteString("\n" + successStyle.Render(m.state.Answer))
		if m.state.Notes != "" {
			b.WriteString(dimStyle.Render("  (" + m.state.Notes + ")"))
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.helpView())
	return boxStyle.Render(b.String())
}

func (m Model) helpView() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

func (m Model) summaryView() string {
	s := m.summary
	var b strings.Builder
	b.WriteString(promptStyle.Render("Practice finished") + "\n\n")
	b.WriteString(fmt.Sprintf("%d of %d right first time: ", s.Correct, s.Total))
	b.WriteString(bucketStyle(s.Bucket).Render(fmt.Sprintf("%d%% (%s)", s.Score, s.Bucket)))
	b.WriteString("\n")

	if len(s.Missed) > 0 {
		b.WriteString("\nWords to revise:\n")
		for _, w := range s.Missed {
			b.WriteString(fmt.Sprintf("  %s  %s\n", w.Original, dimStyle.Render(w.Translation)))
		}
	}
	b.WriteString("\n" + dimStyle.Render("press any key to exit"))
	return b.String()
}
