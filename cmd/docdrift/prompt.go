package main

// prompt.go — interactive confirmation for `sync --interactive`, one yes/no
// question per proposed version bump.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/syncer"
)

// confirmModel is a bubbletea model that asks a single yes/no question.
type confirmModel struct {
	question string
	input    textinput.Model
	done     bool
	accepted bool
}

func newConfirmModel(question string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/N"
	ti.CharLimit = 3
	ti.Focus()
	return confirmModel{question: question, input: ti}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer := strings.ToLower(strings.TrimSpace(m.input.Value()))
			m.accepted = answer == "y" || answer == "yes"
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.question, m.input.View())
}

// confirmChange runs the prompt for one proposed bump. Any error or
// cancellation counts as a decline — the pin stays put.
func confirmChange(c syncer.Change) bool {
	m := newConfirmModel(fmt.Sprintf("bump %s: %s → %s?", c.Key, c.From, c.To))
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return false
	}
	final, ok := result.(confirmModel)
	return ok && final.done && final.accepted
}
