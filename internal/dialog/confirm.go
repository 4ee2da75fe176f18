package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(title, message string) (bool, error)
}

// TerminalConfirmer renders the question inline and waits for an answer
type TerminalConfirmer struct{}

func (TerminalConfirmer) Confirm(title, message string) (bool, error) {
	program := tea.NewProgram(newConfirmModel(title, message))
	finalModel, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("error running confirmation: %v", err)
	}
	return finalModel.(confirmModel).answer, nil
}

type confirmModel struct {
	title   string
	message string

	// focus is true while "Yes" is highlighted
	focus  bool
	answer bool
	done   bool

	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
}

func newConfirmModel(title, message string) confirmModel {
	return confirmModel{
		title:   title,
		message: message,
		focus:   true,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		return m.finish(true)
	case "n", "N", "esc", "q", "ctrl+c":
		return m.finish(false)
	case "left", "right", "h", "l", "tab":
		m.focus = !m.focus
	case "enter":
		return m.finish(m.focus)
	}
	return m, nil
}

func (m confirmModel) finish(answer bool) (tea.Model, tea.Cmd) {
	m.answer = answer
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.message)
	b.WriteString("\n\n")

	yesStyle, noStyle := m.selectedStyle, m.normalStyle
	if !m.focus {
		yesStyle, noStyle = m.normalStyle, m.selectedStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, yesStyle.Render("Sim"), "  ", noStyle.Render("Não")))
	b.WriteString("\n\n")
	b.WriteString(m.helpStyle.Render("y/n to answer, ←→ + Enter to choose"))
	b.WriteString("\n")

	return b.String()
}
