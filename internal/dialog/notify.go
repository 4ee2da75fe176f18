// Package dialog holds the interactive surface of the tools: a terminal file
// picker, a yes/no confirmation and boxed notifications.
package dialog

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Notifier reports the outcome of a run to the user
type Notifier interface {
	Inform(title, message string)
	Warn(title, message string)
}

// TerminalNotifier prints notifications as bordered boxes
type TerminalNotifier struct {
	Out io.Writer
}

var (
	informBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("40")).
			Padding(0, 1)
	warnBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1)
	informTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))
	warnTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func (n *TerminalNotifier) Inform(title, message string) {
	n.print(informBox, informTitle, title, message)
}

func (n *TerminalNotifier) Warn(title, message string) {
	n.print(warnBox, warnTitle, title, message)
}

func (n *TerminalNotifier) print(box, heading lipgloss.Style, title, message string) {
	content := lipgloss.JoinVertical(lipgloss.Left, heading.Render(title), "", message)
	fmt.Fprintln(n.Out, box.Render(content))
}
