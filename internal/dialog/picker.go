package dialog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Picker asks the user for a file. An empty path means the user cancelled.
type Picker interface {
	Pick(title string, extensions []string) (string, error)
}

// TerminalPicker browses the filesystem in a full-screen terminal UI
type TerminalPicker struct {
	StartDirectory string
	PageSize       int
}

// Pick runs the picker until a file is chosen or the user quits
func (p *TerminalPicker) Pick(title string, extensions []string) (string, error) {
	m, err := newPickerModel(title, p.StartDirectory, extensions, p.PageSize)
	if err != nil {
		return "", err
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("error running file picker: %v", err)
	}

	final := finalModel.(pickerModel)
	if final.cancelled {
		return "", nil
	}
	return final.selected, nil
}

type pickerModel struct {
	title      string
	extensions []string
	files      filepicker.Model

	selected  string
	cancelled bool
	status    string

	titleStyle lipgloss.Style
	helpStyle  lipgloss.Style
	errorStyle lipgloss.Style
}

func newPickerModel(title, startDir string, extensions []string, pageSize int) (pickerModel, error) {
	if pageSize <= 0 {
		pageSize = 15
	}
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return pickerModel{}, fmt.Errorf("failed to resolve %s: %v", startDir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return pickerModel{}, fmt.Errorf("failed to read directory %s: %v", dir, err)
	}
	if !info.IsDir() {
		return pickerModel{}, fmt.Errorf("%s is not a directory", dir)
	}

	files := filepicker.New()
	files.CurrentDirectory = dir
	files.AllowedTypes = allowedTypes(extensions)
	files.ShowPermissions = false
	files.AutoHeight = false
	files.Height = pageSize
	// esc cancels the whole picker instead of going up a directory
	files.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("backspace", "parent"),
	)
	files.Styles.EmptyDirectory = files.Styles.EmptyDirectory.SetString("Nenhum arquivo aqui.")

	return pickerModel{
		title:      title,
		extensions: extensions,
		files:      files,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}, nil
}

// allowedTypes matches extensions in either case
func allowedTypes(extensions []string) []string {
	var types []string
	for _, ext := range extensions {
		types = append(types, strings.ToLower(ext), strings.ToUpper(ext))
	}
	return types
}

func (m pickerModel) Init() tea.Cmd {
	return m.files.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
		m.status = ""
	}

	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)

	if ok, path := m.files.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.files.DidSelectDisabledFile(msg); ok {
		m.status = fmt.Sprintf("%s is not a %s file", filepath.Base(path), strings.Join(m.extensions, "/"))
	}
	return m, cmd
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render(m.files.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.files.View())

	if m.status != "" {
		b.WriteString(m.errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "↑↓: navigate | PgUp/PgDn: page | Enter: open/select | Backspace: parent | Esc: cancel"
	b.WriteString(m.helpStyle.Render(help))

	return b.String()
}
