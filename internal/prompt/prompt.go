// Package prompt asks the user for search credentials in the terminal.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
)

var (
	// ErrNotTerminal is returned when stdin cannot be prompted.
	ErrNotTerminal = errors.New("credentials required but stdin is not a terminal; set TWINICODO_BEARER_TOKEN, TWINICODO_CSRF_TOKEN and TWINICODO_COOKIE")
	// ErrCancelled is returned when the user aborts the prompt.
	ErrCancelled = errors.New("credential prompt cancelled")
)

var (
	colorPrimary = lipgloss.Color("12")
	colorDim     = lipgloss.Color("240")
	colorError   = lipgloss.Color("9")

	styleTitle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleLabel  = lipgloss.NewStyle().Foreground(colorPrimary)
	styleHelp   = lipgloss.NewStyle().Foreground(colorDim)
	styleError  = lipgloss.NewStyle().Foreground(colorError)
	styleCursor = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// Answers are the raw values the user entered.
type Answers struct {
	AuthorizationToken string
	CSRFToken          string
	Cookie             string
}

const (
	fieldBearer = iota
	fieldCSRF
	fieldCookie
	fieldCount
)

var labels = [fieldCount]string{
	"Authorization bearer token",
	"CSRF token",
	"Cookie",
}

type model struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	errMsg    string
	done      bool
	cancelled bool
}

func newModel() model {
	var m model
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.PromptStyle = styleCursor
		ti.CharLimit = 4096
		ti.Width = 64
		if i != fieldCookie {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	m.inputs[fieldBearer].Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit advances to the next empty field, or validates and finishes.
func (m model) submit() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.inputs[m.focus].Value()) == "" {
		m.errMsg = labels[m.focus] + " is required"
		return m, nil
	}
	m.errMsg = ""
	for i := range m.inputs {
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			return m.setFocus(i)
		}
	}
	if _, err := twinicodo.ParseCookie(m.inputs[fieldCookie].Value()); err != nil {
		m.errMsg = err.Error()
		return m.setFocus(fieldCookie)
	}
	m.done = true
	return m, tea.Quit
}

func (m model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[i].Focus()
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Please provide Twitter auth information!"))
	sb.WriteString("\n\n")
	for i := range m.inputs {
		sb.WriteString(styleLabel.Render(labels[i]))
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n\n")
	}
	if m.errMsg != "" {
		sb.WriteString(styleError.Render(m.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(styleHelp.Render("tab: next field • enter: confirm • esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}

func (m model) answers() Answers {
	return Answers{
		AuthorizationToken: strings.TrimSpace(m.inputs[fieldBearer].Value()),
		CSRFToken:          strings.TrimSpace(m.inputs[fieldCSRF].Value()),
		Cookie:             strings.TrimSpace(m.inputs[fieldCookie].Value()),
	}
}

// Run shows the credential form and blocks until it is confirmed or cancelled.
func Run() (Answers, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return Answers{}, ErrNotTerminal
	}
	final, err := tea.NewProgram(newModel(), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return Answers{}, fmt.Errorf("prompt: %w", err)
	}
	fm := final.(model)
	if !fm.done {
		return Answers{}, ErrCancelled
	}
	return fm.answers(), nil
}
