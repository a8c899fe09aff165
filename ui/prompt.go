package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const nameLimit = 50

var ErrPromptCancelled = errors.New("name prompt cancelled")

// NamePrompt is the blocking "share your name" modal. Submit stays disabled until the
// trimmed input is non-empty.
type NamePrompt struct {
	input     textinput.Model
	name      string
	submitted bool
	cancelled bool
}

func NewNamePrompt() NamePrompt {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = nameLimit
	ti.Width = 40
	ti.Focus()
	return NamePrompt{input: ti}
}

func (m NamePrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (m NamePrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if !m.CanSubmit() {
				return m, nil
			}
			m.name = strings.TrimSpace(m.input.Value())
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m NamePrompt) CanSubmit() bool {
	return strings.TrimSpace(m.input.Value()) != ""
}

// Name returns the submitted name, ok is false until the guest submitted.
func (m NamePrompt) Name() (string, bool) {
	return m.name, m.submitted
}

func (m NamePrompt) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	button := StyleButtonDisabled.Render("Continue to Upload")
	if m.CanSubmit() {
		button = StyleButton.Render("Continue to Upload")
	}
	body := strings.Join([]string{
		StyleTitle.Render("Share Your Name"),
		"",
		"Please share your name so we can credit your beautiful photos in our gallery.",
		"",
		m.input.View(),
		"",
		button,
		FormatMuted("enter to continue, esc to cancel"),
	}, "\n")
	return StyleModal.Render(body) + "\n"
}

// TerminalPrompter runs NamePrompt as a bubbletea program.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p TerminalPrompter) PromptName(ctx context.Context) (string, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(NewNamePrompt(), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("name prompt: %w", err)
	}
	m, ok := final.(NamePrompt)
	if !ok {
		return "", fmt.Errorf("name prompt: unexpected model %T", final)
	}
	name, ok := m.Name()
	if !ok {
		return "", ErrPromptCancelled
	}
	return name, nil
}
