package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m NamePrompt, s string) NamePrompt {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(NamePrompt)
	}
	return m
}

func TestNamePrompt_SubmitDisabledUntilNonBlank(t *testing.T) {
	m := NewNamePrompt()
	if m.CanSubmit() {
		t.Fatal("empty prompt should not be submittable")
	}

	m = typeText(m, "   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(NamePrompt)
	if cmd != nil {
		t.Error("enter on blank input should do nothing")
	}
	if _, ok := m.Name(); ok {
		t.Fatal("blank input must not be submitted")
	}

	m = typeText(m, "Alex  ")
	if !m.CanSubmit() {
		t.Fatal("expected submit to be enabled")
	}
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(NamePrompt)
	if cmd == nil {
		t.Error("expected quit command after submit")
	}
	name, ok := m.Name()
	if !ok || name != "Alex" {
		t.Errorf("expected trimmed name Alex, got %q (%v)", name, ok)
	}
}

func TestNamePrompt_EscCancels(t *testing.T) {
	m := typeText(NewNamePrompt(), "Bo")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(NamePrompt)
	if cmd == nil || !m.cancelled {
		t.Error("esc should cancel the prompt")
	}
	if _, ok := m.Name(); ok {
		t.Error("cancelled prompt has no name")
	}
}

func TestNamePrompt_CharLimit(t *testing.T) {
	m := typeText(NewNamePrompt(), strings.Repeat("a", 80))
	if got := len(m.input.Value()); got != nameLimit {
		t.Errorf("expected input capped at %d, got %d", nameLimit, got)
	}
}

func TestNamePrompt_View(t *testing.T) {
	m := NewNamePrompt()
	if !strings.Contains(m.View(), "Share Your Name") {
		t.Error("expected modal title in view")
	}
}
