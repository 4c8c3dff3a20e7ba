package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Requirement is one rule listed under a password field.
type Requirement struct {
	Label string
	Match func(string) bool
}

// PasswordInput is a masked text field with a live requirement checklist.
// ctrl+t toggles between masked and plain text.
type PasswordInput struct {
	*TextInput
	Requirements []Requirement
}

// NewPasswordInput creates a masked field bound to path.
func NewPasswordInput(path, label string, reqs []Requirement, styles Styles) *PasswordInput {
	t := NewTextInput(path, label, "••••••••", styles)
	t.input.EchoMode = textinput.EchoPassword
	t.input.EchoCharacter = '•'
	return &PasswordInput{TextInput: t, Requirements: reqs}
}

// Masked reports whether the text is hidden.
func (p *PasswordInput) Masked() bool {
	return p.input.EchoMode == textinput.EchoPassword
}

func (p *PasswordInput) Update(msg tea.Msg, b Binding) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && p.Focused() && key.String() == "ctrl+t" {
		if p.Masked() {
			p.input.EchoMode = textinput.EchoNormal
		} else {
			p.input.EchoMode = textinput.EchoPassword
		}
		return nil
	}
	return p.TextInput.Update(msg, b)
}

func (p *PasswordInput) View(width int, b Binding) string {
	out := p.TextInput.View(width, b)
	if p.Value() == "" && !p.Focused() {
		return out
	}
	for _, r := range p.Requirements {
		if r.Match(p.Value()) {
			out += "    " + p.styles.Success.Render("✓ "+r.Label) + "\n"
		} else {
			out += "    " + p.styles.Hint.Render("○ "+r.Label) + "\n"
		}
	}
	return out
}
