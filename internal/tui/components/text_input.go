package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInput is a single-line string field wrapping bubbles/textinput.
type TextInput struct {
	Label string
	// Hint is rendered under the input while it has no error.
	Hint string
	// Numeric drops every key that is not a digit, '.' or '-'. The value is
	// still stored as a string.
	Numeric bool

	path     string
	input    textinput.Model
	localErr string
	styles   Styles
}

// NewTextInput creates a text field bound to path.
func NewTextInput(path, label, placeholder string, styles Styles) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)

	return &TextInput{
		Label:  label,
		path:   path,
		input:  ti,
		styles: styles,
	}
}

// NewNumberInput creates a numeric text field bound to path.
func NewNumberInput(path, label, placeholder string, styles Styles) *TextInput {
	t := NewTextInput(path, label, placeholder, styles)
	t.Numeric = true
	return t
}

func (t *TextInput) Path() string  { return t.path }
func (t *TextInput) Focused() bool { return t.input.Focused() }

// Load copies the bound string into the input.
func (t *TextInput) Load(b Binding) {
	if v := asString(b.Value(t.path)); v != t.input.Value() {
		t.input.SetValue(v)
	}
}

func (t *TextInput) Focus() tea.Cmd {
	return t.input.Focus()
}

func (t *TextInput) Blur(b Binding) {
	t.input.Blur()
	b.Touch(t.path)
}

// Value returns the raw input text.
func (t *TextInput) Value() string { return t.input.Value() }

// LocalError returns the error of the last write, if the tree rejected it.
func (t *TextInput) LocalError() string { return t.localErr }

// Update forwards keys to the input and writes the text back on change.
func (t *TextInput) Update(msg tea.Msg, b Binding) tea.Cmd {
	if !t.input.Focused() {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && t.Numeric && key.Type == tea.KeyRunes {
		if strings.IndexFunc(string(key.Runes), notNumeric) >= 0 {
			return nil
		}
	}

	before := t.input.Value()
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if after := t.input.Value(); after != before {
		t.localErr = writeError(b.SetValue(t.path, after))
	}
	return cmd
}

func notNumeric(r rune) bool {
	return !unicode.IsDigit(r) && r != '.' && r != '-'
}

// View renders the label, the bordered input and the path's error.
func (t *TextInput) View(width int, b Binding) string {
	w := fieldWidth(width)
	t.input.Width = w - 4

	out := t.styles.label(t.Label, t.Focused()) + "\n"
	out += "  " + t.styles.box(t.Focused()).Width(w).Render(t.input.View()) + "\n"
	if msg := firstError(t.localErr, b, t.path); msg != "" {
		out += t.styles.errorLine(msg)
	} else if t.Hint != "" {
		out += "  " + t.styles.Hint.Render(t.Hint) + "\n"
	}
	return out
}
