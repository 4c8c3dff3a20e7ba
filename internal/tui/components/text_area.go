package components

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// TextArea is a multi-line string field wrapping bubbles/textarea.
type TextArea struct {
	Label string

	path     string
	area     textarea.Model
	localErr string
	styles   Styles
}

// NewTextArea creates a multi-line field bound to path.
func NewTextArea(path, label, placeholder string, styles Styles) *TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 2000
	ta.SetHeight(4)
	ta.Blur()

	return &TextArea{Label: label, path: path, area: ta, styles: styles}
}

func (t *TextArea) Path() string  { return t.path }
func (t *TextArea) Focused() bool { return t.area.Focused() }

func (t *TextArea) Load(b Binding) {
	if v := asString(b.Value(t.path)); v != t.area.Value() {
		t.area.SetValue(v)
	}
}

func (t *TextArea) Focus() tea.Cmd { return t.area.Focus() }

func (t *TextArea) Blur(b Binding) {
	t.area.Blur()
	b.Touch(t.path)
}

func (t *TextArea) Update(msg tea.Msg, b Binding) tea.Cmd {
	if !t.area.Focused() {
		return nil
	}
	before := t.area.Value()
	var cmd tea.Cmd
	t.area, cmd = t.area.Update(msg)
	if after := t.area.Value(); after != before {
		t.localErr = writeError(b.SetValue(t.path, after))
	}
	return cmd
}

func (t *TextArea) View(width int, b Binding) string {
	w := fieldWidth(width)
	t.area.SetWidth(w - 4)

	out := t.styles.label(t.Label, t.Focused()) + "\n"
	out += "  " + t.styles.box(t.Focused()).Width(w).Render(t.area.View()) + "\n"
	out += t.styles.errorLine(firstError(t.localErr, b, t.path))
	return out
}
