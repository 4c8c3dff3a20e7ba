package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DateLayout is the text form accepted by DateInput.
const DateLayout = time.DateOnly

// DateInput edits a time.Time as YYYY-MM-DD text. A complete valid date is
// written as time.Time, an empty input clears the value to nil, and any
// other text is kept local with a format error.
type DateInput struct {
	Label string

	path     string
	input    textinput.Model
	localErr string
	styles   Styles
}

// NewDateInput creates a date field bound to path.
func NewDateInput(path, label string, styles Styles) *DateInput {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(DateLayout)
	ti.Prompt = ""
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)
	return &DateInput{Label: label, path: path, input: ti, styles: styles}
}

func (d *DateInput) Path() string  { return d.path }
func (d *DateInput) Focused() bool { return d.input.Focused() }

func (d *DateInput) Load(b Binding) {
	d.localErr = ""
	switch v := b.Value(d.path).(type) {
	case time.Time:
		if v.IsZero() {
			d.input.SetValue("")
		} else {
			d.input.SetValue(v.Format(DateLayout))
		}
	case string:
		d.input.SetValue(v)
	default:
		d.input.SetValue("")
	}
}

func (d *DateInput) Focus() tea.Cmd { return d.input.Focus() }

func (d *DateInput) Blur(b Binding) {
	d.input.Blur()
	b.Touch(d.path)
}

// LocalError returns the format error of the current text, if any.
func (d *DateInput) LocalError() string { return d.localErr }

func (d *DateInput) Update(msg tea.Msg, b Binding) tea.Cmd {
	if !d.input.Focused() {
		return nil
	}
	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	text := strings.TrimSpace(d.input.Value())
	if d.input.Value() == before {
		return cmd
	}

	switch {
	case text == "":
		d.localErr = writeError(b.SetValue(d.path, nil))
	default:
		t, err := time.Parse(DateLayout, text)
		if err != nil {
			d.localErr = "Use the YYYY-MM-DD format"
			return cmd
		}
		d.localErr = writeError(b.SetValue(d.path, t))
	}
	return cmd
}

func (d *DateInput) View(width int, b Binding) string {
	w := fieldWidth(width)
	if w > 24 {
		w = 24
	}
	d.input.Width = w - 4

	out := d.styles.label(d.Label, d.Focused()) + "\n"
	out += "  " + d.styles.box(d.Focused()).Width(w).Render(d.input.View()) + "\n"
	out += d.styles.errorLine(firstError(d.localErr, b, d.path))
	return out
}
