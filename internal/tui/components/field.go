package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Binding connects a widget to its slot in the value tree.
type Binding interface {
	Value(path string) any
	SetValue(path string, v any) error
	Error(path string) string
	Touch(path string)
}

// ArrayBinding adds the array operations used by ArrayField.
type ArrayBinding interface {
	Binding
	Len(path string) int
	Append(path string, v any) error
	Remove(path string, i int) error
}

// Field is a form widget bound to one path.
type Field interface {
	Path() string
	// Load copies the bound value into the widget.
	Load(b Binding)
	Focus() tea.Cmd
	// Blur drops focus and marks the path touched.
	Blur(b Binding)
	Focused() bool
	Update(msg tea.Msg, b Binding) tea.Cmd
	View(width int, b Binding) string
}

// Container is a Field holding nested fields. Tab moves within it before
// leaving it.
type Container interface {
	Field
	FocusLast() tea.Cmd
	// Next moves focus forward and reports false when it left the last
	// nested field.
	Next(b Binding) (tea.Cmd, bool)
	Prev(b Binding) (tea.Cmd, bool)
}

// Styles is the style set shared by all widgets.
type Styles struct {
	Label         lipgloss.Style
	Description   lipgloss.Style
	Error         lipgloss.Style
	Success       lipgloss.Style
	Hint          lipgloss.Style
	Value         lipgloss.Style
	Border        lipgloss.Style
	FocusedBorder lipgloss.Style
	KbdKey        lipgloss.Style
	KbdDesc       lipgloss.Style
	AccentColor   lipgloss.Color
	DimColor      lipgloss.Color
}

func (s Styles) box(focused bool) lipgloss.Style {
	if focused {
		return s.FocusedBorder
	}
	return s.Border
}

func (s Styles) label(text string, focused bool) string {
	if focused {
		return s.Label.Foreground(s.AccentColor).Render("› " + text)
	}
	return s.Label.Render("  " + text)
}

func (s Styles) errorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return "  " + s.Error.Render("✗ "+msg) + "\n"
}

func fieldWidth(width int) int {
	w := width - 8
	if w < 20 {
		w = 20
	}
	return w
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// writeError is the message shown when the tree rejected a write.
func writeError(err error) string {
	if err == nil {
		return ""
	}
	return "Could not update this field: " + err.Error()
}

// firstError returns the widget's own error, falling back to the path's.
func firstError(local string, b Binding, path string) string {
	if local != "" {
		return local
	}
	return b.Error(path)
}
