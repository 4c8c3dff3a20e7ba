package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SelectOption is one choice of a Select.
type SelectOption struct {
	Label string
	Value string
}

// Select is a horizontal radio group. Moving the cursor writes the option's
// value immediately.
type Select struct {
	Label   string
	Options []SelectOption

	path     string
	cursor   int
	focused  bool
	localErr string
	styles   Styles
}

// NewSelect creates a select bound to path.
func NewSelect(path, label string, options []SelectOption, styles Styles) *Select {
	return &Select{Label: label, Options: options, path: path, styles: styles}
}

// OptionsFrom builds options whose label equals their value.
func OptionsFrom(values ...string) []SelectOption {
	out := make([]SelectOption, 0, len(values))
	for _, v := range values {
		out = append(out, SelectOption{Label: v, Value: v})
	}
	return out
}

func (s *Select) Path() string  { return s.path }
func (s *Select) Focused() bool { return s.focused }

// Load moves the cursor to the bound value. An unknown value leaves the
// cursor where it is.
func (s *Select) Load(b Binding) {
	cur := asString(b.Value(s.path))
	for i, o := range s.Options {
		if o.Value == cur {
			s.cursor = i
			return
		}
	}
}

func (s *Select) Focus() tea.Cmd {
	s.focused = true
	return nil
}

func (s *Select) Blur(b Binding) {
	s.focused = false
	b.Touch(s.path)
}

// Selected returns the option under the cursor.
func (s *Select) Selected() SelectOption {
	if s.cursor < 0 || s.cursor >= len(s.Options) {
		return SelectOption{}
	}
	return s.Options[s.cursor]
}

func (s *Select) Update(msg tea.Msg, b Binding) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !s.focused || len(s.Options) == 0 {
		return nil
	}
	switch key.String() {
	case "left", "h", "up":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l", "down":
		if s.cursor < len(s.Options)-1 {
			s.cursor++
		}
	case " ", "enter":
	default:
		return nil
	}
	s.localErr = writeError(b.SetValue(s.path, s.Options[s.cursor].Value))
	return nil
}

func (s *Select) View(width int, b Binding) string {
	var parts []string
	bound := asString(b.Value(s.path))
	for i, o := range s.Options {
		var radio, label string
		if o.Value == bound {
			radio = lipgloss.NewStyle().Foreground(s.styles.AccentColor).Render("◉")
		} else {
			radio = lipgloss.NewStyle().Foreground(s.styles.DimColor).Render("○")
		}
		if s.focused && i == s.cursor {
			label = s.styles.Value.Render(o.Label)
		} else {
			label = s.styles.Description.Render(o.Label)
		}
		parts = append(parts, radio+" "+label)
	}

	out := s.styles.label(s.Label, s.focused) + "\n"
	out += "  " + s.styles.box(s.focused).Width(fieldWidth(width)).Render(strings.Join(parts, "   ")) + "\n"
	out += s.styles.errorLine(firstError(s.localErr, b, s.path))
	return out
}
