package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut hint.
type KeyBinding struct {
	Key  string
	Desc string
}

// KbdHint renders a horizontal keyboard shortcut hint bar.
type KbdHint struct {
	Bindings  []KeyBinding
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// NewKbdHint creates a KbdHint with the given styles.
func NewKbdHint(keyStyle, descStyle lipgloss.Style, bindings ...KeyBinding) KbdHint {
	return KbdHint{
		Bindings:  bindings,
		KeyStyle:  keyStyle,
		DescStyle: descStyle,
	}
}

// View renders the keyboard hints.
func (k KbdHint) View() string {
	var parts []string
	for _, b := range k.Bindings {
		parts = append(parts, k.KeyStyle.Render(b.Key)+" "+k.DescStyle.Render(b.Desc))
	}
	return "  " + strings.Join(parts, "    ")
}

// SelectHints returns hints for a focused select.
func SelectHints() []KeyBinding {
	return []KeyBinding{{Key: "←→", Desc: "choose"}}
}

// CheckboxHints returns hints for a focused checkbox.
func CheckboxHints() []KeyBinding {
	return []KeyBinding{{Key: "space", Desc: "toggle"}}
}

// ArrayHints returns hints for a focused repeatable group.
func ArrayHints(noun string) []KeyBinding {
	return []KeyBinding{
		{Key: "ctrl+a", Desc: "add " + noun},
		{Key: "ctrl+d", Desc: "remove " + noun},
	}
}

// DropZoneHints returns hints for a focused drop zone.
func DropZoneHints() []KeyBinding {
	return []KeyBinding{
		{Key: "⏎", Desc: "attach"},
		{Key: "ctrl+x", Desc: "remove"},
	}
}

// ReviewHints returns hints for the review step.
func ReviewHints() []KeyBinding {
	return []KeyBinding{
		{Key: "⏎", Desc: "submit"},
		{Key: "ctrl+p", Desc: "back"},
		{Key: "esc", Desc: "quit"},
	}
}
