package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Checkbox is a boolean field with a description line.
type Checkbox struct {
	Label       string
	Description string

	path     string
	focused  bool
	localErr string
	styles   Styles
}

// NewCheckbox creates a checkbox bound to path.
func NewCheckbox(path, label, description string, styles Styles) *Checkbox {
	return &Checkbox{Label: label, Description: description, path: path, styles: styles}
}

func (c *Checkbox) Path() string  { return c.path }
func (c *Checkbox) Focused() bool { return c.focused }
func (c *Checkbox) Load(Binding)  {}

func (c *Checkbox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *Checkbox) Blur(b Binding) {
	c.focused = false
	b.Touch(c.path)
}

// Checked reports the bound value.
func (c *Checkbox) Checked(b Binding) bool {
	v, _ := b.Value(c.path).(bool)
	return v
}

func (c *Checkbox) Update(msg tea.Msg, b Binding) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !c.focused {
		return nil
	}
	switch key.String() {
	case " ", "enter", "x":
		c.localErr = writeError(b.SetValue(c.path, !c.Checked(b)))
	}
	return nil
}

func (c *Checkbox) View(width int, b Binding) string {
	box := "[ ]"
	if c.Checked(b) {
		box = c.styles.Success.Render("[✓]")
	}
	out := c.styles.label(box+" "+c.Label, c.focused) + "\n"
	if c.Description != "" {
		out += "        " + c.styles.Description.Render(c.Description) + "\n"
	}
	out += c.styles.errorLine(firstError(c.localErr, b, c.path))
	return out
}
