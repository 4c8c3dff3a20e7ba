package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devshahoriar/custom-form/employee"
	"github.com/devshahoriar/custom-form/internal/tui"
	"github.com/devshahoriar/custom-form/internal/tui/components"
	"github.com/devshahoriar/custom-form/stepper"
)

const (
	// FixFieldsMessage blocks a transition out of a step with invalid fields.
	FixFieldsMessage = "Please fix the highlighted fields"
	// WaitMessage blocks a transition while uploads or removals are in flight.
	WaitMessage = "Please wait for uploads to finish"
)

// Form is the value tree the steps edit.
type Form interface {
	components.ArrayBinding
	Trigger(prefixes ...string) bool
	ErrorsUnder(prefix string) map[string]string
}

// FormStep is a page of widgets gated by the paths of one section.
type FormStep struct {
	section employee.Section
	icon    string
	form    Form
	fields  []components.Field
	focus   int
	styles  *tui.StyleSet
	kbd     components.KbdHint

	// changed runs after every message the focused field handled.
	changed func()
}

// NewFormStep creates a step editing sec with fields in tab order.
func NewFormStep(sec employee.Section, icon string, f Form, styles *tui.StyleSet, fields ...components.Field) *FormStep {
	s := &FormStep{
		section: sec,
		icon:    icon,
		form:    f,
		fields:  fields,
		styles:  styles,
		kbd: components.NewKbdHint(styles.KbdKey, styles.KbdDesc,
			components.KeyBinding{Key: "tab", Desc: "next field"},
			components.KeyBinding{Key: "ctrl+n", Desc: "next step"},
			components.KeyBinding{Key: "ctrl+p", Desc: "back"},
		),
	}
	s.Reload()
	return s
}

func (s *FormStep) Title() string      { return s.section.Title }
func (s *FormStep) Icon() string       { return s.icon }
func (s *FormStep) Summary() string    { return s.section.Description }
func (s *FormStep) Prefixes() []string { return s.section.Prefixes }

// Fields returns the widgets in tab order.
func (s *FormStep) Fields() []components.Field { return s.fields }

// Focused returns the widget holding focus.
func (s *FormStep) Focused() components.Field {
	if len(s.fields) == 0 {
		return nil
	}
	return s.fields[s.focus]
}

// Reload copies the value tree into every widget. Call it after the tree
// was replaced.
func (s *FormStep) Reload() {
	for _, f := range s.fields {
		f.Load(s.form)
	}
	if s.changed != nil {
		s.changed()
	}
}

// Init focuses the widget that held focus when the step was last active.
func (s *FormStep) Init() tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	return s.fields[s.focus].Focus()
}

// Busy reports whether any widget has work in flight.
func (s *FormStep) Busy() bool {
	for _, f := range s.fields {
		if w, ok := f.(interface{ Busy() bool }); ok && w.Busy() {
			return true
		}
	}
	return false
}

// Validate blocks while work is in flight, then triggers validation of the
// section and blocks on any issue.
func (s *FormStep) Validate() stepper.Result {
	if s.Busy() {
		return stepper.Fail(WaitMessage)
	}
	if s.form.Trigger(s.section.Prefixes...) {
		return stepper.Pass()
	}
	return stepper.Fail(FixFieldsMessage)
}

func (s *FormStep) Update(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmds []tea.Cmd
		for _, f := range s.fields {
			cmds = append(cmds, f.Update(msg, s.form))
		}
		return tea.Batch(cmds...)
	}
	if len(s.fields) == 0 {
		return nil
	}

	switch key.String() {
	case "tab", "down":
		if key.String() == "down" && !s.navigable() {
			break
		}
		return s.move(1)
	case "shift+tab", "up":
		if key.String() == "up" && !s.navigable() {
			break
		}
		return s.move(-1)
	}

	cmd := s.fields[s.focus].Update(msg, s.form)
	if s.changed != nil {
		s.changed()
	}
	return cmd
}

// navigable reports whether up/down may move between widgets. Widgets
// that use the arrows themselves keep them.
func (s *FormStep) navigable() bool {
	switch s.fields[s.focus].(type) {
	case *components.Select, *components.TextArea, *components.ArrayField:
		return false
	}
	return true
}

func (s *FormStep) move(dir int) tea.Cmd {
	cur := s.fields[s.focus]
	if c, ok := cur.(components.Container); ok {
		var cmd tea.Cmd
		var moved bool
		if dir > 0 {
			cmd, moved = c.Next(s.form)
		} else {
			cmd, moved = c.Prev(s.form)
		}
		if moved {
			return cmd
		}
	}

	cur.Blur(s.form)
	s.focus = (s.focus + dir + len(s.fields)) % len(s.fields)
	next := s.fields[s.focus]
	if c, ok := next.(components.Container); ok && dir < 0 {
		return c.FocusLast()
	}
	return next.Focus()
}

// Close stops widgets with outstanding work.
func (s *FormStep) Close() {
	for _, f := range s.fields {
		if c, ok := f.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

func (s *FormStep) View(width int) string {
	var out string
	for _, f := range s.fields {
		out += f.View(width, s.form) + "\n"
	}
	return out + s.kbd.View() + "\n"
}
