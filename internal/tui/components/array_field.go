package components

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// RowBuilder creates the widgets of one array element rooted at base, e.g.
// "professionalExperience.2".
type RowBuilder func(base string) []Field

// ArrayField is a repeatable group of rows. ctrl+a appends a row built from
// NewRow and ctrl+d removes the row holding focus. Tab walks every nested
// widget before leaving the group.
type ArrayField struct {
	Label string
	// Noun names one row in hints and headers, e.g. "experience".
	Noun   string
	NewRow func() any

	path    string
	build   RowBuilder
	rows    [][]Field
	focus   int // index into the flattened row widgets; -1 means the add line
	focused bool
	styles  Styles
}

// NewArrayField creates a repeatable group bound to the array at path.
func NewArrayField(path, label, noun string, newRow func() any, build RowBuilder, styles Styles) *ArrayField {
	return &ArrayField{
		Label:  label,
		Noun:   noun,
		NewRow: newRow,
		path:   path,
		build:  build,
		focus:  -1,
		styles: styles,
	}
}

func (a *ArrayField) Path() string  { return a.path }
func (a *ArrayField) Focused() bool { return a.focused }

// Rows returns the number of rendered rows.
func (a *ArrayField) Rows() int { return len(a.rows) }

// Load rebuilds every row from the tree.
func (a *ArrayField) Load(b Binding) {
	ab, ok := b.(ArrayBinding)
	if !ok {
		return
	}
	n := ab.Len(a.path)
	a.rows = make([][]Field, n)
	for i := 0; i < n; i++ {
		a.rows[i] = a.build(a.path + "." + strconv.Itoa(i))
		for _, f := range a.rows[i] {
			f.Load(b)
		}
	}
	if a.focus >= len(a.flat()) {
		a.focus = len(a.flat()) - 1
	}
}

func (a *ArrayField) flat() []Field {
	var out []Field
	for _, row := range a.rows {
		out = append(out, row...)
	}
	return out
}

// Busy reports whether a nested widget has work in flight.
func (a *ArrayField) Busy() bool {
	for _, f := range a.flat() {
		if w, ok := f.(interface{ Busy() bool }); ok && w.Busy() {
			return true
		}
	}
	return false
}

// rowOf returns the row index of flattened widget i.
func (a *ArrayField) rowOf(i int) int {
	if i < 0 {
		return -1
	}
	for r, row := range a.rows {
		if i < len(row) {
			return r
		}
		i -= len(row)
	}
	return -1
}

func (a *ArrayField) Focus() tea.Cmd {
	a.focused = true
	if len(a.flat()) == 0 {
		a.focus = -1
		return nil
	}
	a.focus = 0
	return a.flat()[0].Focus()
}

func (a *ArrayField) FocusLast() tea.Cmd {
	a.focused = true
	fields := a.flat()
	if len(fields) == 0 {
		a.focus = -1
		return nil
	}
	a.focus = len(fields) - 1
	return fields[a.focus].Focus()
}

func (a *ArrayField) Blur(b Binding) {
	a.focused = false
	if fields := a.flat(); a.focus >= 0 && a.focus < len(fields) {
		fields[a.focus].Blur(b)
	}
	b.Touch(a.path)
}

func (a *ArrayField) Next(b Binding) (tea.Cmd, bool) {
	fields := a.flat()
	if a.focus < 0 || a.focus >= len(fields)-1 {
		return nil, false
	}
	fields[a.focus].Blur(b)
	a.focus++
	return fields[a.focus].Focus(), true
}

func (a *ArrayField) Prev(b Binding) (tea.Cmd, bool) {
	fields := a.flat()
	if a.focus <= 0 || a.focus >= len(fields) {
		return nil, false
	}
	fields[a.focus].Blur(b)
	a.focus--
	return fields[a.focus].Focus(), true
}

func (a *ArrayField) Update(msg tea.Msg, b Binding) tea.Cmd {
	ab, ok := b.(ArrayBinding)
	if !ok {
		return nil
	}
	if key, isKey := msg.(tea.KeyMsg); isKey && a.focused {
		switch key.String() {
		case "ctrl+a":
			return a.appendRow(ab)
		case "ctrl+d":
			return a.removeRow(ab)
		}
	}

	fields := a.flat()
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if a.focused && a.focus >= 0 && a.focus < len(fields) {
			return fields[a.focus].Update(msg, b)
		}
		return nil
	}
	var cmds []tea.Cmd
	for _, f := range fields {
		cmds = append(cmds, f.Update(msg, b))
	}
	return tea.Batch(cmds...)
}

func (a *ArrayField) appendRow(b ArrayBinding) tea.Cmd {
	var row any
	if a.NewRow != nil {
		row = a.NewRow()
	}
	if err := b.Append(a.path, row); err != nil {
		return nil
	}
	if fields := a.flat(); a.focus >= 0 && a.focus < len(fields) {
		fields[a.focus].Blur(b)
	}
	a.Load(b)
	last := a.rows[len(a.rows)-1]
	a.focus = len(a.flat()) - len(last)
	if len(last) == 0 {
		a.focus = -1
		return nil
	}
	return last[0].Focus()
}

func (a *ArrayField) removeRow(b ArrayBinding) tea.Cmd {
	r := a.rowOf(a.focus)
	if r < 0 {
		return nil
	}
	if err := b.Remove(a.path, r); err != nil {
		return nil
	}
	a.Load(b)
	fields := a.flat()
	if len(fields) == 0 {
		a.focus = -1
		return nil
	}
	// Focus the first widget of the row that slid into place, or of the
	// new last row.
	if r >= len(a.rows) {
		r = len(a.rows) - 1
	}
	a.focus = 0
	for i := 0; i < r; i++ {
		a.focus += len(a.rows[i])
	}
	return fields[a.focus].Focus()
}

func (a *ArrayField) View(width int, b Binding) string {
	out := a.styles.label(a.Label, a.focused) + "\n"
	for i, row := range a.rows {
		out += "  " + a.styles.Description.Render(fmt.Sprintf("── %s %d ──", a.Noun, i+1)) + "\n"
		for _, f := range row {
			out += f.View(width-2, b)
		}
	}
	add := fmt.Sprintf("+ Add %s", a.Noun)
	if a.focused && a.focus < 0 {
		out += "  " + a.styles.FocusedBorder.Render(add) + "\n"
	} else {
		out += "  " + a.styles.Border.Render(add) + "\n"
	}
	out += a.styles.errorLine(b.Error(a.path))
	if a.focused {
		out += NewKbdHint(a.styles.KbdKey, a.styles.KbdDesc, ArrayHints(a.Noun)...).View() + "\n"
	}
	return out
}
