package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devshahoriar/custom-form/stepper"
)

// Step is the interface that all wizard steps must implement. Steps are
// pointer types; Update mutates the step in place.
type Step interface {
	// Title returns the step's display title.
	Title() string
	// Icon returns the step's icon/emoji.
	Icon() string
	// Init returns the command to run when the step becomes active.
	Init() tea.Cmd
	// Update handles messages. Key messages only reach the active step.
	Update(msg tea.Msg) tea.Cmd
	// View renders the step content.
	View(width int) string
	// Summary returns a one-line summary for the progress header.
	Summary() string
	// Prefixes lists the value-tree paths the step edits.
	Prefixes() []string
	// Validate gates the transition out of the step.
	Validate() stepper.Result
}

// RenderProgress renders one badge per step joined by bars, followed by the
// title of the active step.
func RenderProgress(steps []Step, inds []stepper.Indicator, styles *StyleSet, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	current := -1
	for i, ind := range inds {
		label := fmt.Sprintf(" %d ", ind.Index)
		switch ind.State {
		case stepper.StateCompleted:
			b.WriteString(styles.StepBadgeComplete.Render(" ✓ "))
		case stepper.StateCurrent:
			current = i
			b.WriteString(styles.StepBadgeActive.Render(label))
		default:
			b.WriteString(styles.StepBadgePending.Render(label))
		}
		if !ind.HasBar {
			continue
		}
		if ind.BarFilled {
			b.WriteString(styles.BarFilled.Render("━━"))
		} else {
			b.WriteString(styles.BarEmpty.Render("──"))
		}
	}
	b.WriteString("\n\n")

	if current < 0 || current >= len(steps) {
		return b.String()
	}
	step := steps[current]
	head := step.Icon() + "  " + step.Title()
	dividerLen := max(width-8-lipgloss.Width(head), 2)
	fmt.Fprintf(&b, "  %s %s\n", styles.PrimaryTxt.Bold(true).Render(head),
		styles.DimTxt.Render(strings.Repeat("─", dividerLen)))
	if s := step.Summary(); s != "" {
		fmt.Fprintf(&b, "  %s\n", styles.SecondaryTxt.Render(s))
	}
	return b.String()
}
