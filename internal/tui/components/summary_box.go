package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow represents a key-value pair in the summary.
type SummaryRow struct {
	Key   string
	Value string
	// Err marks a row whose value failed validation.
	Err string
}

// SummaryBox renders a titled 2-column key/value grid in a bordered box.
type SummaryBox struct {
	Title string
	Rows  []SummaryRow

	TitleStyle  lipgloss.Style
	KeyStyle    lipgloss.Style
	ValueStyle  lipgloss.Style
	ErrorStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewSummaryBox creates a summary box styled from s.
func NewSummaryBox(title string, rows []SummaryRow, s Styles) SummaryBox {
	return SummaryBox{
		Title:       title,
		Rows:        rows,
		TitleStyle:  s.Label,
		KeyStyle:    s.Description,
		ValueStyle:  s.Value,
		ErrorStyle:  s.Error,
		BorderStyle: s.Border,
	}
}

// View renders the summary box.
func (s SummaryBox) View(width int) string {
	boxWidth := width - 8
	if boxWidth < 30 {
		boxWidth = 30
	}

	var content string
	if s.Title != "" {
		content += s.TitleStyle.Render(s.Title) + "\n"
	}
	for _, row := range s.Rows {
		key := s.KeyStyle.Width(22).Render(row.Key)
		value := row.Value
		if value == "" {
			value = "—"
		}
		line := fmt.Sprintf("%s  %s", key, s.ValueStyle.Render(value))
		if row.Err != "" {
			line += "  " + s.ErrorStyle.Render("✗ "+row.Err)
		}
		content += line + "\n"
	}

	return "  " + s.BorderStyle.Width(boxWidth).Render(content)
}
