package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devshahoriar/custom-form/internal/tui/components"
)

// ThemeEnv names the environment variable consulted when no theme flag is
// given.
const ThemeEnv = "ONBOARD_THEME"

// TermTheme holds all color values for a TUI theme.
type TermTheme struct {
	Name string

	// Brand
	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	// Semantic
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Text
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	// Surfaces
	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
}

// DarkTheme is the default dark terminal theme.
var DarkTheme = TermTheme{
	Name:         "dark",
	Accent:       lipgloss.Color("#6366f1"),
	AccentDim:    lipgloss.Color("#4338ca"),
	Success:      lipgloss.Color("#22c55e"),
	Warning:      lipgloss.Color("#eab308"),
	Error:        lipgloss.Color("#ef4444"),
	Primary:      lipgloss.Color("#e4e4ed"),
	Secondary:    lipgloss.Color("#9090a0"),
	Dim:          lipgloss.Color("#5a5a70"),
	Border:       lipgloss.Color("#2e2e40"),
	ActiveBorder: lipgloss.Color("#6366f1"),
}

// LightTheme is the light terminal theme.
var LightTheme = TermTheme{
	Name:         "light",
	Accent:       lipgloss.Color("#4338ca"),
	AccentDim:    lipgloss.Color("#312e81"),
	Success:      lipgloss.Color("#15803d"),
	Warning:      lipgloss.Color("#a16207"),
	Error:        lipgloss.Color("#b91c1c"),
	Primary:      lipgloss.Color("#0f172a"),
	Secondary:    lipgloss.Color("#374151"),
	Dim:          lipgloss.Color("#6b7280"),
	Border:       lipgloss.Color("#d1d5db"),
	ActiveBorder: lipgloss.Color("#4338ca"),
}

func themeByName(name string) (TermTheme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	}
	return TermTheme{}, false
}

// DetectTheme returns the theme named by the flag, then ONBOARD_THEME, then
// the COLORFGBG heuristic. "auto" and "" skip straight to detection.
func DetectTheme(flagVal string) TermTheme {
	if t, ok := themeByName(flagVal); ok {
		return t
	}
	if t, ok := themeByName(os.Getenv(ThemeEnv)); ok {
		return t
	}

	// COLORFGBG is "fg;bg"; 7 and 15 are light backgrounds.
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			if bg := parts[len(parts)-1]; bg == "15" || bg == "7" {
				return LightTheme
			}
		}
	}
	return DarkTheme
}

// StyleSet contains pre-computed lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	AccentTxt    lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	WarningTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	Banner      lipgloss.Style
	VersionPill lipgloss.Style

	StepBadgeComplete lipgloss.Style
	StepBadgeActive   lipgloss.Style
	StepBadgePending  lipgloss.Style
	BarFilled         lipgloss.Style
	BarEmpty          lipgloss.Style
}

// NewStyleSet creates a StyleSet from a theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	badge := lipgloss.NewStyle().Padding(0, 1)
	return &StyleSet{
		Theme: theme,

		Title:        lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(theme.Secondary),
		AccentTxt:    lipgloss.NewStyle().Foreground(theme.Accent),
		DimTxt:       lipgloss.NewStyle().Foreground(theme.Dim),
		SuccessTxt:   lipgloss.NewStyle().Foreground(theme.Success),
		WarningTxt:   lipgloss.NewStyle().Foreground(theme.Warning),
		ErrorTxt:     lipgloss.NewStyle().Foreground(theme.Error),
		PrimaryTxt:   lipgloss.NewStyle().Foreground(theme.Primary),
		SecondaryTxt: lipgloss.NewStyle().Foreground(theme.Secondary),

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ActiveBorder).
			Padding(0, 1),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		KbdKey: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Dim).
			Padding(0, 1),
		KbdDesc: lipgloss.NewStyle().Foreground(theme.Dim),

		Banner: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		VersionPill: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		StepBadgeComplete: badge.
			Background(theme.Success).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		StepBadgeActive: badge.
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		StepBadgePending: badge.
			Background(theme.Border).
			Foreground(theme.Secondary),
		BarFilled: lipgloss.NewStyle().Foreground(theme.Success),
		BarEmpty:  lipgloss.NewStyle().Foreground(theme.Border),
	}
}

// FieldStyles derives the widget styles from the set.
func (s *StyleSet) FieldStyles() components.Styles {
	return components.Styles{
		Label:         s.PrimaryTxt.Bold(true),
		Description:   s.SecondaryTxt,
		Error:         s.ErrorTxt,
		Success:       s.SuccessTxt,
		Hint:          s.DimTxt,
		Value:         s.PrimaryTxt,
		Border:        s.InactiveBorder,
		FocusedBorder: s.ActiveBorder,
		KbdKey:        s.KbdKey,
		KbdDesc:       s.KbdDesc,
		AccentColor:   s.Theme.Accent,
		DimColor:      s.Theme.Dim,
	}
}
