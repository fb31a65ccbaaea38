// Package themes holds the colour schemes of the terminal UI.
package themes

import (
	"regexp"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Expense       lipgloss.Style
	Income        lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

func newTheme(primary, secondary, fg, subtle, muted, border, success, errColor, warning lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Secondary:  secondary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Error:      errColor,
		Success:    success,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(subtle),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(border).
			Foreground(fg).
			Bold(true),
		TabActive: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),

		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Expense: lipgloss.NewStyle().
			Foreground(warning),
		Income: lipgloss.NewStyle().
			Foreground(success),
	}
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#a3a3a3"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#f59e0b"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f5c2e7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#a6adc8"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#f9e2af"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Swatch returns a style painting text in hex, or the muted colour when hex
// is not a #RRGGBB value.
func (t Theme) Swatch(hex string) lipgloss.Style {
	if !hexColor.MatchString(hex) {
		return lipgloss.NewStyle().Foreground(t.Muted)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Amount returns the style for an amount of the given type.
func (t Theme) Amount(typ model.EntryType) lipgloss.Style {
	if typ == model.EntryTypeIncome {
		return t.Income
	}
	return t.Expense
}

// DefaultIcon is shown for categories saved without an icon.
func DefaultIcon(typ model.EntryType) string {
	if typ == model.EntryTypeIncome {
		return "💰"
	}
	return "📦"
}

// CategoryIcon returns the category's own icon or the default for its type.
func CategoryIcon(cat model.Category) string {
	if cat.Icon != "" {
		return cat.Icon
	}
	return DefaultIcon(cat.Type)
}
