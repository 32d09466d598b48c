package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/relcheck/relcheck/internal/scoring"
)

// Color palette: warm and calm, with strong signal colors for flags.
var (
	Primary   = lipgloss.Color("#E11D48") // Rose
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	GreenFlag = lipgloss.NewStyle().
			Foreground(Success)

	RedFlag = lipgloss.NewStyle().
		Foreground(Error)
)

// BandColor maps a score band to its display color.
func BandColor(b scoring.Band) color.Color {
	switch b {
	case scoring.BandExcellent:
		return Success
	case scoring.BandGood:
		return Secondary
	case scoring.BandAverage:
		return Warning
	default:
		return Error
	}
}

// TierColor maps a recommendation tier to its display color.
func TierColor(t scoring.Tier) color.Color {
	switch t {
	case scoring.TierHealthy:
		return Success
	case scoring.TierWorkNeeded:
		return Warning
	case scoring.TierSeriousConcerns:
		return Accent
	default:
		return Error
	}
}
