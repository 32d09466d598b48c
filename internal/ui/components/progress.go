package components

import (
	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/relcheck/relcheck/internal/ui/theme"
)

// ProgressBar renders a static labelled bar for fraction in [0,1] that
// fits width cells.
func ProgressBar(label string, fraction float64, width int) string {
	prefix := ""
	if label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	bar := progress.New(
		progress.WithColors(theme.Secondary, theme.Primary),
		progress.WithWidth(max(width-lipgloss.Width(prefix), 10)),
	)
	return prefix + bar.ViewAs(min(max(fraction, 0), 1))
}
