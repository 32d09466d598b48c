package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/relcheck/relcheck/internal/ui/theme"
)

// Choice is one option of a MultiChoice.
type Choice struct {
	Key   string // shortcut key, e.g. "y"
	Label string
}

// MultiChoice is a horizontal option selector with shortcut keys. The
// Marked option (an earlier answer) is shown with a dot.
type MultiChoice struct {
	Options  []Choice
	Selected int
	Marked   int // -1 for none
}

// NewMultiChoice creates a selector with no marked option.
func NewMultiChoice(options ...Choice) MultiChoice {
	return MultiChoice{Options: options, Marked: -1}
}

// Update moves the selection. It returns the index of a chosen option,
// or -1 when nothing was chosen. Enter chooses the selection; a shortcut
// key chooses its option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "right", "tab", "l":
		m.Selected = (m.Selected + 1) % len(m.Options)
		return m, -1
	case "shift+tab", "h":
		m.Selected = (m.Selected - 1 + len(m.Options)) % len(m.Options)
		return m, -1
	case "enter":
		return m, m.Selected
	}
	for i, opt := range m.Options {
		if strings.EqualFold(key, opt.Key) {
			m.Selected = i
			return m, i
		}
	}
	return m, -1
}

// View renders the options on one line.
func (m MultiChoice) View() string {
	parts := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		mark := " "
		if i == m.Marked {
			mark = "•"
		}
		label := fmt.Sprintf(" %s [%s] %s ", mark, strings.ToUpper(opt.Key), opt.Label)

		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text)
		if i == m.Selected {
			style = style.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
