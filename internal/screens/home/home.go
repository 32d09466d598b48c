package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/router"
	"github.com/relcheck/relcheck/internal/screen"
	"github.com/relcheck/relcheck/internal/screens/history"
	statsscreen "github.com/relcheck/relcheck/internal/screens/stats"
	"github.com/relcheck/relcheck/internal/screens/survey"
	"github.com/relcheck/relcheck/internal/stats"
	"github.com/relcheck/relcheck/internal/store"
	"github.com/relcheck/relcheck/internal/ui/components"
	"github.com/relcheck/relcheck/internal/ui/theme"
)

type homeLoadedMsg struct {
	Summary stats.Summary
	Saved   int
	Err     error
}

// HomeScreen is the landing menu.
type HomeScreen struct {
	deps    screen.Deps
	menu    components.Menu
	summary stats.Summary
	saved   int
	loaded  bool
	err     error
	now     func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Revealer = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, now: time.Now}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Reveal refreshes the summary when a pushed screen is popped.
func (h *HomeScreen) Reveal() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		var msg homeLoadedMsg

		if deps.Assessments != nil {
			recs, err := deps.Assessments.ListByUser(ctx, deps.UserID, store.QueryOpts{})
			if err != nil {
				deps.Log().Warn("load history failed", zap.Error(err))
				msg.Err = err
			}
			msg.Summary = stats.SummarizeWith(deps.QuestionBank(), recs)
		}
		if deps.Progress != nil {
			saved, err := deps.Progress.Load(ctx, deps.UserID)
			if err != nil {
				deps.Log().Warn("load progress failed", zap.Error(err))
			}
			msg.Saved = len(saved)
		}
		return msg
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	deps := h.deps
	total := deps.QuestionBank().Len()

	start := components.MenuItem{Label: "Start check-in", Hint: fmt.Sprintf("%d questions", total)}
	if h.saved > 0 {
		start = components.MenuItem{Label: "Resume check-in", Hint: fmt.Sprintf("%d of %d answered", h.saved, total)}
	}
	start.Action = func() tea.Cmd { return router.Push(survey.New(deps)) }

	noHistory := h.loaded && h.summary.Total == 0
	return []components.MenuItem{
		start,
		{
			Label:    "History",
			Hint:     pluralize(h.summary.Total, "check-in"),
			Disabled: noHistory,
			Action:   func() tea.Cmd { return router.Push(history.New(deps)) },
		},
		{
			Label:    "Stats",
			Disabled: noHistory,
			Action:   func() tea.Cmd { return router.Push(statsscreen.New(deps)) },
		},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		h.summary, h.saved, h.err = msg.Summary, msg.Saved, msg.Err
		h.loaded = true
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
			h.menu.Selected = selected
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Relationship Check-in"))
	sections = append(sections, theme.Hint.Render("An honest look at how things really are."))

	if h.loaded {
		sections = append(sections, h.renderStatus())
	}
	sections = append(sections, h.menu.View())

	content := theme.Card.Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStatus() string {
	if h.err != nil {
		return lipgloss.NewStyle().Foreground(theme.Warning).Render("History could not be loaded.")
	}
	if h.summary.Total == 0 {
		return theme.Body.Render("No check-ins yet. Start your first one below.")
	}

	last := h.summary.Recent[0]
	score := lipgloss.NewStyle().Foreground(theme.TierColor(last.Result.Recommendation.Type)).Bold(true).
		Render(fmt.Sprintf("%d%%", last.Percentage))

	var when string
	switch d := h.summary.DaysSince(h.now()); d {
	case 0:
		when = "today"
	case 1:
		when = "yesterday"
	default:
		when = fmt.Sprintf("%d days ago", d)
	}
	return theme.Body.Render("Last check-in " + when + ": " + score)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
