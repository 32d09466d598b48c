package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/relcheck/relcheck/internal/router"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/screen"
	"github.com/relcheck/relcheck/internal/stats"
	"github.com/relcheck/relcheck/internal/store"
	"github.com/relcheck/relcheck/internal/ui/components"
	"github.com/relcheck/relcheck/internal/ui/layout"
	"github.com/relcheck/relcheck/internal/ui/theme"
)

type statsLoadedMsg struct {
	Summary stats.Summary
	Err     error
}

// StatsScreen summarizes a user's check-in history.
type StatsScreen struct {
	deps    screen.Deps
	summary stats.Summary
	loaded  bool
	err     error
}

var _ screen.Screen = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(deps screen.Deps) *StatsScreen {
	return &StatsScreen{deps: deps}
}

func (s *StatsScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		recs, err := deps.Assessments.ListByUser(context.Background(), deps.UserID, store.QueryOpts{})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Summary: stats.SummarizeWith(deps.QuestionBank(), recs)}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.summary, s.err = msg.Summary, msg.Err
		s.loaded = true
	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.err != nil {
		return layout.ErrorMessage(s.err, width)
	}
	if !s.loaded {
		return layout.Message("Loading stats...", width)
	}
	sum := s.summary
	if sum.Total == 0 {
		return layout.Message("No check-ins yet.", width)
	}

	cw := min(width-8, 72)
	var sections []string

	overview := fmt.Sprintf("%s   average %s   range %d%%–%d%%",
		pluralize(sum.Total, "check-in"),
		scoreStyle(int(sum.Average+0.5)).Render(fmt.Sprintf("%.0f%%", sum.Average)),
		sum.Min, sum.Max)
	sections = append(sections, theme.Body.Render(overview))
	sections = append(sections, renderTrend(sum.Trend))

	if len(sum.Strongest) > 0 {
		sections = append(sections, renderAreas("Strongest areas", sum.Strongest, theme.GreenFlag, cw))
	}
	if len(sum.FocusAreas) > 0 {
		sections = append(sections, renderAreas("Focus areas", sum.FocusAreas, theme.RedFlag, cw))
	}
	if len(sum.Strongest) > 0 || len(sum.FocusAreas) > 0 {
		sections = append(sections, theme.Hint.Render(rankingNote))
	}
	sections = append(sections, renderRecent(sum.Chronological(), cw))

	return layout.Centered(theme.Card.Width(cw+4).Render(strings.Join(sections, "\n\n")), width)
}

// rankingNote names the measure behind the area bars and their order.
const rankingNote = "Areas ranked by share of favorable answers"

func renderTrend(t stats.Trend) string {
	switch t {
	case stats.TrendImproving:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("↗ Improving over your recent check-ins")
	case stats.TrendDeclining:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("↘ Declining over your recent check-ins")
	default:
		return theme.Hint.Render("→ Stable (trends need at least 10 check-ins)")
	}
}

func renderAreas(title string, areas []stats.CategoryStat, style lipgloss.Style, w int) string {
	var b strings.Builder
	b.WriteString(style.Bold(true).Render(title))
	for _, c := range areas {
		b.WriteString("\n")
		b.WriteString(components.ProgressBar(c.Category.Label(), c.Mean, w))
	}
	return b.String()
}

func renderRecent(recs []store.AssessmentRecord, w int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Recent scores"))
	for _, r := range recs {
		label := r.CreatedAt.Local().Format("Jan 02") + "  " + scoreStyle(r.Percentage).Render(fmt.Sprintf("%d%%", r.Percentage))
		b.WriteString("\n")
		b.WriteString(components.ProgressBar(label, float64(r.Percentage)/100, w))
	}
	return b.String()
}

func scoreStyle(pct int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.BandColor(scoring.BandFor(pct))).Bold(true)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
