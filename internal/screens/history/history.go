package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/router"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/screen"
	"github.com/relcheck/relcheck/internal/store"
	"github.com/relcheck/relcheck/internal/ui/layout"
	"github.com/relcheck/relcheck/internal/ui/theme"
)

const pageLimit = 100

type historyLoadedMsg struct {
	Records []store.AssessmentRecord
	Err     error
}

type deletedMsg struct {
	ID  int
	Err error
}

// HistoryScreen lists past check-ins, newest first.
type HistoryScreen struct {
	deps     screen.Deps
	records  []store.AssessmentRecord
	selected int
	expanded map[int]bool
	deleting bool
	loaded   bool
	err      error
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscapeHandler = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		recs, err := deps.Assessments.ListByUser(context.Background(), deps.UserID, store.QueryOpts{Limit: pageLimit})
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) HandlesEscape() bool { return true }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.deleting {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.records, s.err = msg.Records, msg.Err
		s.loaded = true
		s.selected = min(s.selected, max(len(s.records)-1, 0))
		return s, nil

	case deletedMsg:
		if msg.Err != nil {
			s.err = msg.Err
			return s, nil
		}
		s.deps.Log().Info("assessment deleted", zap.Int("survey_id", msg.ID))
		s.expanded = make(map[int]bool)
		return s, s.Init()

	case tea.KeyPressMsg:
		if s.deleting {
			switch strings.ToLower(msg.String()) {
			case "y":
				s.deleting = false
				return s, s.deleteSelected()
			case "n", "esc":
				s.deleting = false
			}
			return s, nil
		}

		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			if len(s.records) > 0 {
				id := s.records[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
		case "d", "D":
			if len(s.records) > 0 {
				s.deleting = true
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) deleteSelected() tea.Cmd {
	if s.selected >= len(s.records) {
		return nil
	}
	id := s.records[s.selected].ID
	repo := s.deps.Assessments
	return func() tea.Msg {
		return deletedMsg{ID: id, Err: repo.DeleteByID(context.Background(), id)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.err != nil {
		return layout.ErrorMessage(s.err, width)
	}
	if !s.loaded {
		return layout.Message("Loading history...", width)
	}
	if len(s.records) == 0 {
		return layout.Message("No check-ins yet.", width)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		band := scoring.BandFor(rec.Percentage)
		score := lipgloss.NewStyle().Foreground(theme.BandColor(band)).Bold(true).
			Render(fmt.Sprintf("%3d%%", rec.Percentage))
		line := style.Render(prefix+rec.CreatedAt.Local().Format("Jan 02, 2006 15:04")) +
			"  " + score + "  " + style.Render(rec.Result.Recommendation.Title)
		b.WriteString(layout.Centered(line, width))
		b.WriteString("\n")

		if s.expanded[rec.ID] {
			b.WriteString(layout.Centered(renderDetails(rec, min(width-8, 72)), width))
			b.WriteString("\n")
		}
	}

	if s.deleting {
		rec := s.records[s.selected]
		prompt := fmt.Sprintf("Delete the check-in from %s? [Y/N]", rec.CreatedAt.Local().Format("Jan 02, 2006"))
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(prompt), width))
	}
	return b.String()
}

func renderDetails(rec store.AssessmentRecord, w int) string {
	res := rec.Result
	dim := theme.Hint.Width(w)

	var b strings.Builder
	b.WriteString(dim.Render(fmt.Sprintf("%d answered, %d skipped", rec.Answers.Answered(), rec.Answers.Skipped())))
	for _, q := range res.RedFlags {
		line := "  ✗ " + q.Prompt
		if q.Critical {
			line += " (critical)"
		}
		b.WriteString("\n" + theme.RedFlag.Width(w).Render(line))
	}
	for _, q := range res.GreenFlags {
		b.WriteString("\n" + theme.GreenFlag.Width(w).Render("  ✓ "+q.Prompt))
	}
	if rec.Notes != "" {
		b.WriteString("\n" + theme.Body.Width(w).Italic(true).Render("“"+rec.Notes+"”"))
	}
	return theme.Card.Render(b.String())
}
