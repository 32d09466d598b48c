package survey

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/scoring"
	sess "github.com/relcheck/relcheck/internal/session"
	"github.com/relcheck/relcheck/internal/ui/components"
	"github.com/relcheck/relcheck/internal/ui/layout"
	"github.com/relcheck/relcheck/internal/ui/theme"
)

const maxFlagsShown = 6

func (s *SurveyScreen) View(width, height int) string {
	if s.err != nil {
		return layout.ErrorMessage(s.err, width)
	}
	if s.session == nil {
		return layout.Message("Loading...", width)
	}
	if s.confirmLeave {
		return s.renderConfirmLeave(width, height)
	}

	var body string
	switch {
	case s.completion != nil:
		body = s.renderCompleted(width)
	case s.session.Phase() == sess.PhaseIntro:
		body = s.renderIntro(width)
	case s.session.Phase() == sess.PhaseInProgress:
		body = s.renderQuestion(width)
	default:
		body = s.renderResults(width)
	}

	if s.warn != "" {
		body += "\n\n" + layout.Centered(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.warn), width)
	}
	return body
}

func textWidth(width int) int {
	return min(max(width-8, 20), 76)
}

func (s *SurveyScreen) renderIntro(width int) string {
	tw := textWidth(width)
	p := s.session.Progress()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title.Render("Relationship Check-in"), width))
	b.WriteString("\n\n")

	intro := fmt.Sprintf("%d yes/no questions about how things really are. "+
		"Answer honestly; there are no wrong answers. Skip anything you are unsure about. "+
		"Your progress is saved as you go.", p.Total)
	b.WriteString(layout.Centered(theme.Body.Width(tw).Render(intro), width))
	b.WriteString("\n\n")

	if s.session.Resumed() {
		note := fmt.Sprintf("You have %d of %d questions answered from an earlier check-in.", p.Answered, p.Total)
		b.WriteString(layout.Centered(theme.Hint.Width(tw).Render(note), width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *SurveyScreen) renderQuestion(width int) string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	tw := textWidth(width)
	bank := s.session.Bank()
	p := s.session.Progress()

	var b strings.Builder

	cat, _ := s.session.CurrentCategory()
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + cat.Label())
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.session.Step(), bank.Len()))
	gap := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	b.WriteString(infoLeft)
	if gap > 0 {
		b.WriteString(strings.Repeat(" ", gap) + infoRight)
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(tw).Align(lipgloss.Center)
	b.WriteString(layout.Centered(prompt.Render(q.Prompt), width))
	b.WriteString("\n\n")

	if q.Guideline != "" {
		b.WriteString(layout.Centered(theme.Hint.Width(tw).Align(lipgloss.Center).Render(q.Guideline), width))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(s.choice.View(), width))
	b.WriteString("\n\n")

	if q.QuickTake != "" {
		take := lipgloss.NewStyle().Foreground(theme.Accent).Width(tw).Align(lipgloss.Center).Render(q.QuickTake)
		b.WriteString(layout.Centered(take, width))
		b.WriteString("\n\n")
	}

	bar := components.ProgressBar(fmt.Sprintf("%d/%d answered", p.Answered, p.Total), p.Fraction(), tw)
	b.WriteString(layout.Centered(bar, width))
	return b.String()
}

func (s *SurveyScreen) renderResults(width int) string {
	res := s.session.Preview()
	tw := textWidth(width)

	var b strings.Builder
	b.WriteString(renderResult(res, width, tw))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Hint.Render("Notes for future you (optional):"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(s.notes.View(), width))
	return b.String()
}

func (s *SurveyScreen) renderCompleted(width int) string {
	c := s.completion
	tw := textWidth(width)

	var b strings.Builder
	b.WriteString(renderResult(c.Result, width, tw))
	b.WriteString("\n\n")

	if c.Persisted() {
		b.WriteString(layout.Centered(theme.GreenFlag.Render("✓ Saved to your history"), width))
	} else {
		b.WriteString(layout.Centered(theme.RedFlag.Render("✗ Not saved yet"), width))
	}
	b.WriteString("\n")

	switch {
	case s.generating:
		b.WriteString("\n" + layout.Centered(theme.Hint.Render("Thinking about your answers..."), width))
	case s.insightErr != nil:
		b.WriteString("\n" + layout.Centered(theme.RedFlag.Width(tw).Render("Insight failed: "+s.insightErr.Error()), width))
	case s.insight != nil:
		b.WriteString("\n" + renderInsight(s.insight.Summary, s.insight.Suggestions, s.insight.Safety, tw, width))
	}
	return b.String()
}

func (s *SurveyScreen) renderConfirmLeave(width, height int) string {
	msg := "Leave this check-in?\n\n"
	switch {
	case s.completion != nil && s.completion.Record == nil:
		msg += "Saving failed. Leaving now discards these results;\npress N and then R to retry."
	case s.completion != nil:
		msg += "Your results are saved, but old progress\ncould not be cleared."
	case s.session.Phase() == sess.PhaseResults:
		msg += "Your results have not been saved yet."
	default:
		msg += "Answers are saved every few questions;\nthe last one or two may be lost."
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(theme.Card.Render(msg + "\n\n[Y] Leave   [N] Stay"))
}

func renderResult(res scoring.Result, width, tw int) string {
	var b strings.Builder
	rec := res.Recommendation
	tierStyle := lipgloss.NewStyle().Foreground(theme.TierColor(rec.Type)).Bold(true)

	b.WriteString("\n")
	b.WriteString(layout.Centered(tierStyle.Render(fmt.Sprintf("%d%%", res.Percentage)), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(tierStyle.Render(rec.Title), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Body.Width(tw).Align(lipgloss.Center).Render(rec.Message), width))

	if len(res.RedFlags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(renderFlags("Red flags", res.RedFlags, theme.RedFlag, tw), width))
	}
	if len(res.GreenFlags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(renderFlags("Green flags", res.GreenFlags, theme.GreenFlag, tw), width))
	}
	return b.String()
}

func renderFlags(title string, flags []questionbank.Question, style lipgloss.Style, tw int) string {
	var b strings.Builder
	b.WriteString(style.Bold(true).Render(fmt.Sprintf("%s (%d)", title, len(flags))))
	for i, q := range flags {
		if i == maxFlagsShown {
			b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("  ...and %d more", len(flags)-maxFlagsShown)))
			break
		}
		line := "  • " + q.Prompt
		if q.Critical {
			line += " (critical)"
		}
		b.WriteString("\n" + style.Width(tw).Render(line))
	}
	return b.String()
}

func renderInsight(summary string, suggestions []string, safety string, tw, width int) string {
	var b strings.Builder
	if safety != "" {
		b.WriteString(theme.RedFlag.Bold(true).Width(tw).Render(safety))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Body.Width(tw).Render(summary))
	for _, sg := range suggestions {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Width(tw).Render("→ "+sg))
	}
	return layout.Centered(theme.Card.Render(b.String()), width)
}
