package survey

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/insight"
	"github.com/relcheck/relcheck/internal/router"
	"github.com/relcheck/relcheck/internal/screen"
	sess "github.com/relcheck/relcheck/internal/session"
	"github.com/relcheck/relcheck/internal/ui/components"
	"github.com/relcheck/relcheck/internal/ui/layout"
)

var choices = []components.Choice{
	{Key: "y", Label: "Yes"},
	{Key: "n", Label: "No"},
	{Key: "s", Label: "Skip"},
}

var choiceResponses = []sess.Response{sess.ResponseYes, sess.ResponseNo, sess.ResponseSkip}

// SurveyScreen walks the user through one check-in.
type SurveyScreen struct {
	deps screen.Deps

	session    *sess.Session
	choice     components.MultiChoice
	notes      components.TextInput
	completion *sess.Completion

	confirmLeave bool
	warn         string
	err          error

	insight    *insight.Insight
	insightErr error
	generating bool
}

var _ screen.Screen = (*SurveyScreen)(nil)
var _ screen.KeyHintProvider = (*SurveyScreen)(nil)
var _ screen.EscapeHandler = (*SurveyScreen)(nil)

// New creates a survey screen.
func New(deps screen.Deps) *SurveyScreen {
	return &SurveyScreen{
		deps:   deps,
		choice: components.NewMultiChoice(choices...),
		notes:  components.NewTextInput("Anything on your mind? (optional)", components.NotesLimit, 60),
	}
}

func (s *SurveyScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ss, err := sess.New(context.Background(), deps.UserID, deps.Progress, deps.Assessments,
			sess.WithBank(deps.QuestionBank()),
			sess.WithLogger(deps.Log()),
		)
		return sessionLoadedMsg{Session: ss, Err: err}
	}
}

func (s *SurveyScreen) Title() string {
	if s.session == nil {
		return "Check-in"
	}
	switch s.session.Phase() {
	case sess.PhaseInProgress:
		if c, ok := s.session.CurrentCategory(); ok {
			return c.Label()
		}
	case sess.PhaseResults:
		return "Results"
	}
	return "Check-in"
}

func (s *SurveyScreen) HandlesEscape() bool { return true }

func (s *SurveyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return nil
	case s.confirmLeave:
		return []layout.KeyHint{{Key: "Y", Description: "Leave"}, {Key: "N", Description: "Stay"}}
	case s.completion != nil:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Done"}}
		if !s.completion.Persisted() {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry save"})
		} else if s.deps.Insight != nil && s.deps.Insight.Available() && s.insight == nil {
			hints = append(hints, layout.KeyHint{Key: "I", Description: "AI insight"})
		}
		return hints
	}

	switch s.session.Phase() {
	case sess.PhaseIntro:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Begin"}}
		if s.session.Resumed() {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Start over"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	case sess.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "Y/N/S", Description: "Answer"},
			{Key: "←", Description: "Back"},
			{Key: "F", Description: "Finish early"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save results"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (s *SurveyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		s.session = msg.Session
		if msg.Err != nil {
			s.warn = "Saved progress could not be loaded; starting fresh."
		}
		s.syncChoice()
		return s, nil

	case insightMsg:
		s.generating = false
		s.insight, s.insightErr = msg.Insight, msg.Err
		return s, nil

	case tea.KeyPressMsg:
		if s.session == nil {
			if msg.String() == "esc" {
				return s, router.Pop()
			}
			return s, nil
		}
		if s.confirmLeave {
			return s.handleConfirmLeave(msg)
		}
		if s.completion != nil {
			return s.handleCompletedKey(msg)
		}
		switch s.session.Phase() {
		case sess.PhaseIntro:
			return s.handleIntroKey(msg)
		case sess.PhaseInProgress:
			return s.handleQuestionKey(msg)
		case sess.PhaseResults:
			return s.handleResultsKey(msg)
		}
	}

	if s.session != nil && s.session.Phase() == sess.PhaseResults && s.completion == nil {
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SurveyScreen) handleConfirmLeave(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		return s, router.Pop()
	case "n", "esc":
		s.confirmLeave = false
	}
	return s, nil
}

func (s *SurveyScreen) handleIntroKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "enter":
		if err := s.session.Start(); err != nil {
			s.err = err
		}
		s.syncChoice()
	case "r", "R":
		if !s.session.Resumed() {
			return s, nil
		}
		if err := s.session.StartOver(ctx); err != nil {
			s.report(err)
		}
		s.syncChoice()
	case "esc":
		return s, router.Pop()
	}
	return s, nil
}

func (s *SurveyScreen) handleQuestionKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "left", "b", "backspace":
		if err := s.session.Back(); err != nil {
			s.err = err
		}
		s.syncChoice()
		return s, nil
	case "f", "F":
		if err := s.session.FinishEarly(); err != nil {
			s.err = err
		}
		return s, s.focusNotes()
	case "esc":
		s.confirmLeave = true
		return s, nil
	}

	var picked int
	s.choice, picked = s.choice.Update(msg)
	if picked < 0 {
		return s, nil
	}

	s.warn = ""
	if err := s.session.Respond(ctx, choiceResponses[picked]); err != nil {
		s.report(err)
	}
	if s.session.Phase() == sess.PhaseResults {
		return s, s.focusNotes()
	}
	s.syncChoice()
	return s, nil
}

func (s *SurveyScreen) handleResultsKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.confirmLeave = true
		return s, nil
	case "enter":
		if err := s.session.SetNotes(s.notes.Value()); err != nil {
			s.err = err
			return s, nil
		}
		c, err := s.session.Complete(context.Background())
		if err != nil && c == nil {
			s.err = err
			return s, nil
		}
		s.completion = c
		if err != nil {
			s.report(err)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.notes, cmd = s.notes.Update(msg)
	return s, cmd
}

func (s *SurveyScreen) handleCompletedKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if !s.completion.Persisted() {
			s.confirmLeave = true
			return s, nil
		}
		return s, router.Pop()
	case "r", "R":
		if s.completion.Persisted() {
			return s, nil
		}
		s.warn = ""
		if err := s.completion.Retry(context.Background()); err != nil {
			s.report(err)
		}
	case "i", "I":
		return s, s.requestInsight()
	}
	return s, nil
}

func (s *SurveyScreen) requestInsight() tea.Cmd {
	svc := s.deps.Insight
	if svc == nil || !svc.Available() || s.generating || s.insight != nil || s.completion.Record == nil {
		return nil
	}
	s.generating = true
	s.insightErr = nil
	rec := *s.completion.Record
	return func() tea.Msg {
		in, err := svc.Generate(context.Background(), rec)
		return insightMsg{Insight: in, Err: err}
	}
}

// report turns persistence failures into a warning line; the screen
// stays usable.
func (s *SurveyScreen) report(err error) {
	var pe *sess.PersistenceError
	if errors.As(err, &pe) {
		switch pe.Op {
		case sess.OpCheckpoint:
			s.warn = "Progress could not be saved. Your answers are kept for now."
		case sess.OpInsert:
			s.warn = "Results could not be saved. Press R to retry."
		case sess.OpClear:
			s.warn = "Results saved, but saved progress could not be cleared."
		default:
			s.warn = pe.Error()
		}
		s.deps.Log().Warn("survey persistence failed", zap.String("op", pe.Op), zap.Error(pe.Err))
		return
	}
	s.err = err
}

// syncChoice resets the selector to the current question, marking any
// earlier answer.
func (s *SurveyScreen) syncChoice() {
	s.choice = components.NewMultiChoice(choices...)
	q, ok := s.session.Current()
	if !ok {
		return
	}
	answers := s.session.Answers()
	if !answers.Has(q.ID) {
		return
	}
	switch v, answered := answers.Value(q.ID); {
	case !answered:
		s.choice.Marked = 2
	case v:
		s.choice.Marked = 0
	default:
		s.choice.Marked = 1
	}
	s.choice.Selected = s.choice.Marked
}

func (s *SurveyScreen) focusNotes() tea.Cmd {
	s.notes.SetValue(s.session.Notes())
	return s.notes.Init()
}
