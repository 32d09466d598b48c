// Package session drives a single assessment from intro to results.
//
// A Session is single-writer: one interactive caller drives it
// sequentially, so it holds no locks.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/store"
)

// CheckpointEvery is the answer-count modulus at which progress is saved.
const CheckpointEvery = 3

// Session is one in-progress assessment.
type Session struct {
	id     string
	userID string

	bank        *questionbank.Bank
	progress    store.ProgressRepo
	assessments store.AssessmentRepo
	logger      *zap.Logger
	now         func() time.Time

	phase   Phase
	cursor  questionbank.Position
	answers scoring.Answers
	notes   string
	resumed bool
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithBank uses b instead of the built-in question bank.
func WithBank(b *questionbank.Bank) Option {
	return func(s *Session) { s.bank = b }
}

// WithLogger sets the logger for checkpoint and persistence events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the clock used to timestamp completed records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session for userID, resuming saved progress if any.
//
// New always returns a usable session. A non-nil error is a
// *PersistenceError reporting that saved progress could not be loaded;
// the session then starts fresh at the intro.
func New(ctx context.Context, userID string, progress store.ProgressRepo, assessments store.AssessmentRepo, opts ...Option) (*Session, error) {
	s := &Session{
		id:          uuid.New().String(),
		userID:      userID,
		bank:        questionbank.Default(),
		progress:    progress,
		assessments: assessments,
		logger:      zap.NewNop(),
		now:         time.Now,
		answers:     scoring.Answers{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session_id", s.id), zap.String("user_id", userID))

	saved, err := progress.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("load progress failed", zap.Error(err))
		return s, &PersistenceError{Op: OpLoad, Err: err}
	}
	if saved != nil {
		s.resume(saved)
	}
	return s, nil
}

// resume adopts a saved answer map. Unknown ids are dropped. If the map
// does not cover the bank, the cursor moves to the first question in bank
// order without a slot and the session starts in progress.
func (s *Session) resume(saved scoring.Answers) {
	for id, v := range saved {
		if _, ok := s.bank.Question(id); ok {
			s.answers[id] = v
		}
	}
	s.resumed = true

	if len(s.answers) >= s.bank.Len() {
		s.logger.Debug("saved progress covers every question; starting at intro")
		return
	}

	for _, q := range s.bank.AllQuestions() {
		if s.answers.Has(q.ID) {
			continue
		}
		pos, _ := s.bank.PositionOf(q.ID)
		s.cursor = pos
		s.phase = PhaseInProgress
		s.logger.Info("resumed progress",
			zap.Int("answered", len(s.answers)),
			zap.Int("question_id", q.ID),
		)
		return
	}
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// UserID returns the owning user.
func (s *Session) UserID() string { return s.userID }

// Bank returns the question bank the session walks.
func (s *Session) Bank() *questionbank.Bank { return s.bank }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Resumed reports whether saved progress was loaded.
func (s *Session) Resumed() bool { return s.resumed }

// Closed reports whether Complete has been called.
func (s *Session) Closed() bool { return s.closed }

// Cursor returns the current category/question position.
func (s *Session) Cursor() questionbank.Position { return s.cursor }

// Answers returns a copy of the accumulated answers.
func (s *Session) Answers() scoring.Answers { return s.answers.Clone() }

// Notes returns the free-text notes.
func (s *Session) Notes() string { return s.notes }

// Progress returns the number of filled slots against the bank size.
func (s *Session) Progress() Progress {
	return Progress{Answered: len(s.answers), Total: s.bank.Len()}
}

// Current returns the question under the cursor. It reports false
// outside PhaseInProgress.
func (s *Session) Current() (questionbank.Question, bool) {
	if s.closed || s.phase != PhaseInProgress {
		return questionbank.Question{}, false
	}
	return s.bank.At(s.cursor)
}

// CurrentCategory returns the category under the cursor.
func (s *Session) CurrentCategory() (questionbank.Category, bool) {
	if s.closed || s.phase != PhaseInProgress {
		return questionbank.Category{}, false
	}
	return s.bank.CategoryAt(s.cursor.CategoryIndex)
}

// Step returns the 1-based traversal position of the current question,
// or 0 outside PhaseInProgress.
func (s *Session) Step() int {
	q, ok := s.Current()
	if !ok {
		return 0
	}
	i, _ := s.bank.TraversalIndex(q.ID)
	return i + 1
}

// Start leaves the intro. Saved answers are kept; a session without a
// resume point starts at the first question.
func (s *Session) Start() error {
	if err := s.require(PhaseIntro); err != nil {
		return err
	}
	s.phase = PhaseInProgress
	s.logger.Info("session started", zap.Bool("resumed", s.resumed))
	return nil
}

// StartOver discards all answers, clears saved progress and starts at
// the first question. Valid from the intro or while in progress.
func (s *Session) StartOver(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	if s.phase == PhaseResults {
		return ErrWrongPhase
	}
	s.answers = scoring.Answers{}
	s.cursor = questionbank.Position{}
	s.resumed = false
	s.phase = PhaseInProgress

	if err := s.progress.Clear(ctx, s.userID); err != nil {
		s.logger.Warn("clear progress failed", zap.Error(err))
		return &PersistenceError{Op: OpClear, Err: err}
	}
	s.logger.Info("session restarted")
	return nil
}

// Respond records r for the current question and advances the cursor.
//
// An invalid response returns a *ValidationError and changes nothing.
// A failed checkpoint returns a *PersistenceError after the answer was
// recorded and the cursor advanced.
func (s *Session) Respond(ctx context.Context, r Response) error {
	if err := s.require(PhaseInProgress); err != nil {
		return err
	}
	v, err := r.value()
	if err != nil {
		return err
	}
	return s.answer(ctx, v)
}

// Answer records v (nil = skip) for the current question and advances
// the cursor. See Respond.
func (s *Session) Answer(ctx context.Context, v *bool) error {
	if err := s.require(PhaseInProgress); err != nil {
		return err
	}
	if v != nil {
		b := *v
		v = &b
	}
	return s.answer(ctx, v)
}

// Skip records an explicit skip for the current question.
func (s *Session) Skip(ctx context.Context) error {
	return s.Respond(ctx, ResponseSkip)
}

func (s *Session) answer(ctx context.Context, v *bool) error {
	q, ok := s.bank.At(s.cursor)
	if !ok {
		return ErrWrongPhase
	}
	s.answers[q.ID] = v

	var cpErr error
	if len(s.answers)%CheckpointEvery == 0 {
		cpErr = s.checkpoint(ctx)
	}

	s.advance()
	return cpErr
}

func (s *Session) checkpoint(ctx context.Context) error {
	if err := s.progress.Save(ctx, s.userID, s.answers.Clone()); err != nil {
		s.logger.Warn("checkpoint failed", zap.Int("answered", len(s.answers)), zap.Error(err))
		return &PersistenceError{Op: OpCheckpoint, Err: err}
	}
	s.logger.Debug("checkpoint saved", zap.Int("answered", len(s.answers)))
	return nil
}

// advance moves to the next question in the category, else the first
// question of the next category, else to results.
func (s *Session) advance() {
	if s.cursor.QuestionIndex < s.bank.CategorySize(s.cursor.CategoryIndex)-1 {
		s.cursor.QuestionIndex++
		return
	}
	if s.cursor.CategoryIndex < len(s.bank.Categories())-1 {
		s.cursor.CategoryIndex++
		s.cursor.QuestionIndex = 0
		return
	}
	s.phase = PhaseResults
	s.logger.Info("all questions visited", zap.Int("answered", len(s.answers)))
}

// Back moves the cursor to the previous question, crossing into the last
// question of the previous category when needed. It is a no-op at the
// very first question.
func (s *Session) Back() error {
	if err := s.require(PhaseInProgress); err != nil {
		return err
	}
	switch {
	case s.cursor.QuestionIndex > 0:
		s.cursor.QuestionIndex--
	case s.cursor.CategoryIndex > 0:
		s.cursor.CategoryIndex--
		s.cursor.QuestionIndex = s.bank.CategorySize(s.cursor.CategoryIndex) - 1
	}
	return nil
}

// FinishEarly moves straight to results with the answers so far.
func (s *Session) FinishEarly() error {
	if err := s.require(PhaseInProgress); err != nil {
		return err
	}
	s.phase = PhaseResults
	s.logger.Info("finished early", zap.Int("answered", len(s.answers)))
	return nil
}

// SetNotes replaces the free-text notes.
func (s *Session) SetNotes(notes string) error {
	if s.closed {
		return ErrClosed
	}
	s.notes = notes
	return nil
}

// Preview scores the current answers without completing the session.
func (s *Session) Preview() scoring.Result {
	return scoring.ScoreWith(s.bank, s.answers)
}

// Complete scores the answers, persists the assessment and clears saved
// progress. The session is closed afterwards whether or not persistence
// succeeded; the returned Completion always carries the result so the
// caller can retry a failed save.
func (s *Session) Complete(ctx context.Context) (*Completion, error) {
	if err := s.require(PhaseResults); err != nil {
		return nil, err
	}
	s.closed = true

	answers := s.answers.Clone()
	result := scoring.ScoreWith(s.bank, answers)
	c := &Completion{
		Result:      result,
		Answers:     answers,
		Notes:       strings.TrimSpace(s.notes),
		userID:      s.userID,
		createdAt:   s.now(),
		progress:    s.progress,
		assessments: s.assessments,
		logger:      s.logger,
	}

	s.logger.Info("assessment completed",
		zap.Int("percentage", result.Percentage),
		zap.String("tier", string(result.Recommendation.Type)),
		zap.Int("red_flags", len(result.RedFlags)),
	)
	return c, c.Retry(ctx)
}

// require checks the session is open and in phase p.
func (s *Session) require(p Phase) error {
	if s.closed {
		return ErrClosed
	}
	if s.phase != p {
		return ErrWrongPhase
	}
	return nil
}
