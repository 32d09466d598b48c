package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/store"
)

// fakeProgress is an in-memory ProgressRepo that counts calls.
type fakeProgress struct {
	saved    map[string]scoring.Answers
	saves    int
	clears   int
	loadErr  error
	saveErr  error
	clearErr error
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{saved: make(map[string]scoring.Answers)}
}

func (f *fakeProgress) Load(_ context.Context, userID string) (scoring.Answers, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.saved[userID], nil
}

func (f *fakeProgress) Save(_ context.Context, userID string, a scoring.Answers) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[userID] = a.Clone()
	return nil
}

func (f *fakeProgress) Clear(_ context.Context, userID string) error {
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.saved, userID)
	return nil
}

// fakeAssessments is an in-memory AssessmentRepo.
type fakeAssessments struct {
	records   []store.AssessmentRecord
	insertErr error
}

func (f *fakeAssessments) Insert(_ context.Context, d store.AssessmentData) (*store.AssessmentRecord, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	rec := store.AssessmentRecord{
		ID:         len(f.records) + 1,
		UserID:     d.UserID,
		Answers:    d.Answers,
		Percentage: d.Percentage,
		Result:     d.Result,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
	}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeAssessments) ListByUser(context.Context, string, store.QueryOpts) ([]store.AssessmentRecord, error) {
	return f.records, nil
}

func (f *fakeAssessments) Get(context.Context, int) (*store.AssessmentRecord, error) {
	return nil, store.ErrNotFound
}

func (f *fakeAssessments) DeleteByID(context.Context, int) error { return nil }

func (f *fakeAssessments) DeleteByUser(context.Context, string) (int, error) { return 0, nil }

func newTestSession(t *testing.T, p *fakeProgress, a *fakeAssessments) *Session {
	t.Helper()
	s, err := New(context.Background(), "alice", p, a)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func started(t *testing.T) (*Session, *fakeProgress, *fakeAssessments) {
	t.Helper()
	p, a := newFakeProgress(), &fakeAssessments{}
	s := newTestSession(t, p, a)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s, p, a
}

func currentID(t *testing.T, s *Session) int {
	t.Helper()
	q, ok := s.Current()
	if !ok {
		t.Fatalf("no current question in phase %s", s.Phase())
	}
	return q.ID
}

func TestNew_FreshStartsAtIntro(t *testing.T) {
	s := newTestSession(t, newFakeProgress(), &fakeAssessments{})
	if s.Phase() != PhaseIntro {
		t.Errorf("phase = %s, want intro", s.Phase())
	}
	if s.Resumed() {
		t.Error("fresh session reports resumed")
	}
	if _, ok := s.Current(); ok {
		t.Error("intro should have no current question")
	}
	if s.ID() == "" {
		t.Error("expected session id")
	}
}

func TestResume_FirstAbsentInBankOrder(t *testing.T) {
	p := newFakeProgress()
	saved := scoring.Answers{}
	for id := 1; id <= 10; id++ {
		saved[id] = scoring.No()
	}
	p.saved["alice"] = saved

	s := newTestSession(t, p, &fakeAssessments{})
	if s.Phase() != PhaseInProgress {
		t.Fatalf("phase = %s, want in-progress", s.Phase())
	}
	if got := currentID(t, s); got != 11 {
		t.Errorf("resumed at question %d, want 11", got)
	}
	if !s.Resumed() {
		t.Error("expected Resumed")
	}
	if got := s.Progress().Answered; got != 10 {
		t.Errorf("answered = %d, want 10", got)
	}
}

func TestResume_SkipsCountAsPresent(t *testing.T) {
	p := newFakeProgress()
	p.saved["alice"] = scoring.Answers{1: nil, 2: scoring.No()}

	s := newTestSession(t, p, &fakeAssessments{})
	if got := currentID(t, s); got != 3 {
		t.Errorf("resumed at question %d, want 3", got)
	}
}

func TestResume_AllAnsweredStartsAtIntro(t *testing.T) {
	p := newFakeProgress()
	saved := scoring.Answers{}
	for _, q := range questionbank.AllQuestions() {
		saved[q.ID] = scoring.Yes()
	}
	p.saved["alice"] = saved

	s := newTestSession(t, p, &fakeAssessments{})
	if s.Phase() != PhaseIntro {
		t.Errorf("phase = %s, want intro", s.Phase())
	}
}

func TestResume_DropsUnknownIDs(t *testing.T) {
	p := newFakeProgress()
	saved := scoring.Answers{500: scoring.Yes(), 501: scoring.Yes()}
	for _, q := range questionbank.AllQuestions()[:35] {
		saved[q.ID] = scoring.Yes()
	}
	p.saved["alice"] = saved

	s := newTestSession(t, p, &fakeAssessments{})
	if s.Phase() != PhaseInProgress {
		t.Fatalf("phase = %s, want in-progress", s.Phase())
	}
	if got := currentID(t, s); got != 36 {
		t.Errorf("resumed at %d, want 36", got)
	}
	if s.Answers().Has(500) {
		t.Error("unknown id kept")
	}
}

func TestNew_LoadFailureStartsFresh(t *testing.T) {
	p := newFakeProgress()
	p.loadErr = errors.New("offline")

	s, err := New(context.Background(), "alice", p, &fakeAssessments{})
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != OpLoad {
		t.Fatalf("err = %v, want load PersistenceError", err)
	}
	if s == nil || s.Phase() != PhaseIntro {
		t.Fatal("expected usable session at intro")
	}
}

func TestAnswer_AdvancesInTraversalOrder(t *testing.T) {
	s, _, _ := started(t)
	ctx := context.Background()

	for _, want := range questionbank.Default().TraversalOrder() {
		if got := currentID(t, s); got != want.ID {
			t.Fatalf("at question %d, want %d", got, want.ID)
		}
		if err := s.Respond(ctx, ResponseYes); err != nil {
			t.Fatalf("respond: %v", err)
		}
	}
	if s.Phase() != PhaseResults {
		t.Errorf("phase = %s, want results", s.Phase())
	}
	if got := s.Progress(); got.Answered != got.Total {
		t.Errorf("progress = %+v", got)
	}
}

func TestCheckpointCadence(t *testing.T) {
	s, p, _ := started(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Respond(ctx, ResponseNo); err != nil {
			t.Fatalf("respond %d: %v", i, err)
		}
	}
	if p.saves != 1 {
		t.Fatalf("saves after 3 answers = %d, want 1", p.saves)
	}
	if got := len(p.saved["alice"]); got != 3 {
		t.Errorf("checkpoint holds %d answers, want 3", got)
	}

	if err := s.Skip(ctx); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if p.saves != 1 {
		t.Errorf("saves after 4th answer = %d, want 1", p.saves)
	}

	// Skips occupy slots and count toward the modulus.
	s.Skip(ctx)
	s.Skip(ctx)
	if p.saves != 2 {
		t.Errorf("saves after 6 slots = %d, want 2", p.saves)
	}

	// An overwrite after Back keeps the size at 6, which still divides by 3.
	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if err := s.Respond(ctx, ResponseYes); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if p.saves != 3 {
		t.Errorf("saves after overwrite = %d, want 3", p.saves)
	}
}

func TestCheckpointFailure_KeepsSessionUsable(t *testing.T) {
	s, p, _ := started(t)
	ctx := context.Background()
	p.saveErr = errors.New("disk full")

	s.Respond(ctx, ResponseYes)
	s.Respond(ctx, ResponseYes)
	err := s.Respond(ctx, ResponseYes)

	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != OpCheckpoint {
		t.Fatalf("err = %v, want checkpoint PersistenceError", err)
	}
	if s.Progress().Answered != 3 {
		t.Errorf("answered = %d, want 3", s.Progress().Answered)
	}
	if got := currentID(t, s); got != 4 {
		t.Errorf("cursor at %d, want 4", got)
	}

	// Next checkpoint retries opportunistically.
	p.saveErr = nil
	for i := 0; i < 3; i++ {
		if err := s.Respond(ctx, ResponseNo); err != nil {
			t.Fatalf("respond: %v", err)
		}
	}
	if got := len(p.saved["alice"]); got != 6 {
		t.Errorf("checkpoint holds %d answers, want 6", got)
	}
}

func TestRespond_InvalidIsNoop(t *testing.T) {
	s, p, _ := started(t)

	err := s.Respond(context.Background(), Response(42))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if got := currentID(t, s); got != 1 {
		t.Errorf("cursor moved to %d", got)
	}
	if s.Progress().Answered != 0 || p.saves != 0 {
		t.Error("invalid response changed state")
	}
}

func TestBack_RoundTrip(t *testing.T) {
	s, _, _ := started(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		s.Respond(ctx, ResponseYes)
	}
	at := currentID(t, s)

	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	prev := currentID(t, s)
	if err := s.Respond(ctx, ResponseNo); err != nil {
		t.Fatalf("respond: %v", err)
	}

	if got := currentID(t, s); got != at {
		t.Errorf("after back+answer at %d, want %d", got, at)
	}
	if s.Progress().Answered != 4 {
		t.Errorf("answered = %d, want 4 (slot overwritten)", s.Progress().Answered)
	}
	if v, _ := s.Answers().Value(prev); v {
		t.Errorf("question %d not overwritten", prev)
	}
}

func TestBack_Wraparound(t *testing.T) {
	s, _, _ := started(t)
	ctx := context.Background()

	// No-op at the very first question.
	s.Back()
	if got := s.Cursor(); got != (questionbank.Position{}) {
		t.Fatalf("cursor = %+v after back at start", got)
	}

	// Walk into Power (the category after Attraction, which holds 6 and 14).
	for currentID(t, s) != 7 {
		s.Respond(ctx, ResponseYes)
	}
	if s.Cursor().QuestionIndex != 0 {
		t.Fatalf("question 7 should open its category, got %+v", s.Cursor())
	}

	s.Back()
	if got := currentID(t, s); got != 14 {
		t.Errorf("back across category boundary landed on %d, want 14", got)
	}
	s.Back()
	if got := currentID(t, s); got != 6 {
		t.Errorf("back within category landed on %d, want 6", got)
	}
}

func TestPhaseGuards(t *testing.T) {
	s := newTestSession(t, newFakeProgress(), &fakeAssessments{})
	ctx := context.Background()

	if err := s.Respond(ctx, ResponseYes); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("respond at intro: %v", err)
	}
	if err := s.Back(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("back at intro: %v", err)
	}
	if err := s.FinishEarly(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("finish at intro: %v", err)
	}
	if _, err := s.Complete(ctx); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("complete at intro: %v", err)
	}

	s.Start()
	if err := s.Start(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second start: %v", err)
	}
	s.FinishEarly()
	if err := s.Respond(ctx, ResponseYes); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("respond at results: %v", err)
	}
	if err := s.Back(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("back at results: %v", err)
	}

	if _, err := s.Complete(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.SetNotes("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("notes after complete: %v", err)
	}
	if _, err := s.Complete(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("second complete: %v", err)
	}
}

func TestFinishEarly_Complete(t *testing.T) {
	s, p, a := started(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Respond(ctx, ResponseYes) // q1 reversed: favorable
	s.Respond(ctx, ResponseYes) // q2 critical: unfavorable
	s.Respond(ctx, ResponseNo)
	if p.saves != 1 {
		t.Fatalf("saves = %d, want 1", p.saves)
	}

	if err := s.FinishEarly(); err != nil {
		t.Fatalf("finish early: %v", err)
	}
	s.SetNotes("  talk on sunday \n")

	c, err := s.Complete(ctx)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if c.Result.Recommendation.Type != scoring.TierCritical {
		t.Errorf("tier = %s, want critical", c.Result.Recommendation.Type)
	}
	if !c.Persisted() || c.Record == nil {
		t.Fatal("expected persisted completion")
	}
	if len(a.records) != 1 {
		t.Fatalf("records = %d, want 1", len(a.records))
	}
	rec := a.records[0]
	if rec.Notes != "talk on sunday" {
		t.Errorf("notes = %q, want trimmed", rec.Notes)
	}
	if rec.Percentage != c.Result.Percentage || !rec.CreatedAt.Equal(now) {
		t.Errorf("record = %+v", rec)
	}
	if _, ok := p.saved["alice"]; ok || p.clears != 1 {
		t.Error("progress not cleared after completion")
	}
	if !s.Closed() {
		t.Error("session not closed")
	}
}

func TestComplete_InsertFailureRetainsResult(t *testing.T) {
	s, p, a := started(t)
	ctx := context.Background()
	a.insertErr = errors.New("network down")

	s.Respond(ctx, ResponseYes)
	s.FinishEarly()

	c, err := s.Complete(ctx)
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != OpInsert {
		t.Fatalf("err = %v, want insert PersistenceError", err)
	}
	if c == nil {
		t.Fatal("completion discarded on failure")
	}
	if c.Result.MaxScore == 0 || !c.Answers.Has(1) {
		t.Errorf("result lost: %+v", c.Result)
	}
	if c.Persisted() {
		t.Error("failed completion reports persisted")
	}
	if p.clears != 0 {
		t.Error("progress cleared although insert failed")
	}
	if !s.Closed() {
		t.Error("session should close regardless of persistence")
	}

	a.insertErr = nil
	if err := c.Retry(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !c.Persisted() || len(a.records) != 1 || p.clears != 1 {
		t.Errorf("retry did not persist: records=%d clears=%d", len(a.records), p.clears)
	}

	// Retrying a persisted completion does not duplicate the record.
	if err := c.Retry(ctx); err != nil {
		t.Fatalf("second retry: %v", err)
	}
	if len(a.records) != 1 {
		t.Errorf("records = %d after second retry", len(a.records))
	}
}

func TestPersistenceError_NamesOperation(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		op   string
		want string
	}{
		{OpLoad, "load saved progress: disk full"},
		{OpCheckpoint, "save progress checkpoint: disk full"},
		{OpInsert, "save assessment: disk full"},
		{OpClear, "clear saved progress: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			err := &PersistenceError{Op: tt.op, Err: cause}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(err, cause) {
				t.Error("cause not unwrapped")
			}
		})
	}
}

func TestComplete_ClearFailure(t *testing.T) {
	s, p, a := started(t)
	ctx := context.Background()
	p.clearErr = errors.New("locked")

	s.FinishEarly()
	c, err := s.Complete(ctx)
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != OpClear {
		t.Fatalf("err = %v, want clear PersistenceError", err)
	}
	if c.Record == nil || len(a.records) != 1 {
		t.Fatal("record should be stored before clear")
	}

	p.clearErr = nil
	if err := c.Retry(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(a.records) != 1 {
		t.Errorf("retry re-inserted: %d records", len(a.records))
	}
}

func TestEmptyCompletionIsDanger(t *testing.T) {
	s, _, _ := started(t)
	s.FinishEarly()
	c, err := s.Complete(context.Background())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if c.Result.Percentage != 0 || c.Result.Recommendation.Type != scoring.TierDanger {
		t.Errorf("empty result = %+v", c.Result)
	}
}

func TestStartOver(t *testing.T) {
	p := newFakeProgress()
	p.saved["alice"] = scoring.Answers{1: scoring.Yes(), 2: scoring.No(), 3: nil}
	s := newTestSession(t, p, &fakeAssessments{})

	if err := s.StartOver(context.Background()); err != nil {
		t.Fatalf("start over: %v", err)
	}
	if s.Progress().Answered != 0 || currentID(t, s) != 1 {
		t.Errorf("start over kept state: %+v", s.Progress())
	}
	if _, ok := p.saved["alice"]; ok {
		t.Error("saved progress not cleared")
	}
}

func TestStep(t *testing.T) {
	s, _, _ := started(t)
	ctx := context.Background()
	if s.Step() != 1 {
		t.Errorf("step = %d, want 1", s.Step())
	}
	s.Respond(ctx, ResponseYes)
	s.Respond(ctx, ResponseYes)
	if s.Step() != 3 {
		t.Errorf("step = %d, want 3", s.Step())
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		in   string
		want Response
		err  bool
	}{
		{"yes", ResponseYes, false},
		{"y", ResponseYes, false},
		{"no", ResponseNo, false},
		{"skip", ResponseSkip, false},
		{"maybe", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseResponse(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseResponse(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseResponse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
