package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/relcheck/relcheck/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpen_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relcheck.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if err := s.ProgressRepo().Save(ctx, "u", scoring.Answers{1: scoring.Yes()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	s.Close()

	// Migration is idempotent and data survives.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.ProgressRepo().Load(ctx, "u")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d answers after reopen, want 1", len(got))
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpen_FileReopen.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProgress_LoadSaveClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	got, err := repo.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil answers when none saved")
	}

	want := scoring.Answers{1: scoring.Yes(), 2: scoring.No(), 3: nil}
	if err := repo.Save(ctx, "alice", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !got.Has(3) {
		t.Error("skip entry lost in round trip")
	}

	// Latest write wins.
	next := scoring.Answers{1: scoring.No()}
	if err := repo.Save(ctx, "alice", next); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ = repo.Load(ctx, "alice")
	if !got.Equal(next) {
		t.Errorf("after upsert got %v, want %v", got, next)
	}

	// Other users are isolated.
	if other, _ := repo.Load(ctx, "bob"); other != nil {
		t.Error("bob should have no progress")
	}

	if err := repo.Clear(ctx, "alice"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := repo.Load(ctx, "alice"); got != nil {
		t.Error("progress still present after clear")
	}
	if err := repo.Clear(ctx, "alice"); err != nil {
		t.Errorf("clearing missing progress: %v", err)
	}
}

func insertAssessment(t *testing.T, repo AssessmentRepo, user string, pct int, at time.Time) *AssessmentRecord {
	t.Helper()
	answers := scoring.Answers{1: scoring.Yes(), 2: scoring.No()}
	res := scoring.Score(answers)
	rec, err := repo.Insert(context.Background(), AssessmentData{
		UserID:     user,
		Answers:    answers,
		Percentage: pct,
		Result:     res,
		Notes:      "note",
		CreatedAt:  at,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return rec
}

func TestAssessment_InsertGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := insertAssessment(t, repo, "alice", 100, at)
	if rec.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := repo.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	if got.UserID != "alice" || got.Percentage != 100 || got.Notes != "note" {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, at)
	}
	if !got.Answers.Equal(rec.Answers) {
		t.Errorf("answers = %v, want %v", got.Answers, rec.Answers)
	}
	if got.Result.Recommendation.Type != rec.Result.Recommendation.Type {
		t.Errorf("tier = %q, want %q", got.Result.Recommendation.Type, rec.Result.Recommendation.Type)
	}
	if len(got.Result.GreenFlags) != len(rec.Result.GreenFlags) {
		t.Errorf("green flags = %d, want %d", len(got.Result.GreenFlags), len(rec.Result.GreenFlags))
	}

	missing, err := repo.Get(ctx, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing err = %v, want ErrNotFound", err)
	}
	if missing != nil {
		t.Error("expected nil record for missing id")
	}
}

func TestAssessment_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		insertAssessment(t, repo, "alice", i*10, base.Add(time.Duration(i)*24*time.Hour))
	}
	insertAssessment(t, repo, "bob", 99, base)

	list, err := repo.ListByUser(ctx, "alice", QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("got %d records, want 5", len(list))
	}
	for i, rec := range list {
		if want := (4 - i) * 10; rec.Percentage != want {
			t.Errorf("list[%d].Percentage = %d, want %d", i, rec.Percentage, want)
		}
	}

	limited, err := repo.ListByUser(ctx, "alice", QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Percentage != 40 {
		t.Errorf("limited list = %+v", limited)
	}

	ranged, err := repo.ListByUser(ctx, "alice", QueryOpts{From: base.Add(36 * time.Hour)})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 3 {
		t.Errorf("got %d records after From, want 3", len(ranged))
	}
}

func TestAssessment_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	insights := s.InsightRepo()
	ctx := context.Background()

	rec := insertAssessment(t, repo, "alice", 50, time.Time{})
	if _, err := insights.Save(ctx, InsightData{SurveyID: rec.ID, Summary: "s"}); err != nil {
		t.Fatalf("save insight: %v", err)
	}

	if err := repo.DeleteByID(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if in, _ := insights.LatestForSurvey(ctx, rec.ID); in != nil {
		t.Error("insight not removed with its survey")
	}

	err := repo.DeleteByID(ctx, rec.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestAssessment_DeleteByUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	insertAssessment(t, repo, "alice", 10, time.Time{})
	insertAssessment(t, repo, "alice", 20, time.Time{})
	keep := insertAssessment(t, repo, "bob", 30, time.Time{})

	n, err := repo.DeleteByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("delete by user: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	if _, err := repo.Get(ctx, keep.ID); err != nil {
		t.Errorf("other user's record was deleted: %v", err)
	}
}

func TestInsight_SaveLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.InsightRepo()
	ctx := context.Background()

	if got, err := repo.LatestForSurvey(ctx, 1); err != nil || got != nil {
		t.Fatalf("latest (empty) = %v, %v", got, err)
	}

	first := InsightData{SurveyID: 1, Provider: "mock", Model: "m", Summary: "first", Strengths: []string{"a"}}
	second := InsightData{SurveyID: 1, Provider: "mock", Model: "m", Summary: "second", Concerns: []string{"b", "c"}}
	for _, d := range []InsightData{first, second} {
		if _, err := repo.Save(ctx, d); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	got, err := repo.LatestForSurvey(ctx, 1)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.Summary != "second" {
		t.Errorf("summary = %q, want second", got.Summary)
	}
	if len(got.Concerns) != 2 || len(got.Strengths) != 0 {
		t.Errorf("lists = %v / %v", got.Strengths, got.Concerns)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude", Purpose: "insight", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req"},
		{Provider: "anthropic", Model: "claude", Purpose: "insight", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d events, want 2", len(list))
	}
	if list[0].Model != "gpt" || list[0].Success {
		t.Errorf("newest event = %+v", list[0])
	}

	got, err := repo.GetLLMEvent(ctx, list[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.InputTokens != 300 {
		t.Errorf("get = %+v", got)
	}
	if _, err := repo.GetLLMEvent(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing event err = %v, want ErrNotFound", err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	ins := byPurpose[0]
	if ins.Purpose != "insight" || ins.Calls != 2 || ins.InputTokens != 400 || ins.AvgLatencyMs != 300 {
		t.Errorf("insight usage = %+v", ins)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "claude" {
		t.Errorf("usage by model = %+v", byModel)
	}
}
