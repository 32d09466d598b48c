package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/store"
)

var base = time.Date(2026, 6, 30, 9, 0, 0, 0, time.UTC)

// history builds records newest first with the given percentages, one day apart.
func history(pcts ...int) []store.AssessmentRecord {
	out := make([]store.AssessmentRecord, len(pcts))
	for i, p := range pcts {
		out[i] = store.AssessmentRecord{
			ID:         len(pcts) - i,
			Percentage: p,
			Answers:    scoring.Answers{},
			CreatedAt:  base.Add(-time.Duration(i) * 24 * time.Hour),
		}
	}
	return out
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, TrendStable, s.Trend)
	assert.Empty(t, s.Recent)
	assert.Len(t, s.Categories, len(questionbank.Categories()))
	assert.Equal(t, -1, s.DaysSince(base))
}

func TestSummarize_Totals(t *testing.T) {
	s := Summarize(history(70, 50, 90))
	assert.Equal(t, 3, s.Total)
	assert.InDelta(t, 70.0, s.Average, 1e-9)
	assert.Equal(t, 50, s.Min)
	assert.Equal(t, 90, s.Max)
	assert.Equal(t, base, s.LastCheckIn)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name string
		pcts []int
		want Trend
	}{
		{"improving", []int{90, 88, 91, 89, 92, 60, 61, 59, 62, 58}, TrendImproving},
		{"declining", []int{60, 61, 59, 62, 58, 90, 88, 91, 89, 92}, TrendDeclining},
		{"within threshold", []int{62, 62, 62, 62, 62, 60, 60, 60, 60, 60}, TrendStable},
		{"just over threshold", []int{63, 63, 63, 63, 63, 60, 60, 60, 60, 60}, TrendImproving},
		{"too few", []int{90, 90, 90, 90, 90, 10, 10, 10, 10}, TrendStable},
		{"only newest ten count", []int{50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 0, 0, 0}, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(history(tt.pcts...)).Trend)
		})
	}
}

func TestRecent_NewestTen(t *testing.T) {
	pcts := make([]int, 14)
	for i := range pcts {
		pcts[i] = i
	}
	s := Summarize(history(pcts...))
	require.Len(t, s.Recent, 10)
	assert.Equal(t, 0, s.Recent[0].Percentage)
	assert.Equal(t, 9, s.Recent[9].Percentage)

	chrono := s.Chronological()
	assert.Equal(t, 9, chrono[0].Percentage)
	assert.Equal(t, 0, chrono[9].Percentage)
	// Chronological does not reorder Recent.
	assert.Equal(t, 0, s.Recent[0].Percentage)
}

func testBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	b, err := questionbank.New(
		[]questionbank.Category{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}, {ID: "d", Name: "D"}},
		[]questionbank.Question{
			{ID: 1, Category: "a", Prompt: "p", Weight: 1},                 // no is favorable
			{ID: 2, Category: "b", Prompt: "p", Weight: 1, Reversed: true}, // yes is favorable
			{ID: 3, Category: "c", Prompt: "p", Weight: 1},
			{ID: 4, Category: "d", Prompt: "p", Weight: 1},
		},
	)
	require.NoError(t, err)
	return b
}

func TestCategoryMeans(t *testing.T) {
	b := testBank(t)
	records := []store.AssessmentRecord{
		{Answers: scoring.Answers{1: scoring.No(), 2: scoring.Yes(), 3: scoring.Yes(), 4: nil}},
		{Answers: scoring.Answers{1: scoring.Yes(), 2: scoring.Yes(), 99: scoring.Yes()}},
	}
	s := SummarizeWith(b, records)

	byID := map[string]CategoryStat{}
	for _, c := range s.Categories {
		byID[c.Category.ID] = c
	}
	assert.InDelta(t, 0.5, byID["a"].Mean, 1e-9)
	assert.InDelta(t, 0.5, byID["a"].YesRate, 1e-9)
	assert.Equal(t, 2, byID["a"].Observed)

	assert.InDelta(t, 1.0, byID["b"].Mean, 1e-9)
	assert.InDelta(t, 1.0, byID["b"].YesRate, 1e-9)

	assert.InDelta(t, 0.0, byID["c"].Mean, 1e-9)
	assert.InDelta(t, 1.0, byID["c"].YesRate, 1e-9)

	// Skip-only category reports zero.
	assert.Equal(t, 0, byID["d"].Observed)
	assert.Zero(t, byID["d"].Mean)
}

func TestRanking(t *testing.T) {
	b := testBank(t)
	records := []store.AssessmentRecord{
		{Answers: scoring.Answers{1: scoring.No(), 2: scoring.Yes(), 3: scoring.Yes(), 4: nil}},
		{Answers: scoring.Answers{1: scoring.Yes(), 2: scoring.Yes()}},
	}
	s := SummarizeWith(b, records)

	// Means: a=0.5 b=1 c=0 d=0; ties keep display order.
	assert.Equal(t, []string{"b", "a", "c"}, ids(s.Strongest))
	assert.Equal(t, []string{"d", "c", "a"}, ids(s.FocusAreas))
}

func ids(stats []CategoryStat) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Category.ID
	}
	return out
}

func TestDaysSince(t *testing.T) {
	s := Summarize(history(50))
	assert.Equal(t, 0, s.DaysSince(base.Add(23*time.Hour)))
	assert.Equal(t, 3, s.DaysSince(base.Add(72*time.Hour+time.Minute)))
	assert.Equal(t, 0, s.DaysSince(base.Add(-time.Hour)))
}
