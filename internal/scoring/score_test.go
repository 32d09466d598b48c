package scoring

import (
	"testing"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// favorable returns the healthy answer for q.
func favorable(q questionbank.Question) *bool {
	if q.Reversed {
		return Yes()
	}
	return No()
}

func unfavorable(q questionbank.Question) *bool {
	if q.Reversed {
		return No()
	}
	return Yes()
}

func allFavorable() Answers {
	a := Answers{}
	for _, q := range questionbank.AllQuestions() {
		a[q.ID] = favorable(q)
	}
	return a
}

func TestScore_Empty(t *testing.T) {
	res := Score(Answers{})
	assert.Equal(t, 0, res.Percentage)
	assert.Equal(t, 0, res.MaxScore)
	assert.Empty(t, res.RedFlags)
	assert.Empty(t, res.GreenFlags)
	assert.Equal(t, TierDanger, res.Recommendation.Type)
	assert.Equal(t, "Relationship in Danger", res.Recommendation.Title)

	// nil map behaves the same
	assert.Equal(t, res, Score(nil))
}

func TestScore_AllFavorable(t *testing.T) {
	res := Score(allFavorable())
	assert.Equal(t, 100, res.Percentage)
	assert.Equal(t, res.MaxScore, res.Score)
	assert.Empty(t, res.RedFlags)
	assert.Equal(t, TierHealthy, res.Recommendation.Type)

	for _, q := range res.GreenFlags {
		assert.GreaterOrEqual(t, q.Weight, 3)
	}
}

func TestScore_CriticalOverride(t *testing.T) {
	a := allFavorable()
	q2, err := questionbank.GetQuestion(2)
	require.NoError(t, err)
	a[2] = unfavorable(q2)

	res := Score(a)
	assert.Greater(t, res.Percentage, 80)
	assert.Equal(t, TierCritical, res.Recommendation.Type)
	assert.True(t, res.Critical())
	require.Len(t, res.RedFlags, 1)
	assert.Equal(t, 2, res.RedFlags[0].ID)
}

func TestScore_SkipsIgnored(t *testing.T) {
	a := Answers{1: Yes(), 2: nil, 3: nil}
	res := Score(a)

	q1, _ := questionbank.GetQuestion(1)
	assert.Equal(t, q1.Weight, res.MaxScore)
	assert.Equal(t, 100, res.Percentage)
	assert.Empty(t, res.RedFlags)
}

func TestScore_UnknownIDsIgnored(t *testing.T) {
	a := Answers{9999: Yes(), -1: No()}
	assert.Equal(t, Score(Answers{}), Score(a))
}

func TestScore_Flags(t *testing.T) {
	tests := []struct {
		name      string
		answers   Answers
		wantRed   []int
		wantGreen []int
	}{
		{
			// Q3: weight 4, not reversed; yes is unfavorable.
			name:    "weight 4 unfavorable is red",
			answers: Answers{3: Yes()},
			wantRed: []int{3},
		},
		{
			// Q6: weight 2, reversed; no is unfavorable but too light to flag.
			name:    "light unfavorable is not red",
			answers: Answers{6: No()},
		},
		{
			// Q1: weight 3 reversed; yes is favorable.
			name:      "weight 3 favorable is green",
			answers:   Answers{1: Yes()},
			wantGreen: []int{1},
		},
		{
			name:    "flags keep bank order",
			answers: Answers{8: Yes(), 3: Yes(), 4: Yes()},
			wantRed: []int{3, 4, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(tt.answers)
			assert.Equal(t, tt.wantRed, ids(res.RedFlags))
			assert.Equal(t, tt.wantGreen, ids(res.GreenFlags))
		})
	}
}

func ids(qs []questionbank.Question) []int {
	if len(qs) == 0 {
		return nil
	}
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestScore_UnroundedThreshold(t *testing.T) {
	cats := []questionbank.Category{{ID: "c", Name: "C"}}
	var qs []questionbank.Question
	// 199 favorable of weight 1 and one unfavorable of weight 51 give
	// 199/250 = 79.6%, which displays as 80.
	for i := 1; i <= 199; i++ {
		qs = append(qs, questionbank.Question{ID: i, Category: "c", Prompt: "p", Weight: 1})
	}
	qs = append(qs, questionbank.Question{ID: 200, Category: "c", Prompt: "p", Weight: 51})
	b, err := questionbank.New(cats, qs)
	require.NoError(t, err)

	a := Answers{}
	for i := 1; i <= 199; i++ {
		a[i] = No()
	}
	a[200] = Yes()

	res := ScoreWith(b, a)
	assert.Equal(t, 80, res.Percentage)
	assert.Equal(t, TierWorkNeeded, res.Recommendation.Type)
}

func TestScore_Tiers(t *testing.T) {
	tests := []struct {
		pct  float64
		want Tier
	}{
		{100, TierHealthy},
		{80, TierHealthy},
		{79.99, TierWorkNeeded},
		{60, TierWorkNeeded},
		{59.5, TierSeriousConcerns},
		{40, TierSeriousConcerns},
		{39.9, TierDanger},
		{0, TierDanger},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tierFor(tt.pct), "pct=%v", tt.pct)
	}
}

func TestScore_PercentageInRange(t *testing.T) {
	all := questionbank.AllQuestions()
	// Walk a deterministic family of answer maps: for each mask bit pattern
	// answer a prefix with alternating values.
	for n := 0; n <= len(all); n++ {
		for pattern := 0; pattern < 4; pattern++ {
			a := Answers{}
			for i, q := range all[:n] {
				switch (i + pattern) % 3 {
				case 0:
					a[q.ID] = Yes()
				case 1:
					a[q.ID] = No()
				default:
					a[q.ID] = nil
				}
			}
			res := Score(a)
			if res.Percentage < 0 || res.Percentage > 100 {
				t.Fatalf("n=%d pattern=%d: percentage %d out of range", n, pattern, res.Percentage)
			}
			if res.Score > res.MaxScore {
				t.Fatalf("n=%d pattern=%d: score %d exceeds max %d", n, pattern, res.Score, res.MaxScore)
			}
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	all := questionbank.AllQuestions()
	// Start from a mixed map over the first half, then add favorable
	// answers one at a time.
	a := Answers{}
	for i, q := range all[:len(all)/2] {
		if i%2 == 0 {
			a[q.ID] = unfavorable(q)
		} else {
			a[q.ID] = favorable(q)
		}
	}
	prev := Score(a).Percentage
	for _, q := range all[len(all)/2:] {
		a[q.ID] = favorable(q)
		got := Score(a).Percentage
		if got < prev {
			t.Fatalf("adding favorable answer to %d dropped percentage %d -> %d", q.ID, prev, got)
		}
		prev = got
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandExcellent, BandFor(80))
	assert.Equal(t, BandGood, BandFor(79))
	assert.Equal(t, BandGood, BandFor(60))
	assert.Equal(t, BandAverage, BandFor(40))
	assert.Equal(t, BandNeedsWork, BandFor(39))
}

func TestAnswers_Helpers(t *testing.T) {
	a := Answers{1: Yes(), 2: No(), 3: nil}
	assert.Equal(t, 2, a.Answered())
	assert.Equal(t, 1, a.Skipped())
	assert.True(t, a.Has(3))
	assert.False(t, a.Has(4))

	v, ok := a.Value(2)
	assert.True(t, ok)
	assert.False(t, v)
	_, ok = a.Value(3)
	assert.False(t, ok)

	c := a.Clone()
	assert.True(t, a.Equal(c))
	*c[1] = false
	assert.True(t, *a[1], "clone must not share pointers")
	assert.False(t, a.Equal(c))
}
