// Package scoring computes the weighted health score of a set of answers.
package scoring

import (
	"math"

	"github.com/relcheck/relcheck/internal/questionbank"
)

// Thresholds for flagging individual questions.
const (
	greenFlagMinWeight = 3
	redFlagMinWeight   = 4
)

// Result is the outcome of scoring one answer map.
type Result struct {
	Score          int                     `json:"score"`
	MaxScore       int                     `json:"maxScore"`
	Percentage     int                     `json:"percentage"`
	RedFlags       []questionbank.Question `json:"redFlags"`
	GreenFlags     []questionbank.Question `json:"greenFlags"`
	Recommendation Recommendation          `json:"recommendation"`
}

// Critical reports whether the result carries the critical override.
func (r Result) Critical() bool {
	return r.Recommendation.Type == TierCritical
}

// Score scores answers against the built-in question bank.
func Score(answers Answers) Result {
	return ScoreWith(questionbank.Default(), answers)
}

// ScoreWith scores answers against b. Questions are visited in bank order;
// skipped questions and ids unknown to b do not affect the result.
func ScoreWith(b *questionbank.Bank, answers Answers) Result {
	res := Result{
		RedFlags:   []questionbank.Question{},
		GreenFlags: []questionbank.Question{},
	}

	critical := false
	for _, q := range b.AllQuestions() {
		answer, ok := answers.Value(q.ID)
		if !ok {
			continue
		}
		res.MaxScore += q.Weight

		if q.IsFavorable(answer) {
			res.Score += q.Weight
			if q.Weight >= greenFlagMinWeight {
				res.GreenFlags = append(res.GreenFlags, q)
			}
			continue
		}

		if q.Critical || q.Weight >= redFlagMinWeight {
			res.RedFlags = append(res.RedFlags, q)
			if q.Critical {
				critical = true
			}
		}
	}

	var pct float64
	if res.MaxScore > 0 {
		pct = float64(res.Score) / float64(res.MaxScore) * 100
	}
	res.Percentage = int(math.Round(pct))

	// Tier thresholds use the unrounded value: 79.6% displays as 80 but
	// is still work-needed.
	tier := tierFor(pct)
	if critical {
		tier = TierCritical
	}
	res.Recommendation = recommendations[tier]
	return res
}
