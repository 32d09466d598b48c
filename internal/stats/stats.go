// Package stats aggregates a user's completed assessments into trend
// and per-category summaries.
package stats

import (
	"slices"
	"time"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/store"
)

// Trend classifies the direction of recent scores.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

const (
	// trendWindow is the number of assessments on each side of the
	// trend comparison.
	trendWindow = 5
	// trendThreshold is the mean-percentage gap, in points, that must be
	// exceeded to call a trend.
	trendThreshold = 2.0
	// recentLimit is the number of assessments exposed for charting.
	recentLimit = 10
	// rankedAreas is the number of strongest and focus categories.
	rankedAreas = 3
)

// CategoryStat is the aggregate of one category's answers.
type CategoryStat struct {
	Category questionbank.Category

	// Mean is the fraction of answers that were favorable (1 favorable,
	// 0 unfavorable). Categories without answers report 0.
	Mean float64

	// YesRate is the fraction of answers that were "yes".
	YesRate float64

	// Observed is the number of non-skipped answers.
	Observed int
}

// Summary is a view over a user's assessment history.
type Summary struct {
	Total   int
	Average float64 // mean percentage
	Min     int
	Max     int

	// Categories holds every category in display order.
	Categories []CategoryStat
	// Strongest holds the top categories by Mean, best first.
	Strongest []CategoryStat
	// FocusAreas holds the bottom categories by Mean, weakest first.
	FocusAreas []CategoryStat

	Trend Trend

	// Recent holds the newest assessments, newest first.
	Recent []store.AssessmentRecord

	// LastCheckIn is the creation time of the newest assessment.
	LastCheckIn time.Time
}

// Summarize aggregates records against the built-in question bank.
// records must be ordered newest first.
func Summarize(records []store.AssessmentRecord) Summary {
	return SummarizeWith(questionbank.Default(), records)
}

// SummarizeWith aggregates records against b. records must be ordered
// newest first. Answers to ids unknown to b are ignored.
func SummarizeWith(b *questionbank.Bank, records []store.AssessmentRecord) Summary {
	sum := Summary{
		Total:      len(records),
		Categories: categoryStats(b, records),
		Trend:      trend(records),
		Recent:     slices.Clone(records[:min(len(records), recentLimit)]),
	}
	sum.Strongest, sum.FocusAreas = rank(sum.Categories)

	if len(records) == 0 {
		return sum
	}

	sum.LastCheckIn = records[0].CreatedAt
	sum.Min, sum.Max = records[0].Percentage, records[0].Percentage
	total := 0
	for _, r := range records {
		total += r.Percentage
		sum.Min = min(sum.Min, r.Percentage)
		sum.Max = max(sum.Max, r.Percentage)
	}
	sum.Average = float64(total) / float64(len(records))
	return sum
}

func categoryStats(b *questionbank.Bank, records []store.AssessmentRecord) []CategoryStat {
	cats := b.Categories()
	out := make([]CategoryStat, len(cats))
	for i, c := range cats {
		var favorable, yes, n int
		for _, q := range b.QuestionsInCategory(c.ID) {
			for _, r := range records {
				v, ok := r.Answers.Value(q.ID)
				if !ok {
					continue
				}
				n++
				if v {
					yes++
				}
				if q.IsFavorable(v) {
					favorable++
				}
			}
		}
		out[i] = CategoryStat{Category: c, Observed: n}
		if n > 0 {
			out[i].Mean = float64(favorable) / float64(n)
			out[i].YesRate = float64(yes) / float64(n)
		}
	}
	return out
}

// rank sorts by Mean descending, ties in display order, and returns the
// head and the reversed tail.
func rank(stats []CategoryStat) (best, worst []CategoryStat) {
	sorted := slices.Clone(stats)
	slices.SortStableFunc(sorted, func(a, b CategoryStat) int {
		switch {
		case a.Mean > b.Mean:
			return -1
		case a.Mean < b.Mean:
			return 1
		default:
			return 0
		}
	})

	n := min(rankedAreas, len(sorted))
	best = slices.Clone(sorted[:n])
	worst = slices.Clone(sorted[len(sorted)-n:])
	slices.Reverse(worst)
	return best, worst
}

// trend compares the mean percentage of the newest five assessments with
// the five before them. Without five on each side the trend is stable.
func trend(records []store.AssessmentRecord) Trend {
	if len(records) < 2*trendWindow {
		return TrendStable
	}
	recent := meanPercentage(records[:trendWindow])
	older := meanPercentage(records[trendWindow : 2*trendWindow])
	switch {
	case recent > older+trendThreshold:
		return TrendImproving
	case recent < older-trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanPercentage(records []store.AssessmentRecord) float64 {
	total := 0
	for _, r := range records {
		total += r.Percentage
	}
	return float64(total) / float64(len(records))
}

// DaysSince returns whole days between the last check-in and now, or -1
// when there is no history.
func (s Summary) DaysSince(now time.Time) int {
	if s.LastCheckIn.IsZero() {
		return -1
	}
	d := now.Sub(s.LastCheckIn)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Chronological returns Recent oldest first, for charting.
func (s Summary) Chronological() []store.AssessmentRecord {
	out := slices.Clone(s.Recent)
	slices.Reverse(out)
	return out
}
