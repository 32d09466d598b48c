package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/store"
)

// Completion is the outcome of a completed session. It outlives the
// session so a failed save can be retried without losing the result.
type Completion struct {
	Result  scoring.Result
	Answers scoring.Answers
	Notes   string

	// Record is the stored assessment, nil until the insert succeeds.
	Record *store.AssessmentRecord

	userID      string
	createdAt   time.Time
	cleared     bool
	progress    store.ProgressRepo
	assessments store.AssessmentRepo
	logger      *zap.Logger
}

// Persisted reports whether the assessment was stored and the saved
// progress cleared.
func (c *Completion) Persisted() bool {
	return c.Record != nil && c.cleared
}

// Retry re-attempts whichever persistence steps have not succeeded yet:
// the insert, then the progress clear. It returns a *PersistenceError for
// the first step that fails.
func (c *Completion) Retry(ctx context.Context) error {
	if c.Record == nil {
		rec, err := c.assessments.Insert(ctx, store.AssessmentData{
			UserID:     c.userID,
			Answers:    c.Answers,
			Percentage: c.Result.Percentage,
			Result:     c.Result,
			Notes:      c.Notes,
			CreatedAt:  c.createdAt,
		})
		if err != nil {
			c.logger.Error("save assessment failed", zap.Error(err))
			return &PersistenceError{Op: OpInsert, Err: err}
		}
		c.Record = rec
		c.logger.Info("assessment saved", zap.Int("survey_id", rec.ID))
	}

	if !c.cleared {
		if err := c.progress.Clear(ctx, c.userID); err != nil {
			c.logger.Warn("clear progress failed", zap.Error(err))
			return &PersistenceError{Op: OpClear, Err: err}
		}
		c.cleared = true
	}
	return nil
}
