package screen

import (
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/insight"
	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/store"
)

// Deps are the collaborators screens need. Insight may be nil when no
// LLM is configured.
type Deps struct {
	UserID      string
	Bank        *questionbank.Bank
	Progress    store.ProgressRepo
	Assessments store.AssessmentRepo
	Insight     *insight.Service
	Logger      *zap.Logger
}

// Log returns the logger or a no-op.
func (d Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// QuestionBank returns the bank or the built-in default.
func (d Deps) QuestionBank() *questionbank.Bank {
	if d.Bank == nil {
		return questionbank.Default()
	}
	return d.Bank
}
