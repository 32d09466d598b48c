package store

import (
	"context"
	"time"

	"github.com/relcheck/relcheck/internal/scoring"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// ProgressRepo persists the in-progress answer map of a user.
// Writes are upserts; the latest write wins.
type ProgressRepo interface {
	// Load returns the saved answers for userID, or nil if none exist.
	Load(ctx context.Context, userID string) (scoring.Answers, error)

	// Save replaces the saved answers for userID.
	Save(ctx context.Context, userID string, answers scoring.Answers) error

	// Clear deletes the saved answers for userID. Clearing a missing
	// record is not an error.
	Clear(ctx context.Context, userID string) error
}

// AssessmentData is a completed assessment ready to be persisted.
type AssessmentData struct {
	UserID     string
	Answers    scoring.Answers
	Percentage int
	Result     scoring.Result
	Notes      string

	// CreatedAt defaults to the current time when zero.
	CreatedAt time.Time
}

// AssessmentRecord is a persisted completed assessment.
type AssessmentRecord struct {
	ID         int
	UserID     string
	Answers    scoring.Answers
	Percentage int
	Result     scoring.Result
	Notes      string
	CreatedAt  time.Time
}

// AssessmentRepo persists completed assessments. Records are append-only;
// deletion is an explicit user action.
type AssessmentRepo interface {
	// Insert appends a completed assessment and returns the stored record.
	Insert(ctx context.Context, data AssessmentData) (*AssessmentRecord, error)

	// ListByUser returns a user's assessments, newest first.
	ListByUser(ctx context.Context, userID string, opts QueryOpts) ([]AssessmentRecord, error)

	// Get returns one assessment by id, or ErrNotFound.
	Get(ctx context.Context, id int) (*AssessmentRecord, error)

	// DeleteByID removes an assessment and its insights.
	// Returns ErrNotFound if no such assessment exists.
	DeleteByID(ctx context.Context, id int) error

	// DeleteByUser removes every assessment of a user and returns the count.
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// InsightData is a generated reflection on one assessment.
type InsightData struct {
	SurveyID    int
	Provider    string
	Model       string
	Summary     string
	Strengths   []string
	Concerns    []string
	Suggestions []string
}

// InsightRecord is a persisted insight.
type InsightRecord struct {
	ID int
	InsightData
	CreatedAt time.Time
}

// InsightRepo persists generated insights.
type InsightRepo interface {
	// Save stores a new insight.
	Save(ctx context.Context, data InsightData) (*InsightRecord, error)

	// LatestForSurvey returns the newest insight for an assessment, or nil.
	LatestForSurvey(ctx context.Context, surveyID int) (*InsightRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by id, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
