// Package insight asks the configured LLM for a narrative reflection on
// a completed assessment and stores it alongside the record.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/llm"
	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/store"
)

// SafetyNotice is attached to every insight on a critical result. Model
// output never replaces it.
const SafetyNotice = "Your answers indicate a safety concern. If you feel unsafe, contact local emergency services or a domestic violence hotline. You deserve to be safe."

// ErrUnavailable is returned when no LLM provider is configured.
var ErrUnavailable = errors.New("AI insights are unavailable: no LLM provider configured")

// Config holds insight generation settings.
type Config struct {
	// Provider is the provider name recorded with each insight.
	Provider    string
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for insight generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   700,
		Temperature: 0.4,
	}
}

// Insight is a reflection on one assessment.
type Insight struct {
	ID          int
	SurveyID    int
	Provider    string
	Model       string
	Summary     string
	Strengths   []string
	Concerns    []string
	Suggestions []string
	// Safety is SafetyNotice for critical results, empty otherwise.
	Safety    string
	CreatedAt time.Time
}

// Service generates and stores insights.
type Service struct {
	provider llm.Provider
	repo     store.InsightRepo
	cfg      Config
	logger   *zap.Logger
}

// NewService creates an insight service. A nil provider makes Generate
// return ErrUnavailable; a nil logger is replaced by a no-op.
func NewService(provider llm.Provider, repo store.InsightRepo, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, repo: repo, cfg: cfg, logger: logger.Named("insight")}
}

// Available reports whether an LLM provider is configured.
func (s *Service) Available() bool {
	return s.provider != nil
}

type output struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Concerns    []string `json:"concerns"`
	Suggestions []string `json:"suggestions"`
}

// Generate asks the LLM about rec, validates the reply and persists it.
func (s *Service) Generate(ctx context.Context, rec store.AssessmentRecord) (*Insight, error) {
	if s.provider == nil {
		return nil, ErrUnavailable
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeInsight)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(rec)},
		},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}
	if err := llm.ValidateResponse(Schema, resp.Content); err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}

	saved, err := s.repo.Save(ctx, store.InsightData{
		SurveyID:    rec.ID,
		Provider:    s.cfg.Provider,
		Model:       resp.Model,
		Summary:     out.Summary,
		Strengths:   out.Strengths,
		Concerns:    out.Concerns,
		Suggestions: out.Suggestions,
	})
	if err != nil {
		return nil, fmt.Errorf("save insight: %w", err)
	}

	s.logger.Info("insight generated",
		zap.Int("survey_id", rec.ID),
		zap.String("model", resp.Model),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
	)
	return fromRecord(*saved, rec.Result), nil
}

// Latest returns the newest stored insight for rec, or nil.
func (s *Service) Latest(ctx context.Context, rec store.AssessmentRecord) (*Insight, error) {
	saved, err := s.repo.LatestForSurvey(ctx, rec.ID)
	if err != nil || saved == nil {
		return nil, err
	}
	return fromRecord(*saved, rec.Result), nil
}

func fromRecord(r store.InsightRecord, res scoring.Result) *Insight {
	in := &Insight{
		ID:          r.ID,
		SurveyID:    r.SurveyID,
		Provider:    r.Provider,
		Model:       r.Model,
		Summary:     r.Summary,
		Strengths:   r.Strengths,
		Concerns:    r.Concerns,
		Suggestions: r.Suggestions,
		CreatedAt:   r.CreatedAt,
	}
	if res.Critical() {
		in.Safety = SafetyNotice
	}
	return in
}
