package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// insightRepo implements InsightRepo on the insights table.
type insightRepo struct {
	db *sql.DB
}

func (r *insightRepo) Save(ctx context.Context, data InsightData) (*InsightRecord, error) {
	lists := make([]string, 3)
	for i, l := range [][]string{data.Strengths, data.Concerns, data.Suggestions} {
		if l == nil {
			l = []string{}
		}
		b, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("encode insight: %w", err)
		}
		lists[i] = string(b)
	}

	now := time.Now().UTC()
	query, args := sqlite().Insert(InsightsTable.Name).
		Columns("survey_id", "provider", "model", "summary", "strengths", "concerns", "suggestions", "created_at").
		Values(data.SurveyID, data.Provider, data.Model, data.Summary, lists[0], lists[1], lists[2], now).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("save insight: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("save insight: %w", err)
	}
	return &InsightRecord{ID: int(id), InsightData: data, CreatedAt: now}, nil
}

func (r *insightRepo) LatestForSurvey(ctx context.Context, surveyID int) (*InsightRecord, error) {
	b := sqlite()
	query, args := b.Select("id", "survey_id", "provider", "model", "summary", "strengths", "concerns", "suggestions", "created_at").
		From(b.Table(InsightsTable.Name)).
		Where(entsql.EQ("survey_id", surveyID)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		rec                              InsightRecord
		strengths, concerns, suggestions []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID, &rec.SurveyID, &rec.Provider, &rec.Model, &rec.Summary,
		&strengths, &concerns, &suggestions, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query insight: %w", err)
	}

	for _, f := range []struct {
		raw []byte
		dst *[]string
	}{
		{strengths, &rec.Strengths},
		{concerns, &rec.Concerns},
		{suggestions, &rec.Suggestions},
	} {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode insight %d: %w", rec.ID, err)
		}
	}
	return &rec, nil
}
