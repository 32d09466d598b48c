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

// assessmentRepo implements AssessmentRepo on the surveys table.
type assessmentRepo struct {
	db *sql.DB
}

var surveyFields = []string{"id", "user_id", "answers", "score", "notes", "assessment_data", "created_at"}

func (r *assessmentRepo) Insert(ctx context.Context, data AssessmentData) (*AssessmentRecord, error) {
	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	result, err := json.Marshal(data.Result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	query, args := sqlite().Insert(SurveysTable.Name).
		Columns("user_id", "answers", "score", "notes", "assessment_data", "created_at").
		Values(data.UserID, string(answers), data.Percentage, data.Notes, string(result), createdAt).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert survey: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert survey: %w", err)
	}

	return &AssessmentRecord{
		ID:         int(id),
		UserID:     data.UserID,
		Answers:    data.Answers.Clone(),
		Percentage: data.Percentage,
		Result:     data.Result,
		Notes:      data.Notes,
		CreatedAt:  createdAt,
	}, nil
}

func (r *assessmentRepo) ListByUser(ctx context.Context, userID string, opts QueryOpts) ([]AssessmentRecord, error) {
	b := sqlite()
	sel := b.Select(surveyFields...).
		From(b.Table(SurveysTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}
	return out, nil
}

func (r *assessmentRepo) Get(ctx context.Context, id int) (*AssessmentRecord, error) {
	b := sqlite()
	query, args := b.Select(surveyFields...).
		From(b.Table(SurveysTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanAssessment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("survey %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *assessmentRepo) DeleteByID(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	query, args := sqlite().Delete(InsightsTable.Name).
		Where(entsql.EQ("survey_id", id)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete insights: %w", err)
	}

	query, args = sqlite().Delete(SurveysTable.Name).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("survey %d: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

func (r *assessmentRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	b := sqlite()
	ids := b.Select("id").
		From(b.Table(SurveysTable.Name)).
		Where(entsql.EQ("user_id", userID))
	query, args := sqlite().Delete(InsightsTable.Name).
		Where(entsql.In("survey_id", ids)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("delete insights: %w", err)
	}

	query, args = sqlite().Delete(SurveysTable.Name).
		Where(entsql.EQ("user_id", userID)).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete surveys: %w", err)
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return int(n), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s rowScanner) (*AssessmentRecord, error) {
	var (
		rec             AssessmentRecord
		answers, result []byte
	)
	err := s.Scan(&rec.ID, &rec.UserID, &answers, &rec.Percentage, &rec.Notes, &result, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan survey: %w", err)
	}
	if err := json.Unmarshal(answers, &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode survey %d answers: %w", rec.ID, err)
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return nil, fmt.Errorf("decode survey %d result: %w", rec.ID, err)
	}
	return &rec, nil
}
