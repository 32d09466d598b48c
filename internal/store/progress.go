package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/relcheck/relcheck/internal/scoring"
)

// progressRepo implements ProgressRepo on the survey_progress table.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Load(ctx context.Context, userID string) (scoring.Answers, error) {
	b := sqlite()
	query, args := b.Select("answers").
		From(b.Table(ProgressTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}

	var answers scoring.Answers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if answers == nil {
		answers = scoring.Answers{}
	}
	return answers, nil
}

func (r *progressRepo) Save(ctx context.Context, userID string, answers scoring.Answers) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	query, args := sqlite().Insert(ProgressTable.Name).
		Columns("user_id", "answers", "updated_at").
		Values(userID, string(raw), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Clear(ctx context.Context, userID string) error {
	query, args := sqlite().Delete(ProgressTable.Name).
		Where(entsql.EQ("user_id", userID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
