package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// responseRepo implements ResponseRepo with the ent SQL builder.
type responseRepo struct {
	db *sql.DB
}

func (r *responseRepo) Upsert(ctx context.Context, resp *Response) error {
	if resp.UpdatedAt.IsZero() {
		resp.UpdatedAt = now()
	}
	var score any
	if resp.Score != nil {
		score = *resp.Score
	}
	query, args := builder().Insert(tableResponses).
		Columns("attempt_id", "question_id", "raw_value", "score", "time_spent_ms", "updated_at").
		Values(resp.AttemptID, resp.QuestionID, resp.RawValue, score, resp.TimeSpentMs, resp.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("attempt_id", "question_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert response: %w", err)
	}
	return nil
}

func (r *responseRepo) List(ctx context.Context, attemptID string) ([]Response, error) {
	b := builder()
	query, args := b.Select("attempt_id", "question_id", "raw_value", "score", "time_spent_ms", "updated_at").
		From(b.Table(tableResponses)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy("id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []Response
	for rows.Next() {
		var (
			resp  Response
			score sql.NullFloat64
		)
		if err := rows.Scan(&resp.AttemptID, &resp.QuestionID, &resp.RawValue, &score, &resp.TimeSpentMs, &resp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if score.Valid {
			s := score.Float64
			resp.Score = &s
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}
