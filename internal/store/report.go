package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// reportRepo implements ReportRepo with the ent SQL builder.
type reportRepo struct {
	db *sql.DB
}

func (r *reportRepo) Finalize(ctx context.Context, attemptID string, at time.Time, data []byte, recs []Recommendation) (created bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin finalize: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Compare-and-set: only the first completion sets the timestamp.
	query, args := builder().Update(tableAttempts).
		Set("completed_at", at.UTC()).
		Where(entsql.And(entsql.EQ("id", attemptID), entsql.IsNull("completed_at"))).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("complete attempt: %w", err)
	}

	query, args = builder().Insert(tableReports).
		Columns("attempt_id", "data", "created_at").
		Values(attemptID, string(data), at.UTC()).
		OnConflict(entsql.ConflictColumns("attempt_id"), entsql.DoNothing()).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert report: %w", err)
	}
	created = n == 1

	if created && len(recs) > 0 {
		ins := builder().Insert(tableRecommendations).
			Columns("attempt_id", "occupation_code", "rank", "match_score", "data")
		for _, rec := range recs {
			ins.Values(attemptID, rec.OccupationCode, rec.Rank, rec.MatchScore, string(rec.Data))
		}
		query, args = ins.OnConflict(
			entsql.ConflictColumns("attempt_id", "occupation_code"),
			entsql.DoNothing(),
		).Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("insert recommendations: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit finalize: %w", err)
	}
	return created, nil
}

func (r *reportRepo) Get(ctx context.Context, attemptID string) (*StoredReport, error) {
	b := builder()
	query, args := b.Select("attempt_id", "data", "created_at").
		From(b.Table(tableReports)).
		Where(entsql.EQ("attempt_id", attemptID)).
		Query()

	var (
		rep  StoredReport
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&rep.AttemptID, &data, &rep.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	rep.Data = []byte(data)
	return &rep, nil
}

func (r *reportRepo) Recommendations(ctx context.Context, attemptID string, limit int) ([]Recommendation, error) {
	b := builder()
	sel := b.Select("attempt_id", "occupation_code", "rank", "match_score", "data").
		From(b.Table(tableRecommendations)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy(entsql.Asc("rank"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var out []Recommendation
	for rows.Next() {
		var (
			rec  Recommendation
			data string
		)
		if err := rows.Scan(&rec.AttemptID, &rec.OccupationCode, &rec.Rank, &rec.MatchScore, &data); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.Data = []byte(data)
		out = append(out, rec)
	}
	return out, rows.Err()
}
