package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "instrument_id", "owner_key", "user_id", "session_id", "started_at", "completed_at",
}

// attemptRepo implements AttemptRepo with the ent SQL builder.
type attemptRepo struct {
	db *sql.DB
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner) (*Attempt, error) {
	var (
		a         Attempt
		completed sql.NullTime
	)
	if err := s.Scan(&a.ID, &a.InstrumentID, &a.OwnerKey, &a.UserID, &a.SessionID, &a.StartedAt, &completed); err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		a.CompletedAt = &t
	}
	return &a, nil
}

func (r *attemptRepo) Create(ctx context.Context, a *Attempt) error {
	query, args := builder().Insert(tableAttempts).
		Columns("id", "instrument_id", "owner_key", "user_id", "session_id", "started_at").
		Values(a.ID, a.InstrumentID, a.OwnerKey, a.UserID, a.SessionID, a.StartedAt.UTC()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) selectAttempts() *entsql.Selector {
	b := builder()
	return b.Select(attemptColumns...).From(b.Table(tableAttempts))
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*Attempt, error) {
	query, args := r.selectAttempts().Where(entsql.EQ("id", id)).Query()
	a, err := scanAttempt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) Latest(ctx context.Context, ownerKey, instrumentID string) (*Attempt, error) {
	query, args := r.selectAttempts().
		Where(entsql.And(entsql.EQ("owner_key", ownerKey), entsql.EQ("instrument_id", instrumentID))).
		OrderBy(entsql.Desc("started_at")).
		Limit(1).
		Query()
	return r.first(ctx, "latest attempt", query, args)
}

func (r *attemptRepo) LatestCompleted(ctx context.Context, ownerKey, instrumentID string) (*Attempt, error) {
	query, args := r.selectAttempts().
		Where(entsql.And(
			entsql.EQ("owner_key", ownerKey),
			entsql.EQ("instrument_id", instrumentID),
			entsql.NotNull("completed_at"),
		)).
		OrderBy(entsql.Desc("completed_at")).
		Limit(1).
		Query()
	return r.first(ctx, "latest completed attempt", query, args)
}

func (r *attemptRepo) first(ctx context.Context, what, query string, args []any) (*Attempt, error) {
	a, err := scanAttempt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	return a, nil
}

func (r *attemptRepo) List(ctx context.Context, ownerKey string) ([]Attempt, error) {
	query, args := r.selectAttempts().
		Where(entsql.EQ("owner_key", ownerKey)).
		OrderBy("started_at").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// now is the clock used for timestamps written by the store.
var now = func() time.Time { return time.Now().UTC() }
