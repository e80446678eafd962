package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Attempt is one respondent's pass at one instrument.
type Attempt struct {
	ID           string
	InstrumentID string
	// OwnerKey is the user id, or the session id for anonymous attempts.
	OwnerKey    string
	UserID      string
	SessionID   string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Completed reports whether the attempt has been completed.
func (a *Attempt) Completed() bool {
	return a.CompletedAt != nil
}

// Response is the stored answer to one question of an attempt.
type Response struct {
	AttemptID  string
	QuestionID string
	RawValue   string
	// Score is nil when the raw value could not be scored.
	Score       *float64
	TimeSpentMs int64
	UpdatedAt   time.Time
}

// StoredReport is the serialized report of a completed attempt.
type StoredReport struct {
	AttemptID string
	Data      []byte
	CreatedAt time.Time
}

// Recommendation is one stored, ranked career recommendation.
type Recommendation struct {
	AttemptID      string
	OccupationCode string
	Rank           int
	MatchScore     int
	Data           []byte
}

// AttemptRepo manages attempts.
type AttemptRepo interface {
	// Create inserts a new attempt.
	Create(ctx context.Context, a *Attempt) error

	// Get returns an attempt by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Attempt, error)

	// Latest returns the owner's most recently started attempt for an
	// instrument, or nil if none exist.
	Latest(ctx context.Context, ownerKey, instrumentID string) (*Attempt, error)

	// LatestCompleted returns the owner's most recently completed attempt
	// for an instrument, or nil if none exist.
	LatestCompleted(ctx context.Context, ownerKey, instrumentID string) (*Attempt, error)

	// List returns the owner's attempts, oldest first.
	List(ctx context.Context, ownerKey string) ([]Attempt, error)
}

// ResponseRepo manages responses. There is at most one response per
// (attempt, question); later writes replace earlier ones.
type ResponseRepo interface {
	// Upsert inserts or replaces the response for its (attempt, question).
	Upsert(ctx context.Context, r *Response) error

	// List returns all responses of an attempt.
	List(ctx context.Context, attemptID string) ([]Response, error)
}

// ReportRepo manages reports and their career recommendations.
type ReportRepo interface {
	// Finalize marks the attempt completed if it is not already and stores
	// the report and recommendations if no report exists yet, in one
	// transaction. created is false when a report was already stored.
	Finalize(ctx context.Context, attemptID string, at time.Time, data []byte, recs []Recommendation) (created bool, err error)

	// Get returns the stored report of an attempt, or nil if none exists.
	Get(ctx context.Context, attemptID string) (*StoredReport, error)

	// Recommendations returns an attempt's recommendations by rank. A
	// limit <= 0 returns all of them.
	Recommendations(ctx context.Context, attemptID string, limit int) ([]Recommendation, error)
}
