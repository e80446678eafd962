package assessment

import (
	"errors"
	"time"
)

// ErrNoIdentity is returned when neither a user nor a session id is given.
var ErrNoIdentity = errors.New("a user or session id is required")

// Identity is the caller on whose behalf an operation runs. UserID wins
// over SessionID when both are set.
type Identity struct {
	UserID    string
	SessionID string
}

// OwnerKey returns the key attempts are owned by, or "" for an empty
// identity.
func (id Identity) OwnerKey() string {
	switch {
	case id.UserID != "":
		return "user:" + id.UserID
	case id.SessionID != "":
		return "session:" + id.SessionID
	default:
		return ""
	}
}

// Status is an attempt's lifecycle state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Attempt describes one attempt for callers.
type Attempt struct {
	ID           string     `json:"id"`
	InstrumentID string     `json:"instrument_id"`
	Slug         string     `json:"slug"`
	Status       Status     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Submission is one answer to one question.
type Submission struct {
	QuestionID string
	Raw        string
	TimeSpent  time.Duration
}

// Progress is the share of an instrument's active questions answered.
type Progress struct {
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// SubmitResult is returned by Submit.
type SubmitResult struct {
	Progress Progress `json:"progress"`
	// Unscored is set when the answer was stored but the question's
	// scoring rule had no entry for it. It is excluded from aggregation.
	Unscored bool `json:"unscored"`
}
