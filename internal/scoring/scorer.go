package scoring

import (
	"math"

	"github.com/abhisek/careerfit/internal/instrument"
)

// Score applies a question's scoring rule to a raw answer.
// ok is false when the rule has no entry for raw ("no score", distinct
// from a zero score).
func Score(q *instrument.Question, raw string) (score float64, ok bool) {
	if q == nil || q.Scoring == nil {
		return 0, false
	}
	score, ok = q.Scoring[raw]
	return score, ok
}

// Response is one question's stored score. A nil Score means the answer
// was stored but could not be scored.
type Response struct {
	QuestionID string
	Score      *float64
}

// Scored builds a Response for a question and raw answer.
func Scored(q *instrument.Question, raw string) Response {
	r := Response{QuestionID: q.ID}
	if s, ok := Score(q, raw); ok {
		r.Score = &s
	}
	return r
}

// round2 rounds to two decimal places so repeated runs serialise identically.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
