package report

import (
	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/matching"
	"github.com/abhisek/careerfit/internal/scoring"
)

// Insight describes one strong dimension and the work settings that suit it.
type Insight struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Environments []string `json:"environments"`
}

// Series is one numeric series parallel to Visualization.Labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Visualization is chart-ready data. It carries no styling.
type Visualization struct {
	Kind   instrument.Category `json:"kind"`
	Labels []string            `json:"labels"`
	Series []Series            `json:"series"`
}

// Readiness summarises a composite result.
type Readiness struct {
	Score     int     `json:"score"`
	Band      string  `json:"band"`
	Ready     bool    `json:"ready"`
	Threshold float64 `json:"threshold"`
	// Empty is set when no occupations were available to rank.
	Empty bool `json:"empty"`
}

// Report is the stored outcome of one completed attempt.
type Report struct {
	AttemptID    string              `json:"attempt_id"`
	InstrumentID string              `json:"instrument_id"`
	Slug         string              `json:"slug"`
	Category     instrument.Category `json:"category"`

	Summary         string        `json:"summary"`
	TopTraits       []string      `json:"top_traits"`
	Insights        []Insight     `json:"insights"`
	Recommendations []string      `json:"recommendations"`
	Visualization   Visualization `json:"visualization"`

	// Profile is set for interest, personality and skill reports.
	Profile *scoring.Profile `json:"profile,omitempty"`

	// Readiness and Careers are set for composite reports. Careers is not
	// part of the stored report body; it is attached on read.
	Readiness *Readiness        `json:"readiness,omitempty"`
	Careers   []matching.Career `json:"careers,omitempty"`
}

// HollandCode returns the interest code, or "" for other instruments.
func (r *Report) HollandCode() string {
	if r.Profile == nil || r.Profile.Holland == nil {
		return ""
	}
	return r.Profile.Holland.Code
}

// IsComposite reports whether the report carries career recommendations.
func (r *Report) IsComposite() bool {
	return r.Category == instrument.CategoryComposite
}
