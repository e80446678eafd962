package instrument

import "math"

// Category identifies which scoring strategy an instrument uses.
type Category string

const (
	CategoryInterest    Category = "interest"
	CategoryPersonality Category = "personality"
	CategorySkill       Category = "skill"
	CategoryComposite   Category = "composite"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryInterest, CategoryPersonality, CategorySkill, CategoryComposite}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryInterest:
		return "Interests"
	case CategoryPersonality:
		return "Personality"
	case CategorySkill:
		return "Skills"
	case CategoryComposite:
		return "Career Fit"
	default:
		return string(c)
	}
}

// Dimension is a named sub-scale within an instrument.
type Dimension struct {
	Code         string   `json:"code" yaml:"code"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Environments []string `json:"environments,omitempty" yaml:"environments,omitempty"`
}

// Scale bounds the score a single response can produce.
type Scale struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Span returns Max - Min.
func (s Scale) Span() float64 {
	return s.Max - s.Min
}

// Band labels a half-open range [Min, Max) of a mean score. The band whose
// Max equals the scale maximum is closed on the right.
type Band struct {
	Label string  `json:"label" yaml:"label"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// Threshold maps an inclusive lower bound (0-100) to a label.
type Threshold struct {
	Label string  `json:"label" yaml:"label"`
	Min   float64 `json:"min" yaml:"min"`
}

// CompositeConfig holds the weighting for a composite instrument.
type CompositeConfig struct {
	// Requires lists the slugs of base instruments that must be completed.
	Requires []string `json:"requires" yaml:"requires"`
	// Weights maps a base category to its share of the composite score.
	Weights map[Category]float64 `json:"weights" yaml:"weights"`
	// ReadyThreshold is the minimum composite score considered ready.
	ReadyThreshold float64 `json:"ready_threshold" yaml:"ready_threshold"`
	// Readiness maps composite scores to qualitative bands.
	Readiness []Threshold `json:"readiness" yaml:"readiness"`
	// TopN is the default number of careers presented.
	TopN int `json:"top_n" yaml:"top_n"`
}

// Weight returns the weight for a category, or 0 if unset.
func (c *CompositeConfig) Weight(cat Category) float64 {
	if c == nil {
		return 0
	}
	return c.Weights[cat]
}

// Instrument is the static definition of one questionnaire.
type Instrument struct {
	ID          string      `json:"id" yaml:"id"`
	Slug        string      `json:"slug" yaml:"slug"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category    `json:"category" yaml:"category"`
	Dimensions  []Dimension `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Scale       Scale       `json:"scale" yaml:"scale"`

	// Bands is used by personality instruments.
	Bands []Band `json:"bands,omitempty" yaml:"bands,omitempty"`
	// Levels is used by skill instruments; checked from highest Min down.
	Levels []Threshold `json:"levels,omitempty" yaml:"levels,omitempty"`
	// Composite is set only for composite instruments.
	Composite *CompositeConfig `json:"composite,omitempty" yaml:"composite,omitempty"`
}

// Dimension returns the dimension with the given code.
func (in *Instrument) Dimension(code string) (Dimension, bool) {
	for _, d := range in.Dimensions {
		if d.Code == code {
			return d, true
		}
	}
	return Dimension{}, false
}

// DimensionIndex returns the canonical position of a dimension code, or -1.
func (in *Instrument) DimensionIndex(code string) int {
	for i, d := range in.Dimensions {
		if d.Code == code {
			return i
		}
	}
	return -1
}

// BandFor maps a mean score to a band label. Means outside every band
// are clamped to the nearest one.
func (in *Instrument) BandFor(mean float64) string {
	if len(in.Bands) == 0 {
		return ""
	}
	for i, b := range in.Bands {
		last := i == len(in.Bands)-1
		if mean >= b.Min && (mean < b.Max || (last && mean <= b.Max)) {
			return b.Label
		}
	}
	if mean < in.Bands[0].Min {
		return in.Bands[0].Label
	}
	return in.Bands[len(in.Bands)-1].Label
}

// Band returns the band with the given label.
func (in *Instrument) Band(label string) (Band, bool) {
	for _, b := range in.Bands {
		if b.Label == label {
			return b, true
		}
	}
	return Band{}, false
}

// LevelFor maps a percentage to a proficiency label.
func (in *Instrument) LevelFor(percent float64) string {
	return ThresholdLabel(in.Levels, percent)
}

// ThresholdLabel returns the label of the highest threshold whose Min is
// <= v. Thresholds need not be sorted.
func ThresholdLabel(ts []Threshold, v float64) string {
	best := -1
	for i, t := range ts {
		if v >= t.Min && (best < 0 || t.Min > ts[best].Min) {
			best = i
		}
	}
	if best < 0 {
		lowest := -1
		for i, t := range ts {
			if lowest < 0 || t.Min < ts[lowest].Min {
				lowest = i
			}
		}
		if lowest < 0 {
			return ""
		}
		return ts[lowest].Label
	}
	return ts[best].Label
}

// Option is one selectable answer.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ScoringRule maps a raw option value to an output score. Reverse-scored
// items are expressed as a decreasing mapping.
type ScoringRule map[string]float64

// MaxScore returns the largest score the rule can produce.
func (r ScoringRule) MaxScore() float64 {
	m := math.Inf(-1)
	for _, v := range r {
		if v > m {
			m = v
		}
	}
	if math.IsInf(m, -1) {
		return 0
	}
	return m
}

// Question belongs to exactly one instrument.
type Question struct {
	ID           string      `json:"id" yaml:"id"`
	InstrumentID string      `json:"instrument_id" yaml:"instrument_id"`
	Dimension    string      `json:"dimension" yaml:"dimension"`
	Text         string      `json:"text" yaml:"text"`
	Order        int         `json:"order" yaml:"order"`
	Inactive     bool        `json:"inactive,omitempty" yaml:"inactive,omitempty"`
	Options      []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	Scoring      ScoringRule `json:"scoring,omitempty" yaml:"scoring,omitempty"`
}

// Active reports whether the question counts towards completion.
func (q *Question) Active() bool {
	return !q.Inactive
}

// HasOption reports whether raw is one of the question's option values.
// Questions without options accept any value.
func (q *Question) HasOption(raw string) bool {
	if len(q.Options) == 0 {
		return true
	}
	for _, o := range q.Options {
		if o.Value == raw {
			return true
		}
	}
	return false
}
