package scoring

import (
	"sort"

	"github.com/abhisek/careerfit/internal/instrument"
)

// DimensionScore is the reduced value of one dimension.
type DimensionScore struct {
	Code string `json:"code"`
	Name string `json:"name"`

	// Determined is false when no scored response contributed; Value and
	// Percent are then zero and must not be read as "low".
	Determined bool `json:"determined"`

	// Value is the sum (interest) or mean (personality, skill) of scores.
	Value float64 `json:"value"`
	// Max is the largest Value the dimension can reach.
	Max float64 `json:"max"`
	// Percent is Value re-expressed on 0-100.
	Percent float64 `json:"percent"`
	// Answered counts the scored responses that contributed.
	Answered int `json:"answered"`
	// Label is the proficiency label (skill) or band (personality).
	Label string `json:"label,omitempty"`
}

// HollandCode is the ranked three-letter interest summary.
type HollandCode struct {
	Code      string `json:"code"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

// Profile holds one attempt's dimension values for one instrument.
type Profile struct {
	InstrumentID string              `json:"instrument_id"`
	Slug         string              `json:"slug"`
	Category     instrument.Category `json:"category"`
	Dimensions   []DimensionScore    `json:"dimensions"`
	Holland      *HollandCode        `json:"holland,omitempty"`
}

// Dimension returns the score for a dimension code.
func (p *Profile) Dimension(code string) (DimensionScore, bool) {
	if p == nil {
		return DimensionScore{}, false
	}
	for _, d := range p.Dimensions {
		if d.Code == code {
			return d, true
		}
	}
	return DimensionScore{}, false
}

// Ranked returns dimensions ordered by Percent descending. Undetermined
// dimensions come last; ties keep canonical order.
func (p *Profile) Ranked() []DimensionScore {
	out := make([]DimensionScore, len(p.Dimensions))
	copy(out, p.Dimensions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Determined != out[j].Determined {
			return out[i].Determined
		}
		return out[i].Percent > out[j].Percent
	})
	return out
}

// Weakest returns up to n determined dimensions ordered by Percent
// ascending, ties in canonical order.
func (p *Profile) Weakest(n int) []DimensionScore {
	var out []DimensionScore
	for _, d := range p.Dimensions {
		if d.Determined {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent < out[j].Percent
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
