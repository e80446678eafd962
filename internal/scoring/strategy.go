package scoring

import (
	"fmt"
	"sort"

	"github.com/abhisek/careerfit/internal/instrument"
)

// Strategy reduces one dimension's scores to a value and derives the
// instrument-specific summary (holland code, levels, bands).
type Strategy interface {
	// Reduce collapses a non-empty list of scores to a dimension value.
	Reduce(scores []float64) float64
	// Derive fills Percent, Label and Holland once every dimension is reduced.
	Derive(in *instrument.Instrument, p *Profile)
}

var strategies = map[instrument.Category]Strategy{
	instrument.CategoryInterest:    hollandStrategy{},
	instrument.CategoryPersonality: bandStrategy{},
	instrument.CategorySkill:       levelStrategy{},
}

// StrategyFor returns the strategy for an instrument category. Composite
// instruments have no per-question aggregation.
func StrategyFor(cat instrument.Category) (Strategy, error) {
	s, ok := strategies[cat]
	if !ok {
		return nil, fmt.Errorf("no aggregation strategy for category %q", cat)
	}
	return s, nil
}

func sum(scores []float64) float64 {
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total
}

// hollandStrategy sums scores per dimension and ranks the top three.
type hollandStrategy struct{}

func (hollandStrategy) Reduce(scores []float64) float64 {
	return sum(scores)
}

func (hollandStrategy) Derive(in *instrument.Instrument, p *Profile) {
	for i := range p.Dimensions {
		d := &p.Dimensions[i]
		if !d.Determined || d.Max <= 0 {
			continue
		}
		d.Percent = round2(clamp(d.Value/d.Max*100, 0, 100))
	}
	p.Holland = DeriveHolland(p.Dimensions)
}

// DeriveHolland ranks dimensions by Value descending and takes the top
// three. Undetermined dimensions rank after determined ones; ties keep the
// canonical order of dims. Returns nil with fewer than three dimensions.
func DeriveHolland(dims []DimensionScore) *HollandCode {
	if len(dims) < 3 {
		return nil
	}
	ranked := make([]DimensionScore, len(dims))
	copy(ranked, dims)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Determined != ranked[j].Determined {
			return ranked[i].Determined
		}
		return ranked[i].Value > ranked[j].Value
	})
	return &HollandCode{
		Code:      ranked[0].Code + ranked[1].Code + ranked[2].Code,
		Primary:   ranked[0].Code,
		Secondary: ranked[1].Code,
		Tertiary:  ranked[2].Code,
	}
}

func mean(scores []float64) float64 {
	return sum(scores) / float64(len(scores))
}

// meanPercent returns the unrounded (mean / scale max) * 100.
func meanPercent(in *instrument.Instrument, m float64) float64 {
	if in.Scale.Max <= 0 {
		return 0
	}
	return clamp(m/in.Scale.Max*100, 0, 100)
}

// levelStrategy averages skill scores and labels proficiency.
type levelStrategy struct{}

func (levelStrategy) Reduce(scores []float64) float64 {
	return mean(scores)
}

func (levelStrategy) Derive(in *instrument.Instrument, p *Profile) {
	for i := range p.Dimensions {
		d := &p.Dimensions[i]
		if !d.Determined {
			continue
		}
		pct := meanPercent(in, d.Value)
		d.Label = in.LevelFor(pct)
		d.Percent = round2(pct)
		d.Value = round2(d.Value)
	}
}

// bandStrategy averages trait scores and maps them to configured bands.
// Labels come from the unrounded mean; only the reported values are rounded.
type bandStrategy struct{}

func (bandStrategy) Reduce(scores []float64) float64 {
	return mean(scores)
}

func (bandStrategy) Derive(in *instrument.Instrument, p *Profile) {
	for i := range p.Dimensions {
		d := &p.Dimensions[i]
		if !d.Determined {
			continue
		}
		d.Label = in.BandFor(d.Value)
		d.Percent = round2(meanPercent(in, d.Value))
		d.Value = round2(d.Value)
	}
}
