package matching

import (
	"math"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
	"github.com/abhisek/careerfit/internal/scoring"
)

// Input pairs a base instrument with the respondent's profile on it.
type Input struct {
	Instrument *instrument.Instrument
	Profile    *scoring.Profile
}

// Inputs holds the three base profiles a composite needs.
type Inputs struct {
	Interest    Input
	Skill       Input
	Personality Input
}

// Set stores in under its category. Composite instruments are ignored.
func (ins *Inputs) Set(in *instrument.Instrument, p *scoring.Profile) {
	switch in.Category {
	case instrument.CategoryInterest:
		ins.Interest = Input{Instrument: in, Profile: p}
	case instrument.CategorySkill:
		ins.Skill = Input{Instrument: in, Profile: p}
	case instrument.CategoryPersonality:
		ins.Personality = Input{Instrument: in, Profile: p}
	}
}

// InterestFit is an inverse Euclidean distance between the respondent's
// interest percentages and the occupation's emphasis vector, scaled to
// 0-100. Undetermined dimensions and unlisted emphases count as 0.
func InterestFit(in Input, occ *occupation.Occupation) float64 {
	if in.Instrument == nil || len(in.Instrument.Dimensions) == 0 {
		return 0
	}
	n := float64(len(in.Instrument.Dimensions))
	sq := 0.0
	for _, dim := range in.Instrument.Dimensions {
		d := percent(in.Profile, dim.Code) - occ.Interests[dim.Code]
		sq += d * d
	}
	return round2(clamp(100*(1-math.Sqrt(sq)/(100*math.Sqrt(n))), 0, 100))
}

// SkillsFit is the mean of min(current/required, 1) over the occupation's
// skill requirements, as a percentage. No requirements fits fully.
func SkillsFit(in Input, occ *occupation.Occupation) float64 {
	if len(occ.Skills) == 0 {
		return 100
	}
	total := 0.0
	for _, req := range occ.Skills {
		if req.Level <= 0 {
			total++
			continue
		}
		total += math.Min(value(in.Profile, req.Skill)/req.Level, 1)
	}
	return round2(total / float64(len(occ.Skills)) * 100)
}

// PersonalityFit scores each required trait 100 inside its band and
// falls off linearly with the distance to the band, relative to the
// instrument's scale span. Undetermined traits score 0; unknown bands are
// skipped.
func PersonalityFit(in Input, occ *occupation.Occupation) float64 {
	if in.Instrument == nil {
		return 0
	}
	span := in.Instrument.Scale.Span()
	total, n := 0.0, 0
	for _, req := range occ.Personality {
		band, ok := in.Instrument.Band(req.Band)
		if !ok {
			continue
		}
		n++
		d, ok := in.Profile.Dimension(req.Trait)
		if !ok || !d.Determined {
			continue
		}
		total += traitFit(in.Instrument, band, d.Value, span)
	}
	if n == 0 {
		return 100
	}
	return round2(total / float64(n))
}

func traitFit(in *instrument.Instrument, band instrument.Band, v, span float64) float64 {
	if in.BandFor(v) == band.Label {
		return 100
	}
	if span <= 0 {
		return 0
	}
	dist := 0.0
	switch {
	case v < band.Min:
		dist = band.Min - v
	case v >= band.Max:
		dist = v - band.Max
	}
	return clamp(100*(1-dist/span), 0, 100)
}

// Composite weights the three sub-scores and rounds to an integer percent.
// The weighted sum is rounded to six places first so binary error such as
// 62.99999999 does not flip the final rounding.
func Composite(cfg *instrument.CompositeConfig, interest, skills, personality float64) int {
	sum := cfg.Weight(instrument.CategoryInterest)*interest +
		cfg.Weight(instrument.CategorySkill)*skills +
		cfg.Weight(instrument.CategoryPersonality)*personality
	return int(math.Round(round6(sum)))
}

func percent(p *scoring.Profile, code string) float64 {
	d, ok := p.Dimension(code)
	if !ok || !d.Determined {
		return 0
	}
	return d.Percent
}

func value(p *scoring.Profile, code string) float64 {
	d, ok := p.Dimension(code)
	if !ok || !d.Determined {
		return 0
	}
	return d.Value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
