package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
)

// Validate performs all structural checks on a bundle.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(b *Bundle) error {
	if b == nil {
		return fmt.Errorf("catalog validation failed: nil bundle")
	}

	var errs []string

	ids := make(map[string]*instrument.Instrument, len(b.Instruments))
	slugs := make(map[string]*instrument.Instrument, len(b.Instruments))

	for i := range b.Instruments {
		in := &b.Instruments[i]
		if in.ID == "" || in.Slug == "" {
			errs = append(errs, fmt.Sprintf("instrument %d: id and slug are required", i))
			continue
		}
		if _, dup := ids[in.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate instrument ID: %q", in.ID))
		}
		if _, dup := slugs[in.Slug]; dup {
			errs = append(errs, fmt.Sprintf("duplicate instrument slug: %q", in.Slug))
		}
		ids[in.ID] = in
		slugs[in.Slug] = in
		errs = append(errs, validateInstrument(in)...)
	}

	// Composite references are checked once every slug is known.
	for i := range b.Instruments {
		in := &b.Instruments[i]
		if in.Composite == nil {
			continue
		}
		for _, slug := range in.Composite.Requires {
			dep, ok := slugs[slug]
			if !ok {
				errs = append(errs, fmt.Sprintf("instrument %q requires unknown instrument %q", in.Slug, slug))
				continue
			}
			if dep.Category == instrument.CategoryComposite {
				errs = append(errs, fmt.Sprintf("instrument %q cannot require composite instrument %q", in.Slug, slug))
			}
		}
	}

	qids := make(map[string]bool, len(b.Questions))
	for _, q := range b.Questions {
		if qids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		qids[q.ID] = true

		in, ok := ids[q.InstrumentID]
		if !ok {
			errs = append(errs, fmt.Sprintf("question %q references nonexistent instrument %q", q.ID, q.InstrumentID))
			continue
		}
		if in.DimensionIndex(q.Dimension) < 0 {
			errs = append(errs, fmt.Sprintf("question %q references unknown dimension %q", q.ID, q.Dimension))
		}
		for raw, score := range q.Scoring {
			if !q.HasOption(raw) {
				errs = append(errs, fmt.Sprintf("question %q scores %q which is not an option", q.ID, raw))
			}
			if score < in.Scale.Min || score > in.Scale.Max {
				errs = append(errs, fmt.Sprintf("question %q scores %q as %v, outside scale [%v, %v]", q.ID, raw, score, in.Scale.Min, in.Scale.Max))
			}
		}
	}

	codes := make(map[string]bool, len(b.Occupations))
	for _, o := range b.Occupations {
		if o.Code == "" {
			errs = append(errs, fmt.Sprintf("occupation %q has no code", o.Title))
			continue
		}
		if codes[o.Code] {
			errs = append(errs, fmt.Sprintf("duplicate occupation code: %q", o.Code))
		}
		codes[o.Code] = true
		for dim, v := range o.Interests {
			if v < 0 || v > 100 {
				errs = append(errs, fmt.Sprintf("occupation %q interest %q emphasis must be in [0, 100], got %v", o.Code, dim, v))
			}
		}
	}
	errs = append(errs, validateRequirements(b, slugs)...)

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateInstrument(in *instrument.Instrument) []string {
	var errs []string
	prefix := fmt.Sprintf("instrument %q", in.Slug)

	switch in.Category {
	case instrument.CategoryInterest, instrument.CategoryPersonality, instrument.CategorySkill:
		if in.Scale.Max <= in.Scale.Min {
			errs = append(errs, fmt.Sprintf("%s: scale max must exceed min, got [%v, %v]", prefix, in.Scale.Min, in.Scale.Max))
		}
		if len(in.Dimensions) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no dimensions", prefix))
		}
	case instrument.CategoryComposite:
		if in.Composite == nil {
			errs = append(errs, fmt.Sprintf("%s: composite configuration is required", prefix))
			return errs
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown category %q", prefix, in.Category))
		return errs
	}

	seen := make(map[string]bool, len(in.Dimensions))
	for _, d := range in.Dimensions {
		if seen[d.Code] {
			errs = append(errs, fmt.Sprintf("%s: duplicate dimension %q", prefix, d.Code))
		}
		seen[d.Code] = true
	}

	switch in.Category {
	case instrument.CategoryInterest:
		if len(in.Dimensions) < 3 {
			errs = append(errs, fmt.Sprintf("%s: holland code needs at least 3 dimensions, got %d", prefix, len(in.Dimensions)))
		}
		for _, d := range in.Dimensions {
			if utf8.RuneCountInString(d.Code) != 1 {
				errs = append(errs, fmt.Sprintf("%s: holland dimension code %q must be a single letter", prefix, d.Code))
			}
		}
	case instrument.CategoryPersonality:
		errs = append(errs, validateBands(prefix, in)...)
	case instrument.CategorySkill:
		if len(in.Levels) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no proficiency levels", prefix))
		}
	case instrument.CategoryComposite:
		c := in.Composite
		total := 0.0
		for cat, w := range c.Weights {
			switch cat {
			case instrument.CategoryInterest, instrument.CategoryPersonality, instrument.CategorySkill:
			default:
				errs = append(errs, fmt.Sprintf("%s: weight for unsupported category %q", prefix, cat))
			}
			if w < 0 {
				errs = append(errs, fmt.Sprintf("%s: weight for %q must be >= 0, got %v", prefix, cat, w))
			}
			total += w
		}
		if math.Abs(total-1) > 1e-9 {
			errs = append(errs, fmt.Sprintf("%s: weights must sum to 1, got %v", prefix, total))
		}
		if c.ReadyThreshold < 0 || c.ReadyThreshold > 100 {
			errs = append(errs, fmt.Sprintf("%s: ready threshold must be in [0, 100], got %v", prefix, c.ReadyThreshold))
		}
		if len(c.Readiness) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no readiness bands", prefix))
		}
		if c.TopN < 0 {
			errs = append(errs, fmt.Sprintf("%s: top_n must be >= 0, got %d", prefix, c.TopN))
		}
	}
	return errs
}

// validateBands checks that bands tile the scale without gaps or overlaps.
func validateBands(prefix string, in *instrument.Instrument) []string {
	if len(in.Bands) == 0 {
		return []string{fmt.Sprintf("%s: no bands", prefix)}
	}
	var errs []string
	if in.Bands[0].Min != in.Scale.Min {
		errs = append(errs, fmt.Sprintf("%s: first band must start at scale min %v, got %v", prefix, in.Scale.Min, in.Bands[0].Min))
	}
	for i := 1; i < len(in.Bands); i++ {
		if in.Bands[i].Min != in.Bands[i-1].Max {
			errs = append(errs, fmt.Sprintf("%s: band %q does not start where %q ends", prefix, in.Bands[i].Label, in.Bands[i-1].Label))
		}
	}
	if last := in.Bands[len(in.Bands)-1]; last.Max != in.Scale.Max {
		errs = append(errs, fmt.Sprintf("%s: last band must end at scale max %v, got %v", prefix, in.Scale.Max, last.Max))
	}
	return errs
}

// validateRequirements checks occupation requirements against the base
// instruments each composite instrument matches with.
func validateRequirements(b *Bundle, slugs map[string]*instrument.Instrument) []string {
	var errs []string
	for i := range b.Instruments {
		c := b.Instruments[i].Composite
		if c == nil {
			continue
		}
		bases := make(map[instrument.Category]*instrument.Instrument, len(c.Requires))
		for _, slug := range c.Requires {
			if dep, ok := slugs[slug]; ok {
				bases[dep.Category] = dep
			}
		}
		for _, o := range b.Occupations {
			errs = append(errs, validateOccupation(&o, bases)...)
		}
	}
	return errs
}

func validateOccupation(o *occupation.Occupation, bases map[instrument.Category]*instrument.Instrument) []string {
	var errs []string
	prefix := fmt.Sprintf("occupation %q", o.Code)

	if in := bases[instrument.CategoryInterest]; in != nil {
		for dim := range o.Interests {
			if in.DimensionIndex(dim) < 0 {
				errs = append(errs, fmt.Sprintf("%s: interest %q is not a dimension of %q", prefix, dim, in.Slug))
			}
		}
	}
	if in := bases[instrument.CategorySkill]; in != nil {
		for _, req := range o.Skills {
			if in.DimensionIndex(req.Skill) < 0 {
				errs = append(errs, fmt.Sprintf("%s: skill %q is not a dimension of %q", prefix, req.Skill, in.Slug))
			}
			if req.Level < in.Scale.Min || req.Level > in.Scale.Max {
				errs = append(errs, fmt.Sprintf("%s: skill %q level %v outside scale [%v, %v]", prefix, req.Skill, req.Level, in.Scale.Min, in.Scale.Max))
			}
		}
	}
	if in := bases[instrument.CategoryPersonality]; in != nil {
		for _, req := range o.Personality {
			if in.DimensionIndex(req.Trait) < 0 {
				errs = append(errs, fmt.Sprintf("%s: trait %q is not a dimension of %q", prefix, req.Trait, in.Slug))
			}
			if _, ok := in.Band(req.Band); !ok {
				errs = append(errs, fmt.Sprintf("%s: trait %q band %q is not a band of %q", prefix, req.Trait, req.Band, in.Slug))
			}
		}
	}
	return errs
}
