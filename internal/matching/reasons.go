package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
)

// MaxReasons is the number of match reasons kept per occupation.
const MaxReasons = 3

// strongEmphasis is the occupation emphasis at which an interest counts
// as a reason.
const strongEmphasis = 50

type factor struct {
	text      string
	magnitude float64
}

// Reasons names the factors that contributed most to an occupation's
// composite score: shared strong interests, met skill requirements and
// traits inside the preferred band. Each factor is weighted by its
// category's composite weight. Ties keep interest, skill, trait order.
func Reasons(cfg *instrument.CompositeConfig, ins Inputs, occ *occupation.Occupation) []string {
	var fs []factor

	if in := ins.Interest.Instrument; in != nil {
		w := cfg.Weight(instrument.CategoryInterest)
		for _, dim := range in.Dimensions {
			emphasis := occ.Interests[dim.Code]
			p := percent(ins.Interest.Profile, dim.Code)
			if emphasis < strongEmphasis || p <= 0 {
				continue
			}
			fs = append(fs, factor{
				text:      fmt.Sprintf("Strong %s interest (%.0f%%)", dim.Name, p),
				magnitude: w * math.Min(p, emphasis),
			})
		}
	}

	w := cfg.Weight(instrument.CategorySkill)
	for _, req := range occ.Skills {
		d, ok := ins.Skill.Profile.Dimension(req.Skill)
		if !ok || !d.Determined || d.Value < req.Level {
			continue
		}
		text := fmt.Sprintf("%s meets the required level", skillName(ins.Skill, req.Skill))
		if d.Label != "" {
			text += fmt.Sprintf(" (%s)", d.Label)
		}
		fs = append(fs, factor{text: text, magnitude: w * 100})
	}

	if in := ins.Personality.Instrument; in != nil {
		w := cfg.Weight(instrument.CategoryPersonality)
		for _, req := range occ.Personality {
			d, ok := ins.Personality.Profile.Dimension(req.Trait)
			if !ok || !d.Determined || in.BandFor(d.Value) != req.Band {
				continue
			}
			name := req.Trait
			if dim, ok := in.Dimension(req.Trait); ok {
				name = dim.Name
			}
			fs = append(fs, factor{
				text:      fmt.Sprintf("%s is %s, as the role prefers", name, req.Band),
				magnitude: w * 100,
			})
		}
	}

	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].magnitude > fs[j].magnitude
	})
	var out []string
	for _, f := range fs {
		if f.magnitude <= 0 || len(out) == MaxReasons {
			break
		}
		out = append(out, f.text)
	}
	return out
}
