package matching

import (
	"sort"

	"github.com/abhisek/careerfit/internal/occupation"
)

// Priority ranks how urgent closing a skill gap is.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// GapPriority returns the priority for a gap measured in skill levels.
func GapPriority(gap float64) Priority {
	switch {
	case gap >= 2:
		return PriorityHigh
	case gap >= 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// SkillGap is one required skill the respondent has not reached.
type SkillGap struct {
	Skill    string   `json:"skill"`
	Code     string   `json:"code"`
	Current  float64  `json:"current"`
	Required float64  `json:"required"`
	Gap      float64  `json:"gap"`
	Priority Priority `json:"priority"`
}

// SkillGaps lists requirements where the current level is below the
// required one, largest gap first. An undetermined skill counts as 0.
func SkillGaps(in Input, occ *occupation.Occupation) []SkillGap {
	var gaps []SkillGap
	for _, req := range occ.Skills {
		cur := value(in.Profile, req.Skill)
		if cur >= req.Level {
			continue
		}
		gap := round2(req.Level - cur)
		gaps = append(gaps, SkillGap{
			Skill:    skillName(in, req.Skill),
			Code:     req.Skill,
			Current:  cur,
			Required: req.Level,
			Gap:      gap,
			Priority: GapPriority(gap),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Gap > gaps[j].Gap
	})
	return gaps
}

// LearningPath orders an occupation's learning steps: steps for gap skills
// in gap order, then general steps in catalog order.
func LearningPath(occ *occupation.Occupation, gaps []SkillGap) []string {
	var path []string
	for _, g := range gaps {
		for _, step := range occ.LearningPaths {
			if step.Skill == g.Code {
				path = append(path, step.Title)
			}
		}
	}
	for _, step := range occ.LearningPaths {
		if step.Skill == "" {
			path = append(path, step.Title)
		}
	}
	return path
}

func skillName(in Input, code string) string {
	if in.Instrument != nil {
		if d, ok := in.Instrument.Dimension(code); ok && d.Name != "" {
			return d.Name
		}
	}
	return code
}
