package matching

import (
	"sort"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
)

// DefaultTopN is the number of careers presented when the instrument does
// not configure one.
const DefaultTopN = 10

// Career is one ranked occupation recommendation.
type Career struct {
	Rank        int    `json:"rank"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	HollandCode string `json:"holland_code,omitempty"`

	MatchScore     int     `json:"match_score"`
	InterestFit    float64 `json:"interest_fit"`
	SkillsFit      float64 `json:"skills_fit"`
	PersonalityFit float64 `json:"personality_fit"`

	Reasons      []string   `json:"reasons"`
	Gaps         []SkillGap `json:"skill_gaps"`
	Education    []string   `json:"education"`
	LearningPath []string   `json:"learning_path"`
}

// Result is the composite outcome for one respondent.
type Result struct {
	// Careers is the full ranked set.
	Careers []Career `json:"careers"`

	// Readiness is the match score of the best-ranked occupation.
	Readiness      int     `json:"readiness"`
	ReadinessBand  string  `json:"readiness_band"`
	Ready          bool    `json:"ready"`
	ReadyThreshold float64 `json:"ready_threshold"`

	// Empty is set when the catalog had no occupations to rank.
	Empty bool `json:"empty"`
}

// Top returns the first n careers, or all of them when n <= 0 or n exceeds
// the ranked set.
func (r *Result) Top(n int) []Career {
	if n <= 0 || n >= len(r.Careers) {
		return r.Careers
	}
	return r.Careers[:n]
}

// Matcher ranks occupations against a respondent's base profiles using a
// composite instrument's configuration.
type Matcher struct {
	cfg *instrument.CompositeConfig
}

// NewMatcher creates a Matcher for a composite configuration.
func NewMatcher(cfg *instrument.CompositeConfig) *Matcher {
	return &Matcher{cfg: cfg}
}

// TopN returns the configured presentation size.
func (m *Matcher) TopN() int {
	if m.cfg == nil || m.cfg.TopN <= 0 {
		return DefaultTopN
	}
	return m.cfg.TopN
}

// Evaluate scores a single occupation without ranking it.
func (m *Matcher) Evaluate(ins Inputs, occ *occupation.Occupation) Career {
	c := Career{
		Code:           occ.Code,
		Title:          occ.Title,
		InterestFit:    InterestFit(ins.Interest, occ),
		SkillsFit:      SkillsFit(ins.Skill, occ),
		PersonalityFit: PersonalityFit(ins.Personality, occ),
		Reasons:        Reasons(m.cfg, ins, occ),
		Gaps:           SkillGaps(ins.Skill, occ),
		Education:      append([]string(nil), occ.Education...),
	}
	if in := ins.Interest.Instrument; in != nil {
		order := make([]string, len(in.Dimensions))
		for i, d := range in.Dimensions {
			order[i] = d.Code
		}
		c.HollandCode = occ.HollandCode(order)
	}
	c.MatchScore = Composite(m.cfg, c.InterestFit, c.SkillsFit, c.PersonalityFit)
	c.LearningPath = LearningPath(occ, c.Gaps)
	return c
}

// Match evaluates and ranks every occupation. Careers are ordered by match
// score, then interest fit, then occupation code; ranks run 1..N.
func (m *Matcher) Match(ins Inputs, occs []occupation.Occupation) *Result {
	res := &Result{Careers: make([]Career, 0, len(occs))}
	if m.cfg != nil {
		res.ReadyThreshold = m.cfg.ReadyThreshold
	}
	if len(occs) == 0 {
		res.Empty = true
		return res
	}

	for i := range occs {
		res.Careers = append(res.Careers, m.Evaluate(ins, &occs[i]))
	}
	Rank(res.Careers)

	best := res.Careers[0]
	res.Readiness = best.MatchScore
	res.Ready = float64(best.MatchScore) >= res.ReadyThreshold
	if m.cfg != nil {
		res.ReadinessBand = instrument.ThresholdLabel(m.cfg.Readiness, float64(best.MatchScore))
	}
	return res
}

// Rank sorts careers and assigns ranks in place.
func Rank(cs []Career) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.InterestFit != b.InterestFit {
			return a.InterestFit > b.InterestFit
		}
		return a.Code < b.Code
	})
	for i := range cs {
		cs[i].Rank = i + 1
	}
}

// Missing returns the required slugs, in configuration order, for which
// completed reports false.
func Missing(cfg *instrument.CompositeConfig, completed func(slug string) bool) []string {
	if cfg == nil {
		return nil
	}
	var out []string
	for _, slug := range cfg.Requires {
		if !completed(slug) {
			out = append(out, slug)
		}
	}
	return out
}
