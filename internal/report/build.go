package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/matching"
	"github.com/abhisek/careerfit/internal/scoring"
)

// TopK is the number of top traits, insights and charted careers.
const TopK = 3

// Build creates the report for an interest, personality or skill attempt.
func Build(attemptID string, in *instrument.Instrument, p *scoring.Profile) *Report {
	r := &Report{
		AttemptID:    attemptID,
		InstrumentID: in.ID,
		Slug:         in.Slug,
		Category:     in.Category,
		Profile:      p,
	}

	top := topDetermined(p, TopK)
	r.TopTraits = make([]string, 0, len(top))
	r.Insights = make([]Insight, 0, len(top))
	for _, d := range top {
		r.TopTraits = append(r.TopTraits, traitLabel(d))
		r.Insights = append(r.Insights, insight(in, d))
	}

	switch in.Category {
	case instrument.CategoryInterest:
		r.Summary = interestSummary(in, p, top)
		r.Recommendations = interestRecommendations(p, top)
	case instrument.CategorySkill:
		r.Summary = skillSummary(top)
		r.Recommendations = skillRecommendations(in, p, top)
	case instrument.CategoryPersonality:
		r.Summary = personalitySummary(in, top)
		r.Recommendations = personalityRecommendations(in, p, top)
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	r.Visualization = profileChart(in, p)
	return r
}

func topDetermined(p *scoring.Profile, k int) []scoring.DimensionScore {
	var out []scoring.DimensionScore
	for _, d := range p.Ranked() {
		if !d.Determined || len(out) == k {
			break
		}
		out = append(out, d)
	}
	return out
}

func undetermined(p *scoring.Profile) []string {
	var names []string
	for _, d := range p.Dimensions {
		if !d.Determined {
			names = append(names, d.Name)
		}
	}
	return names
}

func traitLabel(d scoring.DimensionScore) string {
	if d.Label == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Label)
}

func insight(in *instrument.Instrument, d scoring.DimensionScore) Insight {
	dim, _ := in.Dimension(d.Code)
	var desc string
	switch in.Category {
	case instrument.CategoryInterest:
		desc = fmt.Sprintf("Your %s interest scored %.0f%%: you enjoy %s.", d.Name, d.Percent, dim.Description)
	case instrument.CategorySkill:
		desc = fmt.Sprintf("Your %s skill is at %s level (%.0f%%): %s.", d.Name, d.Label, d.Percent, dim.Description)
	default:
		desc = fmt.Sprintf("Your %s is %s (%.2f of %.0f): %s.", d.Name, d.Label, d.Value, in.Scale.Max, dim.Description)
	}
	envs := dim.Environments
	if envs == nil {
		envs = []string{}
	}
	return Insight{Title: d.Name, Description: desc, Environments: envs}
}

func interestSummary(in *instrument.Instrument, p *scoring.Profile, top []scoring.DimensionScore) string {
	if len(top) == 0 {
		return "Not enough answers yet to describe your interests."
	}
	dim, _ := in.Dimension(top[0].Code)
	if p.Holland != nil {
		return fmt.Sprintf("Your Holland code is %s. You are most drawn to %s work: %s.",
			p.Holland.Code, top[0].Name, dim.Description)
	}
	return fmt.Sprintf("You are most drawn to %s work: %s.", top[0].Name, dim.Description)
}

func interestRecommendations(p *scoring.Profile, top []scoring.DimensionScore) []string {
	var recs []string
	if len(top) >= 2 {
		recs = append(recs, fmt.Sprintf("Explore careers that combine %s and %s work.", top[0].Name, top[1].Name))
	} else if len(top) == 1 {
		recs = append(recs, fmt.Sprintf("Explore careers built around %s work.", top[0].Name))
	}
	if weak := p.Weakest(1); len(weak) == 1 && len(top) > 0 && weak[0].Code != top[0].Code {
		recs = append(recs, fmt.Sprintf("Try a short %s project to test whether it suits you more than your answers suggest.", weak[0].Name))
	}
	if missing := undetermined(p); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Answer the remaining questions on %s to complete your profile.", strings.Join(missing, ", ")))
	}
	return recs
}

func skillSummary(top []scoring.DimensionScore) string {
	if len(top) == 0 {
		return "Not enough answers yet to assess your skills."
	}
	return fmt.Sprintf("Your strongest skill is %s at %s level (%.0f%%).", top[0].Name, top[0].Label, top[0].Percent)
}

// nextLevel returns the lowest level above percent, if any.
func nextLevel(in *instrument.Instrument, percent float64) (instrument.Threshold, bool) {
	var next instrument.Threshold
	found := false
	for _, t := range in.Levels {
		if t.Min > percent && (!found || t.Min < next.Min) {
			next, found = t, true
		}
	}
	return next, found
}

func skillRecommendations(in *instrument.Instrument, p *scoring.Profile, top []scoring.DimensionScore) []string {
	var recs []string
	for _, d := range p.Weakest(2) {
		next, ok := nextLevel(in, d.Percent)
		if !ok {
			continue
		}
		recs = append(recs, fmt.Sprintf("Develop your %s skill: a structured course could take you from %s to %s (%.0f%%+).",
			d.Name, d.Label, next.Label, next.Min))
	}
	if len(recs) == 0 && len(top) > 0 {
		recs = append(recs, fmt.Sprintf("Keep your %s skill sharp by mentoring others.", top[0].Name))
	}
	if missing := undetermined(p); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Rate yourself on %s to complete your profile.", strings.Join(missing, ", ")))
	}
	return recs
}

func personalitySummary(in *instrument.Instrument, top []scoring.DimensionScore) string {
	if len(top) == 0 {
		return "Not enough answers yet to describe your personality."
	}
	return fmt.Sprintf("Your most pronounced trait is %s (%s, %.2f of %.0f).", top[0].Name, top[0].Label, top[0].Value, in.Scale.Max)
}

func personalityRecommendations(in *instrument.Instrument, p *scoring.Profile, top []scoring.DimensionScore) []string {
	var recs []string
	if len(top) > 0 {
		dim, _ := in.Dimension(top[0].Code)
		if len(dim.Environments) > 0 {
			recs = append(recs, fmt.Sprintf("Look for roles in %s, where your %s is an asset.",
				strings.ToLower(dim.Environments[0]), strings.ToLower(top[0].Name)))
		}
	}
	if len(in.Bands) > 0 {
		lowest := in.Bands[0].Label
		for _, d := range p.Weakest(2) {
			if d.Label != lowest {
				continue
			}
			recs = append(recs, fmt.Sprintf("Your %s is %s: practise the situations that call for it in low-stakes settings.",
				strings.ToLower(d.Name), d.Label))
		}
	}
	if missing := undetermined(p); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Answer the remaining questions on %s to complete your profile.", strings.Join(missing, ", ")))
	}
	return recs
}

func profileChart(in *instrument.Instrument, p *scoring.Profile) Visualization {
	v := Visualization{Kind: in.Category, Labels: make([]string, len(p.Dimensions))}
	values := make([]float64, len(p.Dimensions))
	percents := make([]float64, len(p.Dimensions))
	for i, d := range p.Dimensions {
		v.Labels[i] = d.Name
		values[i] = d.Value
		percents[i] = d.Percent
	}
	name := "mean"
	if in.Category == instrument.CategoryInterest {
		name = "score"
	}
	v.Series = []Series{{Name: name, Values: values}, {Name: "percent", Values: percents}}
	return v
}

// BuildComposite creates the report for a composite attempt. The careers
// are not embedded; callers attach them with WithCareers.
func BuildComposite(attemptID string, in *instrument.Instrument, ins matching.Inputs, res *matching.Result) *Report {
	r := &Report{
		AttemptID:    attemptID,
		InstrumentID: in.ID,
		Slug:         in.Slug,
		Category:     in.Category,
		Readiness: &Readiness{
			Score:     res.Readiness,
			Band:      res.ReadinessBand,
			Ready:     res.Ready,
			Threshold: res.ReadyThreshold,
			Empty:     res.Empty,
		},
		TopTraits:       []string{},
		Insights:        []Insight{},
		Recommendations: []string{},
	}

	top := res.Top(TopK)
	if res.Empty || len(top) == 0 {
		r.Summary = "No occupations are available to match against yet."
		r.Recommendations = append(r.Recommendations, "Check back once the occupation catalog has been loaded.")
		r.Visualization = careerChart(nil)
		return r
	}

	best := top[0]
	r.Summary = fmt.Sprintf("Your best career match is %s with a score of %d. Overall readiness: %s.",
		best.Title, best.MatchScore, res.ReadinessBand)

	for _, c := range top {
		r.TopTraits = append(r.TopTraits, c.Title)
		desc := strings.Join(c.Reasons, "; ")
		if desc == "" {
			desc = "A balanced fit across interests, skills and personality"
		}
		r.Insights = append(r.Insights, Insight{
			Title:        fmt.Sprintf("%d. %s", c.Rank, c.Title),
			Description:  desc + ".",
			Environments: careerEnvironments(ins.Interest.Instrument, c.HollandCode),
		})
	}

	for i, g := range best.Gaps {
		if i == TopK {
			break
		}
		r.Recommendations = append(r.Recommendations, fmt.Sprintf("Develop %s (%s priority): raise it from %.2f to %.0f.",
			g.Skill, g.Priority, g.Current, g.Required))
	}
	if len(best.LearningPath) > 0 {
		r.Recommendations = append(r.Recommendations, fmt.Sprintf("Next step towards %s: %s.", best.Title, best.LearningPath[0]))
	}
	if !res.Ready {
		r.Recommendations = append(r.Recommendations, fmt.Sprintf("Your readiness is below %.0f: close the high-priority gaps first.", res.ReadyThreshold))
	}

	r.Visualization = careerChart(top)
	return r
}

// careerEnvironments takes the first environment of each Holland letter.
func careerEnvironments(interest *instrument.Instrument, code string) []string {
	envs := []string{}
	if interest == nil {
		return envs
	}
	for _, letter := range code {
		dim, ok := interest.Dimension(string(letter))
		if ok && len(dim.Environments) > 0 {
			envs = append(envs, dim.Environments[0])
		}
	}
	return envs
}

func careerChart(cs []matching.Career) Visualization {
	v := Visualization{Kind: instrument.CategoryComposite, Labels: make([]string, len(cs))}
	score := make([]float64, len(cs))
	interest := make([]float64, len(cs))
	skills := make([]float64, len(cs))
	personality := make([]float64, len(cs))
	for i, c := range cs {
		v.Labels[i] = c.Title
		score[i] = float64(c.MatchScore)
		interest[i] = c.InterestFit
		skills[i] = c.SkillsFit
		personality[i] = c.PersonalityFit
	}
	v.Series = []Series{
		{Name: "match_score", Values: score},
		{Name: "interest_fit", Values: interest},
		{Name: "skills_fit", Values: skills},
		{Name: "personality_fit", Values: personality},
	}
	return v
}

// WithCareers returns a shallow copy of r with careers attached.
func (r *Report) WithCareers(cs []matching.Career) *Report {
	out := *r
	out.Careers = cs
	return &out
}
