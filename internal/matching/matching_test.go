package matching

import (
	"context"
	"testing"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
	"github.com/abhisek/careerfit/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInstrument(t *testing.T, slug string) *instrument.Instrument {
	t.Helper()
	in, err := catalog.MustSeed().Instrument(context.Background(), slug)
	require.NoError(t, err)
	return in
}

func compositeConfig(t *testing.T) *instrument.CompositeConfig {
	return seedInstrument(t, catalog.SlugCareerFit).Composite
}

// profileOf builds a determined profile. For interest instruments the
// values are percentages; otherwise they are means on the 1-5 scale.
func profileOf(in *instrument.Instrument, values map[string]float64) *scoring.Profile {
	p := &scoring.Profile{InstrumentID: in.ID, Slug: in.Slug, Category: in.Category}
	for _, d := range in.Dimensions {
		ds := scoring.DimensionScore{Code: d.Code, Name: d.Name}
		if v, ok := values[d.Code]; ok {
			ds.Determined = true
			if in.Category == instrument.CategoryInterest {
				ds.Percent = v
				ds.Value = v
			} else {
				ds.Value = v
				ds.Percent = v / in.Scale.Max * 100
				if in.Category == instrument.CategorySkill {
					ds.Label = in.LevelFor(ds.Percent)
				} else {
					ds.Label = in.BandFor(v)
				}
			}
		}
		p.Dimensions = append(p.Dimensions, ds)
	}
	return p
}

func inputs(t *testing.T, interest, skill, personality map[string]float64) Inputs {
	var ins Inputs
	for slug, vals := range map[string]map[string]float64{
		catalog.SlugInterests:   interest,
		catalog.SlugSkills:      skill,
		catalog.SlugPersonality: personality,
	} {
		in := seedInstrument(t, slug)
		ins.Set(in, profileOf(in, vals))
	}
	return ins
}

func TestComposite_Weighting(t *testing.T) {
	cfg := compositeConfig(t)
	tests := []struct {
		i, s, p float64
		want    int
	}{
		{80, 60, 40, 63},
		{100, 100, 100, 100},
		{0, 0, 0, 0},
		{50, 50, 50, 50},
		{75, 80, 90, 81},
		{10, 20, 30, 19},
	}
	for _, tt := range tests {
		if got := Composite(cfg, tt.i, tt.s, tt.p); got != tt.want {
			t.Errorf("Composite(%v, %v, %v) = %d, want %d", tt.i, tt.s, tt.p, got, tt.want)
		}
	}
}

func TestComposite_WeightsAreConfiguration(t *testing.T) {
	cfg := &instrument.CompositeConfig{Weights: map[instrument.Category]float64{
		instrument.CategoryInterest: 1,
	}}
	assert.Equal(t, 80, Composite(cfg, 80, 0, 0))
}

func TestSkillGaps_DataAnalysis(t *testing.T) {
	ins := inputs(t, nil, map[string]float64{"data-analysis": 2, "technical": 4.5}, nil)
	occ := &occupation.Occupation{
		Code: "x",
		Skills: []occupation.SkillRequirement{
			{Skill: "technical", Level: 4},
			{Skill: "data-analysis", Level: 4},
		},
	}
	gaps := SkillGaps(ins.Skill, occ)
	require.Len(t, gaps, 1)
	assert.Equal(t, "Data Analysis", gaps[0].Skill)
	assert.Equal(t, 2.0, gaps[0].Gap)
	assert.Equal(t, PriorityHigh, gaps[0].Priority)
}

func TestSkillGaps_UndeterminedCountsAsZeroAndSortsByGap(t *testing.T) {
	ins := inputs(t, nil, map[string]float64{"communication": 2.5}, nil)
	occ := &occupation.Occupation{Skills: []occupation.SkillRequirement{
		{Skill: "communication", Level: 3},
		{Skill: "leadership", Level: 3},
	}}
	gaps := SkillGaps(ins.Skill, occ)
	require.Len(t, gaps, 2)
	assert.Equal(t, "leadership", gaps[0].Code)
	assert.Equal(t, 3.0, gaps[0].Gap)
	assert.Equal(t, "communication", gaps[1].Code)
	assert.Equal(t, PriorityLow, gaps[1].Priority)
}

func TestGapPriority(t *testing.T) {
	tests := []struct {
		gap  float64
		want Priority
	}{
		{3, PriorityHigh},
		{2, PriorityHigh},
		{1.99, PriorityMedium},
		{1, PriorityMedium},
		{0.5, PriorityLow},
	}
	for _, tt := range tests {
		if got := GapPriority(tt.gap); got != tt.want {
			t.Errorf("GapPriority(%v) = %q, want %q", tt.gap, got, tt.want)
		}
	}
}

func TestInterestFit(t *testing.T) {
	occ := &occupation.Occupation{Interests: map[string]float64{"R": 20, "I": 90, "A": 40, "S": 20, "E": 30, "C": 60}}

	exact := inputs(t, map[string]float64{"R": 20, "I": 90, "A": 40, "S": 20, "E": 30, "C": 60}, nil, nil)
	assert.Equal(t, 100.0, InterestFit(exact.Interest, occ))

	near := inputs(t, map[string]float64{"R": 30, "I": 80, "A": 40, "S": 20, "E": 30, "C": 60}, nil, nil)
	far := inputs(t, map[string]float64{"R": 90, "I": 10, "A": 40, "S": 20, "E": 30, "C": 60}, nil, nil)
	n, f := InterestFit(near.Interest, occ), InterestFit(far.Interest, occ)
	assert.Less(t, n, 100.0)
	assert.Greater(t, n, f)
	assert.GreaterOrEqual(t, f, 0.0)

	opposite := &occupation.Occupation{Interests: map[string]float64{"R": 100, "I": 100, "A": 100, "S": 100, "E": 100, "C": 100}}
	empty := inputs(t, nil, nil, nil)
	assert.Equal(t, 0.0, InterestFit(empty.Interest, opposite))
}

func TestSkillsFit(t *testing.T) {
	ins := inputs(t, nil, map[string]float64{"technical": 4, "data-analysis": 1.5}, nil)
	occ := &occupation.Occupation{Skills: []occupation.SkillRequirement{
		{Skill: "technical", Level: 4},
		{Skill: "data-analysis", Level: 3},
	}}
	assert.Equal(t, 75.0, SkillsFit(ins.Skill, occ))
	assert.Equal(t, 100.0, SkillsFit(ins.Skill, &occupation.Occupation{}))
}

func TestPersonalityFit(t *testing.T) {
	occ := &occupation.Occupation{Personality: []occupation.TraitRequirement{
		{Trait: "openness", Band: "high"},
		{Trait: "extraversion", Band: "low"},
	}}

	inBand := inputs(t, nil, nil, map[string]float64{"openness": 4.2, "extraversion": 2})
	assert.Equal(t, 100.0, PersonalityFit(inBand.Personality, occ))

	// openness 3.0 is 0.5 below high (span 4): 87.5; extraversion 3.0 is
	// 0.5 above low: 87.5.
	off := inputs(t, nil, nil, map[string]float64{"openness": 3, "extraversion": 3})
	assert.Equal(t, 87.5, PersonalityFit(off.Personality, occ))

	missing := inputs(t, nil, nil, map[string]float64{"openness": 4})
	assert.Equal(t, 50.0, PersonalityFit(missing.Personality, occ))

	assert.Equal(t, 100.0, PersonalityFit(inBand.Personality, &occupation.Occupation{}))
}

func TestLearningPath_GapStepsFirst(t *testing.T) {
	occ := &occupation.Occupation{LearningPaths: []occupation.LearningStep{
		{Skill: "technical", Title: "tech"},
		{Title: "general"},
		{Skill: "communication", Title: "comm"},
	}}
	gaps := []SkillGap{{Code: "communication"}, {Code: "technical"}}
	assert.Equal(t, []string{"comm", "tech", "general"}, LearningPath(occ, gaps))
	assert.Equal(t, []string{"general"}, LearningPath(occ, nil))
}

func TestReasons_TopThreeByMagnitude(t *testing.T) {
	cfg := compositeConfig(t)
	ins := inputs(t,
		map[string]float64{"I": 90, "C": 70, "R": 20},
		map[string]float64{"technical": 4.5},
		map[string]float64{"openness": 4},
	)
	occ := &occupation.Occupation{
		Interests:   map[string]float64{"R": 60, "I": 95, "C": 65},
		Skills:      []occupation.SkillRequirement{{Skill: "technical", Level: 4}},
		Personality: []occupation.TraitRequirement{{Trait: "openness", Band: "high"}},
	}
	got := Reasons(cfg, ins, occ)
	require.Len(t, got, MaxReasons)
	// I: 0.40*90=36, technical: 0.35*100=35, C: 0.40*65=26, openness: 25.
	assert.Equal(t, "Strong Investigative interest (90%)", got[0])
	assert.Equal(t, "Technical meets the required level (Expert)", got[1])
	assert.Equal(t, "Strong Conventional interest (70%)", got[2])
}

func TestMatch_RankingInvariants(t *testing.T) {
	cfg := compositeConfig(t)
	occs, err := catalog.MustSeed().Occupations(context.Background())
	require.NoError(t, err)

	ins := inputs(t,
		map[string]float64{"R": 40, "I": 85, "A": 50, "S": 30, "E": 35, "C": 70},
		map[string]float64{"data-analysis": 2, "technical": 4, "communication": 3, "leadership": 2.5, "creative": 3},
		map[string]float64{"openness": 4, "conscientiousness": 4.2, "extraversion": 2.4, "agreeableness": 3.1, "neuroticism": 2},
	)
	res := NewMatcher(cfg).Match(ins, occs)
	require.Len(t, res.Careers, len(occs))
	assert.False(t, res.Empty)

	seen := map[string]bool{}
	for i, c := range res.Careers {
		assert.Equal(t, i+1, c.Rank)
		assert.False(t, seen[c.Code], "duplicate %s", c.Code)
		seen[c.Code] = true
		assert.GreaterOrEqual(t, c.MatchScore, 0)
		assert.LessOrEqual(t, c.MatchScore, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Careers[i-1].MatchScore, c.MatchScore)
		}
	}

	assert.Equal(t, res.Careers[0].MatchScore, res.Readiness)
	assert.Equal(t, instrument.ThresholdLabel(cfg.Readiness, float64(res.Readiness)), res.ReadinessBand)
	assert.Equal(t, float64(res.Readiness) >= cfg.ReadyThreshold, res.Ready)

	assert.Len(t, res.Top(3), 3)
	assert.Len(t, res.Top(0), len(occs))
	assert.Len(t, res.Top(100), len(occs))
}

func TestMatch_Deterministic(t *testing.T) {
	cfg := compositeConfig(t)
	occs, err := catalog.MustSeed().Occupations(context.Background())
	require.NoError(t, err)
	ins := inputs(t,
		map[string]float64{"S": 80, "E": 60},
		map[string]float64{"communication": 4},
		map[string]float64{"agreeableness": 4},
	)
	m := NewMatcher(cfg)
	assert.Equal(t, m.Match(ins, occs), m.Match(ins, occs))
}

func TestMatch_TieBreaks(t *testing.T) {
	cfg := compositeConfig(t)
	ins := inputs(t, map[string]float64{"R": 50, "I": 50, "A": 50, "S": 50, "E": 50, "C": 50}, nil, nil)
	occs := []occupation.Occupation{
		{Code: "b", Interests: map[string]float64{"R": 50, "I": 50, "A": 50, "S": 50, "E": 50, "C": 50}},
		{Code: "c", Interests: map[string]float64{"R": 50, "I": 50, "A": 50, "S": 50, "E": 50, "C": 50}},
		{Code: "a", Interests: map[string]float64{"R": 50, "I": 50, "A": 50, "S": 50, "E": 50, "C": 50}},
	}
	res := NewMatcher(cfg).Match(ins, occs)
	got := []string{res.Careers[0].Code, res.Careers[1].Code, res.Careers[2].Code}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestMatch_EmptyCatalog(t *testing.T) {
	res := NewMatcher(compositeConfig(t)).Match(Inputs{}, nil)
	assert.True(t, res.Empty)
	assert.NotNil(t, res.Careers)
	assert.Empty(t, res.Careers)
	assert.Zero(t, res.Readiness)
	assert.False(t, res.Ready)
}

func TestMatcher_TopN(t *testing.T) {
	assert.Equal(t, 10, NewMatcher(compositeConfig(t)).TopN())
	assert.Equal(t, DefaultTopN, NewMatcher(nil).TopN())
}

func TestMissing_ConfigOrder(t *testing.T) {
	cfg := compositeConfig(t)
	done := map[string]bool{catalog.SlugInterests: true}
	got := Missing(cfg, func(slug string) bool { return done[slug] })
	assert.Equal(t, []string{catalog.SlugSkills, catalog.SlugPersonality}, got)
	assert.Nil(t, Missing(cfg, func(string) bool { return true }))
}
