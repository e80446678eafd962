package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SeedPasses(t *testing.T) {
	if err := Validate(Seed()); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func TestValidate_DetectsDuplicateInstrument(t *testing.T) {
	b := Seed()
	b.Instruments = append(b.Instruments, b.Instruments[0])
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate instrument ID")
	assert.Contains(t, err.Error(), "duplicate instrument slug")
}

func TestValidate_DetectsUnknownDimension(t *testing.T) {
	b := Seed()
	b.Questions[0].Dimension = "Z"
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dimension "Z"`)
}

func TestValidate_DetectsScoringKeyOutsideOptions(t *testing.T) {
	b := Seed()
	b.Questions[0].Scoring = instrument.ScoringRule{"9": 5}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an option")
}

func TestValidate_DetectsScoreOutsideScale(t *testing.T) {
	b := Seed()
	b.Questions[0].Scoring = instrument.ScoringRule{"1": 7}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside scale")
}

func TestValidate_CompositeWeightsMustSumToOne(t *testing.T) {
	b := Seed()
	for i := range b.Instruments {
		if b.Instruments[i].Composite != nil {
			b.Instruments[i].Composite.Weights[instrument.CategoryInterest] = 0.5
		}
	}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1")
}

func TestValidate_CompositeRequiresKnownSlug(t *testing.T) {
	b := Seed()
	for i := range b.Instruments {
		if b.Instruments[i].Composite != nil {
			b.Instruments[i].Composite.Requires = append(b.Instruments[i].Composite.Requires, "values")
		}
	}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown instrument "values"`)
}

func TestValidate_HollandNeedsThreeDimensions(t *testing.T) {
	b := &Bundle{
		Version: SeedVersion,
		Instruments: []instrument.Instrument{{
			ID: "i", Slug: "i", Name: "I", Category: instrument.CategoryInterest,
			Scale:      instrument.Scale{Min: 1, Max: 5},
			Dimensions: []instrument.Dimension{{Code: "R", Name: "R"}, {Code: "I", Name: "I"}},
		}},
	}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 dimensions")
}

func TestValidate_BandsMustTileScale(t *testing.T) {
	b := Seed()
	for i := range b.Instruments {
		if b.Instruments[i].Category == instrument.CategoryPersonality {
			b.Instruments[i].Bands[1].Min = 2.6
		}
	}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not start where")
}

func TestValidate_OccupationEmphasisBounds(t *testing.T) {
	b := Seed()
	b.Occupations[0].Interests["R"] = 140
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emphasis must be in [0, 100]")
}

func TestValidate_HollandCodesAreSingleLetters(t *testing.T) {
	b := Seed()
	for i := range b.Instruments {
		if b.Instruments[i].Category == instrument.CategoryInterest {
			for j := range b.Instruments[i].Dimensions {
				b.Instruments[i].Dimensions[j].Code += "x"
			}
		}
	}
	err := Validate(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `holland dimension code "Rx" must be a single letter`)
}

func TestValidate_OccupationRequirements(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *occupation.Occupation)
		want   string
	}{
		{
			name:   "unknown interest",
			mutate: func(o *occupation.Occupation) { o.Interests["X"] = 50 },
			want:   `interest "X" is not a dimension of "interests"`,
		},
		{
			name:   "unknown skill",
			mutate: func(o *occupation.Occupation) { o.Skills[0].Skill = "juggling" },
			want:   `skill "juggling" is not a dimension of "skills"`,
		},
		{
			name:   "skill level above scale",
			mutate: func(o *occupation.Occupation) { o.Skills[0].Level = 9 },
			want:   "level 9 outside scale [1, 5]",
		},
		{
			name:   "unknown trait",
			mutate: func(o *occupation.Occupation) { o.Personality[0].Trait = "grit" },
			want:   `trait "grit" is not a dimension of "personality"`,
		},
		{
			name:   "unknown band",
			mutate: func(o *occupation.Occupation) { o.Personality[0].Band = "High" },
			want:   `band "High" is not a band of "personality"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Seed()
			tt.mutate(&b.Occupations[0])
			err := Validate(b)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStatic_Lookups(t *testing.T) {
	ctx := context.Background()
	s := MustSeed()

	in, err := s.Instrument(ctx, SlugInterests)
	require.NoError(t, err)
	assert.Equal(t, instrument.CategoryInterest, in.Category)

	byID, err := s.InstrumentByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, SlugInterests, byID.Slug)

	qs, err := s.Questions(ctx, in.ID)
	require.NoError(t, err)
	require.Len(t, qs, 24)
	for i := 1; i < len(qs); i++ {
		assert.LessOrEqual(t, qs[i-1].Order, qs[i].Order)
	}

	q, err := s.Question(ctx, qs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, qs[0].Text, q.Text)

	occs, err := s.Occupations(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, occs)
	for i := 1; i < len(occs); i++ {
		assert.Less(t, occs[i-1].Code, occs[i].Code)
	}
}

func TestStatic_NotFound(t *testing.T) {
	ctx := context.Background()
	s := MustSeed()

	_, err := s.Instrument(ctx, "nope")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "instrument", nf.Kind)

	_, err = s.Question(ctx, "nope")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "question", nf.Kind)

	_, err = s.Questions(ctx, "nope")
	require.True(t, errors.As(err, &nf))
}

func TestStatic_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := MustSeed()
	in, err := s.Instrument(ctx, SlugInterests)
	require.NoError(t, err)
	in.Name = "changed"

	again, err := s.Instrument(ctx, SlugInterests)
	require.NoError(t, err)
	assert.Equal(t, "Interest Inventory", again.Name)
}

const fixtureYAML = `
version: v1.2.0
instruments:
  - id: inst-hobbies
    slug: hobbies
    name: Hobby Inventory
    category: interest
    scale: {min: 0, max: 2}
    dimensions:
      - {code: R, name: Realistic}
      - {code: I, name: Investigative}
      - {code: A, name: Artistic}
questions:
  - id: h1
    instrument_id: inst-hobbies
    dimension: R
    order: 1
    options:
      - {value: "no", label: "No"}
      - {value: "yes", label: "Yes"}
    scoring: {"no": 0, "yes": 2}
occupations:
  - code: "00-0001"
    title: Woodworker
    interests: {R: 90, I: 20, A: 60}
    skills:
      - {skill: technical, level: 3}
`

func TestParse_YAML(t *testing.T) {
	b, err := Parse([]byte(fixtureYAML), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", b.Version)
	require.Len(t, b.Instruments, 1)
	assert.Equal(t, instrument.CategoryInterest, b.Instruments[0].Category)
	require.Len(t, b.Questions, 1)
	assert.Equal(t, 2.0, b.Questions[0].Scoring["yes"])
	require.Len(t, b.Occupations, 1)
	assert.Equal(t, []occupation.SkillRequirement{{Skill: "technical", Level: 3}}, b.Occupations[0].Skills)

	_, err = NewStatic(b)
	require.NoError(t, err)
}

func TestParse_RejectsUnsupportedMajor(t *testing.T) {
	doc := strings.Replace(fixtureYAML, "v1.2.0", "v2.0.0", 1)
	_, err := Parse([]byte(doc), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestParse_RejectsInvalidVersion(t *testing.T) {
	doc := strings.Replace(fixtureYAML, "v1.2.0", "latest", 1)
	_, err := Parse([]byte(doc), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid semantic version")
}

func TestParse_SchemaViolation(t *testing.T) {
	doc := strings.Replace(fixtureYAML, "category: interest", "category: hobby", 1)
	_, err := Parse([]byte(doc), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), "toml")
	require.Error(t, err)
}

func TestOpen_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"version":"v1.0.3","instruments":[{"id":"x","slug":"x","name":"X","category":"skill",
	"scale":{"min":1,"max":5},"levels":[{"label":"Novice","min":0}],
	"dimensions":[{"code":"d","name":"D"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	in, err := s.Instrument(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, instrument.CategorySkill, in.Category)
}

type countingCatalog struct {
	Catalog
	instrumentCalls int
	occupationCalls int
}

func (c *countingCatalog) Instrument(ctx context.Context, slug string) (*instrument.Instrument, error) {
	c.instrumentCalls++
	return c.Catalog.Instrument(ctx, slug)
}

func (c *countingCatalog) Occupations(ctx context.Context) ([]occupation.Occupation, error) {
	c.occupationCalls++
	return c.Catalog.Occupations(ctx)
}

func TestCached_ReadsThroughOnce(t *testing.T) {
	ctx := context.Background()
	src := &countingCatalog{Catalog: MustSeed()}
	c, err := NewCached(src, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		in, err := c.Instrument(ctx, SlugSkills)
		require.NoError(t, err)
		assert.Equal(t, SlugSkills, in.Slug)
		_, err = c.Occupations(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, src.instrumentCalls)
	assert.Equal(t, 1, src.occupationCalls)
	assert.Equal(t, 2, c.Len())
}

func TestCached_DoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	src := &countingCatalog{Catalog: MustSeed()}
	c, err := NewCached(src, 0)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.Instrument(ctx, "missing")
		require.Error(t, err)
	}
	assert.Equal(t, 2, src.instrumentCalls)
	assert.Equal(t, 0, c.Len())
}
