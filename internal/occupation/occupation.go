package occupation

// SkillRequirement is the minimum level (on the skill instrument's scale)
// an occupation expects for one skill dimension.
type SkillRequirement struct {
	Skill string  `json:"skill" yaml:"skill"`
	Level float64 `json:"level" yaml:"level"`
}

// TraitRequirement is the personality band an occupation favours.
type TraitRequirement struct {
	Trait string `json:"trait" yaml:"trait"`
	Band  string `json:"band" yaml:"band"`
}

// LearningStep is one suggested step on a learning path. Steps with an
// empty Skill apply regardless of skill gaps.
type LearningStep struct {
	Skill string `json:"skill,omitempty" yaml:"skill,omitempty"`
	Title string `json:"title" yaml:"title"`
}

// Occupation is a read-only reference career record.
type Occupation struct {
	Code        string `json:"code" yaml:"code"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Interests maps an interest dimension code to its emphasis (0-100).
	Interests   map[string]float64 `json:"interests" yaml:"interests"`
	Skills      []SkillRequirement `json:"skills,omitempty" yaml:"skills,omitempty"`
	Personality []TraitRequirement `json:"personality,omitempty" yaml:"personality,omitempty"`

	Education     []string       `json:"education,omitempty" yaml:"education,omitempty"`
	LearningPaths []LearningStep `json:"learning_paths,omitempty" yaml:"learning_paths,omitempty"`
}

// HollandCode returns the occupation's top three interest codes ordered by
// emphasis, ties broken by the given canonical order.
func (o *Occupation) HollandCode(order []string) string {
	codes := make([]string, 0, len(order))
	for _, c := range order {
		if _, ok := o.Interests[c]; ok {
			codes = append(codes, c)
		}
	}
	// Insertion sort keeps ties in canonical order.
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && o.Interests[codes[j]] > o.Interests[codes[j-1]]; j-- {
			codes[j], codes[j-1] = codes[j-1], codes[j]
		}
	}
	if len(codes) > 3 {
		codes = codes[:3]
	}
	out := ""
	for _, c := range codes {
		out += c
	}
	return out
}
