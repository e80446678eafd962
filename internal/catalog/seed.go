package catalog

import (
	"fmt"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
)

// Slugs of the built-in instruments.
const (
	SlugInterests   = "interests"
	SlugPersonality = "personality"
	SlugSkills      = "skills"
	SlugCareerFit   = "career-fit"
)

// SeedVersion is the version of the built-in bundle.
const SeedVersion = "v1.0.0"

var likertOptions = []instrument.Option{
	{Value: "1", Label: "Strongly disagree"},
	{Value: "2", Label: "Disagree"},
	{Value: "3", Label: "Neutral"},
	{Value: "4", Label: "Agree"},
	{Value: "5", Label: "Strongly agree"},
}

var forward = instrument.ScoringRule{"1": 1, "2": 2, "3": 3, "4": 4, "5": 5}

var reverse = instrument.ScoringRule{"1": 5, "2": 4, "3": 3, "4": 2, "5": 1}

type item struct {
	dim      string
	text     string
	reversed bool
}

func likert(instrumentID, prefix string, items []item) []instrument.Question {
	qs := make([]instrument.Question, len(items))
	counts := make(map[string]int)
	for i, it := range items {
		counts[it.dim]++
		rule := forward
		if it.reversed {
			rule = reverse
		}
		qs[i] = instrument.Question{
			ID:           fmt.Sprintf("%s-%s-%d", prefix, it.dim, counts[it.dim]),
			InstrumentID: instrumentID,
			Dimension:    it.dim,
			Text:         it.text,
			Order:        i + 1,
			Options:      likertOptions,
			Scoring:      rule,
		}
	}
	return qs
}

// Seed returns the built-in bundle.
func Seed() *Bundle {
	b := &Bundle{
		Version:     SeedVersion,
		Instruments: seedInstruments(),
		Occupations: seedOccupations(),
	}
	b.Questions = append(b.Questions, likert("inst-interests", "int", interestItems)...)
	b.Questions = append(b.Questions, likert("inst-personality", "per", personalityItems)...)
	b.Questions = append(b.Questions, likert("inst-skills", "skl", skillItems)...)
	return b
}

// MustSeed returns a Static catalog over the built-in bundle.
func MustSeed() *Static {
	s, err := NewStatic(Seed())
	if err != nil {
		panic(err)
	}
	return s
}

func seedInstruments() []instrument.Instrument {
	return []instrument.Instrument{
		{
			ID:          "inst-interests",
			Slug:        SlugInterests,
			Name:        "Interest Inventory",
			Description: "Which kinds of work activities draw you in.",
			Category:    instrument.CategoryInterest,
			Scale:       instrument.Scale{Min: 1, Max: 5},
			Dimensions: []instrument.Dimension{
				{Code: "R", Name: "Realistic", Description: "hands-on work with tools, machines and the physical world",
					Environments: []string{"Workshops and labs", "Outdoor sites", "Manufacturing floors"}},
				{Code: "I", Name: "Investigative", Description: "analysing problems, researching and working with ideas",
					Environments: []string{"Research labs", "Data teams", "Universities"}},
				{Code: "A", Name: "Artistic", Description: "creating, designing and expressing ideas",
					Environments: []string{"Design studios", "Media agencies", "Creative collectives"}},
				{Code: "S", Name: "Social", Description: "helping, teaching and caring for people",
					Environments: []string{"Schools", "Hospitals and clinics", "Community organisations"}},
				{Code: "E", Name: "Enterprising", Description: "leading, persuading and driving outcomes",
					Environments: []string{"Startups", "Sales organisations", "Management teams"}},
				{Code: "C", Name: "Conventional", Description: "organising information and following clear procedures",
					Environments: []string{"Finance departments", "Operations teams", "Public administration"}},
			},
		},
		{
			ID:          "inst-personality",
			Slug:        SlugPersonality,
			Name:        "Personality Inventory",
			Description: "How you tend to think, feel and behave at work.",
			Category:    instrument.CategoryPersonality,
			Scale:       instrument.Scale{Min: 1, Max: 5},
			Bands: []instrument.Band{
				{Label: "low", Min: 1, Max: 2.5},
				{Label: "medium", Min: 2.5, Max: 3.5},
				{Label: "high", Min: 3.5, Max: 5},
			},
			Dimensions: []instrument.Dimension{
				{Code: "openness", Name: "Openness", Description: "curiosity and appetite for new experiences",
					Environments: []string{"Innovation teams", "Research and development"}},
				{Code: "conscientiousness", Name: "Conscientiousness", Description: "organisation, reliability and follow-through",
					Environments: []string{"Project offices", "Quality assurance"}},
				{Code: "extraversion", Name: "Extraversion", Description: "energy drawn from people and activity",
					Environments: []string{"Client-facing roles", "Event and sales teams"}},
				{Code: "agreeableness", Name: "Agreeableness", Description: "cooperation, empathy and trust",
					Environments: []string{"Care settings", "Collaborative teams"}},
				{Code: "neuroticism", Name: "Emotional Sensitivity", Description: "sensitivity to stress and setbacks",
					Environments: []string{"Calm, predictable workplaces", "Supportive small teams"}},
			},
		},
		{
			ID:          "inst-skills",
			Slug:        SlugSkills,
			Name:        "Skills Inventory",
			Description: "Your self-assessed proficiency across core work skills.",
			Category:    instrument.CategorySkill,
			Scale:       instrument.Scale{Min: 1, Max: 5},
			Levels: []instrument.Threshold{
				{Label: "Expert", Min: 90},
				{Label: "Advanced", Min: 75},
				{Label: "Proficient", Min: 60},
				{Label: "Intermediate", Min: 40},
				{Label: "Novice", Min: 0},
			},
			Dimensions: []instrument.Dimension{
				{Code: "data-analysis", Name: "Data Analysis", Description: "turning data into decisions",
					Environments: []string{"Analytics teams", "Research groups"}},
				{Code: "technical", Name: "Technical", Description: "building and operating technical systems",
					Environments: []string{"Engineering teams", "Technical operations"}},
				{Code: "communication", Name: "Communication", Description: "explaining ideas clearly in speech and writing",
					Environments: []string{"Client services", "Teaching and training"}},
				{Code: "leadership", Name: "Leadership", Description: "guiding people and decisions",
					Environments: []string{"Management roles", "Team lead positions"}},
				{Code: "creative", Name: "Creative", Description: "generating original ideas and designs",
					Environments: []string{"Design studios", "Content teams"}},
			},
		},
		{
			ID:          "inst-career-fit",
			Slug:        SlugCareerFit,
			Name:        "Career Fit",
			Description: "Combines your interests, skills and personality into ranked career matches.",
			Category:    instrument.CategoryComposite,
			Scale:       instrument.Scale{Min: 0, Max: 100},
			Composite: &instrument.CompositeConfig{
				Requires: []string{SlugInterests, SlugSkills, SlugPersonality},
				Weights: map[instrument.Category]float64{
					instrument.CategoryInterest:    0.40,
					instrument.CategorySkill:       0.35,
					instrument.CategoryPersonality: 0.25,
				},
				ReadyThreshold: 60,
				Readiness: []instrument.Threshold{
					{Label: "High", Min: 80},
					{Label: "Moderate", Min: 60},
					{Label: "Developing", Min: 40},
					{Label: "Early", Min: 0},
				},
				TopN: 10,
			},
		},
	}
}

var interestItems = []item{
	{"R", "I enjoy repairing or assembling things with my hands.", false},
	{"I", "I like working out why something happens.", false},
	{"A", "I enjoy drawing, writing or making music.", false},
	{"S", "I like helping people solve personal problems.", false},
	{"E", "I enjoy persuading others to see my point of view.", false},
	{"C", "I like keeping records neat and up to date.", false},
	{"R", "I would rather work outdoors than in an office.", false},
	{"I", "I enjoy reading about science and technology.", false},
	{"A", "I prefer tasks with clear instructions over open-ended creative ones.", true},
	{"S", "I enjoy teaching or explaining things to others.", false},
	{"E", "I like taking the lead when a group needs direction.", false},
	{"C", "I find detailed checklists tedious.", true},
	{"R", "I like operating machines or equipment.", false},
	{"I", "I enjoy solving puzzles and logic problems.", false},
	{"A", "I like coming up with original designs.", false},
	{"S", "Volunteering in my community matters to me.", false},
	{"E", "I would enjoy starting my own business.", false},
	{"C", "I like working with numbers and spreadsheets.", false},
	{"R", "I avoid tasks that get my hands dirty.", true},
	{"I", "I like running experiments to test ideas.", false},
	{"A", "I express myself best through creative work.", false},
	{"S", "I prefer working alone to working with people.", true},
	{"E", "I enjoy negotiating deals.", false},
	{"C", "I like following established procedures.", false},
}

var personalityItems = []item{
	{"openness", "I have a vivid imagination.", false},
	{"conscientiousness", "I get chores done right away.", false},
	{"extraversion", "I am the life of the party.", false},
	{"agreeableness", "I sympathise with others' feelings.", false},
	{"neuroticism", "I get stressed out easily.", false},
	{"openness", "I am not interested in abstract ideas.", true},
	{"conscientiousness", "I often forget to put things back in their proper place.", true},
	{"extraversion", "I keep in the background.", true},
	{"agreeableness", "I am not interested in other people's problems.", true},
	{"neuroticism", "I am relaxed most of the time.", true},
	{"openness", "I enjoy trying new and foreign foods.", false},
	{"conscientiousness", "I like order.", false},
	{"extraversion", "I talk to a lot of different people at parties.", false},
	{"agreeableness", "I feel others' emotions.", false},
	{"neuroticism", "I worry about things.", false},
	{"openness", "I avoid philosophical discussions.", true},
	{"conscientiousness", "I make a mess of things.", true},
	{"extraversion", "I don't like to draw attention to myself.", true},
	{"agreeableness", "I make people feel at ease.", false},
	{"neuroticism", "I seldom feel blue.", true},
}

var skillItems = []item{
	{"data-analysis", "I can clean and summarise a dataset.", false},
	{"technical", "I can write small programs or scripts.", false},
	{"communication", "I can present ideas clearly to a group.", false},
	{"leadership", "I can coordinate a team towards a goal.", false},
	{"creative", "I can produce original visual or written work.", false},
	{"data-analysis", "I can build charts that explain a trend.", false},
	{"technical", "I can troubleshoot technical problems on my own.", false},
	{"communication", "I can write clear, concise reports.", false},
	{"leadership", "I can give constructive feedback.", false},
	{"creative", "I can generate many ideas quickly.", false},
	{"data-analysis", "I can apply basic statistics.", false},
	{"technical", "I can learn new software tools quickly.", false},
	{"communication", "I can listen actively and summarise what I heard.", false},
	{"leadership", "I can make decisions under uncertainty.", false},
	{"creative", "I can turn rough ideas into finished designs.", false},
	{"data-analysis", "I can use a query language to answer questions.", false},
	{"technical", "I can set up and configure technical systems.", false},
	{"communication", "I can adapt my message to different audiences.", false},
	{"leadership", "I can delegate work effectively.", false},
	{"creative", "I can critique and improve creative work.", false},
}

func seedOccupations() []occupation.Occupation {
	riasec := func(r, i, a, s, e, c float64) map[string]float64 {
		return map[string]float64{"R": r, "I": i, "A": a, "S": s, "E": e, "C": c}
	}
	return []occupation.Occupation{
		{
			Code: "15-1252", Title: "Software Developer",
			Description: "Designs, builds and maintains software applications.",
			Interests:   riasec(55, 90, 45, 25, 35, 60),
			Skills: []occupation.SkillRequirement{
				{Skill: "technical", Level: 4}, {Skill: "data-analysis", Level: 3}, {Skill: "communication", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "openness", Band: "high"}, {Trait: "conscientiousness", Band: "high"},
			},
			Education: []string{"Bachelor's degree in computer science or related field", "Coding bootcamp with portfolio"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "technical", Title: "Complete an introductory programming course"},
				{Skill: "data-analysis", Title: "Learn SQL and database fundamentals"},
				{Skill: "communication", Title: "Write technical documentation for a side project"},
				{Title: "Contribute to an open-source project"},
			},
		},
		{
			Code: "15-2051", Title: "Data Scientist",
			Description: "Extracts insight from data using statistics and machine learning.",
			Interests:   riasec(30, 95, 40, 25, 40, 70),
			Skills: []occupation.SkillRequirement{
				{Skill: "data-analysis", Level: 4}, {Skill: "technical", Level: 4}, {Skill: "communication", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "openness", Band: "high"}, {Trait: "conscientiousness", Band: "high"},
			},
			Education: []string{"Bachelor's degree in statistics, mathematics or computer science", "Master's degree preferred"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "data-analysis", Title: "Take a course in applied statistics"},
				{Skill: "technical", Title: "Learn Python for data analysis"},
				{Skill: "communication", Title: "Practise presenting findings to non-specialists"},
				{Title: "Publish an end-to-end analysis project"},
			},
		},
		{
			Code: "15-1255", Title: "UX Designer",
			Description: "Researches users and designs intuitive digital experiences.",
			Interests:   riasec(20, 65, 90, 55, 40, 30),
			Skills: []occupation.SkillRequirement{
				{Skill: "creative", Level: 4}, {Skill: "communication", Level: 4}, {Skill: "technical", Level: 2},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "openness", Band: "high"}, {Trait: "agreeableness", Band: "medium"},
			},
			Education: []string{"Bachelor's degree in design, HCI or psychology", "UX certificate with case-study portfolio"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "creative", Title: "Complete a user-centred design course"},
				{Skill: "communication", Title: "Run and write up five user interviews"},
				{Skill: "technical", Title: "Learn a prototyping tool"},
				{Title: "Build a case-study portfolio"},
			},
		},
		{
			Code: "29-1141", Title: "Registered Nurse",
			Description: "Provides and coordinates patient care.",
			Interests:   riasec(50, 60, 15, 95, 30, 45),
			Skills: []occupation.SkillRequirement{
				{Skill: "communication", Level: 4}, {Skill: "technical", Level: 3}, {Skill: "leadership", Level: 2},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "agreeableness", Band: "high"}, {Trait: "conscientiousness", Band: "high"}, {Trait: "neuroticism", Band: "low"},
			},
			Education: []string{"Bachelor of Science in Nursing", "National nursing licence"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "communication", Title: "Take a patient communication workshop"},
				{Skill: "technical", Title: "Complete a clinical skills certification"},
				{Title: "Volunteer in a healthcare setting"},
			},
		},
		{
			Code: "25-2031", Title: "Secondary School Teacher",
			Description: "Teaches academic subjects to secondary students.",
			Interests:   riasec(15, 50, 50, 95, 50, 40),
			Skills: []occupation.SkillRequirement{
				{Skill: "communication", Level: 4}, {Skill: "leadership", Level: 3}, {Skill: "creative", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "extraversion", Band: "high"}, {Trait: "agreeableness", Band: "high"},
			},
			Education: []string{"Bachelor's degree in the subject taught", "Teaching certification"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "communication", Title: "Tutor students in your strongest subject"},
				{Skill: "leadership", Title: "Lead a club or study group"},
				{Skill: "creative", Title: "Design a lesson plan with hands-on activities"},
			},
		},
		{
			Code: "13-2011", Title: "Accountant",
			Description: "Prepares and examines financial records.",
			Interests:   riasec(15, 55, 10, 25, 45, 95),
			Skills: []occupation.SkillRequirement{
				{Skill: "data-analysis", Level: 4}, {Skill: "communication", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "conscientiousness", Band: "high"}, {Trait: "openness", Band: "medium"},
			},
			Education: []string{"Bachelor's degree in accounting or finance", "Professional accounting qualification"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "data-analysis", Title: "Master spreadsheet modelling"},
				{Skill: "communication", Title: "Practise explaining financial statements"},
				{Title: "Start a professional accounting qualification"},
			},
		},
		{
			Code: "11-2021", Title: "Marketing Manager",
			Description: "Plans campaigns that build demand for products and services.",
			Interests:   riasec(10, 45, 65, 50, 95, 40),
			Skills: []occupation.SkillRequirement{
				{Skill: "communication", Level: 4}, {Skill: "leadership", Level: 4}, {Skill: "creative", Level: 3}, {Skill: "data-analysis", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "extraversion", Band: "high"}, {Trait: "openness", Band: "high"},
			},
			Education: []string{"Bachelor's degree in marketing or business"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "leadership", Title: "Lead a small campaign end to end"},
				{Skill: "data-analysis", Title: "Learn web analytics fundamentals"},
				{Skill: "creative", Title: "Take a copywriting course"},
				{Title: "Earn a digital marketing certificate"},
			},
		},
		{
			Code: "17-2141", Title: "Mechanical Engineer",
			Description: "Designs and tests mechanical devices and systems.",
			Interests:   riasec(85, 85, 35, 20, 35, 50),
			Skills: []occupation.SkillRequirement{
				{Skill: "technical", Level: 4}, {Skill: "data-analysis", Level: 4}, {Skill: "creative", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "conscientiousness", Band: "high"}, {Trait: "openness", Band: "medium"},
			},
			Education: []string{"Bachelor's degree in mechanical engineering", "Professional engineering licence"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "technical", Title: "Learn a CAD package"},
				{Skill: "data-analysis", Title: "Study engineering mathematics and statistics"},
				{Title: "Build a hands-on engineering project"},
			},
		},
		{
			Code: "47-2111", Title: "Electrician",
			Description: "Installs and maintains electrical systems.",
			Interests:   riasec(95, 50, 10, 25, 30, 55),
			Skills: []occupation.SkillRequirement{
				{Skill: "technical", Level: 4}, {Skill: "communication", Level: 2},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "conscientiousness", Band: "high"}, {Trait: "neuroticism", Band: "low"},
			},
			Education: []string{"High school diploma", "Apprenticeship and trade licence"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "technical", Title: "Enrol in an electrical pre-apprenticeship programme"},
				{Title: "Complete workplace safety certification"},
			},
		},
		{
			Code: "27-1024", Title: "Graphic Designer",
			Description: "Creates visual concepts that communicate ideas.",
			Interests:   riasec(25, 30, 95, 35, 45, 35),
			Skills: []occupation.SkillRequirement{
				{Skill: "creative", Level: 5}, {Skill: "technical", Level: 3}, {Skill: "communication", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "openness", Band: "high"},
			},
			Education: []string{"Bachelor's degree in graphic design", "Strong design portfolio"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "creative", Title: "Complete a typography and layout course"},
				{Skill: "technical", Title: "Learn industry-standard design software"},
				{Title: "Build a portfolio of ten finished pieces"},
			},
		},
		{
			Code: "11-9199", Title: "Project Manager",
			Description: "Plans and coordinates projects to deliver on time and budget.",
			Interests:   riasec(25, 45, 25, 55, 85, 75),
			Skills: []occupation.SkillRequirement{
				{Skill: "leadership", Level: 4}, {Skill: "communication", Level: 4}, {Skill: "data-analysis", Level: 3},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "conscientiousness", Band: "high"}, {Trait: "extraversion", Band: "medium"}, {Trait: "neuroticism", Band: "low"},
			},
			Education: []string{"Bachelor's degree in business or a related field", "Project management certification"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "leadership", Title: "Lead a cross-functional volunteer project"},
				{Skill: "data-analysis", Title: "Learn budgeting and scheduling tools"},
				{Title: "Study for a project management certification"},
			},
		},
		{
			Code: "21-1012", Title: "Career Counselor",
			Description: "Helps people choose and prepare for careers.",
			Interests:   riasec(10, 55, 40, 95, 55, 35),
			Skills: []occupation.SkillRequirement{
				{Skill: "communication", Level: 5}, {Skill: "leadership", Level: 2}, {Skill: "data-analysis", Level: 2},
			},
			Personality: []occupation.TraitRequirement{
				{Trait: "agreeableness", Band: "high"}, {Trait: "openness", Band: "high"}, {Trait: "extraversion", Band: "medium"},
			},
			Education: []string{"Master's degree in counselling", "Counselling licence"},
			LearningPaths: []occupation.LearningStep{
				{Skill: "communication", Title: "Complete an active-listening workshop"},
				{Title: "Shadow a practising counsellor"},
			},
		},
	}
}
