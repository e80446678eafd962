package reportview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/careerfit/internal/report"
)

func TestRenderBaseReport(t *testing.T) {
	vm := &report.ViewModel{
		Header:  report.Header{Title: "Interests Report", AttemptID: "a1", HollandCode: "IAS"},
		Summary: "You are drawn to analysing problems.",
		Traits: []report.TraitRow{
			{Name: "Investigative", Determined: true, Percent: 90},
			{Name: "Realistic", Determined: false},
		},
		Recommendations: []string{"Explore research roles."},
	}

	out := Render(vm, 80)
	for _, want := range []string{"Interests Report", "IAS", "attempt a1", "Investigative", "90%", "not enough answers", "Explore research roles."} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Readiness")
	assert.NotContains(t, out, "Careers")
}

func TestRenderCompositeReport(t *testing.T) {
	vm := &report.ViewModel{
		Header:    report.Header{Title: "Career Fit Report", AttemptID: "c1"},
		Readiness: &report.Readiness{Score: 72, Band: "Moderate", Ready: true, Threshold: 60},
		Careers: []report.CareerRow{{
			Rank: 1, Code: "15-2051", Title: "Data Scientist", MatchScore: 72,
			Reasons:      []string{"Strong Investigative interest (90%)"},
			Gaps:         []string{"Data Analysis: High priority (current 2.00, required 4)"},
			LearningPath: []string{"Statistics", "SQL"},
		}},
	}

	out := Render(vm, 100)
	for _, want := range []string{"Moderate readiness", "72/100", "at or above", "Data Scientist", "15-2051", "Strong Investigative interest", "High priority", "Statistics"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderEmptyCatalog(t *testing.T) {
	vm := &report.ViewModel{
		Header:    report.Header{Title: "Career Fit Report", AttemptID: "c1"},
		Readiness: &report.Readiness{Empty: true},
	}
	out := Render(vm, 0)
	assert.Contains(t, out, "No occupations to match against.")
	assert.NotContains(t, out, "readiness")
}
