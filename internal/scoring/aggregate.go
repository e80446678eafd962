package scoring

import (
	"github.com/abhisek/careerfit/internal/instrument"
)

// Aggregate reduces an attempt's scored responses to a Profile.
//
// Only active questions of the instrument contribute. Responses are visited
// in question order so floating-point sums are reproducible. Responses
// with a nil Score are skipped.
func Aggregate(in *instrument.Instrument, questions []instrument.Question, responses []Response) (*Profile, error) {
	strat, err := StrategyFor(in.Category)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string]Response, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}

	scores := make(map[string][]float64, len(in.Dimensions))
	capacity := make(map[string]float64, len(in.Dimensions))
	for i := range questions {
		q := &questions[i]
		if q.InstrumentID != in.ID || !q.Active() {
			continue
		}
		capacity[q.Dimension] += q.Scoring.MaxScore()
		r, ok := byQuestion[q.ID]
		if !ok || r.Score == nil {
			continue
		}
		scores[q.Dimension] = append(scores[q.Dimension], *r.Score)
	}

	p := &Profile{
		InstrumentID: in.ID,
		Slug:         in.Slug,
		Category:     in.Category,
		Dimensions:   make([]DimensionScore, len(in.Dimensions)),
	}
	for i, dim := range in.Dimensions {
		ds := DimensionScore{Code: dim.Code, Name: dim.Name, Max: in.Scale.Max}
		if in.Category == instrument.CategoryInterest {
			ds.Max = capacity[dim.Code]
		}
		if vals := scores[dim.Code]; len(vals) > 0 {
			ds.Determined = true
			ds.Answered = len(vals)
			ds.Value = strat.Reduce(vals)
		}
		p.Dimensions[i] = ds
	}

	strat.Derive(in, p)
	return p, nil
}
