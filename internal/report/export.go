package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one key/value pair of a flat record.
type Field struct {
	Key   string
	Value any
}

// Record is a flat, ordered export of a report.
type Record []Field

// Get returns the value for key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Flatten turns a report into a flat record. Dimensions appear as
// dimension.<code> keys in canonical order and careers as career.<rank>.*.
func Flatten(r *Report) Record {
	rec := Record{
		{"attempt_id", r.AttemptID},
		{"instrument_id", r.InstrumentID},
		{"instrument", r.Slug},
		{"category", string(r.Category)},
		{"summary", r.Summary},
		{"top_traits", strings.Join(r.TopTraits, "; ")},
	}
	if code := r.HollandCode(); code != "" {
		rec = append(rec, Field{"holland_code", code})
	}
	if r.Profile != nil {
		for _, d := range r.Profile.Dimensions {
			prefix := "dimension." + d.Code
			if !d.Determined {
				rec = append(rec, Field{prefix, nil})
				continue
			}
			rec = append(rec, Field{prefix, d.Value}, Field{prefix + ".percent", d.Percent})
			if d.Label != "" {
				rec = append(rec, Field{prefix + ".label", d.Label})
			}
		}
	}
	if r.Readiness != nil {
		rec = append(rec,
			Field{"readiness", r.Readiness.Score},
			Field{"readiness_band", r.Readiness.Band},
			Field{"ready", r.Readiness.Ready},
		)
	}
	for _, c := range r.Careers {
		prefix := fmt.Sprintf("career.%d.", c.Rank)
		gaps := make([]string, len(c.Gaps))
		for i, g := range c.Gaps {
			gaps[i] = fmt.Sprintf("%s (%s, gap %.2f)", g.Skill, g.Priority, g.Gap)
		}
		rec = append(rec,
			Field{prefix + "code", c.Code},
			Field{prefix + "title", c.Title},
			Field{prefix + "match_score", c.MatchScore},
			Field{prefix + "reasons", strings.Join(c.Reasons, "; ")},
			Field{prefix + "skill_gaps", strings.Join(gaps, "; ")},
			Field{prefix + "education", strings.Join(c.Education, "; ")},
			Field{prefix + "learning_path", strings.Join(c.LearningPath, "; ")},
		)
	}
	rec = append(rec, Field{"recommendations", strings.Join(r.Recommendations, " ")})
	return rec
}

// ViewModel is a sectioned bundle for document renderers.
type ViewModel struct {
	Header          Header        `json:"header"`
	Summary         string        `json:"summary"`
	Traits          []TraitRow    `json:"traits"`
	Insights        []Insight     `json:"insights"`
	Recommendations []string      `json:"recommendations"`
	Readiness       *Readiness    `json:"readiness,omitempty"`
	Careers         []CareerRow   `json:"careers"`
	Chart           Visualization `json:"chart"`
}

// Header identifies the report.
type Header struct {
	Title       string `json:"title"`
	Instrument  string `json:"instrument"`
	Category    string `json:"category"`
	AttemptID   string `json:"attempt_id"`
	HollandCode string `json:"holland_code,omitempty"`
}

// TraitRow is one dimension line.
type TraitRow struct {
	Name       string  `json:"name"`
	Determined bool    `json:"determined"`
	Value      float64 `json:"value"`
	Percent    float64 `json:"percent"`
	Label      string  `json:"label,omitempty"`
}

// CareerRow is one recommendation with pre-formatted gaps.
type CareerRow struct {
	Rank         int      `json:"rank"`
	Code         string   `json:"code"`
	Title        string   `json:"title"`
	MatchScore   int      `json:"match_score"`
	Reasons      []string `json:"reasons"`
	Gaps         []string `json:"skill_gaps"`
	Education    []string `json:"education"`
	LearningPath []string `json:"learning_path"`
}

// NewViewModel builds the document view of a report.
func NewViewModel(r *Report) *ViewModel {
	vm := &ViewModel{
		Header: Header{
			Title:       fmt.Sprintf("%s Report", r.Category.DisplayName()),
			Instrument:  r.Slug,
			Category:    string(r.Category),
			AttemptID:   r.AttemptID,
			HollandCode: r.HollandCode(),
		},
		Summary:         r.Summary,
		Traits:          []TraitRow{},
		Insights:        r.Insights,
		Recommendations: r.Recommendations,
		Readiness:       r.Readiness,
		Careers:         []CareerRow{},
		Chart:           r.Visualization,
	}
	if r.Profile != nil {
		for _, d := range r.Profile.Dimensions {
			vm.Traits = append(vm.Traits, TraitRow{
				Name:       d.Name,
				Determined: d.Determined,
				Value:      d.Value,
				Percent:    d.Percent,
				Label:      d.Label,
			})
		}
	}
	for _, c := range r.Careers {
		row := CareerRow{
			Rank:         c.Rank,
			Code:         c.Code,
			Title:        c.Title,
			MatchScore:   c.MatchScore,
			Reasons:      c.Reasons,
			Gaps:         make([]string, len(c.Gaps)),
			Education:    c.Education,
			LearningPath: c.LearningPath,
		}
		for i, g := range c.Gaps {
			row.Gaps[i] = fmt.Sprintf("%s: %s priority (current %.2f, required %.0f)", g.Skill, g.Priority, g.Current, g.Required)
		}
		vm.Careers = append(vm.Careers, row)
	}
	return vm
}
