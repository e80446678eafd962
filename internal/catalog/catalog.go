package catalog

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"
)

// Catalog is the read-only reference data shared by every attempt.
type Catalog interface {
	// Instruments returns all instruments in bundle order.
	Instruments(ctx context.Context) ([]instrument.Instrument, error)

	// Instrument returns the instrument with the given slug.
	Instrument(ctx context.Context, slug string) (*instrument.Instrument, error)

	// InstrumentByID returns the instrument with the given ID.
	InstrumentByID(ctx context.Context, id string) (*instrument.Instrument, error)

	// Questions returns an instrument's questions ordered by Order then ID.
	Questions(ctx context.Context, instrumentID string) ([]instrument.Question, error)

	// Question returns a single question by ID.
	Question(ctx context.Context, id string) (*instrument.Question, error)

	// Occupations returns every occupation candidate ordered by code.
	Occupations(ctx context.Context) ([]occupation.Occupation, error)
}

// Bundle is the serializable form of a catalog.
type Bundle struct {
	Version     string                  `json:"version" yaml:"version"`
	Instruments []instrument.Instrument `json:"instruments" yaml:"instruments"`
	Questions   []instrument.Question   `json:"questions" yaml:"questions"`
	Occupations []occupation.Occupation `json:"occupations" yaml:"occupations"`
}

// NotFoundError is returned when a reference lookup misses.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Key)
}

// Static is an in-memory Catalog with precomputed indices.
type Static struct {
	instruments  []instrument.Instrument
	bySlug       map[string]*instrument.Instrument
	byID         map[string]*instrument.Instrument
	questions    map[string][]instrument.Question
	questionByID map[string]*instrument.Question
	occupations  []occupation.Occupation
}

// NewStatic validates the bundle and builds its indices.
func NewStatic(b *Bundle) (*Static, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	s := &Static{
		instruments:  slices.Clone(b.Instruments),
		bySlug:       make(map[string]*instrument.Instrument, len(b.Instruments)),
		byID:         make(map[string]*instrument.Instrument, len(b.Instruments)),
		questions:    make(map[string][]instrument.Question),
		questionByID: make(map[string]*instrument.Question, len(b.Questions)),
		occupations:  slices.Clone(b.Occupations),
	}

	for i := range s.instruments {
		in := &s.instruments[i]
		s.bySlug[in.Slug] = in
		s.byID[in.ID] = in
	}

	for _, q := range b.Questions {
		s.questions[q.InstrumentID] = append(s.questions[q.InstrumentID], q)
	}
	for id, qs := range s.questions {
		sort.SliceStable(qs, func(i, j int) bool {
			if qs[i].Order != qs[j].Order {
				return qs[i].Order < qs[j].Order
			}
			return qs[i].ID < qs[j].ID
		})
		s.questions[id] = qs
		for i := range qs {
			s.questionByID[qs[i].ID] = &qs[i]
		}
	}

	sort.Slice(s.occupations, func(i, j int) bool {
		return s.occupations[i].Code < s.occupations[j].Code
	})

	return s, nil
}

func (s *Static) Instruments(_ context.Context) ([]instrument.Instrument, error) {
	return slices.Clone(s.instruments), nil
}

func (s *Static) Instrument(_ context.Context, slug string) (*instrument.Instrument, error) {
	in, ok := s.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Kind: "instrument", Key: slug}
	}
	cp := *in
	return &cp, nil
}

func (s *Static) InstrumentByID(_ context.Context, id string) (*instrument.Instrument, error) {
	in, ok := s.byID[id]
	if !ok {
		return nil, &NotFoundError{Kind: "instrument", Key: id}
	}
	cp := *in
	return &cp, nil
}

func (s *Static) Questions(_ context.Context, instrumentID string) ([]instrument.Question, error) {
	if _, ok := s.byID[instrumentID]; !ok {
		return nil, &NotFoundError{Kind: "instrument", Key: instrumentID}
	}
	return slices.Clone(s.questions[instrumentID]), nil
}

func (s *Static) Question(_ context.Context, id string) (*instrument.Question, error) {
	q, ok := s.questionByID[id]
	if !ok {
		return nil, &NotFoundError{Kind: "question", Key: id}
	}
	cp := *q
	return &cp, nil
}

func (s *Static) Occupations(_ context.Context) ([]occupation.Occupation, error) {
	return slices.Clone(s.occupations), nil
}
