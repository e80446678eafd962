package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/occupation"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of cached lookups.
const DefaultCacheSize = 128

// Cached is a read-through LRU over another Catalog. Reference data is
// immutable, so entries never expire; misses and errors are not cached.
type Cached struct {
	src   Catalog
	cache *lru.Cache[string, any]
}

// NewCached wraps src with an LRU of the given size (DefaultCacheSize if <= 0).
func NewCached(src Catalog, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}
	return &Cached{src: src, cache: c}, nil
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func (c *Cached) Instruments(ctx context.Context) ([]instrument.Instrument, error) {
	v, err := readThrough(c, "instruments", func() ([]instrument.Instrument, error) {
		return c.src.Instruments(ctx)
	})
	return slices.Clone(v), err
}

func (c *Cached) Instrument(ctx context.Context, slug string) (*instrument.Instrument, error) {
	v, err := readThrough(c, "instrument:"+slug, func() (instrument.Instrument, error) {
		in, err := c.src.Instrument(ctx, slug)
		if err != nil {
			return instrument.Instrument{}, err
		}
		return *in, nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Cached) InstrumentByID(ctx context.Context, id string) (*instrument.Instrument, error) {
	v, err := readThrough(c, "instrument-id:"+id, func() (instrument.Instrument, error) {
		in, err := c.src.InstrumentByID(ctx, id)
		if err != nil {
			return instrument.Instrument{}, err
		}
		return *in, nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Cached) Questions(ctx context.Context, instrumentID string) ([]instrument.Question, error) {
	v, err := readThrough(c, "questions:"+instrumentID, func() ([]instrument.Question, error) {
		return c.src.Questions(ctx, instrumentID)
	})
	return slices.Clone(v), err
}

func (c *Cached) Question(ctx context.Context, id string) (*instrument.Question, error) {
	v, err := readThrough(c, "question:"+id, func() (instrument.Question, error) {
		q, err := c.src.Question(ctx, id)
		if err != nil {
			return instrument.Question{}, err
		}
		return *q, nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Cached) Occupations(ctx context.Context) ([]occupation.Occupation, error) {
	v, err := readThrough(c, "occupations", func() ([]occupation.Occupation, error) {
		return c.src.Occupations(ctx)
	})
	return slices.Clone(v), err
}

func readThrough[T any](c *Cached, key string, load func() (T, error)) (T, error) {
	if v, ok := c.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	t, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.cache.Add(key, t)
	return t, nil
}
