package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "careerfit"

// Report outcomes.
const (
	OutcomeCreated = "created"
	OutcomeReused  = "reused"
)

// Metrics exposes Prometheus collectors for assessment activity and
// data-quality signals. A nil *Metrics is valid and records nothing.
type Metrics struct {
	attemptsStarted  *prometheus.CounterVec
	responses        *prometheus.CounterVec
	unscored         *prometheus.CounterVec
	invalid          *prometheus.CounterVec
	completions      *prometheus.CounterVec
	incomplete       prometheus.Counter
	emptyCatalog     prometheus.Counter
	generateDuration *prometheus.HistogramVec
}

// New registers the collectors with reg. Collectors already registered
// under the same names are reused.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		attemptsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_started_total",
			Help:      "Attempts created, by instrument.",
		}, []string{"instrument"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_submitted_total",
			Help:      "Responses stored, by instrument.",
		}, []string{"instrument"}),
		unscored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_unscored_total",
			Help:      "Responses stored without a score because the scoring rule had no entry.",
		}, []string{"instrument"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_invalid_total",
			Help:      "Responses rejected because the raw value is not a valid option.",
		}, []string{"instrument"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Completion requests by instrument and whether the report was created or reused.",
		}, []string{"instrument", "outcome"}),
		incomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "composite_incomplete_total",
			Help:      "Composite reports requested before every base assessment was completed.",
		}),
		emptyCatalog: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_catalog_total",
			Help:      "Composite reports generated with no occupations to rank.",
		}),
		generateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_generation_seconds",
			Help:      "Time spent scoring, matching and building a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"instrument"}),
	}

	register := func(c prometheus.Collector) (prometheus.Collector, error) {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				return are.ExistingCollector, nil
			}
			return nil, fmt.Errorf("register metric: %w", err)
		}
		return c, nil
	}
	for _, vec := range []**prometheus.CounterVec{&m.attemptsStarted, &m.responses, &m.unscored, &m.invalid, &m.completions} {
		c, err := register(*vec)
		if err != nil {
			return nil, err
		}
		*vec = c.(*prometheus.CounterVec)
	}
	for _, ctr := range []*prometheus.Counter{&m.incomplete, &m.emptyCatalog} {
		c, err := register(*ctr)
		if err != nil {
			return nil, err
		}
		*ctr = c.(prometheus.Counter)
	}
	c, err := register(m.generateDuration)
	if err != nil {
		return nil, err
	}
	m.generateDuration = c.(*prometheus.HistogramVec)
	return m, nil
}

// AttemptStarted counts a new attempt.
func (m *Metrics) AttemptStarted(instrument string) {
	if m == nil {
		return
	}
	m.attemptsStarted.WithLabelValues(instrument).Inc()
}

// ResponseStored counts a stored response; unscored marks a null score.
func (m *Metrics) ResponseStored(instrument string, unscored bool) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(instrument).Inc()
	if unscored {
		m.unscored.WithLabelValues(instrument).Inc()
	}
}

// ResponseInvalid counts a rejected response.
func (m *Metrics) ResponseInvalid(instrument string) {
	if m == nil {
		return
	}
	m.invalid.WithLabelValues(instrument).Inc()
}

// Completed counts a completion request with its outcome.
func (m *Metrics) Completed(instrument, outcome string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(instrument, outcome).Inc()
}

// IncompleteProfile counts a composite request with missing inputs.
func (m *Metrics) IncompleteProfile() {
	if m == nil {
		return
	}
	m.incomplete.Inc()
}

// EmptyCatalog counts a composite report with nothing to rank.
func (m *Metrics) EmptyCatalog() {
	if m == nil {
		return
	}
	m.emptyCatalog.Inc()
}

// ObserveGeneration records how long report generation took.
func (m *Metrics) ObserveGeneration(instrument string, d time.Duration) {
	if m == nil {
		return
	}
	m.generateDuration.WithLabelValues(instrument).Observe(d.Seconds())
}
