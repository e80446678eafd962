package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/instrument"
	"github.com/abhisek/careerfit/internal/logging"
	"github.com/abhisek/careerfit/internal/matching"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/report"
	"github.com/abhisek/careerfit/internal/scoring"
	"github.com/abhisek/careerfit/internal/store"
)

// Repos are the persistence dependencies of a Service.
type Repos struct {
	Attempts  store.AttemptRepo
	Responses store.ResponseRepo
	Reports   store.ReportRepo
}

// ReposFrom returns the repositories of a Store.
func ReposFrom(s *store.Store) Repos {
	return Repos{Attempts: s.Attempts(), Responses: s.Responses(), Reports: s.Reports()}
}

// Options configures optional Service dependencies.
type Options struct {
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// TopN overrides the composite instrument's default number of careers
	// a report returns.
	TopN int
	// Now and NewID override the clock and id generator.
	Now   func() time.Time
	NewID func() string
}

// Service runs the attempt lifecycle: starting attempts, storing
// responses, and completing attempts into reports.
type Service struct {
	catalog   catalog.Catalog
	attempts  store.AttemptRepo
	responses store.ResponseRepo
	reports   store.ReportRepo

	metrics *metrics.Metrics
	log     *slog.Logger
	topN    int
	now     func() time.Time
	newID   func() string

	// completing collapses concurrent Complete calls on one attempt.
	completing singleflight.Group
}

// NewService creates an assessment service.
func NewService(cat catalog.Catalog, repos Repos, opts Options) *Service {
	s := &Service{
		catalog:   cat,
		attempts:  repos.Attempts,
		responses: repos.Responses,
		reports:   repos.Reports,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		topN:      opts.TopN,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Begin returns the caller's latest attempt for an instrument, creating
// one if none exists.
func (s *Service) Begin(ctx context.Context, who Identity, slug string) (*Attempt, error) {
	owner := who.OwnerKey()
	if owner == "" {
		return nil, ErrNoIdentity
	}
	in, err := s.instrument(ctx, slug)
	if err != nil {
		return nil, err
	}
	a, err := s.attempts.Latest(ctx, owner, in.ID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return s.create(ctx, who, in)
	}
	return s.describe(ctx, a, in)
}

// Retake always starts a fresh attempt.
func (s *Service) Retake(ctx context.Context, who Identity, slug string) (*Attempt, error) {
	if who.OwnerKey() == "" {
		return nil, ErrNoIdentity
	}
	in, err := s.instrument(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, who, in)
}

func (s *Service) create(ctx context.Context, who Identity, in *instrument.Instrument) (*Attempt, error) {
	a := &store.Attempt{
		ID:           s.newID(),
		InstrumentID: in.ID,
		OwnerKey:     who.OwnerKey(),
		UserID:       who.UserID,
		SessionID:    who.SessionID,
		StartedAt:    s.now(),
	}
	if err := s.attempts.Create(ctx, a); err != nil {
		return nil, err
	}
	s.metrics.AttemptStarted(in.Slug)
	s.log.Debug("attempt started", "attempt_id", a.ID, "instrument", in.Slug)
	return &Attempt{
		ID:           a.ID,
		InstrumentID: in.ID,
		Slug:         in.Slug,
		Status:       StatusNotStarted,
		StartedAt:    a.StartedAt,
	}, nil
}

// Attempts lists the caller's attempts, oldest first.
func (s *Service) Attempts(ctx context.Context, who Identity) ([]Attempt, error) {
	owner := who.OwnerKey()
	if owner == "" {
		return nil, ErrNoIdentity
	}
	rows, err := s.attempts.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]Attempt, 0, len(rows))
	for i := range rows {
		in, err := s.catalog.InstrumentByID(ctx, rows[i].InstrumentID)
		if err != nil {
			// The catalog may have dropped the instrument since.
			in = &instrument.Instrument{ID: rows[i].InstrumentID}
		}
		a, err := s.describe(ctx, &rows[i], in)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *Service) describe(ctx context.Context, a *store.Attempt, in *instrument.Instrument) (*Attempt, error) {
	out := &Attempt{
		ID:           a.ID,
		InstrumentID: a.InstrumentID,
		Slug:         in.Slug,
		Status:       StatusCompleted,
		StartedAt:    a.StartedAt,
		CompletedAt:  a.CompletedAt,
	}
	if a.Completed() {
		return out, nil
	}
	rs, err := s.responses.List(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	out.Status = StatusNotStarted
	if len(rs) > 0 {
		out.Status = StatusInProgress
	}
	return out, nil
}

// load fetches an attempt the caller owns, with its instrument.
func (s *Service) load(ctx context.Context, who Identity, attemptID string) (*store.Attempt, *instrument.Instrument, error) {
	owner := who.OwnerKey()
	if owner == "" {
		return nil, nil, ErrNoIdentity
	}
	a, err := s.attempts.Get(ctx, attemptID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, &ErrNotFound{Kind: "attempt", ID: attemptID, Err: err}
	}
	if err != nil {
		return nil, nil, err
	}
	if a.OwnerKey != owner {
		return nil, nil, &ErrAccessDenied{AttemptID: attemptID}
	}
	in, err := s.catalog.InstrumentByID(ctx, a.InstrumentID)
	if err != nil {
		return nil, nil, notFound("instrument", a.InstrumentID, err)
	}
	return a, in, nil
}

func (s *Service) instrument(ctx context.Context, slug string) (*instrument.Instrument, error) {
	in, err := s.catalog.Instrument(ctx, slug)
	if err != nil {
		return nil, notFound("instrument", slug, err)
	}
	return in, nil
}

// notFound converts catalog misses into ErrNotFound.
func notFound(kind, id string, err error) error {
	var nf *catalog.NotFoundError
	if errors.As(err, &nf) {
		return &ErrNotFound{Kind: kind, ID: id, Err: err}
	}
	return err
}

// Submit stores one answer, replacing any earlier answer to the same
// question, and returns the updated progress.
func (s *Service) Submit(ctx context.Context, who Identity, attemptID string, sub Submission) (*SubmitResult, error) {
	a, in, err := s.load(ctx, who, attemptID)
	if err != nil {
		return nil, err
	}
	if a.Completed() {
		return nil, &ErrAttemptCompleted{AttemptID: attemptID}
	}

	q, err := s.catalog.Question(ctx, sub.QuestionID)
	if err != nil {
		return nil, notFound("question", sub.QuestionID, err)
	}
	if q.InstrumentID != in.ID || !q.Active() {
		return nil, &ErrNotFound{Kind: "question", ID: sub.QuestionID}
	}
	if !q.HasOption(sub.Raw) {
		s.metrics.ResponseInvalid(in.Slug)
		s.log.Warn("invalid response", "attempt_id", attemptID, "question_id", q.ID, "raw", sub.Raw)
		return nil, &ErrInvalidResponse{QuestionID: q.ID, Raw: sub.Raw}
	}

	scored := scoring.Scored(q, sub.Raw)
	unscored := scored.Score == nil
	if unscored {
		s.log.Warn("unscoreable response", "attempt_id", attemptID, "question_id", q.ID, "raw", sub.Raw)
	}

	err = s.responses.Upsert(ctx, &store.Response{
		AttemptID:   attemptID,
		QuestionID:  q.ID,
		RawValue:    sub.Raw,
		Score:       scored.Score,
		TimeSpentMs: sub.TimeSpent.Milliseconds(),
		UpdatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ResponseStored(in.Slug, unscored)

	p, err := s.progress(ctx, a.ID, in)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Progress: *p, Unscored: unscored}, nil
}

// Progress returns how many of the instrument's active questions the
// attempt has answered.
func (s *Service) Progress(ctx context.Context, who Identity, attemptID string) (*Progress, error) {
	a, in, err := s.load(ctx, who, attemptID)
	if err != nil {
		return nil, err
	}
	return s.progress(ctx, a.ID, in)
}

func (s *Service) progress(ctx context.Context, attemptID string, in *instrument.Instrument) (*Progress, error) {
	qs, err := s.catalog.Questions(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	rs, err := s.responses.List(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answered := make(map[string]bool, len(rs))
	for _, r := range rs {
		answered[r.QuestionID] = true
	}

	p := &Progress{}
	for _, q := range qs {
		if !q.Active() {
			continue
		}
		p.Total++
		if answered[q.ID] {
			p.Answered++
		}
	}
	if p.Total > 0 {
		p.Percent = math.Round(float64(p.Answered)/float64(p.Total)*10000) / 100
	}
	return p, nil
}

// Profile returns the attempt's current dimension profile. It can be read
// before the attempt is completed.
func (s *Service) Profile(ctx context.Context, who Identity, attemptID string) (*scoring.Profile, error) {
	a, in, err := s.load(ctx, who, attemptID)
	if err != nil {
		return nil, err
	}
	if in.Category == instrument.CategoryComposite {
		return nil, fmt.Errorf("instrument %q is composite and has no dimension profile", in.Slug)
	}
	return s.profile(ctx, a.ID, in)
}

func (s *Service) profile(ctx context.Context, attemptID string, in *instrument.Instrument) (*scoring.Profile, error) {
	qs, err := s.catalog.Questions(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	rows, err := s.responses.List(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	rs := make([]scoring.Response, len(rows))
	for i, r := range rows {
		rs[i] = scoring.Response{QuestionID: r.QuestionID, Score: r.Score}
	}
	return scoring.Aggregate(in, qs, rs)
}

// Complete marks the attempt completed and returns its report. Completing
// an already completed attempt returns the stored report unchanged.
// Composite attempts fail with ErrIncompleteProfile, and stay open, until
// every required base attempt is completed.
func (s *Service) Complete(ctx context.Context, who Identity, attemptID string) (*report.Report, error) {
	a, in, err := s.load(ctx, who, attemptID)
	if err != nil {
		return nil, err
	}
	if err := s.finalize(ctx, a, in); err != nil {
		return nil, err
	}
	return s.read(ctx, a.ID, in, s.limit(in, 0))
}

// Report returns the stored report of a completed attempt with at most
// topN careers, or the configured default when topN <= 0. A completed
// attempt without a report gets one generated.
func (s *Service) Report(ctx context.Context, who Identity, attemptID string, topN int) (*report.Report, error) {
	a, in, err := s.load(ctx, who, attemptID)
	if err != nil {
		return nil, err
	}
	if !a.Completed() {
		return nil, &ErrNotFound{Kind: "report", ID: attemptID}
	}
	if err := s.finalize(ctx, a, in); err != nil {
		return nil, err
	}
	return s.read(ctx, a.ID, in, s.limit(in, topN))
}

// limit resolves how many careers to return: the request, then the
// service option, then the instrument's configuration.
func (s *Service) limit(in *instrument.Instrument, requested int) int {
	switch {
	case requested > 0:
		return requested
	case s.topN > 0:
		return s.topN
	default:
		return matching.NewMatcher(in.Composite).TopN()
	}
}

// finalize generates and stores the report unless one exists.
func (s *Service) finalize(ctx context.Context, a *store.Attempt, in *instrument.Instrument) error {
	_, err, _ := s.completing.Do(a.ID, func() (any, error) {
		existing, err := s.reports.Get(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.metrics.Completed(in.Slug, metrics.OutcomeReused)
			s.log.Debug("report reused", "attempt_id", a.ID)
			return nil, nil
		}

		start := time.Now()
		rep, recs, err := s.generate(ctx, a, in)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(rep)
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		created, err := s.reports.Finalize(ctx, a.ID, s.now(), data, recs)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveGeneration(in.Slug, time.Since(start))
		if !created {
			s.metrics.Completed(in.Slug, metrics.OutcomeReused)
			s.log.Debug("report reused", "attempt_id", a.ID)
			return nil, nil
		}
		s.metrics.Completed(in.Slug, metrics.OutcomeCreated)
		s.log.Info("report generated", "attempt_id", a.ID, "instrument", in.Slug, "careers", len(recs))
		return nil, nil
	})
	return err
}

// generate runs the pipeline for an attempt.
func (s *Service) generate(ctx context.Context, a *store.Attempt, in *instrument.Instrument) (*report.Report, []store.Recommendation, error) {
	if in.Category != instrument.CategoryComposite {
		p, err := s.profile(ctx, a.ID, in)
		if err != nil {
			return nil, nil, err
		}
		return report.Build(a.ID, in, p), nil, nil
	}

	cfg := in.Composite
	var ins matching.Inputs
	done := make(map[string]bool, len(cfg.Requires))
	for _, slug := range cfg.Requires {
		base, err := s.instrument(ctx, slug)
		if err != nil {
			return nil, nil, err
		}
		ba, err := s.attempts.LatestCompleted(ctx, a.OwnerKey, base.ID)
		if err != nil {
			return nil, nil, err
		}
		if ba == nil {
			continue
		}
		p, err := s.profile(ctx, ba.ID, base)
		if err != nil {
			return nil, nil, err
		}
		ins.Set(base, p)
		done[slug] = true
	}
	if missing := matching.Missing(cfg, func(slug string) bool { return done[slug] }); len(missing) > 0 {
		s.metrics.IncompleteProfile()
		return nil, nil, &ErrIncompleteProfile{Missing: missing}
	}

	occs, err := s.catalog.Occupations(ctx)
	if err != nil {
		return nil, nil, err
	}
	res := matching.NewMatcher(cfg).Match(ins, occs)
	if res.Empty {
		s.metrics.EmptyCatalog()
		s.log.Warn("no occupations to rank", "attempt_id", a.ID)
	}

	recs := make([]store.Recommendation, len(res.Careers))
	for i, c := range res.Careers {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, nil, fmt.Errorf("encode career %s: %w", c.Code, err)
		}
		recs[i] = store.Recommendation{
			OccupationCode: c.Code,
			Rank:           c.Rank,
			MatchScore:     c.MatchScore,
			Data:           data,
		}
	}
	return report.BuildComposite(a.ID, in, ins, res), recs, nil
}

// read decodes the stored report and attaches up to topN careers.
func (s *Service) read(ctx context.Context, attemptID string, in *instrument.Instrument, topN int) (*report.Report, error) {
	stored, err := s.reports.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &ErrNotFound{Kind: "report", ID: attemptID}
	}
	var rep report.Report
	if err := json.Unmarshal(stored.Data, &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if in.Category != instrument.CategoryComposite {
		return &rep, nil
	}

	recs, err := s.reports.Recommendations(ctx, attemptID, topN)
	if err != nil {
		return nil, err
	}
	careers := make([]matching.Career, len(recs))
	for i, r := range recs {
		if err := json.Unmarshal(r.Data, &careers[i]); err != nil {
			return nil, fmt.Errorf("decode career %s: %w", r.OccupationCode, err)
		}
	}
	return rep.WithCareers(careers), nil
}
