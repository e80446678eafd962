package assessment

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/report"
	"github.com/abhisek/careerfit/internal/store"
)

var (
	alice = Identity{UserID: "alice"}
	bob   = Identity{UserID: "bob"}
)

// clock returns a goroutine-safe clock that advances one second per call.
func clock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestService(t *testing.T, cat catalog.Catalog) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "careerfit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	if cat == nil {
		cat = catalog.MustSeed()
	}
	return NewService(cat, ReposFrom(st), Options{Now: clock()})
}

// answerAll answers every active question of an instrument with the value
// pick returns for its dimension.
func answerAll(t *testing.T, svc *Service, who Identity, a *Attempt, pick func(dim string) string) {
	t.Helper()
	ctx := context.Background()
	qs, err := svc.catalog.Questions(ctx, a.InstrumentID)
	require.NoError(t, err)
	for _, q := range qs {
		_, err := svc.Submit(ctx, who, a.ID, Submission{QuestionID: q.ID, Raw: pick(q.Dimension)})
		require.NoError(t, err, "question %s", q.ID)
	}
}

func all(v string) func(string) string {
	return func(string) string { return v }
}

func completeBase(t *testing.T, svc *Service, who Identity, slug string, pick func(string) string) *report.Report {
	t.Helper()
	ctx := context.Background()
	a, err := svc.Begin(ctx, who, slug)
	require.NoError(t, err)
	answerAll(t, svc, who, a, pick)
	rep, err := svc.Complete(ctx, who, a.ID)
	require.NoError(t, err)
	return rep
}

func TestBeginReturnsLatestAttempt(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, first.Status)
	assert.Equal(t, catalog.SlugInterests, first.Slug)

	again, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.Submit(ctx, alice, first.ID, Submission{QuestionID: "int-R-1", Raw: "4"})
	require.NoError(t, err)
	again, err = svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, again.Status)

	other, err := svc.Begin(ctx, bob, catalog.SlugInterests)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestRetakeStartsFreshAttempt(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Begin(ctx, alice, catalog.SlugSkills)
	require.NoError(t, err)
	second, err := svc.Retake(ctx, alice, catalog.SlugSkills)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	latest, err := svc.Begin(ctx, alice, catalog.SlugSkills)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	list, err := svc.Attempts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestIdentityRequired(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Begin(ctx, Identity{}, catalog.SlugInterests)
	assert.ErrorIs(t, err, ErrNoIdentity)
	_, err = svc.Attempts(ctx, Identity{})
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestSessionIdentity(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	anon := Identity{SessionID: "s-1"}

	a, err := svc.Begin(ctx, anon, catalog.SlugInterests)
	require.NoError(t, err)

	// A user with the same raw id owns nothing of the session's.
	_, err = svc.Progress(ctx, Identity{UserID: "s-1"}, a.ID)
	var denied *ErrAccessDenied
	assert.ErrorAs(t, err, &denied)
}

func TestUnknownReferences(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	var nf *ErrNotFound

	_, err := svc.Begin(ctx, alice, "astrology")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "instrument", nf.Kind)

	_, err = svc.Progress(ctx, alice, "no-such-attempt")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "attempt", nf.Kind)
	assert.ErrorIs(t, err, store.ErrNotFound)

	a, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, alice, a.ID, Submission{QuestionID: "int-Z-9", Raw: "3"})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "question", nf.Kind)

	// A question of another instrument is not part of this attempt.
	_, err = svc.Submit(ctx, alice, a.ID, Submission{QuestionID: "skl-technical-1", Raw: "3"})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "question", nf.Kind)
}

func TestSubmitAccessDenied(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, bob, a.ID, Submission{QuestionID: "int-R-1", Raw: "5"})
	var denied *ErrAccessDenied
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, a.ID, denied.AttemptID)

	_, err = svc.Report(ctx, bob, a.ID, 0)
	assert.ErrorAs(t, err, &denied)
}

func TestSubmitInvalidResponse(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, alice, a.ID, Submission{QuestionID: "int-R-1", Raw: "9"})
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "9", invalid.Raw)

	p, err := svc.Progress(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Answered)
}

func TestSubmitProgress(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)

	for _, id := range []string{"int-R-1", "int-I-1", "int-A-1"} {
		_, err := svc.Submit(ctx, alice, a.ID, Submission{QuestionID: id, Raw: "4", TimeSpent: 1500 * time.Millisecond})
		require.NoError(t, err)
	}
	// Answering again replaces the earlier answer.
	res, err := svc.Submit(ctx, alice, a.ID, Submission{QuestionID: "int-R-1", Raw: "2"})
	require.NoError(t, err)

	assert.False(t, res.Unscored)
	assert.Equal(t, Progress{Answered: 3, Total: 24, Percent: 12.5}, res.Progress)

	p, err := svc.Profile(ctx, alice, a.ID)
	require.NoError(t, err)
	r, ok := p.Dimension("R")
	require.True(t, ok)
	assert.Equal(t, 2.0, r.Value)
	assert.Equal(t, 1, r.Answered)
}

func TestSubmitUnscoredResponse(t *testing.T) {
	b := catalog.Seed()
	for i := range b.Questions {
		if b.Questions[i].ID == "int-R-1" {
			rule := maps.Clone(b.Questions[i].Scoring)
			delete(rule, "3")
			b.Questions[i].Scoring = rule
		}
	}
	cat, err := catalog.NewStatic(b)
	require.NoError(t, err)
	svc := newTestService(t, cat)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)

	res, err := svc.Submit(ctx, alice, a.ID, Submission{QuestionID: "int-R-1", Raw: "3"})
	require.NoError(t, err)
	assert.True(t, res.Unscored)
	assert.Equal(t, 1, res.Progress.Answered)

	p, err := svc.Profile(ctx, alice, a.ID)
	require.NoError(t, err)
	r, _ := p.Dimension("R")
	assert.False(t, r.Determined)
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugInterests)
	require.NoError(t, err)
	answerAll(t, svc, alice, a, func(dim string) string {
		if dim == "I" {
			return "5"
		}
		return "3"
	})

	first, err := svc.Complete(ctx, alice, a.ID)
	require.NoError(t, err)
	second, err := svc.Complete(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, a.ID, first.AttemptID)
	assert.Equal(t, "I", first.HollandCode()[:1])

	read, err := svc.Report(ctx, alice, a.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, first, read)

	_, err = svc.Submit(ctx, alice, a.ID, Submission{QuestionID: "int-R-1", Raw: "5"})
	var done *ErrAttemptCompleted
	assert.ErrorAs(t, err, &done)

	list, err := svc.Attempts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusCompleted, list[0].Status)
	assert.NotNil(t, list[0].CompletedAt)
}

func TestCompleteConcurrent(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugSkills)
	require.NoError(t, err)
	answerAll(t, svc, alice, a, all("4"))

	const n = 8
	reports := make([]*report.Report, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i], errs[i] = svc.Complete(ctx, alice, a.ID)
		}(i)
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.Equal(t, reports[0], reports[i])
	}
}

func TestReportRequiresCompletion(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.Begin(ctx, alice, catalog.SlugPersonality)
	require.NoError(t, err)

	_, err = svc.Report(ctx, alice, a.ID, 0)
	var nf *ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "report", nf.Kind)
}

func TestCompositeIncompleteProfile(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	completeBase(t, svc, alice, catalog.SlugInterests, all("4"))

	fit, err := svc.Begin(ctx, alice, catalog.SlugCareerFit)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, alice, fit.ID)
	var incomplete *ErrIncompleteProfile
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{catalog.SlugSkills, catalog.SlugPersonality}, incomplete.Missing)
	assert.EqualError(t, err, "complete these assessments first: skills, personality")

	// The composite attempt stays open.
	_, err = svc.Report(ctx, alice, fit.ID, 0)
	var nf *ErrNotFound
	assert.ErrorAs(t, err, &nf)

	_, err = svc.Profile(ctx, alice, fit.ID)
	assert.Error(t, err)
}

func TestCompositeOnlyUsesOwnAttempts(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	completeBase(t, svc, bob, catalog.SlugInterests, all("4"))
	completeBase(t, svc, bob, catalog.SlugSkills, all("4"))
	completeBase(t, svc, bob, catalog.SlugPersonality, all("3"))

	fit, err := svc.Begin(ctx, alice, catalog.SlugCareerFit)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, alice, fit.ID)
	var incomplete *ErrIncompleteProfile
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Missing, 3)
}

func TestCompositeFlow(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	completeBase(t, svc, alice, catalog.SlugInterests, func(dim string) string {
		switch dim {
		case "I":
			return "5"
		case "C":
			return "4"
		default:
			return "2"
		}
	})
	completeBase(t, svc, alice, catalog.SlugSkills, all("4"))
	completeBase(t, svc, alice, catalog.SlugPersonality, all("3"))

	fit, err := svc.Begin(ctx, alice, catalog.SlugCareerFit)
	require.NoError(t, err)
	rep, err := svc.Complete(ctx, alice, fit.ID)
	require.NoError(t, err)

	assert.True(t, rep.IsComposite())
	require.NotNil(t, rep.Readiness)
	require.Len(t, rep.Careers, 10)
	for i, c := range rep.Careers {
		assert.Equal(t, i+1, c.Rank)
		assert.GreaterOrEqual(t, c.MatchScore, 0)
		assert.LessOrEqual(t, c.MatchScore, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, rep.Careers[i-1].MatchScore, c.MatchScore)
		}
	}
	assert.Equal(t, rep.Careers[0].MatchScore, rep.Readiness.Score)

	top3, err := svc.Report(ctx, alice, fit.ID, 3)
	require.NoError(t, err)
	require.Len(t, top3.Careers, 3)
	assert.Equal(t, rep.Careers[:3], top3.Careers)
	assert.Equal(t, rep.Summary, top3.Summary)

	// Retaking a base instrument leaves the stored composite unchanged.
	retake, err := svc.Retake(ctx, alice, catalog.SlugSkills)
	require.NoError(t, err)
	answerAll(t, svc, alice, retake, all("1"))
	_, err = svc.Complete(ctx, alice, retake.ID)
	require.NoError(t, err)
	again, err := svc.Report(ctx, alice, fit.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, rep, again)
}

func TestCompositeEmptyCatalog(t *testing.T) {
	b := catalog.Seed()
	b.Occupations = nil
	cat, err := catalog.NewStatic(b)
	require.NoError(t, err)
	svc := newTestService(t, cat)
	ctx := context.Background()

	completeBase(t, svc, alice, catalog.SlugInterests, all("4"))
	completeBase(t, svc, alice, catalog.SlugSkills, all("4"))
	completeBase(t, svc, alice, catalog.SlugPersonality, all("3"))

	fit, err := svc.Begin(ctx, alice, catalog.SlugCareerFit)
	require.NoError(t, err)
	rep, err := svc.Complete(ctx, alice, fit.ID)
	require.NoError(t, err)
	require.NotNil(t, rep.Readiness)
	assert.True(t, rep.Readiness.Empty)
	assert.Empty(t, rep.Careers)

	stored, err := svc.Report(ctx, alice, fit.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, stored.Readiness)
	assert.True(t, stored.Readiness.Empty)
	assert.NotNil(t, stored.Careers)
	assert.Empty(t, stored.Careers)
	assert.Equal(t, rep.Summary, stored.Summary)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrNotFound{Kind: "attempt", ID: "a1"}, `attempt "a1" not found`},
		{&ErrAccessDenied{AttemptID: "a1"}, `access to attempt "a1" denied`},
		{&ErrInvalidResponse{QuestionID: "q1", Raw: "x"}, `invalid response "x" for question "q1"`},
		{&ErrAttemptCompleted{AttemptID: "a1"}, `attempt "a1" is already completed`},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.err), func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}

	wrapped := fmt.Errorf("load: %w", &ErrNotFound{Kind: "question", ID: "q", Err: &catalog.NotFoundError{Kind: "question", Key: "q"}})
	var cnf *catalog.NotFoundError
	assert.True(t, errors.As(wrapped, &cnf))
}

func TestOwnerKey(t *testing.T) {
	assert.Equal(t, "user:u", Identity{UserID: "u", SessionID: "s"}.OwnerKey())
	assert.Equal(t, "session:s", Identity{SessionID: "s"}.OwnerKey())
	assert.Equal(t, "", Identity{}.OwnerKey())
}
