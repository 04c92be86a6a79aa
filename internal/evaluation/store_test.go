package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonathan/intern-eval/internal/acquisition"
	"github.com/jonathan/intern-eval/internal/types"
)

// fakeSource implements acquisition.TemplateSource for testing
type fakeSource struct {
	CreateTemplateFunc func(ctx context.Context, referenceText string) ([]types.Criterion, error)
}

func (f *fakeSource) CreateTemplate(ctx context.Context, referenceText string) ([]types.Criterion, error) {
	return f.CreateTemplateFunc(ctx, referenceText)
}

func templateOf(ids ...string) []types.Criterion {
	criteria := make([]types.Criterion, 0, len(ids))
	for _, id := range ids {
		criteria = append(criteria, types.Criterion{ID: id, Text: "label " + id, Type: types.CriteriaStrength})
	}
	return criteria
}

func staticSource(criteria []types.Criterion) *fakeSource {
	return &fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		return criteria, nil
	}}
}

func generatedStore(t *testing.T, names ...string) *Store {
	t.Helper()
	store := NewStore(staticSource(templateOf("java", "care", "team")), WithCandidateIDs(sequentialIDs))
	require.NoError(t, store.Generate(context.Background(), "Điểm mạnh: Java", names))
	return store
}

func serialize(t *testing.T, st State) string {
	t.Helper()
	data, err := json.Marshal(st)
	require.NoError(t, err)
	return string(data)
}

func TestNewStore_Empty(t *testing.T) {
	st := NewStore(staticSource(nil)).Snapshot()
	assert.Empty(t, st.Candidates)
	assert.NotNil(t, st.Candidates)
	assert.False(t, st.Processing)
	assert.Nil(t, st.Error)
}

func TestGenerate_CreatesOneCandidatePerName(t *testing.T) {
	store := generatedStore(t, "Nam", "Lan")

	st := store.Snapshot()
	require.Len(t, st.Candidates, 2)
	assert.False(t, st.Processing)
	assert.Nil(t, st.Error)

	assert.Equal(t, "Nam", st.Candidates[0].Name)
	assert.Equal(t, "cand-1", st.Candidates[1].ID)
	for i, c := range st.Candidates {
		require.Len(t, c.Criteria, 3)
		for _, item := range c.Criteria {
			assert.Equal(t, 0, item.Score)
		}
		assert.Equal(t, "java-"+string(rune('0'+i)), c.Criteria[0].ID)
	}
}

func TestGenerate_ProcessingDuringAcquisition(t *testing.T) {
	var store *Store
	source := &fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		assert.True(t, store.Snapshot().Processing, "processing must be set during acquisition")
		return templateOf("a"), nil
	}}
	store = NewStore(source)

	require.NoError(t, store.Generate(context.Background(), "notes", []string{"Nam"}))
	assert.False(t, store.Snapshot().Processing)
}

func TestGenerate_EmptyTemplate(t *testing.T) {
	store := NewStore(staticSource([]types.Criterion{}))

	err := store.Generate(context.Background(), "notes", []string{"Nam"})

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, KindEmptyTemplate, failure.Kind)
	assert.ErrorIs(t, err, ErrEmptyTemplate)

	st := store.Snapshot()
	assert.Empty(t, st.Candidates)
	assert.False(t, st.Processing)
	require.NotNil(t, st.Error)
	assert.Equal(t, KindEmptyTemplate, st.Error.Kind)
	assert.Equal(t, UserMessage, st.Error.Message)
}

func TestGenerate_FailureKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "missing credential", err: &acquisition.MissingCredentialError{}, want: KindMissingCredential},
		{name: "api failure", err: &acquisition.APICallError{Message: "boom"}, want: KindAcquisitionFailure},
		{name: "parse failure", err: &acquisition.ParseError{Message: "bad json"}, want: KindAcquisitionFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(&fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
				return nil, tt.err
			}})

			err := store.Generate(context.Background(), "notes", []string{"Nam"})
			var failure *Failure
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, tt.want, failure.Kind)
			assert.Equal(t, UserMessage, err.Error(), "detail must not leak to the user")
			assert.ErrorIs(t, err, tt.err)

			data, jsonErr := json.Marshal(failure)
			require.NoError(t, jsonErr)
			assert.JSONEq(t, `{"kind":"`+string(tt.want)+`","message":"`+UserMessage+`"}`, string(data))
		})
	}
}

func TestGenerate_FailureKeepsPreviousCandidates(t *testing.T) {
	fail := false
	source := &fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		if fail {
			return nil, errors.New("network down")
		}
		return templateOf("a", "b"), nil
	}}
	store := NewStore(source)
	require.NoError(t, store.Generate(context.Background(), "notes", []string{"Nam", "Lan"}))
	before := store.Snapshot().Candidates

	fail = true
	require.Error(t, store.Generate(context.Background(), "notes", []string{"Other"}))

	st := store.Snapshot()
	assert.Equal(t, before, st.Candidates)
	require.NotNil(t, st.Error)
	assert.Equal(t, KindAcquisitionFailure, st.Error.Kind)
}

func TestGenerate_SuccessClearsPreviousError(t *testing.T) {
	fail := true
	source := &fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return templateOf("a"), nil
	}}
	store := NewStore(source)
	require.Error(t, store.Generate(context.Background(), "notes", []string{"Nam"}))

	fail = false
	require.NoError(t, store.Generate(context.Background(), "notes", []string{"Nam"}))
	assert.Nil(t, store.Snapshot().Error)
}

func TestGenerate_PanicClearsProcessing(t *testing.T) {
	store := NewStore(&fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		panic("unexpected nil")
	}})

	err := store.Generate(context.Background(), "notes", []string{"Nam"})

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, KindAcquisitionFailure, failure.Kind)
	assert.False(t, store.Snapshot().Processing)

	// The in-flight guard is released too
	store.source = staticSource(templateOf("a"))
	assert.NoError(t, store.Generate(context.Background(), "notes", []string{"Nam"}))
}

func TestGenerate_InputValidation(t *testing.T) {
	calls := 0
	store := NewStore(&fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		calls++
		return templateOf("a"), nil
	}})

	assert.ErrorIs(t, store.Generate(context.Background(), "   ", []string{"Nam"}), ErrEmptyReference)
	assert.ErrorIs(t, store.Generate(context.Background(), "notes", nil), ErrNoCandidates)
	assert.ErrorIs(t, store.Generate(context.Background(), "notes", make([]string, MaxCandidates+1)), ErrTooManyCandidates)
	assert.Equal(t, 0, calls)
	assert.Nil(t, store.Snapshot().Error)
}

func TestGenerate_RejectsConcurrentCall(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	started := make(chan struct{})
	release := make(chan struct{})
	store := NewStore(&fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		close(started)
		<-release
		return templateOf("a"), nil
	}})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = store.Generate(context.Background(), "notes", []string{"Nam"})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("acquisition did not start")
	}

	assert.True(t, store.Snapshot().Processing)
	assert.ErrorIs(t, store.Generate(context.Background(), "notes", []string{"Lan"}), ErrGenerationInProgress)

	close(release)
	wg.Wait()

	require.NoError(t, firstErr)
	st := store.Snapshot()
	assert.False(t, st.Processing)
	require.Len(t, st.Candidates, 1)
	assert.Equal(t, "Nam", st.Candidates[0].Name)
}

func TestUpdateScore(t *testing.T) {
	store := generatedStore(t, "Nam", "Lan")
	before := store.Snapshot()

	changed, err := store.UpdateScore("cand-0", "care-0", 4)
	require.NoError(t, err)
	assert.True(t, changed)

	after := store.Snapshot()
	assert.Equal(t, 4, after.Candidates[0].Criteria[1].Score)
	assert.Equal(t, 0, after.Candidates[1].Criteria[1].Score, "other candidates are untouched")

	// Earlier snapshots are immutable
	assert.Equal(t, 0, before.Candidates[0].Criteria[1].Score)
}

func TestUpdateScore_UnknownIDsLeaveStateIdentical(t *testing.T) {
	store := generatedStore(t, "Nam", "Lan")
	_, err := store.UpdateScore("cand-1", "java-1", 3)
	require.NoError(t, err)
	before := serialize(t, store.Snapshot())

	tests := []struct {
		name        string
		candidateID string
		criterionID string
	}{
		{name: "unknown candidate", candidateID: "cand-9", criterionID: "java-0"},
		{name: "unknown criterion", candidateID: "cand-0", criterionID: "java-9"},
		{name: "criterion of another candidate", candidateID: "cand-0", criterionID: "java-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := store.UpdateScore(tt.candidateID, tt.criterionID, 5)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, before, serialize(t, store.Snapshot()))
		})
	}
}

func TestSnapshot_CallerWritesDoNotReachStore(t *testing.T) {
	store := generatedStore(t, "Nam", "Lan")

	st := store.Snapshot()
	st.Candidates[0].Name = "Changed"
	st.Candidates[0].Criteria[0].Score = 5
	st.Candidates[1].Criteria = append(st.Candidates[1].Criteria[:0], types.Criterion{ID: "x"})

	fresh := store.Snapshot()
	assert.Equal(t, "Nam", fresh.Candidates[0].Name)
	assert.Equal(t, types.ScoreUnrated, fresh.Candidates[0].Criteria[0].Score)
	require.Len(t, fresh.Candidates[1].Criteria, 3)
	assert.Equal(t, "java-1", fresh.Candidates[1].Criteria[0].ID)
}

func TestUpdateScore_InvalidScore(t *testing.T) {
	store := generatedStore(t, "Nam")
	before := serialize(t, store.Snapshot())

	for _, score := range []int{0, 6, -3} {
		changed, err := store.UpdateScore("cand-0", "java-0", score)
		assert.ErrorIs(t, err, ErrInvalidScore)
		assert.False(t, changed)
	}
	assert.Equal(t, before, serialize(t, store.Snapshot()))
}

func TestSetRecommendation(t *testing.T) {
	store := generatedStore(t, "Nam", "Lan")

	assert.True(t, store.SetRecommendation("cand-1", "  Backend team  "))
	assert.False(t, store.SetRecommendation("cand-7", "x"))

	st := store.Snapshot()
	assert.Equal(t, "", st.Candidates[0].PositionRecommendation)
	assert.Equal(t, "Backend team", st.Candidates[1].PositionRecommendation)
}

func TestReset(t *testing.T) {
	fail := false
	source := &fakeSource{CreateTemplateFunc: func(_ context.Context, _ string) ([]types.Criterion, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return templateOf("a", "b"), nil
	}}
	store := NewStore(source, WithCandidateIDs(sequentialIDs))
	require.NoError(t, store.Generate(context.Background(), "notes", []string{"Nam"}))
	_, err := store.UpdateScore("cand-0", "a-0", 5)
	require.NoError(t, err)
	fail = true
	require.Error(t, store.Generate(context.Background(), "notes", []string{"Nam"}))

	store.Reset()

	st := store.Snapshot()
	assert.Empty(t, st.Candidates)
	assert.Nil(t, st.Error)
	assert.False(t, st.Processing)
	assert.Equal(t, serialize(t, NewStore(source).Snapshot()), serialize(t, st))
}
