// Package evaluation holds the in-memory evaluation state: candidates built
// from an acquired criteria template, their scores, and the transitions on them.
package evaluation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/intern-eval/internal/acquisition"
	"github.com/jonathan/intern-eval/internal/types"
)

// State is a snapshot of the store. Published states are never written
// again, and Snapshot hands out a deep copy.
type State struct {
	Candidates []types.Candidate `json:"candidates"`
	Processing bool              `json:"processing"`
	Error      *Failure          `json:"error"`
}

// Store owns the candidates of one evaluation session.
// Every transition publishes a new State; readers never see partial updates.
type Store struct {
	source   acquisition.TemplateSource
	logger   *zap.Logger
	newID    func(index int) string
	inflight *semaphore.Weighted

	mu    sync.Mutex
	state *State
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithStoreLogger sets the logger for acquisition diagnostics
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithCandidateIDs replaces the candidate id generator
func WithCandidateIDs(fn func(index int) string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates an empty store backed by source
func NewStore(source acquisition.TemplateSource, opts ...StoreOption) *Store {
	s := &Store{
		source:   source,
		logger:   zap.NewNop(),
		newID:    defaultCandidateID,
		inflight: semaphore.NewWeighted(1),
		state:    &State{Candidates: []types.Candidate{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state that shares no storage with the store
func (s *Store) Snapshot() State {
	s.mu.Lock()
	current := *s.state
	s.mu.Unlock()

	candidates := make([]types.Candidate, len(current.Candidates))
	for i, c := range current.Candidates {
		candidates[i] = c.Clone()
	}
	current.Candidates = candidates
	return current
}

// Generate acquires a criteria template for referenceText and replaces the
// candidates with one fresh form per name. Processing is true while the
// acquisition runs. On failure the previous candidates are kept, the
// failure is stored, and it is returned as a *Failure.
func (s *Store) Generate(ctx context.Context, referenceText string, names []string) error {
	if strings.TrimSpace(referenceText) == "" {
		return ErrEmptyReference
	}
	if len(names) == 0 {
		return ErrNoCandidates
	}
	if len(names) > MaxCandidates {
		return fmt.Errorf("%w: %d exceeds %d", ErrTooManyCandidates, len(names), MaxCandidates)
	}
	if !s.inflight.TryAcquire(1) {
		return ErrGenerationInProgress
	}
	defer s.inflight.Release(1)

	s.publish(func(st *State) {
		st.Processing = true
		st.Error = nil
	})

	template, err := s.acquire(ctx, referenceText)
	if err == nil && len(template) == 0 {
		err = ErrEmptyTemplate
	}
	if err != nil {
		failure := newFailure(err)
		s.logger.Error("criteria template generation failed",
			zap.String("kind", string(failure.Kind)),
			zap.Error(err))
		s.publish(func(st *State) {
			st.Processing = false
			st.Error = failure
		})
		return failure
	}

	candidates := Instantiate(template, names, s.newID)
	s.publish(func(st *State) {
		st.Candidates = candidates
		st.Processing = false
		st.Error = nil
	})
	s.logger.Info("evaluation forms generated",
		zap.Int("candidates", len(candidates)),
		zap.Int("criteria", len(template)))
	return nil
}

// acquire calls the template source, converting a panic into an error so
// the processing flag is always cleared.
func (s *Store) acquire(ctx context.Context, referenceText string) (template []types.Criterion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template acquisition panicked: %v", r)
		}
	}()
	return s.source.CreateTemplate(ctx, referenceText)
}

// UpdateScore sets the score of one criterion of one candidate. It reports
// false and leaves the store untouched when either id is unknown.
func (s *Store) UpdateScore(candidateID, criterionID string, score int) (bool, error) {
	if score < types.MinScore || score > types.MaxScore {
		return false, ErrInvalidScore
	}

	return s.modifyCandidate(candidateID, func(c *types.Candidate) bool {
		for i := range c.Criteria {
			if c.Criteria[i].ID == criterionID {
				c.Criteria[i].Score = score
				return true
			}
		}
		return false
	}), nil
}

// SetRecommendation sets a candidate's position recommendation.
// It reports false when the candidate is unknown.
func (s *Store) SetRecommendation(candidateID, text string) bool {
	return s.modifyCandidate(candidateID, func(c *types.Candidate) bool {
		c.PositionRecommendation = strings.TrimSpace(text)
		return true
	})
}

// Reset clears the candidates and the stored error. A generation that is
// still running keeps the processing flag set.
func (s *Store) Reset() {
	s.publish(func(st *State) {
		st.Candidates = []types.Candidate{}
		st.Error = nil
	})
}

// modifyCandidate applies fn to a private copy of the matching candidate and
// publishes it only when fn reports a change.
func (s *Store) modifyCandidate(candidateID string, fn func(*types.Candidate) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.state
	idx := -1
	for i := range current.Candidates {
		if current.Candidates[i].ID == candidateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	updated := current.Candidates[idx].Clone()
	if !fn(&updated) {
		return false
	}

	candidates := make([]types.Candidate, len(current.Candidates))
	copy(candidates, current.Candidates)
	candidates[idx] = updated

	next := *current
	next.Candidates = candidates
	s.state = &next
	return true
}

func (s *Store) publish(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.state
	fn(&next)
	s.state = &next
}
