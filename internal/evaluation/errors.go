package evaluation

import (
	"errors"

	"github.com/jonathan/intern-eval/internal/acquisition"
)

// Kind classifies an acquisition failure
type Kind string

// Failure kinds surfaced by Generate
const (
	KindMissingCredential  Kind = "MissingCredential"
	KindEmptyTemplate      Kind = "EmptyTemplate"
	KindAcquisitionFailure Kind = "AcquisitionFailure"
)

// UserMessage is the only text shown to users for any acquisition failure
const UserMessage = "An error occurred while analyzing the text. Please check your API key and try again."

var (
	// ErrEmptyTemplate means acquisition succeeded but produced no criteria
	ErrEmptyTemplate = errors.New("could not extract criteria from the provided text")
	// ErrGenerationInProgress rejects a Generate issued while another is pending
	ErrGenerationInProgress = errors.New("generation already in progress")
	// ErrEmptyReference rejects a Generate without reference text
	ErrEmptyReference = errors.New("reference text is required")
	// ErrNoCandidates rejects a Generate without candidate names
	ErrNoCandidates = errors.New("at least one candidate name is required")
	// ErrTooManyCandidates rejects a Generate with more than MaxCandidates names
	ErrTooManyCandidates = errors.New("too many candidates")
	// ErrInvalidScore rejects a score outside 1-5
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// Failure is the stored, user-facing form of an acquisition error.
// The underlying cause is kept for logging and errors.Is/As but never serialized.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

func newFailure(err error) *Failure {
	return &Failure{
		Kind:    classify(err),
		Message: UserMessage,
		cause:   err,
	}
}

func classify(err error) Kind {
	var credErr *acquisition.MissingCredentialError
	switch {
	case errors.As(err, &credErr):
		return KindMissingCredential
	case errors.Is(err, ErrEmptyTemplate):
		return KindEmptyTemplate
	default:
		return KindAcquisitionFailure
	}
}
