package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/intern-eval/internal/acquisition"
	"github.com/jonathan/intern-eval/internal/evaluation"
)

// ErrNotFound indicates a candidate or criterion id matched nothing
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidationError converts the first validator failure into an ErrValidation
func newValidationError(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrNotFound
		validation *ErrValidation
		failure    *evaluation.Failure
		credErr    *acquisition.MissingCredentialError
		apiErr     *acquisition.APICallError
		parseErr   *acquisition.ParseError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation),
		errors.Is(err, evaluation.ErrEmptyReference),
		errors.Is(err, evaluation.ErrNoCandidates),
		errors.Is(err, evaluation.ErrTooManyCandidates),
		errors.Is(err, evaluation.ErrInvalidScore):
		return http.StatusBadRequest
	case errors.Is(err, evaluation.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.As(err, &failure):
		return failureStatus(failure.Kind)
	case errors.As(err, &credErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func failureStatus(kind evaluation.Kind) int {
	switch kind {
	case evaluation.KindEmptyTemplate:
		return http.StatusUnprocessableEntity
	case evaluation.KindMissingCredential:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
