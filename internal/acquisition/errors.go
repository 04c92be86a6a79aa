package acquisition

import "fmt"

// MissingCredentialMessage is the fixed message for an absent API key
const MissingCredentialMessage = "API Key is missing."

// MissingCredentialError is returned when no API key is configured
type MissingCredentialError struct {
	Vars []string
}

func (e *MissingCredentialError) Error() string {
	return MissingCredentialMessage
}

// APICallError represents an error from the Gemini API
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an unusable API response: empty, malformed or off-schema
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
