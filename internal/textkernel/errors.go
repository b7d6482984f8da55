package textkernel

import "fmt"

// APICallError represents a failed round trip to the parsing service
type APICallError struct {
	Document string
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed for %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed for %s: %s", e.Document, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response body that is not a parser envelope
type ParseError struct {
	Document   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error for %s", e.Document)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
