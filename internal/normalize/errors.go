// Package normalize turns parsed resumes into flat, fixed-schema export records.
package normalize

import "fmt"

// NormalizationError represents a parsed resume that cannot be flattened at all
type NormalizationError struct {
	DocumentID string
	Message    string
	Cause      error
}

func (e *NormalizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("normalization error for %s: %s: %v", e.DocumentID, e.Message, e.Cause)
	}
	return fmt.Sprintf("normalization error for %s: %s", e.DocumentID, e.Message)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// FlagSpecError represents an invalid skill flag taxonomy
type FlagSpecError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FlagSpecError) Error() string {
	prefix := "flag spec error"
	if e.Path != "" {
		prefix = fmt.Sprintf("flag spec error in %s", e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *FlagSpecError) Unwrap() error {
	return e.Cause
}
