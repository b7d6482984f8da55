// Package batch runs a directory of resume documents through parsing and normalization.
package batch

import "fmt"

// Stage names the step at which a document failed
type Stage string

const (
	StageRead      Stage = "read"
	StagePreflight Stage = "preflight"
	StageParse     Stage = "parse"
	StageService   Stage = "service"
	StageSchema    Stage = "schema"
	StageNormalize Stage = "normalize"
)

// Failure records one document that produced no row
type Failure struct {
	Document string `json:"document"`
	Stage    Stage  `json:"stage"`
	Message  string `json:"message"`
}

// PreflightError represents a document that cannot be opened locally
type PreflightError struct {
	Document string
	Message  string
	Cause    error
}

func (e *PreflightError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("preflight failed for %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("preflight failed for %s: %s", e.Document, e.Message)
}

func (e *PreflightError) Unwrap() error {
	return e.Cause
}
