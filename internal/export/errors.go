// Package export writes normalized records as a CSV table to a local file or S3.
package export

import "fmt"

// WriteError represents a failure writing the table to its destination
type WriteError struct {
	Destination string
	Message     string
	Cause       error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export to %s failed: %s: %v", e.Destination, e.Message, e.Cause)
	}
	return fmt.Sprintf("export to %s failed: %s", e.Destination, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
