package normalize

import "github.com/jonathan/resume-tabulator/internal/types"

// Nth returns the element at zero-based index n and true, or the zero value
// and false when n is out of range. The bool is the "absent" marker, so a
// present element that happens to be empty is still reported as present.
func Nth[T any](items []T, n int) (T, bool) {
	var zero T
	if n < 0 || n >= len(items) {
		return zero, false
	}
	return items[n], true
}

// HasMoreThan reports whether items holds more than k elements.
func HasMoreThan[T any](items []T, k int) bool {
	return len(items) > k
}

// YesNo renders a boolean as the "y"/"n" export flag.
func YesNo(b bool) string {
	if b {
		return types.Yes
	}
	return types.No
}
