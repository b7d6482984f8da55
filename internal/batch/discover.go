package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultPattern selects the documents processed when no pattern is given
const DefaultPattern = "*.pdf"

// Discover returns the files in dir matching any of patterns, sorted by path.
// Directories are ignored and a file matched by several patterns appears once.
func Discover(dir string, patterns []string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("input directory is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			if fi, err := os.Stat(m); err != nil || fi.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	slices.Sort(paths)
	return paths, nil
}

// DocumentID is the identifier recorded for a document: its base file name.
func DocumentID(path string) string {
	return filepath.Base(path)
}

// ArchivedDocumentID maps an archived response file back to the document it
// was parsed from ("cv.pdf.json" -> "cv.pdf").
func ArchivedDocumentID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), archiveExt)
}
