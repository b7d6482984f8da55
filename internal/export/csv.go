package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tabulator/internal/types"
)

// WriteCSV writes rows to w. The header, when requested, is taken from the first row.
func WriteCSV(w io.Writer, rows []*types.NormalizedRecord, withHeader bool) error {
	if len(rows) == 0 {
		return nil
	}

	writer := csv.NewWriter(w)
	if withHeader {
		if err := writer.Write(rows[0].Header()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, r := range rows {
		if err := writer.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.SourceFile, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeFile writes rows to a local path, creating parent directories.
// In append mode the header is written only when the file is new or empty.
func writeFile(path string, rows []*types.NormalizedRecord, appendRows bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Destination: path, Message: "failed to create output directory", Cause: err}
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	withHeader := true
	if appendRows {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			withHeader = false
		}
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return &WriteError{Destination: path, Message: "failed to open output file", Cause: err}
	}

	if err := WriteCSV(f, rows, withHeader); err != nil {
		_ = f.Close()
		return &WriteError{Destination: path, Message: "failed to write CSV", Cause: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Destination: path, Message: "failed to close output file", Cause: err}
	}
	return nil
}

// ReadDocumentIDs returns the source file names already present in an export
// together with its header. A missing or empty file yields an empty set and a
// nil header.
func ReadDocumentIDs(path string) (map[string]struct{}, []string, error) {
	ids := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ids, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open existing export %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ids, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	col := -1
	for i, name := range header {
		if name == types.ColSourceFile {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, nil, fmt.Errorf("existing export %s has no %q column", path, types.ColSourceFile)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if col < len(record) && record[col] != "" {
			ids[record[col]] = struct{}{}
		}
	}
	return ids, header, nil
}
