package batch

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Preflight checks that a PDF or DOCX document can be opened before it is
// sent to the parsing service. Other formats are left to the service.
func Preflight(name string, data []byte) (err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = &PreflightError{Document: name, Message: "document is malformed", Cause: fmt.Errorf("%v", r)}
		}
	}()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return &PreflightError{Document: name, Message: "failed to read pdf", Cause: err}
		}
		if reader.NumPage() == 0 {
			return &PreflightError{Document: name, Message: "pdf has no pages"}
		}
	case ".docx":
		doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return &PreflightError{Document: name, Message: "failed to parse docx", Cause: err}
		}
		_ = doc.Close()
	}
	return nil
}
