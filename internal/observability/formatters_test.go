package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tabulator/internal/batch"
	"github.com/jonathan/resume-tabulator/internal/types"
)

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &batch.Result{
		BatchID:   "b-1",
		Total:     4,
		Processed: 3,
		Skipped:   1,
		Rows:      []*types.NormalizedRecord{{}, {}},
		Failures:  []batch.Failure{{Document: "x.pdf", Stage: batch.StageService, Message: "bad"}},
	}

	p.PrintBatchSummary(result, "out/resume_data.csv")
	output := buf.String()

	assert.Contains(t, output, "BATCH SUMMARY")
	assert.Contains(t, output, "b-1")
	assert.Contains(t, output, "Processed:  3")
	assert.Contains(t, output, "Skipped:    1")
	assert.Contains(t, output, "Rows:       2")
	assert.Contains(t, output, "Failures:   1")
	assert.Contains(t, output, "out/resume_data.csv")
}

func TestPrintBatchSummary_NoRows(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary(&batch.Result{Total: 1, Processed: 1}, "out.csv")

	assert.Contains(t, buf.String(), "(nothing written)")
	assert.NotContains(t, buf.String(), "out.csv")
}

func TestPrintBatchSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary(nil, "out.csv")

	assert.Empty(t, buf.String())
}

func TestPrintFailures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFailures([]batch.Failure{
		{Document: "scan.pdf", Stage: batch.StagePreflight, Message: "pdf has no pages"},
		{Document: "cv.docx", Stage: batch.StageService, Message: "No error message available"},
	})
	output := buf.String()

	assert.Contains(t, output, "FAILED DOCUMENTS")
	assert.Contains(t, output, "2 documents failed")
	assert.Contains(t, output, "scan.pdf [preflight]")
	assert.Contains(t, output, "No error message available")
}

func TestPrintFailures_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	failures := make([]batch.Failure, 8)
	for i := range failures {
		failures[i] = batch.Failure{Document: "doc.pdf", Stage: batch.StageParse, Message: "timeout"}
	}

	p.PrintFailures(failures)

	assert.Contains(t, buf.String(), "... and 3 more failures")
}

func TestPrintFailures_None(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFailures(nil)

	assert.Contains(t, buf.String(), "ALL DOCUMENTS NORMALIZED")
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := &types.NormalizedRecord{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		SourceFile:       "ada.pdf",
		Phone:            "(312) 555-0100",
		AreaCodeLocation: "Chicago, IL",
		OtherDegrees:     types.Yes,
		Flags: []types.Flag{
			{Column: "Python", Value: types.Yes},
			{Column: "Go", Value: types.No},
		},
	}
	rec.Education[0] = types.EducationSlot{Degree: "BSc", Year: "1833", Institution: "Home"}
	rec.Employment[0] = types.EmploymentSlot{Title: "Analyst", Company: "Engine Co", Years: "1842-1843"}

	p.PrintRecord(rec)
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED RECORD")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "(Chicago, IL)")
	assert.Contains(t, output, "1833 BSc, Home")
	assert.Contains(t, output, "and other degrees")
	assert.Contains(t, output, "Analyst at Engine Co (1842-1843)")
	assert.Contains(t, output, "Skills:   Python")
	assert.NotContains(t, output, "Go")
}

func TestPrintRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
