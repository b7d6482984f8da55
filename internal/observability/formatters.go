// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tabulator/internal/batch"
	"github.com/jonathan/resume-tabulator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintBatchSummary outputs the counts of a finished batch and where the rows went.
func (p *Printer) PrintBatchSummary(result *batch.Result, destination string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch:      %s\n", result.BatchID))
	sb.WriteString(fmt.Sprintf("Documents:  %d\n", result.Total))
	sb.WriteString(fmt.Sprintf("Processed:  %d\n", result.Processed))
	sb.WriteString(fmt.Sprintf("Skipped:    %d\n", result.Skipped))
	sb.WriteString(fmt.Sprintf("Rows:       %d\n", len(result.Rows)))
	sb.WriteString(fmt.Sprintf("Failures:   %d\n", len(result.Failures)))
	if len(result.Rows) == 0 {
		sb.WriteString("Output:     (nothing written)")
	} else {
		sb.WriteString(fmt.Sprintf("Output:     %s", destination))
	}

	p.printBox("BATCH SUMMARY", sb.String())
}

// PrintFailures outputs the documents that produced no row.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailures(failures []batch.Failure) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL DOCUMENTS NORMALIZED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d documents failed:\n\n", len(failures)))

	count := min(len(failures), maxItemsToShow)
	for i := 0; i < count; i++ {
		f := failures[i]
		sb.WriteString(fmt.Sprintf("⚠ %s [%s]\n", f.Document, f.Stage))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Message))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(failures) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more failures", len(failures)-maxItemsToShow))
	}

	p.printBox("FAILED DOCUMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecord outputs a human-readable view of one normalized record.
func (p *Printer) PrintRecord(rec *types.NormalizedRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s %s\n", rec.FirstName, rec.LastName))
	sb.WriteString(fmt.Sprintf("File:     %s\n", rec.SourceFile))
	if rec.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s", rec.Phone))
		if rec.AreaCodeLocation != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", rec.AreaCodeLocation))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Education:\n")
	for _, e := range rec.Education {
		if e == (types.EducationSlot{}) {
			continue
		}
		sb.WriteString(fmt.Sprintf("  • %s %s, %s\n", e.Year, e.Degree, e.Institution))
	}
	if rec.OtherDegrees == types.Yes {
		sb.WriteString("  ... and other degrees\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Employment:\n")
	for _, e := range rec.Employment {
		if e == (types.EmploymentSlot{}) {
			continue
		}
		sb.WriteString(fmt.Sprintf("  • %s at %s (%s)\n", e.Title, e.Company, e.Years))
	}

	var matched []string
	for _, f := range rec.Flags {
		if f.Value == types.Yes {
			matched = append(matched, f.Column)
		}
	}
	if len(matched) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills:   %s\n", strings.Join(matched, ", ")))
	}

	p.printBox("NORMALIZED RECORD", strings.TrimSuffix(sb.String(), "\n"))
}
