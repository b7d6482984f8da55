package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tabulator/internal/areacode"
	"github.com/jonathan/resume-tabulator/internal/normalize"
	"github.com/jonathan/resume-tabulator/internal/textkernel"
)

const adaResponse = `{
	"Info": {"Code": "Success", "Message": "Successful Parse"},
	"Value": {"ResumeData": {
		"ContactInformation": {
			"CandidateName": {"GivenName": "Ada", "FamilyName": "Lovelace"},
			"Telephones": [{"Normalized": "(312) 555-0100", "AreaCityCode": "312"}]
		},
		"Skills": {"Raw": [{"Name": "Python"}]}
	}}
}`

const failedResponse = `{"Info": {"Code": "ConversionException", "Message": "Unable to convert document"}}`

// fakeParser returns canned responses by document name.
type fakeParser struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
	onParse   func()
}

func (f *fakeParser) Parse(ctx context.Context, doc textkernel.Document) (*textkernel.Result, error) {
	f.calls = append(f.calls, doc.Name)
	if f.onParse != nil {
		f.onParse()
	}
	if err := f.errs[doc.Name]; err != nil {
		return nil, err
	}
	return textkernel.ReplayParser{}.Parse(ctx, textkernel.Document{Name: doc.Name, Data: []byte(f.responses[doc.Name])})
}

func newNormalizer(t *testing.T) *normalize.Normalizer {
	t.Helper()
	codes, err := areacode.Default()
	require.NoError(t, err)
	return normalize.New(codes, normalize.DefaultFlagSpec())
}

func writeDocs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("document "+name), 0644))
		paths = append(paths, p)
	}
	return paths
}

func TestDriver_Run_CollectsRowsAndFailures(t *testing.T) {
	paths := writeDocs(t, t.TempDir(), "ada.pdf", "broken.pdf", "down.pdf")
	parser := &fakeParser{
		responses: map[string]string{"ada.pdf": adaResponse, "broken.pdf": failedResponse},
		errs:      map[string]error{"down.pdf": errors.New("connection refused")},
	}

	var events []ProgressEvent
	d := &Driver{
		Parser:     parser,
		Normalizer: newNormalizer(t),
		Logger:     zerolog.Nop(),
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	}

	result, err := d.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Processed)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "ada.pdf", result.Rows[0].SourceFile)
	assert.Equal(t, "Lovelace-Ada-", result.Rows[0].Name)
	assert.Equal(t, "Chicago, IL", result.Rows[0].AreaCodeLocation)

	require.Len(t, result.Failures, 2)
	assert.Equal(t, Failure{Document: "broken.pdf", Stage: StageService, Message: "Unable to convert document"}, result.Failures[0])
	assert.Equal(t, "down.pdf", result.Failures[1].Document)
	assert.Equal(t, StageParse, result.Failures[1].Stage)

	require.Len(t, events, 3)
	assert.Equal(t, ProgressEvent{Index: 1, Total: 3, Document: "ada.pdf", Status: StatusOK}, events[0])
	assert.Equal(t, StatusFailed, events[1].Status)
	assert.Equal(t, StatusFailed, events[2].Status)
}

func TestDriver_Run_NoErrorMessage(t *testing.T) {
	paths := writeDocs(t, t.TempDir(), "empty.pdf")
	parser := &fakeParser{responses: map[string]string{"empty.pdf": `{}`}}

	d := &Driver{Parser: parser, Normalizer: newNormalizer(t), Logger: zerolog.Nop()}
	result, err := d.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.Empty(t, result.Rows)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "No error message available", result.Failures[0].Message)
}

func TestDriver_Run_WrongShapeIsSchemaFailure(t *testing.T) {
	paths := writeDocs(t, t.TempDir(), "odd.pdf")
	parser := &fakeParser{responses: map[string]string{
		"odd.pdf": `{"Value": {"ResumeData": {"EmploymentHistory": {"Positions": {"JobTitle": "x"}}}}}`,
	}}

	d := &Driver{Parser: parser, Normalizer: newNormalizer(t), Logger: zerolog.Nop()}
	result, err := d.Run(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, StageSchema, result.Failures[0].Stage)
	assert.Contains(t, result.Failures[0].Message, "Positions")
}

func TestDriver_Run_SkipsKnownDocuments(t *testing.T) {
	paths := writeDocs(t, t.TempDir(), "ada.pdf", "bob.pdf")
	parser := &fakeParser{responses: map[string]string{"ada.pdf": adaResponse, "bob.pdf": adaResponse}}

	d := &Driver{
		Parser:     parser,
		Normalizer: newNormalizer(t),
		Skip:       map[string]struct{}{"ada.pdf": {}},
		Logger:     zerolog.Nop(),
	}
	result, err := d.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, []string{"bob.pdf"}, parser.calls)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "bob.pdf", result.Rows[0].SourceFile)
}

func TestDriver_Run_ArchivesRawResponses(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "responses")
	paths := writeDocs(t, dir, "ada.pdf", "broken.pdf")
	parser := &fakeParser{responses: map[string]string{"ada.pdf": adaResponse, "broken.pdf": failedResponse}}

	d := &Driver{Parser: parser, Normalizer: newNormalizer(t), ResponsesDir: archive, Logger: zerolog.Nop()}
	_, err := d.Run(context.Background(), paths)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(archive, "ada.pdf.json"))
	require.NoError(t, err)
	assert.JSONEq(t, adaResponse, string(raw))

	raw, err = os.ReadFile(filepath.Join(archive, "broken.pdf.json"))
	require.NoError(t, err)
	assert.JSONEq(t, failedResponse, string(raw))
}

func TestDriver_Run_ReplayArchivedResponses(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "ada.pdf.json")
	require.NoError(t, os.WriteFile(p, []byte(adaResponse), 0644))

	d := &Driver{
		Parser:     textkernel.ReplayParser{},
		Normalizer: newNormalizer(t),
		ID:         ArchivedDocumentID,
		Logger:     zerolog.Nop(),
	}
	result, err := d.Run(context.Background(), []string{p})
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "ada.pdf", result.Rows[0].SourceFile)
}

func TestDriver_Run_PreflightRejectsBeforeParse(t *testing.T) {
	paths := writeDocs(t, t.TempDir(), "fake.pdf", "notes.txt")
	parser := &fakeParser{responses: map[string]string{"notes.txt": adaResponse}}

	d := &Driver{Parser: parser, Normalizer: newNormalizer(t), Preflight: true, Logger: zerolog.Nop()}
	result, err := d.Run(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, []string{"notes.txt"}, parser.calls)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "fake.pdf", result.Failures[0].Document)
	assert.Equal(t, StagePreflight, result.Failures[0].Stage)
	assert.Len(t, result.Rows, 1)
}

func TestDriver_Run_MissingFileIsReadFailure(t *testing.T) {
	d := &Driver{Parser: &fakeParser{}, Normalizer: newNormalizer(t), Logger: zerolog.Nop()}
	result, err := d.Run(context.Background(), []string{filepath.Join(t.TempDir(), "gone.pdf")})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, StageRead, result.Failures[0].Stage)
}

func TestDriver_Run_CancelStopsBetweenDocuments(t *testing.T) {
	paths := writeDocs(t, t.TempDir(), "a.pdf", "b.pdf", "c.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	parser := &fakeParser{
		responses: map[string]string{"a.pdf": adaResponse, "b.pdf": adaResponse, "c.pdf": adaResponse},
		onParse:   cancel,
	}

	d := &Driver{Parser: parser, Normalizer: newNormalizer(t), Logger: zerolog.Nop()}
	result, err := d.Run(ctx, paths)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)

	assert.Equal(t, []string{"a.pdf"}, parser.calls)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 0, result.Processed)
}

func TestDriver_Run_RequiresCollaborators(t *testing.T) {
	d := &Driver{}
	_, err := d.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestDriver_Run_EmptyBatch(t *testing.T) {
	d := &Driver{Parser: &fakeParser{}, Normalizer: newNormalizer(t), Logger: zerolog.Nop()}
	result, err := d.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Failures)
}
