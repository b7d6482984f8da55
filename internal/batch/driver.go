package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-tabulator/internal/normalize"
	"github.com/jonathan/resume-tabulator/internal/schemas"
	"github.com/jonathan/resume-tabulator/internal/textkernel"
	"github.com/jonathan/resume-tabulator/internal/types"
)

// archiveExt is appended to the document name when its raw response is archived
const archiveExt = ".json"

// ProgressEvent reports the outcome of one document
type ProgressEvent struct {
	Index    int
	Total    int
	Document string
	Status   string
}

// ProgressCallback is called after every document
type ProgressCallback func(event ProgressEvent)

// Progress statuses
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result is the outcome of one batch run
type Result struct {
	BatchID   string
	Total     int
	Processed int
	Skipped   int
	Rows      []*types.NormalizedRecord
	Failures  []Failure
}

// Driver processes documents one at a time.
type Driver struct {
	Parser     textkernel.Parser
	Normalizer *normalize.Normalizer

	// Skip holds document IDs that already have a row.
	Skip map[string]struct{}
	// ResponsesDir, when set, receives every raw parser response as <document>.json.
	ResponsesDir string
	// Preflight opens PDF and DOCX files locally before parsing.
	Preflight bool
	// ID maps a path to its document ID. Defaults to DocumentID.
	ID func(path string) string

	Logger     zerolog.Logger
	OnProgress ProgressCallback
}

// Run processes paths in order. Document failures are collected in the result
// and never stop the batch. Cancelling ctx stops the loop between documents
// and returns the partial result together with ctx.Err().
func (d *Driver) Run(ctx context.Context, paths []string) (*Result, error) {
	if d.Parser == nil || d.Normalizer == nil {
		return nil, fmt.Errorf("batch driver requires a parser and a normalizer")
	}

	idOf := d.ID
	if idOf == nil {
		idOf = DocumentID
	}

	result := &Result{
		BatchID: uuid.New().String(),
		Total:   len(paths),
		Rows:    make([]*types.NormalizedRecord, 0, len(paths)),
	}
	log := d.Logger.With().Str("batch_id", result.BatchID).Logger()

	if d.ResponsesDir != "" {
		if err := os.MkdirAll(d.ResponsesDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create responses directory: %w", err)
		}
	}

	log.Info().Int("documents", len(paths)).Msg("batch started")

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("processed", result.Processed).Msg("batch cancelled")
			return result, err
		}

		id := idOf(path)
		docLog := log.With().Str("document", id).Int("index", i+1).Int("total", len(paths)).Logger()

		if _, ok := d.Skip[id]; ok {
			result.Skipped++
			docLog.Info().Msg("already exported, skipping")
			d.progress(i, len(paths), id, StatusSkipped)
			continue
		}

		result.Processed++
		row, failure := d.process(ctx, path, id, docLog)
		if failure != nil {
			if ctx.Err() != nil {
				result.Processed--
				log.Warn().Int("processed", result.Processed).Msg("batch cancelled")
				return result, ctx.Err()
			}
			result.Failures = append(result.Failures, *failure)
			docLog.Error().Str("stage", string(failure.Stage)).Msg(failure.Message)
			d.progress(i, len(paths), id, StatusFailed)
			continue
		}

		result.Rows = append(result.Rows, row)
		docLog.Info().Msg("document normalized")
		d.progress(i, len(paths), id, StatusOK)
	}

	log.Info().
		Int("rows", len(result.Rows)).
		Int("failures", len(result.Failures)).
		Int("skipped", result.Skipped).
		Msg("batch finished")

	return result, nil
}

func (d *Driver) process(ctx context.Context, path, id string, log zerolog.Logger) (*types.NormalizedRecord, *Failure) {
	fail := func(stage Stage, msg string) (*types.NormalizedRecord, *Failure) {
		return nil, &Failure{Document: id, Stage: stage, Message: msg}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(StageRead, err.Error())
	}

	if d.Preflight {
		if err := Preflight(id, data); err != nil {
			return fail(StagePreflight, err.Error())
		}
	}

	doc := textkernel.Document{Name: id, Data: data}
	if info, err := os.Stat(path); err == nil {
		doc.LastModified = info.ModTime()
	}

	parsed, err := d.Parser.Parse(ctx, doc)
	if err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			return fail(StageSchema, verr.Summary())
		}
		return fail(StageParse, err.Error())
	}

	if d.ResponsesDir != "" {
		d.archive(id, parsed.Raw, log)
	}

	if !parsed.Response.Succeeded() {
		log.Debug().Int("status", parsed.StatusCode).Msg("parser reported no resume data")
		return fail(StageService, parsed.Response.ErrorMessage())
	}

	if err := schemas.ValidateResponse(parsed.Raw); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			return fail(StageSchema, verr.Summary())
		}
		return fail(StageSchema, err.Error())
	}

	row, err := d.Normalizer.Normalize(parsed.Response.Resume(), id)
	if err != nil {
		return fail(StageNormalize, err.Error())
	}
	return row, nil
}

// archive stores the raw response. Failing to archive is logged, not fatal.
func (d *Driver) archive(id string, raw []byte, log zerolog.Logger) {
	if len(raw) == 0 {
		return
	}
	dest := filepath.Join(d.ResponsesDir, id+archiveExt)
	if err := os.WriteFile(dest, raw, 0644); err != nil {
		log.Warn().Err(err).Str("path", dest).Msg("failed to archive response")
	}
}

func (d *Driver) progress(i, total int, id, status string) {
	if d.OnProgress != nil {
		d.OnProgress(ProgressEvent{Index: i + 1, Total: total, Document: id, Status: status})
	}
}
