package export

import (
	"context"
	"strings"

	"github.com/jonathan/resume-tabulator/internal/types"
)

// Options controls how Write stores the table.
type Options struct {
	// Append adds rows to an existing local file instead of replacing it.
	Append bool
	// S3 configures the client built for s3:// destinations.
	S3 S3Options
	// S3Client overrides the client built from S3.
	S3Client ObjectPutter
}

// Write stores rows at dest, a local path or an s3://bucket/key URI.
// No file or object is produced when rows is empty.
func Write(ctx context.Context, dest string, rows []*types.NormalizedRecord, opts Options) error {
	if len(rows) == 0 {
		return nil
	}

	if !strings.HasPrefix(dest, "s3://") {
		return writeFile(dest, rows, opts.Append)
	}

	if opts.Append {
		return &WriteError{Destination: dest, Message: "append is not supported for S3 destinations"}
	}

	client := opts.S3Client
	if client == nil {
		c, err := NewS3Client(ctx, opts.S3)
		if err != nil {
			return &WriteError{Destination: dest, Message: "failed to create S3 client", Cause: err}
		}
		client = c
	}
	return uploadS3(ctx, client, dest, rows)
}
