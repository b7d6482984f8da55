package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tabulator/internal/types"
)

func record(source, name string) *types.NormalizedRecord {
	return &types.NormalizedRecord{
		Name:       name,
		SourceFile: source,
		Phone:      "(312) 555-0100",
		Flags: []types.Flag{
			{Column: "Python", Value: types.Yes},
			{Column: "Go", Value: types.No},
		},
	}
}

func readAll(t *testing.T, r io.Reader) [][]string {
	t.Helper()
	rows, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	rows := []*types.NormalizedRecord{record("a.pdf", "Doe-Jane-"), record("b.pdf", "Roe-Rick-")}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, true))

	got := readAll(t, &buf)
	require.Len(t, got, 3)
	assert.Equal(t, rows[0].Header(), got[0])
	assert.Equal(t, rows[0].Row(), got[1])
	assert.Equal(t, "b.pdf", got[2][3])
	assert.Equal(t, "Python", got[0][len(got[0])-2])
}

func TestWriteCSV_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []*types.NormalizedRecord{record("a.pdf", "x")}, false))

	got := readAll(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "a.pdf", got[0][3])
}

func TestWriteCSV_QuotesCommas(t *testing.T) {
	r := record("a.pdf", "x")
	r.AreaCodeLocation = "Chicago, IL"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []*types.NormalizedRecord{r}, false))
	assert.Contains(t, buf.String(), `"Chicago, IL"`)
}

func TestWrite_LocalCreatesDirectories(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "out", "resume_data.csv")

	err := Write(context.Background(), dest, []*types.NormalizedRecord{record("a.pdf", "x")}, Options{})
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, readAll(t, f), 2)
}

func TestWrite_EmptyRowsWritesNothing(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "resume_data.csv")

	require.NoError(t, Write(context.Background(), dest, nil, Options{}))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestWrite_OverwritesByDefault(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "resume_data.csv")
	ctx := context.Background()

	require.NoError(t, Write(ctx, dest, []*types.NormalizedRecord{record("a.pdf", "x"), record("b.pdf", "y")}, Options{}))
	require.NoError(t, Write(ctx, dest, []*types.NormalizedRecord{record("c.pdf", "z")}, Options{}))

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	got := readAll(t, f)
	require.Len(t, got, 2)
	assert.Equal(t, "c.pdf", got[1][3])
}

func TestWrite_AppendKeepsSingleHeader(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "resume_data.csv")
	ctx := context.Background()

	require.NoError(t, Write(ctx, dest, []*types.NormalizedRecord{record("a.pdf", "x")}, Options{Append: true}))
	require.NoError(t, Write(ctx, dest, []*types.NormalizedRecord{record("b.pdf", "y")}, Options{Append: true}))

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	got := readAll(t, f)
	require.Len(t, got, 3)
	assert.Equal(t, types.ColName, got[0][0])
	assert.Equal(t, "a.pdf", got[1][3])
	assert.Equal(t, "b.pdf", got[2][3])
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestWrite_S3(t *testing.T) {
	putter := &fakePutter{}
	rows := []*types.NormalizedRecord{record("a.pdf", "x")}

	err := Write(context.Background(), "s3://exports/runs/resume_data.csv", rows, Options{S3Client: putter})
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	assert.Equal(t, "exports", *putter.input.Bucket)
	assert.Equal(t, "runs/resume_data.csv", *putter.input.Key)
	assert.Equal(t, "text/csv", *putter.input.ContentType)

	got := readAll(t, bytes.NewReader(putter.body))
	require.Len(t, got, 2)
	assert.Equal(t, rows[0].Header(), got[0])
}

func TestWrite_S3Errors(t *testing.T) {
	rows := []*types.NormalizedRecord{record("a.pdf", "x")}
	ctx := context.Background()

	err := Write(ctx, "s3://bucket-only", rows, Options{S3Client: &fakePutter{}})
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "s3://bucket-only", writeErr.Destination)

	err = Write(ctx, "s3://b/k.csv", rows, Options{Append: true, S3Client: &fakePutter{}})
	require.ErrorAs(t, err, &writeErr)
	assert.Contains(t, err.Error(), "append is not supported")

	boom := errors.New("access denied")
	err = Write(ctx, "s3://b/k.csv", rows, Options{S3Client: &fakePutter{err: boom}})
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, boom)
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{uri: "s3://bucket/key.csv", bucket: "bucket", key: "key.csv"},
		{uri: "s3://bucket/a/b/c.csv", bucket: "bucket", key: "a/b/c.csv"},
		{uri: "s3://bucket", wantErr: true},
		{uri: "s3:///key.csv", wantErr: true},
		{uri: "/local/file.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestReadDocumentIDs(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "resume_data.csv")
	rows := []*types.NormalizedRecord{record("a.pdf", "x"), record("b.docx", "y")}
	require.NoError(t, Write(context.Background(), dest, rows, Options{}))

	ids, header, err := ReadDocumentIDs(dest)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "a.pdf")
	assert.Contains(t, ids, "b.docx")
	assert.Equal(t, rows[0].Header(), header)
}

func TestReadDocumentIDs_MissingFile(t *testing.T) {
	ids, header, err := ReadDocumentIDs(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Nil(t, header)
}

func TestReadDocumentIDs_EmptyFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(dest, nil, 0644))

	ids, header, err := ReadDocumentIDs(dest)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Nil(t, header)
}

func TestReadDocumentIDs_MissingColumn(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(dest, []byte(strings.Join([]string{"a,b", "1,2"}, "\n")), 0644))

	_, _, err := ReadDocumentIDs(dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), types.ColSourceFile)
}
