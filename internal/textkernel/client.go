// Package textkernel provides a client for the Textkernel (Tx) v10 resume parsing service.
package textkernel

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/resume-tabulator/internal/schemas"
	"github.com/jonathan/resume-tabulator/internal/types"
)

// DefaultURL is the US-region resume parsing endpoint.
const DefaultURL = "https://api.us.textkernel.com/tx/v10/parser/resume"

// DefaultTimeout is the default HTTP request timeout. Parsing a large
// document routinely takes several seconds.
const DefaultTimeout = 60 * time.Second

// lastModifiedLayout is the date format the service expects for DocumentLastModified
const lastModifiedLayout = "2006-01-02"

// Document is one input document
type Document struct {
	Name         string
	Data         []byte
	LastModified time.Time
}

// Result is the decoded envelope plus the raw body it was decoded from
type Result struct {
	Response   *types.ParseResponse
	Raw        []byte
	StatusCode int
}

// Parser turns a document into a parser response.
type Parser interface {
	Parse(ctx context.Context, doc Document) (*Result, error)
}

// Options configures the client.
type Options struct {
	URL        string
	AccountID  string
	ServiceKey string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the resume parsing endpoint
type Client struct {
	url        string
	accountID  string
	serviceKey string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a client. AccountID and ServiceKey are required.
func NewClient(opts Options) (*Client, error) {
	if opts.AccountID == "" || opts.ServiceKey == "" {
		return nil, fmt.Errorf("account ID and service key are required")
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		url:        opts.URL,
		accountID:  opts.AccountID,
		serviceKey: opts.ServiceKey,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

type parseRequest struct {
	DocumentAsBase64String string `json:"DocumentAsBase64String"`
	DocumentLastModified   string `json:"DocumentLastModified"`
}

// Parse submits the document and decodes the response envelope.
// Service-side failures (bad credentials, unsupported document) come back as a
// Result whose Response lacks the success marker; only transport failures and
// undecodable bodies are returned as errors.
func (c *Client) Parse(ctx context.Context, doc Document) (*Result, error) {
	lastModified := doc.LastModified
	if lastModified.IsZero() {
		lastModified = c.now()
	}

	body, err := json.Marshal(parseRequest{
		DocumentAsBase64String: base64.StdEncoding.EncodeToString(doc.Data),
		DocumentLastModified:   lastModified.Format(lastModifiedLayout),
	})
	if err != nil {
		return nil, &APICallError{Document: doc.Name, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &APICallError{Document: doc.Name, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Tx-AccountId", c.accountID)
	req.Header.Set("Tx-ServiceKey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APICallError{Document: doc.Name, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APICallError{Document: doc.Name, Message: "failed to read response body", Cause: err}
	}

	parsed, err := Decode(raw)
	if err != nil {
		return nil, &ParseError{
			Document:   doc.Name,
			StatusCode: resp.StatusCode,
			Message:    "response is not a parser envelope",
			Cause:      err,
		}
	}

	return &Result{Response: parsed, Raw: raw, StatusCode: resp.StatusCode}, nil
}

// Decode unmarshals a raw response body into the envelope type. When the body
// is JSON of the wrong shape the error is a *schemas.ValidationError naming the
// offending fields.
func Decode(raw []byte) (*types.ParseResponse, error) {
	var parsed types.ParseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		var verr *schemas.ValidationError
		if errors.As(schemas.ValidateResponse(raw), &verr) {
			return nil, verr
		}
		return nil, err
	}
	return &parsed, nil
}

// ReplayParser serves previously archived responses: the document bytes are
// the raw JSON body the service returned. No network access is made.
type ReplayParser struct{}

// Parse decodes the archived response held in doc.Data.
func (ReplayParser) Parse(ctx context.Context, doc Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, err := Decode(doc.Data)
	if err != nil {
		return nil, &ParseError{Document: doc.Name, Message: "archived response is not a parser envelope", Cause: err}
	}
	return &Result{Response: parsed, Raw: doc.Data, StatusCode: http.StatusOK}, nil
}
