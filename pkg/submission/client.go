package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Client is the HTTP implementation of the Uploader and Submitter boundary
// contracts. It performs no retries; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

var (
	_ Uploader  = (*Client)(nil)
	_ Submitter = (*Client)(nil)
)

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient injects a custom *http.Client, e.g. with timeouts.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClientLogger attaches a structured logger.
func WithClientLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient builds a Client rooted at the API base URL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("submission: base URL is required")
	}
	c := &Client{
		baseURL:    trimmed,
		httpClient: http.DefaultClient,
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Upload posts the file as multipart form data to the upload endpoint and
// decodes the returned reference.
func (c *Client) Upload(ctx context.Context, file File) (UploadRef, error) {
	if file.Path == "" {
		return UploadRef{}, errors.New("submission: file path is required")
	}

	src, err := os.Open(file.Path)
	if err != nil {
		return UploadRef{}, fmt.Errorf("submission: open %q: %w", file.Path, err)
	}
	defer func() {
		_ = src.Close()
	}()

	name := file.Name
	if name == "" {
		name = filepath.Base(file.Path)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return UploadRef{}, fmt.Errorf("submission: build upload: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return UploadRef{}, fmt.Errorf("submission: read %q: %w", file.Path, err)
	}
	if err := writer.Close(); err != nil {
		return UploadRef{}, fmt.Errorf("submission: build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", &body)
	if err != nil {
		return UploadRef{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.Debug().Str("file", name).Msg("uploading file")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UploadRef{}, fmt.Errorf("submission: upload: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return UploadRef{}, fmt.Errorf("submission: upload: unexpected status %s", resp.Status)
	}

	var ref UploadRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return UploadRef{}, fmt.Errorf("submission: decode upload response: %w", err)
	}
	return ref, nil
}

type submitRequest struct {
	Answers  []Entry `json:"answers"`
	SendCopy bool    `json:"sendCopy,omitempty"`
}

// Submit posts the assembled answers to the form's response endpoint.
func (c *Client) Submit(ctx context.Context, formID string, entries []Entry, sendCopy bool) error {
	if formID == "" {
		return errors.New("submission: form id is required")
	}

	payload, err := json.Marshal(submitRequest{Answers: entries, SendCopy: sendCopy})
	if err != nil {
		return fmt.Errorf("submission: encode payload: %w", err)
	}

	url := c.baseURL + "/forms/" + formID + "/responses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("form", formID).Int("answers", len(entries)).Msg("submitting answers")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submission: submit: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submission: submit: unexpected status %s", resp.Status)
	}
	return nil
}
