// Package formdef loads form definition documents from files, embedded
// filesystems, or URLs and decodes them into engine models. The response
// engine itself only consumes loaded Forms; this package is the boundary
// adapter used by CLIs and services.
package formdef

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Loader reads and decodes form definitions.
type Loader struct {
	fsys       fs.FS
	httpClient *http.Client
	timeout    time.Duration
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithFS supplies the filesystem backing SourceKindFS sources.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithHTTPClient injects a custom HTTP client for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.httpClient = client
		}
	}
}

// WithTimeout bounds URL fetches.
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// NewLoader builds a Loader with sane defaults.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads the document behind the source, decodes it, normalises field
// order and IDs, and validates the structural invariants.
func (l *Loader) Load(ctx context.Context, src Source) (model.Form, error) {
	if src == nil {
		return model.Form{}, errors.New("formdef: source is required")
	}

	raw, err := l.read(ctx, src)
	if err != nil {
		return model.Form{}, err
	}

	form, err := Decode(raw)
	if err != nil {
		return model.Form{}, fmt.Errorf("formdef: %s: %w", src.Location(), err)
	}
	return form, nil
}

func (l *Loader) read(ctx context.Context, src Source) ([]byte, error) {
	switch src.Kind() {
	case SourceKindFile:
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("formdef: read file: %w", err)
		}
		return data, nil
	case SourceKindFS:
		if l.fsys == nil {
			return nil, errors.New("formdef: fs source requires WithFS")
		}
		data, err := fs.ReadFile(l.fsys, src.Location())
		if err != nil {
			return nil, fmt.Errorf("formdef: read fs entry: %w", err)
		}
		return data, nil
	case SourceKindURL:
		return l.fetch(ctx, src.Location())
	default:
		return nil, fmt.Errorf("formdef: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("formdef: fetch: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("formdef: fetch: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Decode parses a JSON or YAML form definition, assigns IDs to fields that
// lack one, renumbers field order, and validates the result.
func Decode(raw []byte) (model.Form, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Form{}, errors.New("empty document")
	}

	var form model.Form
	if looksLikeJSON(raw) {
		if err := json.Unmarshal(raw, &form); err != nil {
			return model.Form{}, fmt.Errorf("decode json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &form); err != nil {
			return model.Form{}, fmt.Errorf("decode yaml: %w", err)
		}
	}

	for i := range form.Fields {
		if form.Fields[i].ID == "" {
			form.Fields[i].ID = uuid.NewString()
		}
	}
	form.Renumber()

	if err := form.Validate(); err != nil {
		return model.Form{}, err
	}
	return form, nil
}

func looksLikeJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
