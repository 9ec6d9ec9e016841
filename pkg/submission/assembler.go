// Package submission turns a session's answers into the payload handed to
// the external submission API, resolving file uploads first.
package submission

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Entry is one assembled answer. Hidden or unanswered fields carry a nil
// Value so the submission is a complete record of the form.
type Entry struct {
	FieldID string `json:"fieldId"`
	Value   any    `json:"value"`
}

// File is a pending upload handle held in the answer map for file-typed
// fields until the assembler resolves it.
type File struct {
	Name string
	Path string
}

// UploadRef is what the upload endpoint returns for a stored file.
type UploadRef struct {
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Value picks the reference to substitute into the submission.
func (r UploadRef) Value() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Filename
}

// Uploader stores a file ahead of submission.
type Uploader interface {
	Upload(ctx context.Context, file File) (UploadRef, error)
}

// Submitter delivers the assembled answers to the submission API.
type Submitter interface {
	Submit(ctx context.Context, formID string, entries []Entry, sendCopy bool) error
}

// FailurePolicy names the behaviour when a file upload fails.
type FailurePolicy int

const (
	// UsePlaceholder substitutes the file's original name and continues,
	// favouring "some data captured" over all-or-nothing.
	UsePlaceholder FailurePolicy = iota
	// Abort fails the whole submission on the first upload error.
	Abort
)

// Assembler walks the full field list and produces the final answer array.
type Assembler struct {
	uploader Uploader
	eval     visibility.Evaluator
	policy   FailurePolicy
	log      zerolog.Logger
}

// Option customises an Assembler.
type Option func(*Assembler)

// WithUploader wires the upload boundary used for file-typed answers.
func WithUploader(uploader Uploader) Option {
	return func(a *Assembler) {
		a.uploader = uploader
	}
}

// WithFailurePolicy overrides the upload failure behaviour.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(a *Assembler) {
		a.policy = policy
	}
}

// WithEvaluator swaps the visibility evaluator.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(a *Assembler) {
		if eval != nil {
			a.eval = eval
		}
	}
}

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Assembler) {
		a.log = log
	}
}

// NewAssembler builds an Assembler with the best-effort defaults.
func NewAssembler(options ...Option) *Assembler {
	a := &Assembler{
		eval:   visibility.Rules{},
		policy: UsePlaceholder,
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Build iterates the full field list in order — not just the visible subset
// — and emits one entry per field. Hidden fields contribute nil values
// rather than being dropped. File answers are uploaded and awaited before
// the array is returned, so the output always reflects settled uploads.
func (a *Assembler) Build(ctx context.Context, form model.Form, answers model.Answers) ([]Entry, error) {
	entries := make([]Entry, 0, len(form.Fields))
	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("submission: assemble: %w", err)
		}

		if !a.eval.Visible(field, answers) {
			entries = append(entries, Entry{FieldID: field.ID, Value: nil})
			continue
		}

		raw, ok := answers.Value(field.ID)
		if !ok || raw == nil {
			entries = append(entries, Entry{FieldID: field.ID, Value: nil})
			continue
		}

		if field.Type == model.FieldTypeFile {
			value, err := a.resolveFile(ctx, field, raw)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{FieldID: field.ID, Value: value})
			continue
		}

		entries = append(entries, Entry{FieldID: field.ID, Value: raw})
	}
	return entries, nil
}

func (a *Assembler) resolveFile(ctx context.Context, field model.Field, raw any) (any, error) {
	var file File
	switch v := raw.(type) {
	case File:
		file = v
	case *File:
		if v == nil {
			return nil, nil
		}
		file = *v
	default:
		// Already a resolved reference (URL or filename string).
		return raw, nil
	}

	if a.uploader == nil {
		return a.fallback(field, file, fmt.Errorf("submission: no uploader configured"))
	}

	ref, err := a.uploader.Upload(ctx, file)
	if err != nil {
		return a.fallback(field, file, err)
	}
	a.log.Debug().Str("field", field.ID).Str("file", file.Name).Msg("upload resolved")
	return ref.Value(), nil
}

func (a *Assembler) fallback(field model.Field, file File, cause error) (any, error) {
	if a.policy == Abort {
		return nil, fmt.Errorf("submission: upload field %q: %w", field.ID, cause)
	}
	a.log.Warn().Err(cause).Str("field", field.ID).Str("file", file.Name).
		Msg("upload failed, keeping file name as placeholder")
	return file.Name, nil
}
