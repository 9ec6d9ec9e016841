// Package receipt renders an assembled submission into human-readable text,
// used by CLIs to confirm what is about to be (or was) sent.
package receipt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/submission"
)

const defaultTemplate = `{{ form.title }}
{% for row in rows %}{{ row.label }}: {{ row.display }}
{% endfor %}`

// Renderer renders receipts through a pongo2 template.
type Renderer struct {
	tpl *pongo2.Template
}

// Option customises a Renderer.
type Option func(*config)

type config struct {
	source string
}

// WithTemplate overrides the default template source.
func WithTemplate(source string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(source) != "" {
			cfg.source = source
		}
	}
}

// New compiles the receipt template.
func New(options ...Option) (*Renderer, error) {
	cfg := config{source: defaultTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	tpl, err := pongo2.FromString(cfg.source)
	if err != nil {
		return nil, fmt.Errorf("receipt: compile template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render produces the receipt text for an assembled submission. Entries are
// matched back to field labels; nil values display as a dash.
func (r *Renderer) Render(form model.Form, entries []submission.Entry) (string, error) {
	rows := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		label := entry.FieldID
		if field, ok := form.FieldByID(entry.FieldID); ok && field.Label != "" {
			label = field.Label
		}
		rows = append(rows, map[string]any{
			"label":   label,
			"display": displayValue(entry.Value),
			"fieldId": entry.FieldID,
		})
	}

	out, err := r.tpl.Execute(pongo2.Context{
		"form": map[string]any{
			"id":          form.ID,
			"title":       form.Title,
			"description": form.Description,
		},
		"rows": rows,
	})
	if err != nil {
		return "", fmt.Errorf("receipt: render: %w", err)
	}
	return out, nil
}

func displayValue(value any) string {
	if value == nil {
		return "-"
	}
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case map[string]string:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+"="+v[key])
		}
		return strings.Join(parts, ", ")
	default:
		return model.Stringify(value)
	}
}
