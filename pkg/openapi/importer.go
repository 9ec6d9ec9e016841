// Package openapi seeds form definitions from OpenAPI operations: the
// request body schema of an operation becomes an ordered field list with
// validation constraints carried over. Authors then refine the generated
// definition instead of starting from scratch.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Importer converts OpenAPI request bodies into form definitions.
type Importer struct {
	questionsPerPage int
}

// ImporterOption customises an Importer.
type ImporterOption func(*Importer)

// WithQuestionsPerPage sets pagination on generated forms.
func WithQuestionsPerPage(perPage int) ImporterOption {
	return func(i *Importer) {
		if perPage > 0 {
			i.questionsPerPage = perPage
		}
	}
}

// NewImporter builds an Importer.
func NewImporter(options ...ImporterOption) *Importer {
	imp := &Importer{}
	for _, opt := range options {
		if opt != nil {
			opt(imp)
		}
	}
	return imp
}

// Import loads an OpenAPI document and builds a form from the named
// operation's request body. An empty operationID picks the first operation
// that carries a request body.
func (i *Importer) Import(ctx context.Context, raw []byte, operationID string) (model.Form, error) {
	if len(raw) == 0 {
		return model.Form{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.Form{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation, opID, err := findOperation(doc, operationID)
	if err != nil {
		return model.Form{}, err
	}

	schema := requestSchema(operation)
	if schema == nil {
		return model.Form{}, fmt.Errorf("openapi: operation %q has no usable request body", opID)
	}

	form := model.Form{
		ID:          opID,
		Title:       firstNonEmpty(operation.Summary, opID),
		Description: operation.Description,
		Settings:    model.Settings{QuestionsPerPage: i.questionsPerPage},
	}
	if form.ID == "" {
		form.ID = uuid.NewString()
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		form.AppendField(fieldFromSchema(name, ref.Value, isRequired))
	}

	if err := form.Validate(); err != nil {
		return model.Form{}, fmt.Errorf("openapi: imported form: %w", err)
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, string, error) {
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, "", errors.New("openapi: document does not contain any paths")
	}

	type candidate struct {
		op   *openapi3.Operation
		opID string
	}
	var candidates []candidate

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range map[string]*openapi3.Operation{
			"POST":  item.Post,
			"PUT":   item.Put,
			"PATCH": item.Patch,
		} {
			if op == nil {
				continue
			}
			opID := op.OperationID
			if opID == "" {
				opID = strings.ToLower(method) + ":" + path
			}
			candidates = append(candidates, candidate{op: op, opID: opID})
		}
	}

	sort.Slice(candidates, func(a, b int) bool { return candidates[a].opID < candidates[b].opID })

	for _, cand := range candidates {
		if operationID != "" && cand.opID != operationID {
			continue
		}
		if requestSchema(cand.op) != nil {
			return cand.op, cand.opID, nil
		}
	}

	if operationID != "" {
		return nil, "", fmt.Errorf("openapi: operation %q not found", operationID)
	}
	return nil, "", errors.New("openapi: no operation with a request body")
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		ID:       name,
		Label:    labelFromName(name),
		Required: required,
	}

	switch firstType(schema.Type) {
	case "integer", "number":
		field.Type = model.FieldTypeNumber
		applyNumberBounds(&field, schema)
	case "boolean":
		field.Type = model.FieldTypeRadio
		field.Options = []string{"Yes", "No"}
	case "array":
		field.Type = model.FieldTypeCheckbox
		if schema.Items != nil && schema.Items.Value != nil {
			field.Options = optionsFromEnum(schema.Items.Value.Enum)
		}
	default:
		field.Type = textFieldType(schema)
		if len(schema.Enum) > 0 {
			field.Type = model.FieldTypeDropdown
			field.Options = optionsFromEnum(schema.Enum)
		}
		applyTextConstraints(&field, schema)
	}

	return field
}

func textFieldType(schema *openapi3.Schema) model.FieldType {
	switch strings.ToLower(schema.Format) {
	case "email":
		return model.FieldTypeEmail
	case "date":
		return model.FieldTypeDate
	case "time":
		return model.FieldTypeTime
	case "tel", "phone":
		return model.FieldTypePhone
	case "byte", "binary":
		return model.FieldTypeFile
	}
	if schema.MaxLength != nil && *schema.MaxLength > 255 {
		return model.FieldTypeLongText
	}
	return model.FieldTypeShortText
}

func applyTextConstraints(field *model.Field, schema *openapi3.Schema) {
	var rules model.Validation
	dirty := false

	if schema.MinLength != 0 {
		value := int(schema.MinLength)
		rules.MinLength = &value
		dirty = true
	}
	if schema.MaxLength != nil {
		value := int(*schema.MaxLength)
		rules.MaxLength = &value
		dirty = true
	}
	if schema.Pattern != "" {
		rules.Pattern = schema.Pattern
		dirty = true
	}
	if dirty {
		field.Validation = &rules
	}
}

func applyNumberBounds(field *model.Field, schema *openapi3.Schema) {
	var rules model.Validation
	dirty := false

	if schema.Min != nil {
		rules.Min = model.Scalar(model.Stringify(*schema.Min))
		dirty = true
	}
	if schema.Max != nil {
		rules.Max = model.Scalar(model.Stringify(*schema.Max))
		dirty = true
	}
	if dirty {
		field.Validation = &rules
	}
}

func optionsFromEnum(enum []any) []string {
	if len(enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		out = append(out, model.Stringify(value))
	}
	return out
}

func labelFromName(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
