// Package formflow is the response-side companion to form builders: given a
// form definition and a partially filled answer set it decides which fields
// are visible, whether their values are valid, how fields group into pages,
// and how the final answer array is assembled for submission.
package formflow

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/pagination"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/submission"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Re-exported model types for callers that only need the surface API.
type (
	Form      = model.Form
	Field     = model.Field
	FieldType = model.FieldType
	LogicRule = model.LogicRule
	Answers   = model.Answers
	ErrorMap  = validation.ErrorMap
	Entry     = submission.Entry
)

// NewSession starts a fill session, optionally seeded with prefilled answers.
func NewSession(prefill Answers) *session.Session {
	return session.New(prefill)
}

// NewPaginator wires a form and session into a pagination controller.
func NewPaginator(form Form, sess *session.Session) *pagination.Paginator {
	return pagination.New(form, sess)
}

// ValidateValue checks one value against one field definition.
func ValidateValue(value any, field Field) validation.Result {
	return validation.ValidateValue(value, field)
}

// IsVisible evaluates a field's conditional logic against the answer set.
func IsVisible(field Field, answers Answers) bool {
	return visibility.Visible(field, answers)
}

// Assemble builds the final answer array with the default best-effort
// assembler. Pass options to wire an uploader or change the failure policy.
func Assemble(ctx context.Context, form Form, answers Answers, options ...submission.Option) ([]Entry, error) {
	return submission.NewAssembler(options...).Build(ctx, form, answers)
}
