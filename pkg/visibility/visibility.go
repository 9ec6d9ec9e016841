// Package visibility decides whether fields with conditional logic are
// currently shown. Each field depends on at most one other field, so rules
// are evaluated independently per field; re-evaluating the whole list on
// every answer change stays O(n) at realistic form sizes.
package visibility

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Evaluator determines whether a field should be visible given the current
// answer set.
type Evaluator interface {
	Visible(field model.Field, answers model.Answers) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(field model.Field, answers model.Answers) bool

// Visible delegates to the underlying function.
func (fn EvaluatorFunc) Visible(field model.Field, answers model.Answers) bool {
	return fn(field, answers)
}

// Rules is the default evaluator implementing the fixed three-operator
// comparison model. Both sides of a comparison are string-coerced.
type Rules struct{}

// Visible applies the field's logic rule. A field without logic is always
// shown; a rule whose source answer is absent hides the field regardless of
// operator; an unknown operator fails open.
func (Rules) Visible(field model.Field, answers model.Answers) bool {
	logic := field.Logic
	if logic == nil || logic.ShowWhenFieldID == "" {
		return true
	}

	raw, ok := answers.Value(logic.ShowWhenFieldID)
	if !ok || raw == nil {
		return false
	}

	got := model.Stringify(raw)
	want := logic.Value.String()

	switch logic.Operator {
	case model.OperatorEquals:
		return got == want
	case model.OperatorNotEquals:
		return got != want
	case model.OperatorContains:
		return strings.Contains(got, want)
	default:
		return true
	}
}

var defaultRules Rules

// Visible evaluates a single field with the default rules.
func Visible(field model.Field, answers model.Answers) bool {
	return defaultRules.Visible(field, answers)
}

// VisibleFields filters the ordered field list down to the currently visible
// subset, preserving relative order.
func VisibleFields(fields []model.Field, answers model.Answers) []model.Field {
	return Filter(defaultRules, fields, answers)
}

// Filter applies an arbitrary evaluator over the ordered field list.
func Filter(eval Evaluator, fields []model.Field, answers model.Answers) []model.Field {
	if eval == nil {
		eval = defaultRules
	}
	out := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		if eval.Visible(field, answers) {
			out = append(out, field)
		}
	}
	return out
}
