// Package validation implements the per-field value checks and their
// aggregation across a field set. All failures are reported as values, never
// as errors: a rule that cannot run (for example a malformed pattern) is
// skipped rather than surfaced to the person filling the form.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Result is the outcome of validating one value against one field.
type Result struct {
	Valid   bool
	Message string
}

// ErrorMap collects one human-readable message per failing field. Passing
// fields never appear.
type ErrorMap map[string]string

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-().]{10,}$`)
)

// ValidateValue checks a single value against a field definition. Rules run
// in a fixed order and short-circuit on the first failure: required check,
// empty pass-through, then type-specific constraints for non-empty values.
func ValidateValue(value any, field model.Field) Result {
	if model.IsEmpty(value) {
		if field.IsRequired() {
			return fail(requiredMessage(field))
		}
		return Result{Valid: true}
	}

	switch field.Type {
	case model.FieldTypeShortText, model.FieldTypeLongText:
		return validateText(model.Stringify(value), field)
	case model.FieldTypeEmail:
		if !emailPattern.MatchString(model.Stringify(value)) {
			return fail("Please enter a valid email address")
		}
	case model.FieldTypePhone:
		if !phonePattern.MatchString(model.Stringify(value)) {
			return fail("Please enter a valid phone number")
		}
	case model.FieldTypeNumber:
		return validateNumber(value, field)
	case model.FieldTypeDate:
		return validateDate(value, field)
	default:
		// Choice, matrix, file, rating and signature answers have no shape
		// checks beyond required; a configured pattern still applies.
		return validatePattern(model.Stringify(value), field)
	}
	return Result{Valid: true}
}

// ValidateFields runs ValidateValue over every field in the set and
// aggregates the failures. The boolean is true only when every field passed.
func ValidateFields(fields []model.Field, answers model.Answers) (bool, ErrorMap) {
	errs := make(ErrorMap)
	for _, field := range fields {
		value, _ := answers.Value(field.ID)
		if result := ValidateValue(value, field); !result.Valid {
			errs[field.ID] = result.Message
		}
	}
	return len(errs) == 0, errs
}

func fail(message string) Result {
	return Result{Message: message}
}

func requiredMessage(field model.Field) string {
	if field.Validation != nil && field.Validation.CustomMessage != "" {
		return field.Validation.CustomMessage
	}
	label := field.Label
	if label == "" {
		label = "This field"
	}
	return label + " is required"
}

func fieldLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return "This field"
}

func validateText(value string, field model.Field) Result {
	rules := field.Validation
	if rules == nil {
		return Result{Valid: true}
	}
	length := utf8.RuneCountInString(value)
	if rules.MinLength != nil && length < *rules.MinLength {
		return fail(fmt.Sprintf("%s must be at least %d characters", fieldLabel(field), *rules.MinLength))
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return fail(fmt.Sprintf("%s must be at most %d characters", fieldLabel(field), *rules.MaxLength))
	}
	return validatePattern(value, field)
}

func validatePattern(value string, field model.Field) Result {
	rules := field.Validation
	if rules == nil || rules.Pattern == "" {
		return Result{Valid: true}
	}
	// The pattern must match the whole value. An expression that does not
	// compile disables the rule instead of blocking the respondent.
	re, err := regexp.Compile("^(?:" + rules.Pattern + ")$")
	if err != nil {
		return Result{Valid: true}
	}
	if !re.MatchString(value) {
		if rules.PatternErrorMessage != "" {
			return fail(rules.PatternErrorMessage)
		}
		return fail(fieldLabel(field) + " has an invalid format")
	}
	return Result{Valid: true}
}

func validateNumber(value any, field model.Field) Result {
	parsed, ok := model.Scalar(model.Stringify(value)).Number()
	if !ok {
		return fail(fieldLabel(field) + " must be a number")
	}
	rules := field.Validation
	if rules == nil {
		return Result{Valid: true}
	}
	if min, ok := rules.Min.Number(); ok && parsed < min {
		return fail(fmt.Sprintf("%s must be at least %s", fieldLabel(field), rules.Min))
	}
	if max, ok := rules.Max.Number(); ok && parsed > max {
		return fail(fmt.Sprintf("%s must be at most %s", fieldLabel(field), rules.Max))
	}
	return Result{Valid: true}
}

func validateDate(value any, field model.Field) Result {
	parsed, ok := model.Scalar(model.Stringify(value)).Date()
	if !ok {
		return fail(fieldLabel(field) + " must be a valid date")
	}
	rules := field.Validation
	if rules == nil {
		return Result{Valid: true}
	}
	if min, ok := rules.Min.Date(); ok && parsed.Before(min) {
		return fail(fmt.Sprintf("%s must be on or after %s", fieldLabel(field), rules.Min))
	}
	if max, ok := rules.Max.Date(); ok && parsed.After(max) {
		return fail(fmt.Sprintf("%s must be on or before %s", fieldLabel(field), rules.Max))
	}
	return Result{Valid: true}
}

// FirstInvalid returns the id of the first field in definition order that
// carries an error, or "" when the map is clean.
func FirstInvalid(fields []model.Field, errs ErrorMap) string {
	for _, field := range fields {
		if _, bad := errs[field.ID]; bad {
			return field.ID
		}
	}
	return ""
}
