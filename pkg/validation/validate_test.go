package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
)

func intPtr(v int) *int { return &v }

func TestValidateValue_RequiredEmptyString(t *testing.T) {
	field := model.Field{ID: "f2", Type: model.FieldTypeShortText, Label: "Full name", Required: true}
	result := ValidateValue("", field)
	if result.Valid {
		t.Fatalf("expected failure for empty required value")
	}
	if result.Message != "Full name is required" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestValidateValue_RequiredCustomMessage(t *testing.T) {
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeShortText,
		Label:      "Name",
		Validation: &model.Validation{Required: true, CustomMessage: "We need your name"},
	}
	result := ValidateValue(nil, field)
	if result.Valid || result.Message != "We need your name" {
		t.Fatalf("expected custom message, got %+v", result)
	}
}

func TestValidateValue_EmptyOptionalPasses(t *testing.T) {
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeShortText,
		Validation: &model.Validation{MinLength: intPtr(5)},
	}
	for _, value := range []any{nil, "", []string{}, map[string]string{}} {
		if result := ValidateValue(value, field); !result.Valid {
			t.Fatalf("expected empty optional value %v to pass, got %+v", value, result)
		}
	}
}

func TestValidateValue_ZeroAndFalseAreNotEmpty(t *testing.T) {
	number := model.Field{ID: "f1", Type: model.FieldTypeNumber, Required: true}
	if result := ValidateValue(0, number); !result.Valid {
		t.Fatalf("expected 0 to satisfy required, got %+v", result)
	}
	rating := model.Field{ID: "f2", Type: model.FieldTypeRating, Required: true}
	if result := ValidateValue(false, rating); !result.Valid {
		t.Fatalf("expected false to satisfy required, got %+v", result)
	}
}

func TestValidateValue_TextLengthBounds(t *testing.T) {
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeShortText,
		Label:      "Nickname",
		Validation: &model.Validation{MinLength: intPtr(3), MaxLength: intPtr(5)},
	}
	if result := ValidateValue("ab", field); result.Valid || !strings.Contains(result.Message, "at least 3") {
		t.Fatalf("expected min length failure, got %+v", result)
	}
	if result := ValidateValue("abcdef", field); result.Valid || !strings.Contains(result.Message, "at most 5") {
		t.Fatalf("expected max length failure, got %+v", result)
	}
	if result := ValidateValue("abcd", field); !result.Valid {
		t.Fatalf("expected in-range value to pass, got %+v", result)
	}
}

func TestValidateValue_PatternWholeMatch(t *testing.T) {
	field := model.Field{
		ID:    "f1",
		Type:  model.FieldTypeShortText,
		Label: "Code",
		Validation: &model.Validation{
			Pattern:             "[A-Z]{3}",
			PatternErrorMessage: "Use three capital letters",
		},
	}
	if result := ValidateValue("ABC", field); !result.Valid {
		t.Fatalf("expected match, got %+v", result)
	}
	// A partial match must not satisfy the rule.
	if result := ValidateValue("xABCx", field); result.Valid || result.Message != "Use three capital letters" {
		t.Fatalf("expected pattern failure, got %+v", result)
	}
}

func TestValidateValue_InvalidPatternIsSkipped(t *testing.T) {
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeShortText,
		Validation: &model.Validation{Pattern: "("},
	}
	if result := ValidateValue("anything", field); !result.Valid {
		t.Fatalf("expected malformed pattern to be skipped, got %+v", result)
	}
}

func TestValidateValue_Email(t *testing.T) {
	field := model.Field{ID: "f1", Type: model.FieldTypeEmail, Label: "Email"}
	if result := ValidateValue("user@example.com", field); !result.Valid {
		t.Fatalf("expected valid email, got %+v", result)
	}
	for _, bad := range []string{"user", "user@", "user@host", "a b@example.com"} {
		if result := ValidateValue(bad, field); result.Valid {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestValidateValue_Phone(t *testing.T) {
	field := model.Field{ID: "f1", Type: model.FieldTypePhone}
	if result := ValidateValue("+1 (555) 123-4567", field); !result.Valid {
		t.Fatalf("expected valid phone, got %+v", result)
	}
	if result := ValidateValue("12345", field); result.Valid {
		t.Fatalf("expected short phone to fail")
	}
}

func TestValidateValue_NumberBounds(t *testing.T) {
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeNumber,
		Label:      "Guests",
		Validation: &model.Validation{Min: "1", Max: "10"},
	}
	result := ValidateValue("15", field)
	if result.Valid || !strings.Contains(result.Message, "at most 10") {
		t.Fatalf("expected max-value failure, got %+v", result)
	}
	if result := ValidateValue("0", field); result.Valid || !strings.Contains(result.Message, "at least 1") {
		t.Fatalf("expected min-value failure, got %+v", result)
	}
	if result := ValidateValue("7", field); !result.Valid {
		t.Fatalf("expected in-range value to pass, got %+v", result)
	}
	if result := ValidateValue("seven", field); result.Valid || !strings.Contains(result.Message, "must be a number") {
		t.Fatalf("expected parse failure, got %+v", result)
	}
}

func TestValidateValue_DateBounds(t *testing.T) {
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeDate,
		Label:      "Arrival",
		Validation: &model.Validation{Min: "2024-06-01", Max: "2024-06-30"},
	}
	if result := ValidateValue("2024-06-15", field); !result.Valid {
		t.Fatalf("expected in-range date to pass, got %+v", result)
	}
	if result := ValidateValue("2024-05-01", field); result.Valid || !strings.Contains(result.Message, "on or after") {
		t.Fatalf("expected lower bound failure, got %+v", result)
	}
	if result := ValidateValue("2024-07-01", field); result.Valid || !strings.Contains(result.Message, "on or before") {
		t.Fatalf("expected upper bound failure, got %+v", result)
	}
	if result := ValidateValue("not-a-date", field); result.Valid {
		t.Fatalf("expected parse failure, got %+v", result)
	}
}

func TestValidateValue_GenericPatternFallback(t *testing.T) {
	// Field types without dedicated rules still honour a configured pattern.
	field := model.Field{
		ID:         "f1",
		Type:       model.FieldTypeDropdown,
		Options:    []string{"alpha", "beta"},
		Validation: &model.Validation{Pattern: "alpha|beta"},
	}
	if result := ValidateValue("alpha", field); !result.Valid {
		t.Fatalf("expected option to pass, got %+v", result)
	}
	if result := ValidateValue("gamma", field); result.Valid {
		t.Fatalf("expected off-pattern value to fail")
	}
}

func TestValidateValue_ChoiceTypesOnlyRequiredCheck(t *testing.T) {
	matrix := model.Field{ID: "f1", Type: model.FieldTypeMatrix, Label: "Ratings", Required: true}
	if result := ValidateValue(map[string]string{}, matrix); result.Valid {
		t.Fatalf("expected empty matrix selection to fail required check")
	}
	if result := ValidateValue(map[string]string{"Quality": "Good"}, matrix); !result.Valid {
		t.Fatalf("expected populated matrix to pass, got %+v", result)
	}
}

func TestValidateFields_AggregatesFailuresOnly(t *testing.T) {
	fields := []model.Field{
		{ID: "name", Type: model.FieldTypeShortText, Label: "Name", Required: true},
		{ID: "email", Type: model.FieldTypeEmail, Label: "Email"},
		{ID: "age", Type: model.FieldTypeNumber, Label: "Age", Validation: &model.Validation{Max: "120"}},
	}
	answers := model.Answers{
		"email": "not-an-email",
		"age":   "42",
	}

	ok, errs := ValidateFields(fields, answers)
	if ok {
		t.Fatalf("expected aggregate failure")
	}
	want := ErrorMap{
		"name":  "Name is required",
		"email": "Please enter a valid email address",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("unexpected errors (-want +got):\n%s", diff)
	}
}

func TestValidateFields_AllValid(t *testing.T) {
	fields := []model.Field{
		{ID: "name", Type: model.FieldTypeShortText, Required: true},
	}
	ok, errs := ValidateFields(fields, model.Answers{"name": "Ada"})
	if !ok || len(errs) != 0 {
		t.Fatalf("expected clean result, got %v %v", ok, errs)
	}
}

func TestFirstInvalid(t *testing.T) {
	fields := []model.Field{
		{ID: "a", Type: model.FieldTypeShortText},
		{ID: "b", Type: model.FieldTypeShortText},
	}
	errs := ErrorMap{"b": "broken"}
	if got := FirstInvalid(fields, errs); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := FirstInvalid(fields, ErrorMap{}); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
