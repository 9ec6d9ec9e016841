package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleForm() Form {
	return Form{
		ID: "feedback",
		Fields: []Field{
			{ID: "f0", Type: FieldTypeShortText, Order: 0},
			{ID: "f1", Type: FieldTypeEmail, Order: 1},
			{ID: "f2", Type: FieldTypeNumber, Order: 2},
		},
	}
}

func fieldIDs(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.ID)
	}
	return out
}

func assertContiguousOrder(t *testing.T, fields []Field) {
	t.Helper()
	for i, field := range fields {
		if field.Order != i {
			t.Fatalf("field %q has order %d, expected %d", field.ID, field.Order, i)
		}
	}
}

func TestForm_InsertFieldRenumbers(t *testing.T) {
	form := sampleForm()
	form.InsertField(1, Field{ID: "fx", Type: FieldTypeDate})

	want := []string{"f0", "fx", "f1", "f2"}
	if diff := cmp.Diff(want, fieldIDs(form.Fields)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	assertContiguousOrder(t, form.Fields)
}

func TestForm_InsertFieldClampsIndex(t *testing.T) {
	form := sampleForm()
	form.InsertField(99, Field{ID: "fx", Type: FieldTypeDate})

	if form.Fields[len(form.Fields)-1].ID != "fx" {
		t.Fatalf("expected fx appended, got %v", fieldIDs(form.Fields))
	}
	assertContiguousOrder(t, form.Fields)
}

func TestForm_RemoveFieldRenumbers(t *testing.T) {
	form := sampleForm()
	if !form.RemoveField("f1") {
		t.Fatalf("expected removal to succeed")
	}
	if removed := form.RemoveField("f1"); removed {
		t.Fatalf("expected second removal to report absence")
	}

	want := []string{"f0", "f2"}
	if diff := cmp.Diff(want, fieldIDs(form.Fields)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	assertContiguousOrder(t, form.Fields)
}

func TestForm_MoveFieldRenumbers(t *testing.T) {
	form := sampleForm()
	if !form.MoveField("f2", 0) {
		t.Fatalf("expected move to succeed")
	}

	want := []string{"f2", "f0", "f1"}
	if diff := cmp.Diff(want, fieldIDs(form.Fields)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	assertContiguousOrder(t, form.Fields)
}

func TestForm_FieldByID(t *testing.T) {
	form := sampleForm()
	field, ok := form.FieldByID("f1")
	if !ok || field.Type != FieldTypeEmail {
		t.Fatalf("expected email field, got %+v (%v)", field, ok)
	}
	if _, ok := form.FieldByID("missing"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestField_IsRequired(t *testing.T) {
	if (Field{}).IsRequired() {
		t.Fatalf("expected optional by default")
	}
	if !(Field{Required: true}).IsRequired() {
		t.Fatalf("expected top-level flag to apply")
	}
	if !(Field{Validation: &Validation{Required: true}}).IsRequired() {
		t.Fatalf("expected validation flag to apply")
	}
}
