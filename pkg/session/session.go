// Package session owns the working state of one form-filling session: the
// answer map and the per-field error map. Exactly one session owns this state
// at a time; both maps are discarded after submission or abandonment.
package session

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Session holds the mutable answer and error state for a single respondent.
type Session struct {
	answers model.Answers
	errors  validation.ErrorMap
}

// New seeds a session, cloning any prefilled answers so the caller's map is
// not shared.
func New(prefill model.Answers) *Session {
	answers := prefill.Clone()
	if answers == nil {
		answers = make(model.Answers)
	}
	return &Session{
		answers: answers,
		errors:  make(validation.ErrorMap),
	}
}

// Set records an answer for a field.
func (s *Session) Set(fieldID string, value any) {
	s.answers[fieldID] = value
}

// Value reads an answer, distinguishing absent from stored nil.
func (s *Session) Value(fieldID string) (any, bool) {
	return s.answers.Value(fieldID)
}

// Delete removes an answer.
func (s *Session) Delete(fieldID string) {
	delete(s.answers, fieldID)
}

// Answers returns the live answer map. Callers treat it as read-only except
// through Set/Delete.
func (s *Session) Answers() model.Answers {
	return s.answers
}

// Errors returns the currently displayed validation errors.
func (s *Session) Errors() validation.ErrorMap {
	return s.errors
}

// ErrorFor returns the message attached to a field, or "".
func (s *Session) ErrorFor(fieldID string) string {
	return s.errors[fieldID]
}

// SetErrors replaces the displayed errors.
func (s *Session) SetErrors(errs validation.ErrorMap) {
	if errs == nil {
		errs = make(validation.ErrorMap)
	}
	s.errors = errs
}

// ClearErrors drops every displayed error.
func (s *Session) ClearErrors() {
	s.errors = make(validation.ErrorMap)
}

// Snapshot returns a detached copy of the current answers, used when handing
// state to the submission assembler.
func (s *Session) Snapshot() model.Answers {
	return s.answers.Clone()
}
