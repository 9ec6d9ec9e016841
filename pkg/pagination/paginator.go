// Package pagination partitions a form's field list into pages and guards the
// transitions between them. Page boundaries are computed from the full field
// list, never the visible subset, so conditional logic can hide fields
// without changing how many pages exist.
package pagination

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Paginator tracks the current page of a fill session and validates
// navigation transitions.
type Paginator struct {
	form model.Form
	sess *session.Session
	eval visibility.Evaluator
	page int
}

// Option customises a Paginator.
type Option func(*Paginator)

// WithEvaluator swaps the visibility evaluator, mainly for tests.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(p *Paginator) {
		if eval != nil {
			p.eval = eval
		}
	}
}

// New builds a Paginator for one form and one session.
func New(form model.Form, sess *session.Session, options ...Option) *Paginator {
	p := &Paginator{
		form: form,
		sess: sess,
		eval: visibility.Rules{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Paginated reports whether the form renders in pages.
func (p *Paginator) Paginated() bool {
	return p.form.Paginated()
}

// Page returns the current 0-based page index.
func (p *Paginator) Page() int {
	return p.page
}

// TotalPages is computed from the full field count so hidden fields never
// collapse a page boundary. It is always at least 1.
func (p *Paginator) TotalPages() int {
	perPage := p.form.Settings.QuestionsPerPage
	if perPage <= 0 {
		return 1
	}
	pages := (len(p.form.Fields) + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// LastPage reports whether the session is on the final page.
func (p *Paginator) LastPage() bool {
	return p.page >= p.TotalPages()-1
}

// PageFields returns the currently visible fields of the current page: the
// raw page window of the full list, filtered by visibility. The result may
// hold fewer fields than QuestionsPerPage, or none at all.
func (p *Paginator) PageFields() []model.Field {
	return visibility.Filter(p.eval, p.PageWindow(), p.sess.Answers())
}

// PageWindow returns the raw slice of the full field list backing the
// current page, before visibility filtering. Renderers that re-evaluate
// visibility mid-page start from this window.
func (p *Paginator) PageWindow() []model.Field {
	if !p.Paginated() {
		return p.form.Fields
	}
	perPage := p.form.Settings.QuestionsPerPage
	start := p.page * perPage
	if start > len(p.form.Fields) {
		start = len(p.form.Fields)
	}
	end := start + perPage
	if end > len(p.form.Fields) {
		end = len(p.form.Fields)
	}
	return p.form.Fields[start:end]
}

// VisibleFields returns every currently visible field across all pages.
func (p *Paginator) VisibleFields() []model.Field {
	return visibility.Filter(p.eval, p.form.Fields, p.sess.Answers())
}

// Next validates the current page and advances on success. It returns true
// when the page changed, which doubles as the caller's scroll-to-top signal.
// On failure the session error map holds one message per failing field and
// the page does not move.
func (p *Paginator) Next() bool {
	if !p.Paginated() || p.LastPage() {
		return false
	}
	ok, errs := validation.ValidateFields(p.PageFields(), p.sess.Answers())
	if !ok {
		p.sess.SetErrors(errs)
		return false
	}
	p.sess.ClearErrors()
	p.page++
	return true
}

// Previous moves back one page without re-validating, clearing any displayed
// errors. It reports whether the page changed.
func (p *Paginator) Previous() bool {
	if p.page == 0 {
		return false
	}
	p.sess.ClearErrors()
	p.page--
	return true
}

// Decision is the outcome of a submit attempt.
type Decision struct {
	// Proceed is true when the whole form validated and the caller may
	// assemble and send the submission.
	Proceed bool
	// Advanced is true when an implicit trigger was reinterpreted as page
	// navigation instead of a submission.
	Advanced bool
	// MovedToPage is the page now holding focus because it contains the
	// first invalid field, or -1 when no jump happened.
	MovedToPage int
	// Errors mirrors the session error map at the time of the decision.
	Errors validation.ErrorMap
}

// HandleSubmit resolves a submission trigger. An implicit trigger (for
// example the Enter key) on a non-final page advances instead of submitting;
// on the final page it is ignored. An explicit submit validates every
// visible field and, when something outside the current page is invalid,
// navigates to the first page containing an invalid field rather than
// submitting.
func (p *Paginator) HandleSubmit(explicit bool) Decision {
	if p.Paginated() && !explicit {
		if p.LastPage() {
			return Decision{MovedToPage: -1, Errors: p.sess.Errors()}
		}
		advanced := p.Next()
		return Decision{Advanced: advanced, MovedToPage: -1, Errors: p.sess.Errors()}
	}

	visible := p.VisibleFields()
	ok, errs := validation.ValidateFields(visible, p.sess.Answers())
	if ok {
		p.sess.ClearErrors()
		return Decision{Proceed: true, MovedToPage: -1}
	}
	p.sess.SetErrors(errs)

	moved := -1
	if p.Paginated() {
		if target, ok := p.pageOfFirstInvalid(visible, errs); ok {
			p.page = target
			moved = target
		}
	}
	return Decision{MovedToPage: moved, Errors: errs}
}

// pageOfFirstInvalid locates the page of the first invalid field by visible
// field index divided by the page size, clamped into range.
func (p *Paginator) pageOfFirstInvalid(visible []model.Field, errs validation.ErrorMap) (int, bool) {
	perPage := p.form.Settings.QuestionsPerPage
	if perPage <= 0 {
		return 0, false
	}
	for i, field := range visible {
		if _, bad := errs[field.ID]; !bad {
			continue
		}
		target := i / perPage
		if last := p.TotalPages() - 1; target > last {
			target = last
		}
		return target, true
	}
	return 0, false
}
