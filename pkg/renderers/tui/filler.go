// Package tui walks a respondent through a form in the terminal. It drives
// the pagination controller page by page, prompting only the currently
// visible fields and replaying pages that fail validation.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/pagination"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/submission"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

const skipOption = "(leave blank)"

const defaultRatingScale = 5

// Filler owns one interactive fill flow.
type Filler struct {
	driver PromptDriver
	out    io.Writer
}

// Option customises a Filler.
type Option func(*Filler)

// WithDriver swaps the prompt driver, mainly for tests.
func WithDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutput redirects informational output.
func WithOutput(out io.Writer) Option {
	return func(f *Filler) {
		if out != nil {
			f.out = out
		}
	}
}

// NewFiller builds a Filler with the survey-backed driver.
func NewFiller(options ...Option) *Filler {
	f := &Filler{
		driver: NewSurveyDriver(),
		out:    os.Stdout,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fill prompts through every page until the whole form validates. It returns
// once submission may proceed, or ErrAborted when the respondent bails out.
func (f *Filler) Fill(ctx context.Context, form model.Form, sess *session.Session) error {
	pager := pagination.New(form, sess)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(f.out, renderHeader(cleanText(form.Title), pager.Page(), pager.TotalPages(), pager.Paginated()))

		// Visibility is re-checked before each prompt: answering a field
		// on this page can reveal or hide a later field on the same page.
		for _, field := range pager.PageWindow() {
			if !visibility.Visible(field, sess.Answers()) {
				continue
			}
			if err := f.promptField(ctx, field, sess); err != nil {
				return err
			}
		}

		if pager.Paginated() && !pager.LastPage() {
			if pager.Next() {
				continue
			}
			f.printErrors(form, sess)
			continue
		}

		decision := pager.HandleSubmit(true)
		if decision.Proceed {
			return nil
		}
		f.printErrors(form, sess)
		// HandleSubmit already repositioned the pager at the first page
		// containing an invalid field; loop back and replay it.
	}
}

func (f *Filler) printErrors(form model.Form, sess *session.Session) {
	for _, field := range form.Fields {
		message := sess.ErrorFor(field.ID)
		if message == "" {
			continue
		}
		fmt.Fprintln(f.out, renderError(message))
	}
}

func (f *Filler) promptField(ctx context.Context, field model.Field, sess *session.Session) error {
	message := promptMessage(field)
	help := cleanText(field.Placeholder)

	switch field.Type {
	case model.FieldTypeLongText:
		current, _ := sess.Value(field.ID)
		out, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: model.Stringify(current),
			Help:    help,
		})
		if err != nil {
			return err
		}
		setOrClear(sess, field.ID, out)

	case model.FieldTypeDropdown, model.FieldTypeRadio:
		return f.promptChoice(ctx, field, sess, message, help, field.Options)

	case model.FieldTypeImageChoice:
		labels := make([]string, 0, len(field.ImageOptions))
		for _, option := range field.ImageOptions {
			label := option.Label
			if label == "" {
				label = option.ID
			}
			labels = append(labels, cleanText(label))
		}
		idx, skipped, err := f.selectIndex(ctx, field, message, help, labels)
		if err != nil {
			return err
		}
		if skipped || idx < 0 {
			sess.Delete(field.ID)
			return nil
		}
		sess.Set(field.ID, field.ImageOptions[idx].ID)

	case model.FieldTypeCheckbox:
		indices, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message: message,
			Options: field.Options,
			Help:    help,
		})
		if err != nil {
			return err
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				selected = append(selected, field.Options[idx])
			}
		}
		if len(selected) == 0 {
			sess.Delete(field.ID)
			return nil
		}
		sess.Set(field.ID, selected)

	case model.FieldTypeRating:
		scale := defaultRatingScale
		options := make([]string, 0, scale)
		for i := 1; i <= scale; i++ {
			options = append(options, strconv.Itoa(i))
		}
		idx, skipped, err := f.selectIndex(ctx, field, message, help, options)
		if err != nil {
			return err
		}
		if skipped || idx < 0 {
			sess.Delete(field.ID)
			return nil
		}
		sess.Set(field.ID, idx+1)

	case model.FieldTypeMatrix:
		answers := make(map[string]string, len(field.MatrixRows))
		for _, row := range field.MatrixRows {
			idx, err := f.driver.Select(ctx, SelectConfig{
				Message: message + " - " + cleanText(row),
				Options: field.MatrixColumns,
				Help:    help,
			})
			if err != nil {
				return err
			}
			if idx >= 0 && idx < len(field.MatrixColumns) {
				answers[row] = field.MatrixColumns[idx]
			}
		}
		if len(answers) == 0 {
			sess.Delete(field.ID)
			return nil
		}
		sess.Set(field.ID, answers)

	case model.FieldTypeFile:
		out, err := f.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    "path to the file to attach",
		})
		if err != nil {
			return err
		}
		if out == "" {
			sess.Delete(field.ID)
			return nil
		}
		sess.Set(field.ID, submission.File{Name: filepath.Base(out), Path: out})

	case model.FieldTypeSignature:
		out, err := f.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    "type your full name to sign",
		})
		if err != nil {
			return err
		}
		setOrClear(sess, field.ID, out)

	default:
		// short_text, email, phone, number, date, time and anything the
		// closed set grows later all read a single line.
		current, _ := sess.Value(field.ID)
		out, err := f.driver.Input(ctx, InputConfig{
			Message: message,
			Default: model.Stringify(current),
			Help:    help,
		})
		if err != nil {
			return err
		}
		setOrClear(sess, field.ID, out)
	}

	return nil
}

func (f *Filler) promptChoice(ctx context.Context, field model.Field, sess *session.Session, message, help string, options []string) error {
	idx, skipped, err := f.selectIndex(ctx, field, message, help, options)
	if err != nil {
		return err
	}
	if skipped || idx < 0 || idx >= len(options) {
		sess.Delete(field.ID)
		return nil
	}
	sess.Set(field.ID, options[idx])
	return nil
}

// selectIndex runs a single-select prompt, appending a skip entry for
// optional fields. The second return value reports that skip was chosen.
func (f *Filler) selectIndex(ctx context.Context, field model.Field, message, help string, options []string) (int, bool, error) {
	display := options
	if !field.IsRequired() {
		display = append(append([]string(nil), options...), skipOption)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message: message,
		Options: display,
		Help:    help,
	})
	if err != nil {
		return 0, false, err
	}
	if idx >= len(options) {
		return -1, true, nil
	}
	return idx, false, nil
}

func promptMessage(field model.Field) string {
	label := cleanText(field.Label)
	if label == "" {
		label = field.ID
	}
	if field.IsRequired() {
		return label + " *"
	}
	return label
}

func setOrClear(sess *session.Session, fieldID, value string) {
	if value == "" {
		sess.Delete(fieldID)
		return
	}
	sess.Set(fieldID, value)
}
