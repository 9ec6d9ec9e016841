package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formflow/pkg/model"
)

type stubUploader struct {
	ref   UploadRef
	err   error
	calls int
}

func (s *stubUploader) Upload(ctx context.Context, file File) (UploadRef, error) {
	s.calls++
	return s.ref, s.err
}

func uploadForm() model.Form {
	return model.Form{
		ID: "application",
		Fields: []model.Field{
			{ID: "name", Type: model.FieldTypeShortText, Order: 0},
			{ID: "resume", Type: model.FieldTypeFile, Order: 1},
			{ID: "referral", Type: model.FieldTypeShortText, Order: 2, Logic: &model.LogicRule{
				ShowWhenFieldID: "name",
				Operator:        model.OperatorEquals,
				Value:           "insider",
			}},
		},
	}
}

func TestBuild_OneEntryPerField(t *testing.T) {
	form := uploadForm()
	answers := model.Answers{"name": "Ada"}

	entries, err := NewAssembler().Build(context.Background(), form, answers)
	require.NoError(t, err)
	require.Len(t, entries, len(form.Fields))

	assert.Equal(t, Entry{FieldID: "name", Value: "Ada"}, entries[0])
	// Unanswered field keeps its slot with a nil value.
	assert.Equal(t, Entry{FieldID: "resume", Value: nil}, entries[1])
	// Hidden field likewise.
	assert.Equal(t, Entry{FieldID: "referral", Value: nil}, entries[2])
}

func TestBuild_HiddenFieldAnswerIsSuppressed(t *testing.T) {
	form := uploadForm()
	// A stale answer for a now-hidden field must not leak into the payload.
	answers := model.Answers{"name": "Ada", "referral": "someone"}

	entries, err := NewAssembler().Build(context.Background(), form, answers)
	require.NoError(t, err)
	assert.Nil(t, entries[2].Value)

	answers["name"] = "insider"
	entries, err = NewAssembler().Build(context.Background(), form, answers)
	require.NoError(t, err)
	assert.Equal(t, "someone", entries[2].Value)
}

func TestBuild_UploadsFileAnswers(t *testing.T) {
	uploader := &stubUploader{ref: UploadRef{URL: "https://cdn.example.com/resume.pdf"}}
	assembler := NewAssembler(WithUploader(uploader))

	answers := model.Answers{
		"name":   "Ada",
		"resume": File{Name: "resume.pdf", Path: "/tmp/resume.pdf"},
	}
	entries, err := assembler.Build(context.Background(), uploadForm(), answers)
	require.NoError(t, err)

	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, "https://cdn.example.com/resume.pdf", entries[1].Value)
}

func TestBuild_UploadFailurePlaceholder(t *testing.T) {
	uploader := &stubUploader{err: errors.New("boom")}
	assembler := NewAssembler(WithUploader(uploader))

	answers := model.Answers{"resume": File{Name: "resume.pdf", Path: "/tmp/resume.pdf"}}
	entries, err := assembler.Build(context.Background(), uploadForm(), answers)
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", entries[1].Value)
}

func TestBuild_UploadFailureAborts(t *testing.T) {
	uploader := &stubUploader{err: errors.New("boom")}
	assembler := NewAssembler(WithUploader(uploader), WithFailurePolicy(Abort))

	answers := model.Answers{"resume": File{Name: "resume.pdf", Path: "/tmp/resume.pdf"}}
	_, err := assembler.Build(context.Background(), uploadForm(), answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume")
}

func TestBuild_NoUploaderFallsBackToPlaceholder(t *testing.T) {
	answers := model.Answers{"resume": File{Name: "resume.pdf", Path: "/tmp/resume.pdf"}}
	entries, err := NewAssembler().Build(context.Background(), uploadForm(), answers)
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", entries[1].Value)
}

func TestBuild_ResolvedReferencePassesThrough(t *testing.T) {
	uploader := &stubUploader{}
	assembler := NewAssembler(WithUploader(uploader))

	answers := model.Answers{"resume": "https://cdn.example.com/already-there.pdf"}
	entries, err := assembler.Build(context.Background(), uploadForm(), answers)
	require.NoError(t, err)
	assert.Equal(t, 0, uploader.calls)
	assert.Equal(t, "https://cdn.example.com/already-there.pdf", entries[1].Value)
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAssembler().Build(ctx, uploadForm(), model.Answers{})
	require.ErrorIs(t, err, context.Canceled)
}
