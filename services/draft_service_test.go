package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validDraftRequest() DraftRequest {
	return DraftRequest{
		ReceiverName: "Bob",
		SenderName:   "Alice",
		Purpose:      "ask for a meeting tomorrow",
		Tone:         "formal",
		EmailType:    "meeting",
	}
}

func TestDraftService_Generate_Success(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "```json\n{\"subject\":\"Meeting Request\",\"body\":\"Dear Bob, ...\"}\n```"}
	svc := NewDraftService(model, discardLogger())

	draft, err := svc.Generate(context.Background(), validDraftRequest())
	require.NoError(t, err)
	require.Equal(t, "Meeting Request", draft.Subject)
	require.Equal(t, "Dear Bob, ...", draft.Body)
	require.Len(t, model.prompts, 1, "exactly one model call")
}

func TestDraftService_Generate_MissingFields(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: `{"subject":"s","body":"b"}`}
	svc := NewDraftService(model, discardLogger())

	for _, req := range []DraftRequest{
		{},
		{ReceiverName: "Bob", SenderName: "Alice", Purpose: "hello"},
		{ReceiverName: "  ", SenderName: "Alice", Purpose: "hello", Tone: "formal"},
	} {
		_, err := svc.Generate(context.Background(), req)
		require.ErrorIs(t, err, ErrValidation)
	}
	require.Empty(t, model.prompts, "validation failures must not reach the model")
}

func TestDraftService_Generate_NoModelConfigured(t *testing.T) {
	t.Parallel()

	svc := NewDraftService(nil, discardLogger())
	_, err := svc.Generate(context.Background(), validDraftRequest())
	require.ErrorIs(t, err, ErrGeneration)
}

func TestDraftService_Generate_ModelError(t *testing.T) {
	t.Parallel()

	model := &fakeModel{err: errors.New("network down")}
	svc := NewDraftService(model, discardLogger())

	_, err := svc.Generate(context.Background(), validDraftRequest())
	require.ErrorIs(t, err, ErrGeneration)
}

func TestDraftService_Generate_BadReplies(t *testing.T) {
	t.Parallel()

	replies := []string{
		"I cannot write emails, sorry.",
		"```json\nnot json\n```",
		`{"subject":"only a subject"}`,
		`{"body":"only a body"}`,
		`{"subject":"","body":""}`,
		`["subject","body"]`,
	}
	for _, reply := range replies {
		svc := NewDraftService(&fakeModel{reply: reply}, discardLogger())
		_, err := svc.Generate(context.Background(), validDraftRequest())
		require.ErrorIs(t, err, ErrGeneration, "reply %q must fail generation", reply)
	}
}

func TestDraftService_Generate_PromptPinsTomorrow(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: `{"subject":"s","body":"b"}`}
	svc := NewDraftService(model, discardLogger())
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 15, 9, 0, 0, 0, time.Local)
	}

	_, err := svc.Generate(context.Background(), validDraftRequest())
	require.NoError(t, err)
	require.Len(t, model.prompts, 1)

	prompt := model.prompts[0]
	require.Contains(t, prompt, "16 March 2025")
	require.Contains(t, prompt, "Tone must be formal")
	require.Contains(t, prompt, "Sender: Alice")
	require.Contains(t, prompt, "Receiver: Bob")
	require.Contains(t, prompt, "Purpose: ask for a meeting tomorrow")
	require.Contains(t, prompt, `"subject"`)
	require.Contains(t, prompt, `"body"`)
}
