package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"email-agent/config"
	"email-agent/database"
	"email-agent/mailer"
	"email-agent/services"
)

// maxAttachmentSize bounds the uploaded file part.
const maxAttachmentSize = 10 << 20

// errAttachmentTooLarge rejects oversized uploads before any send; a
// truncated attachment must never reach the transport.
var errAttachmentTooLarge = errors.New("attachment exceeds the 10MB limit")

// DraftGenerator produces a draft from user-supplied fields.
type DraftGenerator interface {
	Generate(ctx context.Context, req services.DraftRequest) (*services.Draft, error)
}

// MailDispatcher delivers a confirmed draft.
type MailDispatcher interface {
	Send(ctx context.Context, req services.SendRequest) error
}

// HistoryLister reads the sent-email audit trail.
type HistoryLister interface {
	ListAll(ctx context.Context) ([]database.HistoryRecord, error)
}

// GenerateHandler drafts an email from form fields and returns the
// subject/body pair for review.
func GenerateHandler(drafts DraftGenerator, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := services.DraftRequest{
			ReceiverName: r.FormValue("receiver_name"),
			SenderName:   r.FormValue("sender_name"),
			Purpose:      r.FormValue("mail_body"),
			Tone:         r.FormValue("tone"),
			EmailType:    r.FormValue("email_type"),
		}

		draft, err := drafts.Generate(r.Context(), req)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, draft)
	}
}

// SendHandler delivers a confirmed (possibly edited) draft, with an
// optional single "attachment" file part.
func SendHandler(dispatch MailDispatcher, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := services.SendRequest{
			ReceiverEmail: r.FormValue("receiver_email"),
			Subject:       r.FormValue("subject"),
			Body:          r.FormValue("body"),
			EmailType:     r.FormValue("email_type"),
			Tone:          r.FormValue("tone"),
		}

		attachment, err := readAttachment(r)
		if err != nil {
			if errors.Is(err, errAttachmentTooLarge) {
				errorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			errorResponse(w, http.StatusBadRequest, "could not read attachment")
			return
		}
		req.Attachment = attachment

		if err := dispatch.Send(r.Context(), req); err != nil {
			writeServiceError(w, log, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Email sent successfully!"})
	}
}

// readAttachment pulls the optional attachment part. A plain
// form-encoded request simply has no attachment.
func readAttachment(r *http.Request) (*mailer.Attachment, error) {
	file, header, err := r.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	// Read one byte past the limit so an oversized upload is detected
	// and rejected rather than silently truncated and sent corrupted.
	content, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxAttachmentSize {
		return nil, errAttachmentTooLarge
	}
	if header.Filename == "" || len(content) == 0 {
		return nil, nil
	}
	return &mailer.Attachment{Filename: header.Filename, Content: content}, nil
}

// HistoryHandler lists every sent email, newest first.
func HistoryHandler(history HistoryLister, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := history.ListAll(r.Context())
		if err != nil {
			log.Error("listing history failed", "error", err)
			errorResponse(w, http.StatusInternalServerError, "could not load email history")
			return
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// HealthHandler reports liveness and whether the providers are
// configured, without revealing any secret values.
func HealthHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":           "ok",
			"model_configured": cfg.GeminiAPIKey != "",
			"mail_configured":  cfg.MailConfigured(),
		})
	}
}

// writeServiceError maps the service error taxonomy onto JSON error
// responses. Sentinel messages name missing settings but never carry
// credential values or stack traces.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, mailer.ErrDispatch):
		log.Error("dispatch failed", "error", err)
		errorResponse(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, mailer.ErrConfiguration),
		errors.Is(err, mailer.ErrAuthentication),
		errors.Is(err, services.ErrGeneration),
		errors.Is(err, services.ErrPersistence):
		log.Error("request failed", "error", err)
		errorResponse(w, http.StatusInternalServerError, err.Error())
	default:
		log.Error("unexpected error", "error", err)
		errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
