package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"email-agent/mailer"
	"email-agent/utils"
)

// HistoryAppender is the single store write the dispatcher performs.
type HistoryAppender interface {
	Append(ctx context.Context, receiverEmail, emailType, tone, subject, body string) (int64, error)
}

// SendRequest is one confirmed draft ready for delivery. EmailType and
// Tone are optional and persisted verbatim when present.
type SendRequest struct {
	ReceiverEmail string
	Subject       string
	Body          string
	EmailType     string
	Tone          string
	Attachment    *mailer.Attachment
}

// DispatchService sends confirmed drafts through the active transport
// and records each delivered message in the history store.
type DispatchService struct {
	transport mailer.Transport
	history   HistoryAppender
	log       *slog.Logger
}

// NewDispatchService creates a dispatch service bound to one transport.
func NewDispatchService(transport mailer.Transport, history HistoryAppender, log *slog.Logger) *DispatchService {
	return &DispatchService{transport: transport, history: history, log: log}
}

// Send validates the request, checks the transport configuration,
// performs exactly one delivery attempt and, only on success, appends
// exactly one history record. A failed append after a successful send
// surfaces as ErrPersistence since the email has already left the
// system.
func (s *DispatchService) Send(ctx context.Context, req SendRequest) error {
	req.ReceiverEmail = strings.TrimSpace(req.ReceiverEmail)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Body = strings.TrimSpace(req.Body)

	if req.ReceiverEmail == "" || req.Subject == "" || req.Body == "" {
		return fmt.Errorf("%w: receiver_email, subject and body are required", ErrValidation)
	}
	if !utils.IsValidEmail(req.ReceiverEmail) {
		return fmt.Errorf("%w: %q is not a valid email address", ErrValidation, req.ReceiverEmail)
	}
	if err := s.transport.Configured(); err != nil {
		return err
	}

	msg := &mailer.Message{
		To:         req.ReceiverEmail,
		Subject:    req.Subject,
		Body:       req.Body,
		Attachment: req.Attachment,
	}
	if err := s.transport.Send(ctx, msg); err != nil {
		return err
	}

	id, err := s.history.Append(ctx, req.ReceiverEmail, req.EmailType, req.Tone, req.Subject, req.Body)
	if err != nil {
		s.log.Error("history append failed after successful send", "to", req.ReceiverEmail, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Info("email sent", "to", req.ReceiverEmail, "history_id", id)
	return nil
}
