package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"email-agent/utils"
)

// TextGenerator is the single model call the draft service depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// DraftRequest carries the user-supplied fields for one generation.
type DraftRequest struct {
	ReceiverName string
	SenderName   string
	Purpose      string
	Tone         string
	EmailType    string // optional
}

// Draft is the generated subject/body pair awaiting confirmation.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// DraftService builds structured prompts and parses model replies into
// drafts. It performs no persistence; a draft only becomes durable
// once it is confirmed and sent.
type DraftService struct {
	model TextGenerator
	now   func() time.Time
	log   *slog.Logger
}

// NewDraftService creates a draft service. A nil model is allowed and
// reports generation as unavailable at call time.
func NewDraftService(model TextGenerator, log *slog.Logger) *DraftService {
	return &DraftService{model: model, now: time.Now, log: log}
}

// Generate asks the model for a draft. Exactly one call, no retries;
// any model or parse failure surfaces as ErrGeneration.
func (s *DraftService) Generate(ctx context.Context, req DraftRequest) (*Draft, error) {
	req.ReceiverName = strings.TrimSpace(req.ReceiverName)
	req.SenderName = strings.TrimSpace(req.SenderName)
	req.Purpose = strings.TrimSpace(req.Purpose)
	req.Tone = strings.TrimSpace(req.Tone)
	req.EmailType = strings.TrimSpace(req.EmailType)

	if req.ReceiverName == "" || req.SenderName == "" || req.Purpose == "" || req.Tone == "" {
		return nil, fmt.Errorf("%w: receiver_name, sender_name, mail_body and tone are required", ErrValidation)
	}
	if s.model == nil {
		return nil, fmt.Errorf("%w: model client is not configured (GEMINI_API_KEY)", ErrGeneration)
	}

	raw, err := s.model.GenerateText(ctx, s.buildPrompt(req))
	if err != nil {
		s.log.Error("model call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(utils.ExtractJSON(raw)), &draft); err != nil {
		return nil, fmt.Errorf("%w: model reply is not valid JSON", ErrGeneration)
	}
	if draft.Subject == "" || draft.Body == "" {
		return nil, fmt.Errorf("%w: model reply is missing subject or body", ErrGeneration)
	}
	return &draft, nil
}

// buildPrompt composes the single instruction sent to the model: role,
// task, constraints, a strict two-field JSON format, then the request
// details. Relative dates like "tomorrow" are pinned to the concrete
// calendar date one day ahead of the generation instant.
func (s *DraftService) buildPrompt(req DraftRequest) string {
	tomorrow := s.now().AddDate(0, 0, 1).Format("02 January 2006")

	emailType := req.EmailType
	if emailType == "" {
		emailType = "professional"
	}

	return fmt.Sprintf(`You are an AI Email Writing Assistant.

ROLE:
Professional email generator.

TASK:
Write a %s email.

CONSTRAINTS:
- Tone must be %s
- Replace words like tomorrow with %s
- No placeholders
- Clear subject line
- Professional closing
- Return strictly valid JSON

FORMAT:
{
    "subject": "email subject",
    "body": "email body"
}

DETAILS:
Sender: %s
Receiver: %s
Purpose: %s
`, emailType, req.Tone, tomorrow, req.SenderName, req.ReceiverName, req.Purpose)
}
