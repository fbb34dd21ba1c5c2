package mailer

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/resend/resend-go/v3"
)

// resendTimeout bounds the single POST to the provider's send endpoint.
const resendTimeout = 30 * time.Second

// ResendTransport delivers mail through the Resend HTTP API using a
// verified sender address.
type ResendTransport struct {
	client *resend.Client
	apiKey string
	from   string
}

// NewResendTransport creates a Resend transport with a bounded-timeout
// HTTP client.
func NewResendTransport(apiKey, fromEmail, fromName string) *ResendTransport {
	from := fromEmail
	if fromName != "" && fromEmail != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return &ResendTransport{
		client: resend.NewCustomClient(&http.Client{Timeout: resendTimeout}, apiKey),
		apiKey: apiKey,
		from:   from,
	}
}

// Configured implements Transport.
func (t *ResendTransport) Configured() error {
	var missing []string
	if t.apiKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if t.from == "" {
		missing = append(missing, "FROM_EMAIL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Send implements Transport. The provider accepting the message is the
// only success path; any API error surfaces with its detail.
func (t *ResendTransport) Send(ctx context.Context, msg *Message) error {
	if err := t.Configured(); err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    t.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Body,
		Html:    htmlBody(msg.Body),
	}
	if a := msg.Attachment; a != nil {
		req.Attachments = []*resend.Attachment{{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: "application/octet-stream",
		}}
	}

	if _, err := t.client.Emails.SendWithContext(ctx, req); err != nil {
		if isAPIKeyRejection(err) {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

// htmlBody mirrors the plain-text body with line breaks converted so
// HTML-only clients render paragraphs.
func htmlBody(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

// isAPIKeyRejection matches the provider's invalid-key responses.
func isAPIKeyRejection(err error) bool {
	s := err.Error()
	return strings.Contains(s, "401") || strings.Contains(strings.ToLower(s), "api key is invalid")
}
