package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"strings"

	mail "gopkg.in/gomail.v2"
)

// SMTPTransport delivers mail over an authenticated, TLS-upgraded
// session to a relay such as smtp.gmail.com:587.
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPTransport creates an SMTP transport. When from is empty the
// authenticated account doubles as the sender address.
func NewSMTPTransport(host string, port int, username, password, from string) *SMTPTransport {
	if from == "" {
		from = username
	}
	return &SMTPTransport{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Configured implements Transport.
func (t *SMTPTransport) Configured() error {
	var missing []string
	if t.host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if t.username == "" {
		missing = append(missing, "SMTP_USER")
	}
	if t.password == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Send implements Transport. The session is synchronous and bounded by
// the dialer's own timeout; gomail does not take a context.
func (t *SMTPTransport) Send(_ context.Context, msg *Message) error {
	if err := t.Configured(); err != nil {
		return err
	}

	m := t.buildMessage(msg)

	d := mail.NewDialer(t.host, t.port, t.username, t.password)
	d.TLSConfig = &tls.Config{ServerName: t.host}

	if err := d.DialAndSend(m); err != nil {
		if isAuthRejection(err) {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

// buildMessage composes the multipart message: plain-text body plus
// the optional binary attachment under its original filename.
func (t *SMTPTransport) buildMessage(msg *Message) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if a := msg.Attachment; a != nil {
		m.Attach(a.Filename,
			mail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(a.Content)
				return err
			}),
			mail.SetHeader(map[string][]string{
				"Content-Type": {"application/octet-stream"},
			}),
		)
	}
	return m
}

// isAuthRejection matches the SMTP reply codes relays use to refuse
// credentials (534/535, e.g. a Gmail app password mismatch).
func isAuthRejection(err error) bool {
	s := err.Error()
	return strings.Contains(s, "535") ||
		strings.Contains(s, "534") ||
		strings.Contains(s, "username and password not accepted")
}
