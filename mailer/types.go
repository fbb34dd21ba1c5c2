package mailer

import "context"

// Attachment is a single binary file delivered with a message under
// its original filename.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully prepared email: one recipient, a plain-text body
// and at most one attachment.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Transport abstracts the delivery mechanism (SMTP session or HTTP
// mail-provider API) so everything above it stays provider-agnostic.
// Exactly one transport is active per deployment.
type Transport interface {
	// Configured reports whether the transport has the credentials and
	// sender identity it needs; failures wrap ErrConfiguration and
	// name the missing settings without revealing values.
	Configured() error

	// Send delivers the message synchronously, exactly once. No
	// retries are performed at this layer.
	Send(ctx context.Context, msg *Message) error
}
