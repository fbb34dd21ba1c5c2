package mailer

import "errors"

var (
	// ErrConfiguration indicates missing transport credentials or
	// sender identity; detected before any network call.
	ErrConfiguration = errors.New("mail transport is not configured")

	// ErrAuthentication indicates the transport rejected the
	// configured credentials.
	ErrAuthentication = errors.New("mail transport rejected credentials")

	// ErrDispatch indicates the transport was reachable but refused or
	// failed the send.
	ErrDispatch = errors.New("failed to send email")
)
