package database

// HistoryRecord represents a row in the emails table: an immutable
// audit entry for one successfully sent email. EmailType and Tone are
// captured from the originating draft request when the caller supplied
// them.
type HistoryRecord struct {
	ID            int64  `db:"id" json:"id"`
	ReceiverEmail string `db:"receiver_email" json:"receiver_email"`
	EmailType     string `db:"email_type" json:"email_type,omitempty"`
	Tone          string `db:"tone" json:"tone,omitempty"`
	Subject       string `db:"subject" json:"subject"`
	Body          string `db:"body" json:"body"`
	SentTime      string `db:"sent_time" json:"sent_time"`
}
