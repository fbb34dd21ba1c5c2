package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// timeLayout is the second-precision format stored in sent_time.
const timeLayout = "2006-01-02 15:04:05"

// Store is the append-only keeper of sent-email history. It exposes no
// update or delete operations; the table is an audit trail, not a
// mutable dataset.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects to (or creates) the SQLite database at path and
// enables WAL mode so concurrent appends serialize cleanly.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// Pragmas are per-connection; keep a single pooled connection so
	// they hold for every statement and appends serialize in-process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init idempotently ensures the emails table exists; safe to call on
// every process start.
func (s *Store) Init() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS emails (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			receiver_email TEXT NOT NULL,
			email_type TEXT NOT NULL DEFAULT '',
			tone TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL,
			body TEXT NOT NULL,
			sent_time TEXT NOT NULL
		)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating emails table: %w", err)
	}
	return nil
}

// Append inserts one history record with a store-assigned timestamp
// and returns the new monotonically increasing identifier.
func (s *Store) Append(ctx context.Context, receiverEmail, emailType, tone, subject, body string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO emails (receiver_email, email_type, tone, subject, body, sent_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		receiverEmail, emailType, tone, subject, body, s.now().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting history record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading history record id: %w", err)
	}
	return id, nil
}

// ListAll returns every history record, most recent first. An empty
// table yields an empty slice, not an error.
func (s *Store) ListAll(ctx context.Context) ([]HistoryRecord, error) {
	records := []HistoryRecord{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, receiver_email, email_type, tone, subject, body, sent_time
		 FROM emails ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing history records: %w", err)
	}
	return records, nil
}
