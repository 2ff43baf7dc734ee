package messages

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/host"
)

// SQLiteStore implements host.MessageStore on the message, message_read and user tables.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ host.MessageStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and if needed creates) a message database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.StoreError(err, "open sqlite database").WithContext("path", dbPath).Build()
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.StoreError(err, "initialize schema").WithContext("path", dbPath).Build()
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY,
		firstname TEXT NOT NULL DEFAULT '',
		lastname TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		mnethostid INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS message (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		useridfrom INTEGER NOT NULL,
		useridto INTEGER NOT NULL,
		smallmessage TEXT NOT NULL DEFAULT '',
		fullmessageformat INTEGER NOT NULL DEFAULT 0,
		notification INTEGER NOT NULL DEFAULT 0,
		contexturl TEXT NOT NULL DEFAULT '',
		timecreated INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS message_read (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		useridfrom INTEGER NOT NULL,
		useridto INTEGER NOT NULL,
		smallmessage TEXT NOT NULL DEFAULT '',
		fullmessageformat INTEGER NOT NULL DEFAULT 0,
		notification INTEGER NOT NULL DEFAULT 0,
		contexturl TEXT NOT NULL DEFAULT '',
		timecreated INTEGER NOT NULL,
		timeread INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_message_to ON message(useridto, timecreated);
	CREATE INDEX IF NOT EXISTS idx_message_read_to ON message_read(useridto, timecreated);
	`
	_, err := s.db.Exec(schema)
	return err
}

// PutUser inserts or replaces a user row.
func (s *SQLiteStore) PutUser(ctx context.Context, u host.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO user (id, firstname, lastname, email, mnethostid) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.FirstName, u.LastName, u.Email, u.MnetHostID,
	)
	if err != nil {
		return errors.StoreError(err, "insert user").WithContext("user_id", u.ID).Build()
	}
	return nil
}

// Add stores a message. Records with a zero TimeRead go to the unread table.
func (s *SQLiteStore) Add(ctx context.Context, rec host.MessageRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res sql.Result
		err error
	)
	if rec.TimeRead.IsZero() {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO message (useridfrom, useridto, smallmessage, fullmessageformat, notification, contexturl, timecreated)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.FromUserID, rec.ToUserID, rec.SmallMessage, rec.Format, rec.Notification, rec.ContextURL, rec.TimeCreated.Unix(),
		)
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO message_read (useridfrom, useridto, smallmessage, fullmessageformat, notification, contexturl, timecreated, timeread)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.FromUserID, rec.ToUserID, rec.SmallMessage, rec.Format, rec.Notification, rec.ContextURL, rec.TimeCreated.Unix(), rec.TimeRead.Unix(),
		)
	}
	if err != nil {
		return 0, errors.StoreError(err, "insert message").WithContext("user_id", rec.ToUserID).Build()
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.StoreError(err, "read message id").Build()
	}
	return id, nil
}

// Unread returns up to limit unread rows addressed to userID, newest first.
func (s *SQLiteStore) Unread(ctx context.Context, userID int64, limit int) ([]host.MessageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, useridfrom, useridto, smallmessage, fullmessageformat, notification, contexturl, timecreated, 0
		FROM message WHERE useridto = ? ORDER BY timecreated DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, errors.StoreError(err, "query unread messages").WithContext("user_id", userID).Build()
	}
	defer func() { _ = rows.Close() }()
	return scanMessages(rows)
}

// Read returns up to limit read rows addressed to userID, newest first.
func (s *SQLiteStore) Read(ctx context.Context, userID int64, limit int) ([]host.MessageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, useridfrom, useridto, smallmessage, fullmessageformat, notification, contexturl, timecreated, timeread
		FROM message_read WHERE useridto = ? ORDER BY timecreated DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, errors.StoreError(err, "query read messages").WithContext("user_id", userID).Build()
	}
	defer func() { _ = rows.Close() }()
	return scanMessages(rows)
}

// User returns the user row for id.
func (s *SQLiteStore) User(ctx context.Context, id int64) (host.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u host.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, firstname, lastname, email, mnethostid FROM user WHERE id = ?", id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.MnetHostID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return host.User{}, false, nil
	}
	if err != nil {
		return host.User{}, false, errors.StoreError(err, "query user").WithContext("user_id", id).Build()
	}
	return u, true, nil
}

func scanMessages(rows *sql.Rows) ([]host.MessageRecord, error) {
	var out []host.MessageRecord
	for rows.Next() {
		var (
			rec               host.MessageRecord
			created, readUnix int64
		)
		if err := rows.Scan(&rec.ID, &rec.FromUserID, &rec.ToUserID, &rec.SmallMessage, &rec.Format,
			&rec.Notification, &rec.ContextURL, &created, &readUnix); err != nil {
			return nil, errors.StoreError(err, "scan message").Build()
		}
		rec.TimeCreated = time.Unix(created, 0)
		if readUnix != 0 {
			rec.TimeRead = time.Unix(readUnix, 0)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreError(err, "iterate messages").Build()
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
