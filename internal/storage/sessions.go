package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session sources.
const (
	SourceKeyboard = "keyboard"
	SourceScript   = "script"
	SourceMirror   = "mirror"
)

// Session is one run of the simulator that recorded turns.
type Session struct {
	SessionID string
	StartedAt time.Time
	EndedAt   *time.Time
	Source    string
	Scramble  *string
	Notes     *string
	TurnCount int
}

// Duration returns how long the session ran, or zero while it is open.
func (s Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a session and returns its ID.
func (r *SessionRepository) Create(source, scramble string) (string, error) {
	id := uuid.New().String()

	var scramblePtr *string
	if scramble != "" {
		scramblePtr = &scramble
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, source, scramble)
		VALUES (?, ?, ?, ?)
	`, id, formatTime(time.Now()), source, scramblePtr)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End closes a session and stores its final turn count.
func (r *SessionRepository) End(sessionID string) error {
	res, err := r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?,
		    turn_count = (SELECT COUNT(*) FROM turns WHERE turns.session_id = sessions.session_id)
		WHERE session_id = ?
	`, formatTime(time.Now()), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	return nil
}

// SetNotes attaches free-form notes to a session.
func (r *SessionRepository) SetNotes(sessionID, notes string) error {
	_, err := r.db.Exec("UPDATE sessions SET notes = ? WHERE session_id = ?", notes, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set notes: %w", err)
	}
	return nil
}

const sessionColumns = `session_id, started_at, ended_at, source, scramble, notes, turn_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var s Session
	var startedAt string
	var endedAt sql.NullString

	err := row.Scan(&s.SessionID, &startedAt, &endedAt, &s.Source, &s.Scramble, &s.Notes, &s.TurnCount)
	if err != nil {
		return Session{}, err
	}

	s.StartedAt = parseTime(startedAt)
	if endedAt.Valid {
		t := parseTime(endedAt.String)
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a session by ID.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*Session, error) {
	row := r.db.QueryRow(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1`)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no sessions", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}
	return &s, nil
}

// List retrieves the most recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Delete deletes a session and its turns.
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
