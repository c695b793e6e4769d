package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesim"
)

// Turn is one committed quarter turn.
type Turn struct {
	TurnID    int64
	SessionID string
	TurnIndex int
	TsMs      int64
	Axis      int
	Slice     int
	Direction int
	Notation  string
}

// Move returns the turn as a move stamped with its time.
func (t Turn) Move() (cubesim.Move, error) {
	m, err := cubesim.ParseMove(t.Notation)
	if err != nil {
		return cubesim.Move{}, fmt.Errorf("turn %d: %w", t.TurnIndex, err)
	}
	return m.WithTime(time.UnixMilli(t.TsMs)), nil
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertTurn(x execer, sessionID string, index int, m cubesim.Move) (sql.Result, error) {
	layer, dir, err := m.Quarter()
	if err != nil {
		return nil, fmt.Errorf("failed to record %s: %w", m.Notation(), err)
	}
	ts := m.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return x.Exec(`
		INSERT INTO turns (session_id, turn_index, ts_ms, axis, slice, direction, notation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, index, ts.UnixMilli(), int(layer.Axis), layer.Slice, dir, m.Notation())
}

// Create records a quarter-turn move and returns its ID.
func (r *TurnRepository) Create(sessionID string, index int, m cubesim.Move) (int64, error) {
	result, err := insertTurn(r.db, sessionID, index, m)
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}
	return id, nil
}

// CreateBatch records moves in a single transaction, numbering them from
// startIndex. Half turns are stored as two quarter turns.
func (r *TurnRepository) CreateBatch(sessionID string, moves []cubesim.Move, startIndex int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		i := startIndex
		for _, m := range moves {
			for _, q := range m.Quarters() {
				if _, err := insertTurn(tx, sessionID, i, q); err != nil {
					return fmt.Errorf("failed to create turn %d: %w", i, err)
				}
				i++
			}
		}
		return nil
	})
}

// GetBySession retrieves a session's turns in order.
func (r *TurnRepository) GetBySession(sessionID string) ([]Turn, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, session_id, turn_index, ts_ms, axis, slice, direction, notation
		FROM turns
		WHERE session_id = ?
		ORDER BY turn_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.TurnID, &t.SessionID, &t.TurnIndex, &t.TsMs, &t.Axis, &t.Slice, &t.Direction, &t.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Moves returns a session's turns as moves.
func (r *TurnRepository) Moves(sessionID string) ([]cubesim.Move, error) {
	turns, err := r.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	moves := make([]cubesim.Move, 0, len(turns))
	for _, t := range turns {
		m, err := t.Move()
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Count returns the number of turns in a session.
func (r *TurnRepository) Count(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}
