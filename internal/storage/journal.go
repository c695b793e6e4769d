package storage

import (
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesim"
)

// Journal records the turns of one session as the cube commits them.
type Journal struct {
	sessions  *SessionRepository
	turns     *TurnRepository
	log       logrus.FieldLogger
	sessionID string
	next      int
}

// StartJournal opens a session for source.
func StartJournal(db *DB, source, scramble string, log logrus.FieldLogger) (*Journal, error) {
	sessions := NewSessionRepository(db)
	id, err := sessions.Create(source, scramble)
	if err != nil {
		return nil, err
	}
	log = log.WithField("session", id)
	log.WithField("source", source).Info("journal started")
	return &Journal{
		sessions:  sessions,
		turns:     NewTurnRepository(db),
		log:       log,
		sessionID: id,
	}, nil
}

// SessionID returns the journal's session.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Record stores a committed quarter turn. Its signature matches
// cubesim.WithTurnCallback; failures are logged, never surfaced to the
// frame loop.
func (j *Journal) Record(m cubesim.Move) {
	if _, err := j.turns.Create(j.sessionID, j.next, m); err != nil {
		j.log.WithError(err).WithField("move", m.Notation()).Error("journal write failed")
		return
	}
	j.next++
}

// Len returns the number of turns recorded.
func (j *Journal) Len() int {
	return j.next
}

// Close ends the session.
func (j *Journal) Close() error {
	j.log.WithField("turns", j.next).Info("journal closed")
	return j.sessions.End(j.sessionID)
}
