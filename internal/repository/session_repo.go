package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"ortografia/internal/database"
	"ortografia/internal/models"
)

// SessionRepository persists game sessions. The per-word attempts are owned
// by the session and stored as a JSON document in the same row.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionSelect = `
	SELECT s.id, s.user_id, s.level_id, u.name, l.level_number,
	       s.words_attempted, s.final_score, s.is_completed, s.played_at
	FROM game_sessions s
	JOIN users u ON u.id = s.user_id
	JOIN levels l ON l.id = s.level_id
`

// CreateSession inserts a new, not yet completed session
func (r *SessionRepository) CreateSession(session *models.GameSession) error {
	attempts, err := json.Marshal(session.WordsAttempted)
	if err != nil {
		return fmt.Errorf("failed to encode word attempts: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO game_sessions (id, user_id, level_id, words_attempted, final_score, is_completed, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.UserID, session.LevelID, string(attempts), session.FinalScore, session.IsCompleted, session.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByID retrieves a session with its owner's name and level number. Returns nil when absent.
func (r *SessionRepository) GetSessionByID(sessionID string) (*models.GameSession, error) {
	session, err := scanSession(r.db.QueryRow(sessionSelect+" WHERE s.id = ?", sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// UpdateAttempts stores the word attempts of a session that is still in
// progress. Returns false when the session no longer accepts changes.
func (r *SessionRepository) UpdateAttempts(sessionID string, attempts []models.WordAttempt) (bool, error) {
	data, err := json.Marshal(attempts)
	if err != nil {
		return false, fmt.Errorf("failed to encode word attempts: %w", err)
	}

	result, err := r.db.Exec(
		"UPDATE game_sessions SET words_attempted = ? WHERE id = ? AND is_completed = ?",
		string(data), sessionID, false,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update session: %w", err)
	}
	return rowsChanged(result)
}

// CompleteSession records the final score and marks the session completed.
// Only the first caller succeeds; later calls return false.
func (r *SessionRepository) CompleteSession(sessionID string, finalScore int) (bool, error) {
	result, err := r.db.Exec(
		"UPDATE game_sessions SET final_score = ?, is_completed = ? WHERE id = ? AND is_completed = ?",
		finalScore, true, sessionID, false,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete session: %w", err)
	}
	return rowsChanged(result)
}

// GetCompletedSessionsForUser retrieves a user's finished sessions, newest first
func (r *SessionRepository) GetCompletedSessionsForUser(userID int64) ([]models.GameSession, error) {
	rows, err := r.db.Query(
		sessionSelect+" WHERE s.user_id = ? AND s.is_completed = ? ORDER BY s.played_at DESC",
		userID, true,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.GameSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}

	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.GameSession, error) {
	session := &models.GameSession{}
	var attempts string

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.LevelID,
		&session.UserName,
		&session.LevelNumber,
		&attempts,
		&session.FinalScore,
		&session.IsCompleted,
		&session.PlayedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(attempts), &session.WordsAttempted); err != nil {
		return nil, fmt.Errorf("failed to decode word attempts: %w", err)
	}
	return session, nil
}

func rowsChanged(result sql.Result) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
