package repository

import (
	"database/sql"
	"fmt"
	"time"

	"ortografia/internal/database"
	"ortografia/internal/models"
)

// ProgressRepository persists the best result per (user, level)
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetProgress retrieves the record for a user on a level. Returns nil when absent.
func (r *ProgressRepository) GetProgress(userID, levelID int64) (*models.Progress, error) {
	progress := &models.Progress{}
	err := r.db.QueryRow(`
		SELECT id, user_id, level_id, score, complete, updated_at
		FROM progress
		WHERE user_id = ? AND level_id = ?
	`, userID, levelID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.LevelID,
		&progress.Score,
		&progress.Complete,
		&progress.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// CreateProgress inserts a new record and sets its ID
func (r *ProgressRepository) CreateProgress(progress *models.Progress) error {
	progress.UpdatedAt = time.Now().UTC()
	id, err := r.db.ExecReturningID(`
		INSERT INTO progress (user_id, level_id, score, complete, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, progress.UserID, progress.LevelID, progress.Score, progress.Complete, progress.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}
	progress.ID = id
	return nil
}

// UpdateProgress overwrites the score and completion of an existing record
func (r *ProgressRepository) UpdateProgress(progress *models.Progress) error {
	progress.UpdatedAt = time.Now().UTC()
	_, err := r.db.Exec(
		"UPDATE progress SET score = ?, complete = ?, updated_at = ? WHERE id = ?",
		progress.Score, progress.Complete, progress.UpdatedAt, progress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// GetHighestCompletedLevel returns the highest level number the user has completed.
// The boolean is false when the user has not completed any level.
func (r *ProgressRepository) GetHighestCompletedLevel(userID int64) (int, bool, error) {
	var highest sql.NullInt64
	err := r.db.QueryRow(`
		SELECT MAX(l.level_number)
		FROM progress p
		JOIN levels l ON l.id = p.level_id
		WHERE p.user_id = ? AND p.complete = ?
	`, userID, true).Scan(&highest)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get highest completed level: %w", err)
	}
	if !highest.Valid {
		return 0, false, nil
	}
	return int(highest.Int64), true, nil
}

// GetUserProgress retrieves all of a user's records ordered by level number
func (r *ProgressRepository) GetUserProgress(userID int64) ([]models.ProgressWithLevel, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.user_id, p.level_id, p.score, p.complete, p.updated_at,
		       l.level_number, l.description
		FROM progress p
		JOIN levels l ON l.id = p.level_id
		WHERE p.user_id = ?
		ORDER BY l.level_number ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var records []models.ProgressWithLevel
	for rows.Next() {
		var p models.ProgressWithLevel
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.LevelID,
			&p.Score,
			&p.Complete,
			&p.UpdatedAt,
			&p.LevelNumber,
			&p.LevelDescription,
		); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		records = append(records, p)
	}

	return records, rows.Err()
}
