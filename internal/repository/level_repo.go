package repository

import (
	"database/sql"
	"fmt"

	"ortografia/internal/database"
	"ortografia/internal/models"
)

// LevelRepository reads levels and their word lists
type LevelRepository struct {
	db *database.DB
}

// NewLevelRepository creates a new level repository
func NewLevelRepository(db *database.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// GetLevelByNumber retrieves a level with its words in creation order. Returns nil when absent.
func (r *LevelRepository) GetLevelByNumber(levelNumber int) (*models.LevelWithWords, error) {
	level := &models.LevelWithWords{}
	err := r.db.QueryRow(
		"SELECT id, level_number, description FROM levels WHERE level_number = ?",
		levelNumber,
	).Scan(&level.ID, &level.LevelNumber, &level.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	words, err := r.GetLevelWords(level.ID)
	if err != nil {
		return nil, err
	}
	level.Words = words

	return level, nil
}

// GetLevelWords retrieves all words of a level
func (r *LevelRepository) GetLevelWords(levelID int64) ([]models.Word, error) {
	rows, err := r.db.Query(`
		SELECT id, level_id, text, image_url, created_at
		FROM words
		WHERE level_id = ?
		ORDER BY id ASC
	`, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(&word.ID, &word.LevelID, &word.Text, &word.ImageURL, &word.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// CountLevels returns the number of levels
func (r *LevelRepository) CountLevels() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM levels").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count levels: %w", err)
	}
	return count, nil
}
