package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"ortografia/internal/database"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exported_at"`
	DatabaseType string           `json:"database_type"`
	Users        []UserBackup     `json:"users"`
	Levels       []LevelBackup    `json:"levels"`
	Words        []WordBackup     `json:"words"`
	Progress     []ProgressBackup `json:"progress"`
	Sessions     []SessionBackup  `json:"game_sessions"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	GuardianEmail   string    `json:"guardian_email"`
	TotalPoints     int       `json:"total_points"`
	AvailablePoints int       `json:"available_points"`
	CreatedAt       time.Time `json:"created_at"`
}

// LevelBackup represents a level record for backup
type LevelBackup struct {
	ID          int64  `json:"id"`
	LevelNumber int    `json:"level_number"`
	Description string `json:"description"`
}

// WordBackup represents a word for backup
type WordBackup struct {
	ID        int64     `json:"id"`
	LevelID   int64     `json:"level_id"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressBackup represents a progress record for backup
type ProgressBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	LevelID   int64     `json:"level_id"`
	Score     int       `json:"score"`
	Complete  bool      `json:"complete"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionBackup represents a game session for backup. WordsAttempted is kept
// as the stored JSON document.
type SessionBackup struct {
	ID             string          `json:"id"`
	UserID         int64           `json:"user_id"`
	LevelID        int64           `json:"level_id"`
	WordsAttempted json.RawMessage `json:"words_attempted"`
	FinalScore     int             `json:"final_score"`
	IsCompleted    bool            `json:"is_completed"`
	PlayedAt       time.Time       `json:"played_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Info().Str("path", outputPath).Msg("database exported")
	return nil
}

// ExportToWriter writes the backup document to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	steps := []struct {
		name string
		fn   func(*BackupData) error
	}{
		{"users", s.exportUsers},
		{"levels", s.exportLevels},
		{"words", s.exportWords},
		{"progress", s.exportProgress},
		{"game sessions", s.exportSessions},
	}
	for _, step := range steps {
		if err := step.fn(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Info().
		Int("users", len(backup.Users)).
		Int("levels", len(backup.Levels)).
		Int("words", len(backup.Words)).
		Int("progress", len(backup.Progress)).
		Int("game_sessions", len(backup.Sessions)).
		Msg("export summary")
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup inside a single transaction
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Info().Str("version", backup.Version).Time("exported_at", backup.ExportedAt).Msg("importing backup")

	err := s.db.WithTx(func(tx *database.Tx) error {
		if err := importUsers(tx, backup.Users); err != nil {
			return fmt.Errorf("failed to import users: %w", err)
		}
		if err := importLevels(tx, backup.Levels); err != nil {
			return fmt.Errorf("failed to import levels: %w", err)
		}
		if err := importWords(tx, backup.Words); err != nil {
			return fmt.Errorf("failed to import words: %w", err)
		}
		if err := importProgress(tx, backup.Progress); err != nil {
			return fmt.Errorf("failed to import progress: %w", err)
		}
		if err := importSessions(tx, backup.Sessions); err != nil {
			return fmt.Errorf("failed to import game sessions: %w", err)
		}
		return resetSequences(tx)
	})
	if err != nil {
		return err
	}

	log.Info().Msg("database import completed")
	return nil
}

// Clear deletes every game row in reverse dependency order
func (s *BackupService) Clear() error {
	tables := []string{"game_sessions", "progress", "words", "levels", "users"}

	return s.db.WithTx(func(tx *database.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Info().Str("table", table).Msg("cleared table")
		}
		return nil
	})
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, guardian_email, total_points, available_points, created_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Name, &u.GuardianEmail, &u.TotalPoints, &u.AvailablePoints, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportLevels(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, level_number, description FROM levels ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l LevelBackup
		if err := rows.Scan(&l.ID, &l.LevelNumber, &l.Description); err != nil {
			return err
		}
		backup.Levels = append(backup.Levels, l)
	}
	return rows.Err()
}

func (s *BackupService) exportWords(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, level_id, text, image_url, created_at FROM words ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.LevelID, &w.Text, &w.ImageURL, &w.CreatedAt); err != nil {
			return err
		}
		backup.Words = append(backup.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportProgress(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, level_id, score, complete, updated_at FROM progress ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProgressBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.LevelID, &p.Score, &p.Complete, &p.UpdatedAt); err != nil {
			return err
		}
		backup.Progress = append(backup.Progress, p)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, level_id, words_attempted, final_score, is_completed, played_at FROM game_sessions ORDER BY played_at")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var gs SessionBackup
		var attempts string
		if err := rows.Scan(&gs.ID, &gs.UserID, &gs.LevelID, &attempts, &gs.FinalScore, &gs.IsCompleted, &gs.PlayedAt); err != nil {
			return err
		}
		gs.WordsAttempted = json.RawMessage(attempts)
		backup.Sessions = append(backup.Sessions, gs)
	}
	return rows.Err()
}

func importUsers(tx *database.Tx, users []UserBackup) error {
	for _, u := range users {
		_, err := tx.Exec(
			"INSERT INTO users (id, name, guardian_email, total_points, available_points, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			u.ID, u.Name, u.GuardianEmail, u.TotalPoints, u.AvailablePoints, u.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	log.Info().Int("count", len(users)).Msg("imported users")
	return nil
}

func importLevels(tx *database.Tx, levels []LevelBackup) error {
	for _, l := range levels {
		_, err := tx.Exec(
			"INSERT INTO levels (id, level_number, description) VALUES (?, ?, ?)",
			l.ID, l.LevelNumber, l.Description,
		)
		if err != nil {
			return fmt.Errorf("level %d: %w", l.ID, err)
		}
	}
	log.Info().Int("count", len(levels)).Msg("imported levels")
	return nil
}

func importWords(tx *database.Tx, words []WordBackup) error {
	for _, w := range words {
		_, err := tx.Exec(
			"INSERT INTO words (id, level_id, text, image_url, created_at) VALUES (?, ?, ?, ?, ?)",
			w.ID, w.LevelID, w.Text, w.ImageURL, w.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("word %d: %w", w.ID, err)
		}
	}
	log.Info().Int("count", len(words)).Msg("imported words")
	return nil
}

func importProgress(tx *database.Tx, records []ProgressBackup) error {
	for _, p := range records {
		_, err := tx.Exec(
			"INSERT INTO progress (id, user_id, level_id, score, complete, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			p.ID, p.UserID, p.LevelID, p.Score, p.Complete, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("progress %d: %w", p.ID, err)
		}
	}
	log.Info().Int("count", len(records)).Msg("imported progress")
	return nil
}

func importSessions(tx *database.Tx, sessions []SessionBackup) error {
	for _, gs := range sessions {
		attempts := string(gs.WordsAttempted)
		if attempts == "" {
			attempts = "[]"
		}
		_, err := tx.Exec(
			"INSERT INTO game_sessions (id, user_id, level_id, words_attempted, final_score, is_completed, played_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			gs.ID, gs.UserID, gs.LevelID, attempts, gs.FinalScore, gs.IsCompleted, gs.PlayedAt,
		)
		if err != nil {
			return fmt.Errorf("game session %s: %w", gs.ID, err)
		}
	}
	log.Info().Int("count", len(sessions)).Msg("imported game sessions")
	return nil
}

// resetSequences moves PostgreSQL serial sequences past the imported IDs.
// SQLite and MySQL advance their counters on explicit inserts.
func resetSequences(tx *database.Tx) error {
	if _, ok := tx.GetDialect().(*database.PostgresDialect); !ok {
		return nil
	}

	for _, table := range []string{"users", "levels", "words", "progress"} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
			table, table,
		)
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
