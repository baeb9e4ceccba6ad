package service

import (
	"github.com/rs/zerolog/log"

	"ortografia/internal/models"
)

// ProgressStore persists the best result per user and level
type ProgressStore interface {
	GetProgress(userID, levelID int64) (*models.Progress, error)
	CreateProgress(progress *models.Progress) error
	UpdateProgress(progress *models.Progress) error
	GetHighestCompletedLevel(userID int64) (int, bool, error)
	GetUserProgress(userID int64) ([]models.ProgressWithLevel, error)
}

// LevelCatalog looks up levels and counts them
type LevelCatalog interface {
	LevelDirectory
	CountLevels() (int, error)
}

// ProgressService gates which level a user may play next
type ProgressService struct {
	users    UserDirectory
	levels   LevelCatalog
	progress ProgressStore
}

// NewProgressService creates a new progress service
func NewProgressService(users UserDirectory, levels LevelCatalog, progress ProgressStore) *ProgressService {
	return &ProgressService{
		users:    users,
		levels:   levels,
		progress: progress,
	}
}

// RecordResult stores a level result. An existing record is only replaced by
// a higher score or a fully correct run, so a stored score never goes down
// through a partial run.
func (s *ProgressService) RecordResult(userName string, levelNumber, score int, fullyCorrect bool) error {
	user, err := s.requireUser(userName)
	if err != nil {
		return err
	}

	level, err := s.levels.GetLevelByNumber(levelNumber)
	if err != nil {
		return err
	}
	if level == nil {
		return notFound("level %d not found", levelNumber)
	}

	existing, err := s.progress.GetProgress(user.ID, level.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		return s.progress.CreateProgress(&models.Progress{
			UserID:   user.ID,
			LevelID:  level.ID,
			Score:    score,
			Complete: fullyCorrect,
		})
	}

	if score <= existing.Score && !fullyCorrect {
		log.Debug().
			Str("user", userName).
			Int("level", levelNumber).
			Int("score", score).
			Int("stored", existing.Score).
			Msg("keeping stored progress")
		return nil
	}

	existing.Score = score
	existing.Complete = fullyCorrect
	return s.progress.UpdateProgress(existing)
}

// NextLevel returns the level after the highest completed one, or level 1.
// Returns nil when that level does not exist.
func (s *ProgressService) NextLevel(userName string) (*models.LevelWithWords, error) {
	user, err := s.requireUser(userName)
	if err != nil {
		return nil, err
	}

	next := 1
	highest, ok, err := s.progress.GetHighestCompletedLevel(user.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		next = highest + 1
	}

	return s.levels.GetLevelByNumber(next)
}

// GetChildProgress returns every progress record of a user ordered by level number
func (s *ProgressService) GetChildProgress(userName string) ([]models.ProgressWithLevel, error) {
	user, err := s.requireUser(userName)
	if err != nil {
		return nil, err
	}
	return s.progress.GetUserProgress(user.ID)
}

// IsLevelCompleted reports whether a user has completed a level
func (s *ProgressService) IsLevelCompleted(userName string, levelNumber int) (bool, error) {
	user, err := s.requireUser(userName)
	if err != nil {
		return false, err
	}

	level, err := s.levels.GetLevelByNumber(levelNumber)
	if err != nil {
		return false, err
	}
	if level == nil {
		return false, nil
	}

	progress, err := s.progress.GetProgress(user.ID, level.ID)
	if err != nil {
		return false, err
	}
	return progress != nil && progress.Complete, nil
}

// GetChildStats summarizes a user's progress across all levels
func (s *ProgressService) GetChildStats(userName string) (*models.ProgressStats, error) {
	user, err := s.requireUser(userName)
	if err != nil {
		return nil, err
	}

	records, err := s.progress.GetUserProgress(user.ID)
	if err != nil {
		return nil, err
	}

	totalLevels, err := s.levels.CountLevels()
	if err != nil {
		return nil, err
	}

	stats := &models.ProgressStats{
		ChildName:   user.Name,
		TotalLevels: totalLevels,
	}
	for _, record := range records {
		if record.Complete {
			stats.CompletedLevels++
		}
		stats.TotalScore += record.Score
	}
	if totalLevels > 0 {
		stats.ProgressPercentage = float64(stats.CompletedLevels) / float64(totalLevels) * 100
	}

	return stats, nil
}

func (s *ProgressService) requireUser(userName string) (*models.User, error) {
	user, err := s.users.GetUserByName(userName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user %q not found", userName)
	}
	return user, nil
}
