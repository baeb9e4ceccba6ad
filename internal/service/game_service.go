package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ortografia/internal/models"
	"ortografia/internal/orthography"
	"ortografia/internal/validation"
)

// Scoring rules applied when a session is finished
const (
	PointsPerCorrectWord   = 20
	FirstAttemptBonus      = 10
	SecondAttemptBonus     = 5
	PerfectLevelBonus      = 50
	MinCorrectToPass       = 3
	MaxSuggestedAttempts   = 3
	rewardPointsPercentage = 50
)

const reportTimeout = 10 * time.Second

// UserDirectory looks up players and credits reward points
type UserDirectory interface {
	GetUserByName(name string) (*models.User, error)
	GetUserByID(userID int64) (*models.User, error)
	// AddPoints must apply the credit as a single atomic increment
	AddPoints(userID int64, points int) (*models.User, error)
}

// LevelDirectory looks up levels with their words
type LevelDirectory interface {
	GetLevelByNumber(levelNumber int) (*models.LevelWithWords, error)
}

// SessionStore persists game sessions. UpdateAttempts and CompleteSession
// return false when the session is already completed.
type SessionStore interface {
	CreateSession(session *models.GameSession) error
	GetSessionByID(sessionID string) (*models.GameSession, error)
	UpdateAttempts(sessionID string, attempts []models.WordAttempt) (bool, error)
	CompleteSession(sessionID string, finalScore int) (bool, error)
	GetCompletedSessionsForUser(userID int64) ([]models.GameSession, error)
}

// ProgressRecorder records a passed level for a user
type ProgressRecorder interface {
	RecordResult(userName string, levelNumber, score int, fullyCorrect bool) error
}

// LevelReporter notifies a guardian that a level was fully completed
type LevelReporter interface {
	SendLevelReport(ctx context.Context, report LevelReport) error
}

// GameService drives a game session from start to finish
type GameService struct {
	users    UserDirectory
	levels   LevelDirectory
	sessions SessionStore
	progress ProgressRecorder
	reporter LevelReporter
	newID    func() string
	now      func() time.Time
}

// NewGameService creates a new game service. reporter may be nil.
func NewGameService(users UserDirectory, levels LevelDirectory, sessions SessionStore, progress ProgressRecorder, reporter LevelReporter) *GameService {
	return &GameService{
		users:    users,
		levels:   levels,
		sessions: sessions,
		progress: progress,
		reporter: reporter,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// LevelInfo describes the level being played
type LevelInfo struct {
	LevelNumber      int                          `json:"levelNumber"`
	Description      string                       `json:"description"`
	TherapeuticFocus orthography.TherapeuticFocus `json:"therapeuticFocus"`
	Instruction      string                       `json:"instruction"`
}

// SessionWord is a word the player has to spell
type SessionWord struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// StartResult is returned when a session starts
type StartResult struct {
	SessionID  string        `json:"sessionId"`
	Level      LevelInfo     `json:"level"`
	Words      []SessionWord `json:"words"`
	TotalWords int           `json:"totalWords"`
}

// CheckResult is the outcome of one answer
type CheckResult struct {
	IsCorrect   bool                         `json:"isCorrect"`
	CorrectWord string                       `json:"correctWord"`
	Attempts    int                          `json:"attempts"`
	UserAnswer  string                       `json:"userAnswer,omitempty"`
	Message     string                       `json:"message"`
	ErrorType   orthography.ErrorType        `json:"errorType"`
	LevelFocus  orthography.TherapeuticFocus `json:"levelFocus,omitempty"`
	Hint        *string                      `json:"hint"`
}

// WordResult is the final state of one word
type WordResult struct {
	Word       string `json:"word"`
	UserAnswer string `json:"userAnswer"`
	IsCorrect  bool   `json:"isCorrect"`
	Attempts   int    `json:"attempts"`
}

// FinishResult is returned when a session is finished
type FinishResult struct {
	SessionID       string       `json:"sessionId"`
	FinalScore      int          `json:"finalScore"`
	CorrectWords    int          `json:"correctWords"`
	TotalWords      int          `json:"totalWords"`
	LevelPassed     bool         `json:"levelPassed"`
	LevelCompleted  bool         `json:"levelCompleted"`
	PointsEarned    int          `json:"pointsEarned"`
	TotalPoints     int          `json:"totalPoints"`
	AvailablePoints int          `json:"availablePoints"`
	WordsResult     []WordResult `json:"wordsResult"`
}

// WordStatus is the live state of one word in a session
type WordStatus struct {
	WordID      int64  `json:"wordId"`
	Word        string `json:"word"`
	IsCorrect   bool   `json:"isCorrect"`
	Attempts    int    `json:"attempts"`
	CanTryAgain bool   `json:"canTryAgain"`
}

// StatusResult is a read-only snapshot of a session
type StatusResult struct {
	SessionID    string       `json:"sessionId"`
	Level        int          `json:"level"`
	IsCompleted  bool         `json:"isCompleted"`
	CorrectWords int          `json:"correctWords"`
	TotalWords   int          `json:"totalWords"`
	CurrentScore int          `json:"currentScore"`
	WordsStatus  []WordStatus `json:"wordsStatus"`
}

// HistoryEntry summarizes a finished session
type HistoryEntry struct {
	SessionID    string    `json:"sessionId"`
	Level        int       `json:"level"`
	Score        int       `json:"score"`
	CorrectWords int       `json:"correctWords"`
	TotalWords   int       `json:"totalWords"`
	PlayedAt     time.Time `json:"playedAt"`
}

// StartGame creates a session for userName on levelNumber with a snapshot of the level's words
func (s *GameService) StartGame(userName string, levelNumber int) (*StartResult, error) {
	user, err := s.users.GetUserByName(userName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user %q not found", userName)
	}

	level, err := s.levels.GetLevelByNumber(levelNumber)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, notFound("level %d not found", levelNumber)
	}
	if !level.IsPlayable() {
		return nil, invalidState("level %d must have exactly %d words", levelNumber, models.WordsPerLevel)
	}

	session := &models.GameSession{
		ID:             s.newID(),
		UserID:         user.ID,
		LevelID:        level.ID,
		UserName:       user.Name,
		LevelNumber:    level.LevelNumber,
		WordsAttempted: make([]models.WordAttempt, 0, len(level.Words)),
		PlayedAt:       s.now().UTC(),
	}
	words := make([]SessionWord, 0, len(level.Words))
	for _, word := range level.Words {
		session.WordsAttempted = append(session.WordsAttempted, models.WordAttempt{
			WordID:   word.ID,
			WordText: word.Text,
		})
		words = append(words, SessionWord{ID: word.ID, Text: word.Text})
	}

	if err := s.sessions.CreateSession(session); err != nil {
		return nil, err
	}

	log.Debug().
		Str("session_id", session.ID).
		Str("user", user.Name).
		Int("level", level.LevelNumber).
		Msg("game session started")

	return &StartResult{
		SessionID: session.ID,
		Level: LevelInfo{
			LevelNumber:      level.LevelNumber,
			Description:      level.Description,
			TherapeuticFocus: orthography.FocusForLevel(level.LevelNumber),
			Instruction:      orthography.InstructionForLevel(level.LevelNumber),
		},
		Words:      words,
		TotalWords: len(words),
	}, nil
}

// CheckAnswer grades one attempt at a word. A word already answered
// correctly is returned unchanged. Nothing is mutated unless every
// precondition holds.
func (s *GameService) CheckAnswer(sessionID string, wordID int64, rawAnswer string) (*CheckResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrAlreadyCompleted
	}

	attempt := session.FindAttempt(wordID)
	if attempt == nil {
		return nil, notFound("word %d not found in this session", wordID)
	}

	if attempt.IsCorrect {
		return &CheckResult{
			IsCorrect:   true,
			CorrectWord: attempt.WordText,
			Attempts:    attempt.Attempts,
			Message:     "Word already correct",
		}, nil
	}

	if err := validation.ValidateAnswer(rawAnswer); err != nil {
		return nil, invalidInput(err)
	}

	answer := normalize(rawAnswer)
	correctWord := strings.ToLower(attempt.WordText)

	attempt.Attempts++
	attempt.UserAnswer = answer
	attempt.IsCorrect = answer == correctWord

	updated, err := s.sessions.UpdateAttempts(session.ID, session.WordsAttempted)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrAlreadyCompleted
	}

	result := &CheckResult{
		IsCorrect:   attempt.IsCorrect,
		CorrectWord: attempt.WordText,
		Attempts:    attempt.Attempts,
		UserAnswer:  answer,
		LevelFocus:  orthography.FocusForLevel(session.LevelNumber),
	}

	if attempt.IsCorrect {
		result.Message = fmt.Sprintf("¡Excelente! Completaste una palabra del nivel %d.", session.LevelNumber)
		return result, nil
	}

	result.Message = orthography.LevelFeedback(session.LevelNumber, answer, correctWord)
	result.ErrorType = orthography.Classify(answer, correctWord).ErrorType
	hint := orthography.Hint(session.LevelNumber, correctWord)
	result.Hint = &hint

	return result, nil
}

// FinishGame scores and closes a session. Passing the level records progress
// and credits reward points; a fully completed level also triggers a guardian report.
func (s *GameService) FinishGame(sessionID string) (*FinishResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrAlreadyCompleted
	}

	score := Score(session.WordsAttempted)
	correct := session.CorrectCount()
	passed := correct >= MinCorrectToPass
	completed := correct == models.WordsPerLevel

	closed, err := s.sessions.CompleteSession(session.ID, score)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrAlreadyCompleted
	}

	result := &FinishResult{
		SessionID:      session.ID,
		FinalScore:     score,
		CorrectWords:   correct,
		TotalWords:     models.WordsPerLevel,
		LevelPassed:    passed,
		LevelCompleted: completed,
		WordsResult:    make([]WordResult, 0, len(session.WordsAttempted)),
	}
	for _, attempt := range session.WordsAttempted {
		result.WordsResult = append(result.WordsResult, WordResult{
			Word:       attempt.WordText,
			UserAnswer: attempt.UserAnswer,
			IsCorrect:  attempt.IsCorrect,
			Attempts:   attempt.Attempts,
		})
	}

	var user *models.User
	if passed {
		if err := s.progress.RecordResult(session.UserName, session.LevelNumber, score, completed); err != nil {
			return nil, fmt.Errorf("failed to record progress: %w", err)
		}

		result.PointsEarned = RewardPoints(score)
		user, err = s.users.AddPoints(session.UserID, result.PointsEarned)
	} else {
		user, err = s.users.GetUserByID(session.UserID)
	}
	if err != nil {
		return nil, err
	}
	if user != nil {
		result.TotalPoints = user.TotalPoints
		result.AvailablePoints = user.AvailablePoints
	}

	log.Info().
		Str("session_id", session.ID).
		Str("user", session.UserName).
		Int("level", session.LevelNumber).
		Int("score", score).
		Int("correct", correct).
		Bool("passed", passed).
		Msg("game session finished")

	if completed && user != nil {
		s.sendReport(user, session, result)
	}

	return result, nil
}

// GetGameStatus returns a read-only snapshot of a session
func (s *GameService) GetGameStatus(sessionID string) (*StatusResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	status := &StatusResult{
		SessionID:    session.ID,
		Level:        session.LevelNumber,
		IsCompleted:  session.IsCompleted,
		CorrectWords: session.CorrectCount(),
		TotalWords:   len(session.WordsAttempted),
		CurrentScore: session.FinalScore,
		WordsStatus:  make([]WordStatus, 0, len(session.WordsAttempted)),
	}
	for _, attempt := range session.WordsAttempted {
		status.WordsStatus = append(status.WordsStatus, WordStatus{
			WordID:      attempt.WordID,
			Word:        attempt.WordText,
			IsCorrect:   attempt.IsCorrect,
			Attempts:    attempt.Attempts,
			CanTryAgain: !attempt.IsCorrect && attempt.Attempts < MaxSuggestedAttempts,
		})
	}

	return status, nil
}

// GetChildGameHistory lists a user's finished sessions, newest first
func (s *GameService) GetChildGameHistory(userName string) ([]HistoryEntry, error) {
	user, err := s.users.GetUserByName(userName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user %q not found", userName)
	}

	sessions, err := s.sessions.GetCompletedSessionsForUser(user.ID)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, len(sessions))
	for i := range sessions {
		history = append(history, HistoryEntry{
			SessionID:    sessions[i].ID,
			Level:        sessions[i].LevelNumber,
			Score:        sessions[i].FinalScore,
			CorrectWords: sessions[i].CorrectCount(),
			TotalWords:   len(sessions[i].WordsAttempted),
			PlayedAt:     sessions[i].PlayedAt,
		})
	}
	return history, nil
}

// Score computes the final score of a set of word attempts
func Score(attempts []models.WordAttempt) int {
	score := 0
	correct := 0
	for _, attempt := range attempts {
		if !attempt.IsCorrect {
			continue
		}
		correct++
		score += PointsPerCorrectWord
		switch attempt.Attempts {
		case 1:
			score += FirstAttemptBonus
		case 2:
			score += SecondAttemptBonus
		}
	}
	if correct == models.WordsPerLevel {
		score += PerfectLevelBonus
	}
	return score
}

// RewardPoints converts a passing score into spendable points, rounding down
func RewardPoints(score int) int {
	return score * rewardPointsPercentage / 100
}

func (s *GameService) getSession(sessionID string) (*models.GameSession, error) {
	session, err := s.sessions.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFound("game session %s not found", sessionID)
	}
	return session, nil
}

// sendReport delivers the guardian report. Failures are logged only.
func (s *GameService) sendReport(user *models.User, session *models.GameSession, result *FinishResult) {
	if s.reporter == nil || user.GuardianEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report := LevelReport{
		UserName:      user.Name,
		GuardianEmail: user.GuardianEmail,
		LevelNumber:   session.LevelNumber,
		FinalScore:    result.FinalScore,
		PointsEarned:  result.PointsEarned,
		Words:         result.WordsResult,
	}
	if err := s.reporter.SendLevelReport(ctx, report); err != nil {
		log.Warn().Err(err).
			Str("session_id", session.ID).
			Str("user", user.Name).
			Msg("failed to send level report")
	}
}

func normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
