package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ortografia/internal/models"
)

func TestSessionRepository_CompleteSession_AlreadyCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE game_sessions SET final_score = ?, is_completed = ? WHERE id = ? AND is_completed = ?")).
		WithArgs(75, true, "abc", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.CompleteSession("abc", 75)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetSessionByID_BadJSON(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "level_id", "name", "level_number", "words_attempted", "final_score", "is_completed", "played_at"}).
		AddRow("abc", 1, 1, "ana", 1, "{not json", 0, false, time.Now())
	mock.ExpectQuery("FROM game_sessions").WithArgs("abc").WillReturnRows(rows)

	_, err := repo.GetSessionByID("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode word attempts")
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	levels := NewLevelRepository(db)
	repo := NewSessionRepository(db)

	user, err := users.CreateUser("mateo", "")
	require.NoError(t, err)
	level, err := levels.GetLevelByNumber(1)
	require.NoError(t, err)

	session := &models.GameSession{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		LevelID:  level.ID,
		PlayedAt: time.Now().UTC(),
	}
	for _, w := range level.Words {
		session.WordsAttempted = append(session.WordsAttempted, models.WordAttempt{WordID: w.ID, WordText: w.Text})
	}
	require.NoError(t, repo.CreateSession(session))

	loaded, err := repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "mateo", loaded.UserName)
	assert.Equal(t, 1, loaded.LevelNumber)
	assert.Len(t, loaded.WordsAttempted, 5)
	assert.False(t, loaded.IsCompleted)

	loaded.WordsAttempted[0].IsCorrect = true
	loaded.WordsAttempted[0].Attempts = 1
	loaded.WordsAttempted[0].UserAnswer = "casa"
	ok, err := repo.UpdateAttempts(session.ID, loaded.WordsAttempted)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CompleteSession(session.ID, 30)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CompleteSession(session.ID, 30)
	require.NoError(t, err)
	assert.False(t, ok, "a session completes once")

	ok, err = repo.UpdateAttempts(session.ID, loaded.WordsAttempted)
	require.NoError(t, err)
	assert.False(t, ok, "completed sessions are frozen")

	history, err := repo.GetCompletedSessionsForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 30, history[0].FinalScore)
	assert.True(t, history[0].WordsAttempted[0].IsCorrect)

	missing, err := repo.GetSessionByID(uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
