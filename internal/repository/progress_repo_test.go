package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ortografia/internal/models"
)

func TestProgressRepository_GetHighestCompletedLevel_None(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepository(db)

	mock.ExpectQuery("SELECT MAX").
		WithArgs(int64(4), true).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	highest, ok, err := repo.GetHighestCompletedLevel(4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, highest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_Records(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	levels := NewLevelRepository(db)
	repo := NewProgressRepository(db)

	user, err := users.CreateUser("sofia", "")
	require.NoError(t, err)
	level1, err := levels.GetLevelByNumber(1)
	require.NoError(t, err)
	level3, err := levels.GetLevelByNumber(3)
	require.NoError(t, err)

	none, err := repo.GetProgress(user.ID, level1.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	p3 := &models.Progress{UserID: user.ID, LevelID: level3.ID, Score: 90, Complete: true}
	require.NoError(t, repo.CreateProgress(p3))
	p1 := &models.Progress{UserID: user.ID, LevelID: level1.ID, Score: 40}
	require.NoError(t, repo.CreateProgress(p1))

	dup := &models.Progress{UserID: user.ID, LevelID: level1.ID}
	assert.Error(t, repo.CreateProgress(dup), "one record per user and level")

	p1.Score = 200
	p1.Complete = true
	require.NoError(t, repo.UpdateProgress(p1))

	stored, err := repo.GetProgress(user.ID, level1.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 200, stored.Score)
	assert.True(t, stored.Complete)

	highest, ok, err := repo.GetHighestCompletedLevel(user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, highest)

	all, err := repo.GetUserProgress(user.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].LevelNumber)
	assert.Equal(t, 3, all[1].LevelNumber)
}
