package repository

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetUserByName_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE name = ?")).
		WithArgs("nadie").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "guardian_email", "total_points", "available_points", "created_at"}))

	user, err := repo.GetUserByName("nadie")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByName_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := repo.GetUserByName("ana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get user")
}

func TestUserRepository_AddPoints_SingleUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET total_points = total_points + ?, available_points = available_points + ?")).
		WithArgs(50, 50, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	user, err := repo.AddPoints(3, 50)
	require.NoError(t, err)
	assert.Nil(t, user, "unknown user yields nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateAndCredit(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.CreateUser("lucia", "familia@example.com")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.CreateUser("lucia", "")
	assert.Error(t, err, "names are unique")

	fetched, err := repo.GetUserByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "lucia", fetched.Name)
	assert.Equal(t, "familia@example.com", fetched.GuardianEmail)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddPoints(created.ID, 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	fetched, err = repo.GetUserByName("lucia")
	require.NoError(t, err)
	assert.Equal(t, 80, fetched.TotalPoints)
	assert.Equal(t, 80, fetched.AvailablePoints)
}
