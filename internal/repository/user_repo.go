package repository

import (
	"database/sql"
	"fmt"
	"time"

	"ortografia/internal/database"
	"ortografia/internal/models"
)

// UserRepository handles database operations for children playing the game
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, guardian_email, total_points, available_points, created_at"

// CreateUser inserts a new user with zero points
func (r *UserRepository) CreateUser(name, guardianEmail string) (*models.User, error) {
	createdAt := time.Now().UTC()
	id, err := r.db.ExecReturningID(
		"INSERT INTO users (name, guardian_email, created_at) VALUES (?, ?, ?)",
		name, guardianEmail, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:            id,
		Name:          name,
		GuardianEmail: guardianEmail,
		CreatedAt:     createdAt,
	}, nil
}

// GetUserByName retrieves a user by its unique name. Returns nil when absent.
func (r *UserRepository) GetUserByName(name string) (*models.User, error) {
	return r.getUser("SELECT "+userColumns+" FROM users WHERE name = ?", name)
}

// GetUserByID retrieves a user by ID. Returns nil when absent.
func (r *UserRepository) GetUserByID(userID int64) (*models.User, error) {
	return r.getUser("SELECT "+userColumns+" FROM users WHERE id = ?", userID)
}

func (r *UserRepository) getUser(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.GuardianEmail,
		&user.TotalPoints,
		&user.AvailablePoints,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// AddPoints credits points to both the lifetime and spendable balances in a
// single UPDATE, so concurrent credits for the same user never overwrite each
// other. Returns the user with the new balances.
func (r *UserRepository) AddPoints(userID int64, points int) (*models.User, error) {
	result, err := r.db.Exec(`
		UPDATE users
		SET total_points = total_points + ?, available_points = available_points + ?
		WHERE id = ?
	`, points, points, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add points: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to add points: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetUserByID(userID)
}

// ListUsers retrieves all users ordered by name
func (r *UserRepository) ListUsers() ([]models.User, error) {
	rows, err := r.db.Query("SELECT " + userColumns + " FROM users ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.GuardianEmail,
			&user.TotalPoints,
			&user.AvailablePoints,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
