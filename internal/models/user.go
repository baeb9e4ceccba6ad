package models

import "time"

// User is a child playing the game. Name is the unique key used across the API.
type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	GuardianEmail   string    `json:"guardianEmail,omitempty"`
	TotalPoints     int       `json:"totalPoints"`
	AvailablePoints int       `json:"availablePoints"`
	CreatedAt       time.Time `json:"createdAt"`
}
