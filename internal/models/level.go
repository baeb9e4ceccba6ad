package models

import "time"

// WordsPerLevel is the exact number of words a level needs to be playable
const WordsPerLevel = 5

// Level is one step of the game, identified by its level number (1..10)
type Level struct {
	ID          int64  `json:"id"`
	LevelNumber int    `json:"levelNumber"`
	Description string `json:"description"`
}

// Word belongs to exactly one level
type Word struct {
	ID        int64     `json:"id"`
	LevelID   int64     `json:"levelId"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LevelWithWords combines a level with its word list
type LevelWithWords struct {
	Level
	Words []Word `json:"words"`
}

// IsPlayable reports whether the level has exactly WordsPerLevel words
func (l *LevelWithWords) IsPlayable() bool {
	return len(l.Words) == WordsPerLevel
}
