package models

import "time"

// GameSession is one play-through of a level by a user
type GameSession struct {
	ID             string
	UserID         int64
	LevelID        int64
	UserName       string
	LevelNumber    int
	WordsAttempted []WordAttempt
	FinalScore     int
	IsCompleted    bool
	PlayedAt       time.Time
}

// WordAttempt tracks a user's progress on one word inside a session.
// WordText is copied in when the session starts and never re-read.
type WordAttempt struct {
	WordID     int64  `json:"wordId"`
	WordText   string `json:"wordText"`
	UserAnswer string `json:"userAnswer"`
	IsCorrect  bool   `json:"isCorrect"`
	Attempts   int    `json:"attempts"`
}

// FindAttempt returns the attempt for wordID, or nil when the word is not part of the session
func (s *GameSession) FindAttempt(wordID int64) *WordAttempt {
	for i := range s.WordsAttempted {
		if s.WordsAttempted[i].WordID == wordID {
			return &s.WordsAttempted[i]
		}
	}
	return nil
}

// CorrectCount returns how many words have been answered correctly
func (s *GameSession) CorrectCount() int {
	count := 0
	for _, attempt := range s.WordsAttempted {
		if attempt.IsCorrect {
			count++
		}
	}
	return count
}
