package models

import "time"

// Progress is the best recorded result of a user on a level
type Progress struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	LevelID   int64     `json:"levelId"`
	Score     int       `json:"score"`
	Complete  bool      `json:"complete"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProgressWithLevel includes the level number and description for display
type ProgressWithLevel struct {
	Progress
	LevelNumber      int    `json:"levelNumber"`
	LevelDescription string `json:"levelDescription"`
}

// ProgressStats summarizes a user's progress across all levels
type ProgressStats struct {
	ChildName          string  `json:"childName"`
	TotalLevels        int     `json:"totalLevels"`
	CompletedLevels    int     `json:"completedLevels"`
	TotalScore         int     `json:"totalScore"`
	ProgressPercentage float64 `json:"progressPercentage"`
}
