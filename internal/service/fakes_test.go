package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ortografia/internal/models"
)

type memUsers struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int64]*models.User)}
}

func (m *memUsers) add(name, email string) *models.User {
	u, _ := m.CreateUser(name, email)
	return u
}

func (m *memUsers) CreateUser(name, guardianEmail string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u := &models.User{ID: m.nextID, Name: name, GuardianEmail: guardianEmail}
	m.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (m *memUsers) GetUserByName(name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetUserByID(userID int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *memUsers) AddPoints(userID int64, points int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	u.TotalPoints += points
	u.AvailablePoints += points
	copied := *u
	return &copied, nil
}

func (m *memUsers) ListUsers() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

type memLevels struct {
	levels map[int]*models.LevelWithWords
}

// newMemLevels builds levels numbered from 1 with the given word lists
func newMemLevels(wordLists ...[]string) *memLevels {
	m := &memLevels{levels: make(map[int]*models.LevelWithWords)}
	var wordID int64
	for i, words := range wordLists {
		number := i + 1
		level := &models.LevelWithWords{Level: models.Level{
			ID:          int64(100 + number),
			LevelNumber: number,
			Description: fmt.Sprintf("Nivel %d", number),
		}}
		for _, text := range words {
			wordID++
			level.Words = append(level.Words, models.Word{ID: wordID, LevelID: level.ID, Text: text})
		}
		m.levels[number] = level
	}
	return m
}

func (m *memLevels) GetLevelByNumber(levelNumber int) (*models.LevelWithWords, error) {
	level, ok := m.levels[levelNumber]
	if !ok {
		return nil, nil
	}
	copied := *level
	copied.Words = append([]models.Word(nil), level.Words...)
	return &copied, nil
}

func (m *memLevels) CountLevels() (int, error) {
	return len(m.levels), nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*models.GameSession
	updates  int
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*models.GameSession)}
}

func cloneSession(s *models.GameSession) *models.GameSession {
	copied := *s
	copied.WordsAttempted = append([]models.WordAttempt(nil), s.WordsAttempted...)
	return &copied
}

func (m *memSessions) CreateSession(session *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = cloneSession(session)
	return nil
}

func (m *memSessions) GetSessionByID(sessionID string) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

func (m *memSessions) UpdateAttempts(sessionID string, attempts []models.WordAttempt) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.IsCompleted {
		return false, nil
	}
	m.updates++
	s.WordsAttempted = append([]models.WordAttempt(nil), attempts...)
	return true, nil
}

func (m *memSessions) CompleteSession(sessionID string, finalScore int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.IsCompleted {
		return false, nil
	}
	s.FinalScore = finalScore
	s.IsCompleted = true
	return true, nil
}

func (m *memSessions) GetCompletedSessionsForUser(userID int64) ([]models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GameSession
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsCompleted {
			out = append(out, *cloneSession(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayedAt.After(out[j].PlayedAt) })
	return out, nil
}

type recordedResult struct {
	userName     string
	levelNumber  int
	score        int
	fullyCorrect bool
}

type fakeRecorder struct {
	results []recordedResult
	err     error
}

func (f *fakeRecorder) RecordResult(userName string, levelNumber, score int, fullyCorrect bool) error {
	if f.err != nil {
		return f.err
	}
	f.results = append(f.results, recordedResult{userName, levelNumber, score, fullyCorrect})
	return nil
}

type fakeReporter struct {
	reports []LevelReport
	err     error
}

func (f *fakeReporter) SendLevelReport(ctx context.Context, report LevelReport) error {
	f.reports = append(f.reports, report)
	return f.err
}

type memProgress struct {
	mu      sync.Mutex
	records map[[2]int64]*models.Progress
	levels  *memLevels
	nextID  int64
}

func newMemProgress(levels *memLevels) *memProgress {
	return &memProgress{records: make(map[[2]int64]*models.Progress), levels: levels}
}

func (m *memProgress) GetProgress(userID, levelID int64) (*models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.records[[2]int64{userID, levelID}]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *memProgress) CreateProgress(progress *models.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{progress.UserID, progress.LevelID}
	if _, exists := m.records[key]; exists {
		return fmt.Errorf("duplicate progress")
	}
	m.nextID++
	progress.ID = m.nextID
	copied := *progress
	m.records[key] = &copied
	return nil
}

func (m *memProgress) UpdateProgress(progress *models.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *progress
	m.records[[2]int64{progress.UserID, progress.LevelID}] = &copied
	return nil
}

func (m *memProgress) levelNumber(levelID int64) (int, string) {
	for _, l := range m.levels.levels {
		if l.ID == levelID {
			return l.LevelNumber, l.Description
		}
	}
	return 0, ""
}

func (m *memProgress) GetHighestCompletedLevel(userID int64) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	highest, found := 0, false
	for key, p := range m.records {
		if key[0] != userID || !p.Complete {
			continue
		}
		if n, _ := m.levelNumber(p.LevelID); n > highest {
			highest, found = n, true
		}
	}
	return highest, found, nil
}

func (m *memProgress) GetUserProgress(userID int64) ([]models.ProgressWithLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ProgressWithLevel
	for key, p := range m.records {
		if key[0] != userID {
			continue
		}
		n, desc := m.levelNumber(p.LevelID)
		out = append(out, models.ProgressWithLevel{Progress: *p, LevelNumber: n, LevelDescription: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LevelNumber < out[j].LevelNumber })
	return out, nil
}
