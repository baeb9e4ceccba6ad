package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ortografia/internal/service"
)

// GameAPI is the game session engine as seen by the transport
type GameAPI interface {
	StartGame(userName string, levelNumber int) (*service.StartResult, error)
	CheckAnswer(sessionID string, wordID int64, rawAnswer string) (*service.CheckResult, error)
	FinishGame(sessionID string) (*service.FinishResult, error)
	GetGameStatus(sessionID string) (*service.StatusResult, error)
	GetChildGameHistory(userName string) ([]service.HistoryEntry, error)
}

// Limiter decides whether a keyed request may proceed
type Limiter interface {
	Allow(key string) bool
}

// GameHandler handles game session requests
type GameHandler struct {
	games   GameAPI
	limiter Limiter
}

// NewGameHandler creates a new game handler. limiter may be nil.
func NewGameHandler(games GameAPI, limiter Limiter) *GameHandler {
	return &GameHandler{games: games, limiter: limiter}
}

type startGameRequest struct {
	UserName    string `json:"userName"`
	LevelNumber int    `json:"levelNumber"`
}

type checkAnswerRequest struct {
	SessionID  string `json:"sessionId"`
	WordID     int64  `json:"wordId"`
	UserAnswer string `json:"userAnswer"`
}

// StartGame handles POST /api/game/start
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.UserName) == "" {
		respondWithError(w, http.StatusBadRequest, "userName is required", "", nil)
		return
	}

	result, err := h.games.StartGame(req.UserName, req.LevelNumber)
	if err != nil {
		respondWithServiceError(w, err, "failed to start game")
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

// CheckAnswer handles POST /api/game/check-answer
func (h *GameHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		respondWithError(w, http.StatusBadRequest, "sessionId is required", "", nil)
		return
	}

	if h.limiter != nil && !h.limiter.Allow(req.SessionID) {
		respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
		return
	}

	result, err := h.games.CheckAnswer(req.SessionID, req.WordID, req.UserAnswer)
	if err != nil {
		respondWithServiceError(w, err, "failed to check answer")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// FinishGame handles POST /api/game/finish/{sessionId}
func (h *GameHandler) FinishGame(w http.ResponseWriter, r *http.Request) {
	result, err := h.games.FinishGame(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondWithServiceError(w, err, "failed to finish game")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetGameStatus handles GET /api/game/status/{sessionId}
func (h *GameHandler) GetGameStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.games.GetGameStatus(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondWithServiceError(w, err, "failed to get game status")
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetGameHistory handles GET /api/game/history/{userName}
func (h *GameHandler) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.games.GetChildGameHistory(chi.URLParam(r, "userName"))
	if err != nil {
		respondWithServiceError(w, err, "failed to get game history")
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}
