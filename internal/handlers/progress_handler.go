package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ortografia/internal/models"
	"ortografia/internal/validation"
)

// ProgressAPI is the progression gate as seen by the transport
type ProgressAPI interface {
	NextLevel(userName string) (*models.LevelWithWords, error)
	GetChildProgress(userName string) ([]models.ProgressWithLevel, error)
	IsLevelCompleted(userName string, levelNumber int) (bool, error)
	GetChildStats(userName string) (*models.ProgressStats, error)
}

// ProgressHandler handles progress requests
type ProgressHandler struct {
	progress ProgressAPI
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress ProgressAPI) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type levelCompletedResponse struct {
	UserName    string `json:"userName"`
	LevelNumber int    `json:"levelNumber"`
	Completed   bool   `json:"completed"`
}

// GetProgress handles GET /api/progress/{userName}
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	records, err := h.progress.GetChildProgress(chi.URLParam(r, "userName"))
	if err != nil {
		respondWithServiceError(w, err, "failed to get progress")
		return
	}
	if records == nil {
		records = []models.ProgressWithLevel{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

// GetNextLevel handles GET /api/progress/{userName}/next-level.
// The body is null when there is no further level.
func (h *ProgressHandler) GetNextLevel(w http.ResponseWriter, r *http.Request) {
	level, err := h.progress.NextLevel(chi.URLParam(r, "userName"))
	if err != nil {
		respondWithServiceError(w, err, "failed to get next level")
		return
	}
	respondWithJSON(w, http.StatusOK, level)
}

// GetLevelCompleted handles GET /api/progress/{userName}/completed/{levelNumber}
func (h *ProgressHandler) GetLevelCompleted(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	levelNumber, err := strconv.Atoi(chi.URLParam(r, "levelNumber"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidPathParam, "", nil)
		return
	}
	if err := validation.ValidateLevelNumber(levelNumber); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	completed, err := h.progress.IsLevelCompleted(userName, levelNumber)
	if err != nil {
		respondWithServiceError(w, err, "failed to check level completion")
		return
	}
	respondWithJSON(w, http.StatusOK, levelCompletedResponse{
		UserName:    userName,
		LevelNumber: levelNumber,
		Completed:   completed,
	})
}

// GetStats handles GET /api/progress/{userName}/stats
func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progress.GetChildStats(chi.URLParam(r, "userName"))
	if err != nil {
		respondWithServiceError(w, err, "failed to get stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
