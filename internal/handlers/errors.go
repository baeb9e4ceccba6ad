package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"ortografia/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Error().Err(err).Int("status", status).Msg(logMsg)
	}

	respondWithJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps service error kinds to HTTP statuses.
// Unclassified errors are logged and hidden behind a generic 500.
func respondWithServiceError(w http.ResponseWriter, err error, logMsg string) {
	var status int
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
		return
	}

	msg := err.Error()
	var gameErr *service.GameError
	if errors.As(err, &gameErr) {
		msg = gameErr.Message
	}
	respondWithError(w, status, msg, "", nil)
}
