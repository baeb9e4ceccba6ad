package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the API handlers mounted by NewRouter
type Handlers struct {
	Game     *GameHandler
	Progress *ProgressHandler
	User     *UserHandler
}

// NewRouter builds the API router
func NewRouter(h Handlers, clientOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(CORS(clientOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.User.ListUsers)
			r.Post("/", h.User.CreateUser)
			r.Get("/{name}", h.User.GetUser)
		})

		r.Route("/game", func(r chi.Router) {
			r.Post("/start", h.Game.StartGame)
			r.Post("/check-answer", h.Game.CheckAnswer)
			r.Post("/finish/{sessionId}", h.Game.FinishGame)
			r.Get("/status/{sessionId}", h.Game.GetGameStatus)
			r.Get("/history/{userName}", h.Game.GetGameHistory)
		})

		r.Route("/progress/{userName}", func(r chi.Router) {
			r.Get("/", h.Progress.GetProgress)
			r.Get("/next-level", h.Progress.GetNextLevel)
			r.Get("/completed/{levelNumber}", h.Progress.GetLevelCompleted)
			r.Get("/stats", h.Progress.GetStats)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found", "", nil)
	})

	return r
}
