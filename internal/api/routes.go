package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/learners", func(r chi.Router) {
		r.Post("/", s.handleUpsertLearner)
		r.Get("/{id}/stats", s.handleStudyStats)
		r.Get("/{id}/decks", s.handleListDecks)
		r.Get("/{id}/cards/due", s.handleDueCards)
		r.Get("/{id}/cards/new", s.handleNewCards)
		r.Post("/{id}/cards/{cardID}/review", s.handleReviewCard)
		r.Post("/{id}/subscriptions", s.handleSubscribe)
	})

	r.Post("/decks", s.handleCreateDeck)
	r.Post("/decks/{id}/cards", s.handleAddCard)
	r.Delete("/cards/{id}", s.handleDeleteCard)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
