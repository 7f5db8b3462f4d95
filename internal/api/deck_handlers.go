package api

import (
	"net/http"

	"github.com/yerzhan/acecards/internal/models"
)

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LearnerID   int64  `json:"learner_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.CatalogService.CreateDeck(r.Context(), req.LearnerID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Front      string `json:"front"`
		Back       string `json:"back"`
		Tags       string `json:"tags"`
		Difficulty int    `json:"difficulty"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Difficulty == 0 {
		req.Difficulty = 3
	}

	card, err := s.CatalogService.AddCard(r.Context(), deckID, req.Front, req.Back, req.Tags, req.Difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	decks, err := s.CatalogService.ListDecks(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"decks": decks})
}
