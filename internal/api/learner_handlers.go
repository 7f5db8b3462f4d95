package api

import (
	"net/http"
)

func (s *Server) handleUpsertLearner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.CatalogService.UpsertLearner(r.Context(), req.ID, req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, learner)
}

func (s *Server) handleStudyStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.GetStudyStats(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		DeckID int64 `json:"deck_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CatalogService.Subscribe(r.Context(), learnerID, req.DeckID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}
