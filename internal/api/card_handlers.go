package api

import (
	"net/http"

	"github.com/samber/lo"
	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
)

type dueCardResponse struct {
	CardID       int64   `json:"card_id"`
	Front        string  `json:"front"`
	Back         string  `json:"back"`
	Tags         string  `json:"tags"`
	Difficulty   int     `json:"difficulty"`
	EaseFactor   float64 `json:"ease_factor"`
	IntervalDays int     `json:"interval_days"`
	DueDate      string  `json:"due_date"`
	ReviewCount  int     `json:"review_count"`
	StreakCount  int     `json:"streak_count"`
	DeckName     string  `json:"deck_name"`
}

type newCardResponse struct {
	CardID     int64  `json:"card_id"`
	DeckID     int64  `json:"deck_id"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Tags       string `json:"tags"`
	Difficulty int    `json:"difficulty"`
	DeckName   string `json:"deck_name"`
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit := queryInt(r, "limit", 0)

	cards, err := s.ReviewService.GetDueCards(r.Context(), learnerID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("serving %d due cards", len(cards))

	respondJSON(w, http.StatusOK, map[string]any{
		"cards": lo.Map(cards, func(c models.DueCard, _ int) dueCardResponse {
			return dueCardResponse{
				CardID:       c.Card.ID,
				Front:        c.Front,
				Back:         c.Back,
				Tags:         c.Tags,
				Difficulty:   c.Difficulty,
				EaseFactor:   c.EaseFactor,
				IntervalDays: c.IntervalDays,
				DueDate:      c.DueDate.Format(models.DateLayout),
				ReviewCount:  c.ReviewCount,
				StreakCount:  c.StreakCount,
				DeckName:     c.DeckName,
			}
		}),
	})
}

func (s *Server) handleNewCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit := queryInt(r, "limit", 0)

	cards, err := s.ReviewService.GetNewCards(r.Context(), learnerID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("serving %d new cards", len(cards))

	respondJSON(w, http.StatusOK, map[string]any{
		"cards": lo.Map(cards, func(c models.NewCard, _ int) newCardResponse {
			return newCardResponse{
				CardID:     c.ID,
				DeckID:     c.DeckID,
				Front:      c.Front,
				Back:       c.Back,
				Tags:       c.Tags,
				Difficulty: c.Difficulty,
				DeckName:   c.DeckName,
			}
		}),
	})
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cardID, err := urlID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Rating      int `json:"rating"`
		TimeSeconds int `json:"time_seconds"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"learner_id":   learnerID,
		"card_id":      cardID,
		"rating":       req.Rating,
		"time_seconds": req.TimeSeconds,
	})
	log.Debug("reviewing card")

	if err := s.ReviewService.ReviewCard(r.Context(), learnerID, cardID, req.Rating, req.TimeSeconds); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card reviewed successfully")
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := urlID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CatalogService.DeleteCard(r.Context(), cardID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
