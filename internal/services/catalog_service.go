package services

import (
	"context"
	"strings"
	"time"

	"github.com/yerzhan/acecards/internal/errors"
	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
)

// CatalogService handles learner registration and card/deck authoring. The
// scheduler only ever reads this data.
type CatalogService interface {
	UpsertLearner(ctx context.Context, id int64, username string) (*models.Learner, error)
	CreateDeck(ctx context.Context, learnerID int64, name, description string) (*models.Deck, error)
	AddCard(ctx context.Context, deckID int64, front, back, tags string, difficulty int) (*models.Card, error)
	Subscribe(ctx context.Context, learnerID, deckID int64) error
	DeleteCard(ctx context.Context, cardID int64) error
	ListDecks(ctx context.Context, learnerID int64) ([]models.Deck, error)
}

type catalogService struct {
	learners repository.LearnerRepository
	decks    repository.DeckRepository
	cards    repository.CardRepository

	now func() time.Time
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(learners repository.LearnerRepository, decks repository.DeckRepository, cards repository.CardRepository) CatalogService {
	return &catalogService{learners: learners, decks: decks, cards: cards, now: time.Now}
}

func (s *catalogService) UpsertLearner(ctx context.Context, id int64, username string) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	if id <= 0 {
		return nil, errors.NewValidationError("learner_id", "must be positive")
	}
	learner, err := s.learners.Upsert(ctx, models.Learner{ID: id, Username: strings.TrimSpace(username)})
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	return learner, nil
}

func (s *catalogService) CreateDeck(ctx context.Context, learnerID int64, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return nil, errors.NewValidationError("name", "must be at least 3 characters")
	}
	if len(name) > 100 {
		return nil, errors.NewValidationError("name", "must be at most 100 characters")
	}
	if len(description) > 500 {
		return nil, errors.NewValidationError("description", "must be at most 500 characters")
	}

	learner, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to look up learner: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", learnerID)
	}

	deck := models.Deck{LearnerID: learnerID, Name: name, Description: strings.TrimSpace(description)}
	id, err := s.decks.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	created, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewPersistenceError(err)
	}
	log.Info("deck created: id=%d, learner_id=%d", id, learnerID)
	return created, nil
}

func (s *catalogService) AddCard(ctx context.Context, deckID int64, front, back, tags string, difficulty int) (*models.Card, error) {
	log := logger.FromContext(ctx)

	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}
	if difficulty < 1 || difficulty > 5 {
		return nil, errors.NewValidationError("difficulty", "must be between 1 and 5")
	}

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to look up deck: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	card := models.Card{
		DeckID:     deckID,
		Front:      front,
		Back:       back,
		Tags:       normalizeTags(tags),
		Difficulty: difficulty,
	}
	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	created, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewPersistenceError(err)
	}
	log.Info("card added: id=%d, deck_id=%d", id, deckID)
	return created, nil
}

func (s *catalogService) Subscribe(ctx context.Context, learnerID, deckID int64) error {
	log := logger.FromContext(ctx)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to look up deck: %v", err)
		return errors.NewPersistenceError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	if deck.LearnerID == learnerID {
		return errors.NewBadRequestError("cannot subscribe to an owned deck")
	}

	if err := s.decks.Subscribe(ctx, learnerID, deckID); err != nil {
		log.Error("failed to subscribe: %v", err)
		return errors.NewPersistenceError(err)
	}
	log.Info("learner %d subscribed to deck %d", learnerID, deckID)
	return nil
}

func (s *catalogService) DeleteCard(ctx context.Context, cardID int64) error {
	log := logger.FromContext(ctx)

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to look up card: %v", err)
		return errors.NewPersistenceError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", cardID)
	}

	// Review states for the card cascade away with it.
	if err := s.cards.Delete(ctx, cardID); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewPersistenceError(err)
	}
	log.Info("card deleted: id=%d", cardID)
	return nil
}

func (s *catalogService) ListDecks(ctx context.Context, learnerID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx)

	decks, err := s.decks.ListForLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	return decks, nil
}

// normalizeTags lowercases and deduplicates a comma-separated tag list.
func normalizeTags(tags string) string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range strings.Split(tags, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return strings.Join(out, ",")
}
