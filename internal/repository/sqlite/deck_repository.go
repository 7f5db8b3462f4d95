package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: learner_id=%d, name=%s", deck.LearnerID, deck.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (learner_id, name, description)
VALUES (?, ?, ?)
`, deck.LearnerID, deck.Name, deck.Description)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, learner_id, name, description, created_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.LearnerID, &d.Name, &d.Description, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) ListForLearner(ctx context.Context, learnerID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: learner_id=%d", learnerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, learner_id, name, description, created_at
FROM decks
WHERE learner_id = ?
   OR id IN (SELECT deck_id FROM deck_subscriptions WHERE learner_id = ?)
ORDER BY created_at ASC
`, learnerID, learnerID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.LearnerID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Subscribe(ctx context.Context, learnerID, deckID int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("subscribing learner %d to deck %d", learnerID, deckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO deck_subscriptions (learner_id, deck_id)
VALUES (?, ?)
ON CONFLICT(learner_id, deck_id) DO NOTHING
`, learnerID, deckID)
	if err != nil {
		log.Error("failed to subscribe: %v", err)
	}
	return err
}
