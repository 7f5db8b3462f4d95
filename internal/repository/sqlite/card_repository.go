package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, tags, difficulty)
VALUES (?, ?, ?, ?, ?)
`, c.DeckID, c.Front, c.Back, c.Tags, c.Difficulty)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, front, back, tags, difficulty, created_at
FROM cards
WHERE id = ?
`, id).Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Tags, &c.Difficulty, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	// Review states and history cascade via foreign keys.
	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

// DueCards returns cards whose review state is due at or before now, most
// overdue first; equally overdue cards surface hardest (lowest ease) first.
func (r *cardRepository) DueCards(ctx context.Context, learnerID int64, now time.Time, limit int) ([]models.DueCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: learner_id=%d, limit=%d", learnerID, limit)

	query := sqlBuilder.Select(
		"c.id", "c.deck_id", "c.front", "c.back", "c.tags", "c.difficulty", "c.created_at",
		"rs.learner_id", "rs.ease_factor", "rs.interval_days", "rs.due_date",
		"rs.review_count", "rs.streak_count", "rs.last_rating", "rs.total_time_spent", "rs.updated_at",
		"d.name",
	).
		From("review_states rs").
		Join("cards c ON c.id = rs.card_id").
		Join("decks d ON d.id = c.deck_id").
		Where(squirrel.Eq{"rs.learner_id": learnerID}).
		Where(squirrel.LtOrEq{"rs.due_date": now}).
		OrderBy("rs.due_date ASC", "rs.ease_factor ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due cards query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.DueCard
	for rows.Next() {
		var dc models.DueCard
		if err := rows.Scan(
			&dc.Card.ID, &dc.Card.DeckID, &dc.Front, &dc.Back, &dc.Tags, &dc.Difficulty, &dc.CreatedAt,
			&dc.LearnerID, &dc.EaseFactor, &dc.IntervalDays, &dc.DueDate,
			&dc.ReviewCount, &dc.StreakCount, &dc.LastRating, &dc.TotalTimeSpent, &dc.UpdatedAt,
			&dc.DeckName,
		); err != nil {
			log.Error("failed to scan due card row: %v", err)
			return nil, err
		}
		dc.ReviewState.CardID = dc.Card.ID
		cards = append(cards, dc)
	}
	log.Debug("found %d due cards", len(cards))
	return cards, rows.Err()
}

// NewCards returns reachable cards (owned or subscribed decks) the learner has
// never reviewed, oldest first for a fair rotation through each deck.
func (r *cardRepository) NewCards(ctx context.Context, learnerID int64, limit int) ([]models.NewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching new cards: learner_id=%d, limit=%d", learnerID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.deck_id, c.front, c.back, c.tags, c.difficulty, c.created_at, d.name
FROM cards c
JOIN decks d ON d.id = c.deck_id
WHERE (d.learner_id = ? OR d.id IN (SELECT deck_id FROM deck_subscriptions WHERE learner_id = ?))
AND NOT EXISTS (
    SELECT 1 FROM review_states rs WHERE rs.card_id = c.id AND rs.learner_id = ?
)
ORDER BY c.created_at ASC, c.id ASC
LIMIT ?
`, learnerID, learnerID, learnerID, limit)
	if err != nil {
		log.Error("failed to query new cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.NewCard
	for rows.Next() {
		var nc models.NewCard
		if err := rows.Scan(&nc.ID, &nc.DeckID, &nc.Front, &nc.Back, &nc.Tags, &nc.Difficulty, &nc.CreatedAt, &nc.DeckName); err != nil {
			log.Error("failed to scan new card row: %v", err)
			return nil, err
		}
		cards = append(cards, nc)
	}
	log.Debug("found %d new cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM review_states
WHERE learner_id = ? AND due_date <= ?
`, learnerID, now).Scan(&count)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) CountAvailable(ctx context.Context, learnerID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM cards c
JOIN decks d ON d.id = c.deck_id
WHERE d.learner_id = ? OR d.id IN (SELECT deck_id FROM deck_subscriptions WHERE learner_id = ?)
`, learnerID, learnerID).Scan(&count)
	if err != nil {
		log.Error("failed to count available cards: %v", err)
		return 0, err
	}
	return count, nil
}
