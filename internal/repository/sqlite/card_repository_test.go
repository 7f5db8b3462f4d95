package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
	"github.com/yerzhan/acecards/internal/repository/sqlite"
	"github.com/yerzhan/acecards/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) setupLearnerAndDeck(learnerID int64) int64 {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `INSERT INTO learners (id, username) VALUES (?, ?)`, learnerID, "testlearner")
	s.Require().NoError(err)

	res, err := s.db.ExecContext(ctx, `INSERT INTO decks (learner_id, name) VALUES (?, ?)`, learnerID, "Vocabulary")
	s.Require().NoError(err)
	deckID, err := res.LastInsertId()
	s.Require().NoError(err)
	return deckID
}

func (s *CardRepositorySuite) insertCard(deckID int64, front string, createdAt time.Time) int64 {
	ctx := context.Background()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (deck_id, front, back, created_at) VALUES (?, ?, ?, ?)
	`, deckID, front, "back of "+front, createdAt)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CardRepositorySuite) insertState(learnerID, cardID int64, ease float64, due time.Time) {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_states (learner_id, card_id, ease_factor, interval_days, due_date, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
	`, learnerID, cardID, ease, due, due)
	s.Require().NoError(err)
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)

	id, err := s.repo.Insert(ctx, models.Card{
		DeckID:     deckID,
		Front:      "ephemeral",
		Back:       "lasting a very short time",
		Tags:       "adjective,band7",
		Difficulty: 4,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("ephemeral", card.Front)
	s.Assert().Equal(4, card.Difficulty)
	s.Assert().Equal(deckID, card.DeckID)
}

func (s *CardRepositorySuite) TestGet_NotFound() {
	card, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func (s *CardRepositorySuite) TestDueCards_Ordering() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	created := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	// Most overdue first; within the same due date, lowest ease first.
	cardA := s.insertCard(deckID, "A", created)
	cardB := s.insertCard(deckID, "B", created)
	cardC := s.insertCard(deckID, "C", created)
	s.insertState(100, cardA, 2.0, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.insertState(100, cardB, 1.5, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	s.insertState(100, cardC, 1.3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	due, err := s.repo.DueCards(ctx, 100, now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 3)
	s.Assert().Equal(cardC, due[0].Card.ID, "ties on due date break toward the lowest ease")
	s.Assert().Equal(cardA, due[1].Card.ID)
	s.Assert().Equal(cardB, due[2].Card.ID)

	s.Assert().Equal("Vocabulary", due[0].DeckName)
	s.Assert().Equal(cardC, due[0].ReviewState.CardID)
	s.Assert().InDelta(1.3, due[0].EaseFactor, 1e-9)
}

func (s *CardRepositorySuite) TestDueCards_ExcludesFuture() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	created := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	overdue := s.insertCard(deckID, "overdue", created)
	future := s.insertCard(deckID, "future", created)
	s.insertState(100, overdue, 2.5, now.AddDate(0, 0, -1))
	s.insertState(100, future, 2.5, now.AddDate(0, 0, 3))

	due, err := s.repo.DueCards(ctx, 100, now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Assert().Equal(overdue, due[0].Card.ID)
}

func (s *CardRepositorySuite) TestDueCards_Limit() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	created := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		id := s.insertCard(deckID, "card", created)
		s.insertState(100, id, 2.5, now.AddDate(0, 0, -i-1))
	}

	due, err := s.repo.DueCards(ctx, 100, now, 2)
	s.Require().NoError(err)
	s.Assert().Len(due, 2)
}

func (s *CardRepositorySuite) TestNewCards_ExcludesReviewed() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	oldest := s.insertCard(deckID, "oldest", base)
	middle := s.insertCard(deckID, "middle", base.AddDate(0, 0, 1))
	seen := s.insertCard(deckID, "seen", base.AddDate(0, 0, 2))
	s.insertState(100, seen, 2.5, base.AddDate(0, 0, 10))

	cards, err := s.repo.NewCards(ctx, 100, 10)
	s.Require().NoError(err)
	s.Require().Len(cards, 2, "a card with review state is no longer new")
	s.Assert().Equal(oldest, cards[0].ID, "new cards surface oldest first")
	s.Assert().Equal(middle, cards[1].ID)
	s.Assert().Equal("Vocabulary", cards[0].DeckName)
}

func (s *CardRepositorySuite) TestNewCards_IncludesSubscribedDecks() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ownDeck := s.setupLearnerAndDeck(100)
	s.insertCard(ownDeck, "own", base)

	_, err := s.db.ExecContext(ctx, `INSERT INTO learners (id, username) VALUES (?, ?)`, 200, "author")
	s.Require().NoError(err)
	res, err := s.db.ExecContext(ctx, `INSERT INTO decks (learner_id, name) VALUES (?, ?)`, 200, "Shared")
	s.Require().NoError(err)
	sharedDeck, err := res.LastInsertId()
	s.Require().NoError(err)
	s.insertCard(sharedDeck, "shared", base.AddDate(0, 0, 1))

	// Not yet subscribed: only the own deck is reachable.
	cards, err := s.repo.NewCards(ctx, 100, 10)
	s.Require().NoError(err)
	s.Assert().Len(cards, 1)

	_, err = s.db.ExecContext(ctx, `INSERT INTO deck_subscriptions (learner_id, deck_id) VALUES (?, ?)`, 100, sharedDeck)
	s.Require().NoError(err)

	cards, err = s.repo.NewCards(ctx, 100, 10)
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Assert().Equal("Shared", cards[1].DeckName)
}

func (s *CardRepositorySuite) TestCounts() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	created := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	dueCard := s.insertCard(deckID, "due", created)
	futureCard := s.insertCard(deckID, "future", created)
	s.insertCard(deckID, "fresh", created)
	s.insertState(100, dueCard, 2.5, now.AddDate(0, 0, -1))
	s.insertState(100, futureCard, 2.5, now.AddDate(0, 0, 5))

	due, err := s.repo.CountDue(ctx, 100, now)
	s.Require().NoError(err)
	s.Assert().Equal(1, due)

	available, err := s.repo.CountAvailable(ctx, 100)
	s.Require().NoError(err)
	s.Assert().Equal(3, available)
}

func (s *CardRepositorySuite) TestDelete_CascadesState() {
	ctx := context.Background()
	deckID := s.setupLearnerAndDeck(100)
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	cardID := s.insertCard(deckID, "doomed", now)
	s.insertState(100, cardID, 2.5, now)

	err := s.repo.Delete(ctx, cardID)
	s.Require().NoError(err)

	card, err := s.repo.Get(ctx, cardID)
	s.Require().NoError(err)
	s.Assert().Nil(card)

	var states int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_states WHERE card_id = ?`, cardID).Scan(&states)
	s.Require().NoError(err)
	s.Assert().Equal(0, states, "deleting a card removes its review states")
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
