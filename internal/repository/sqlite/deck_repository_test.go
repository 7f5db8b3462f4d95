package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
	"github.com/yerzhan/acecards/internal/repository/sqlite"
	"github.com/yerzhan/acecards/internal/testutil"
)

type DeckRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.DeckRepository
}

func (s *DeckRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDeckRepository(s.db)
}

func (s *DeckRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DeckRepositorySuite) insertLearner(id int64, username string) {
	_, err := s.db.ExecContext(context.Background(), `INSERT INTO learners (id, username) VALUES (?, ?)`, id, username)
	s.Require().NoError(err)
}

func (s *DeckRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	s.insertLearner(100, "aliya")

	id, err := s.repo.Insert(ctx, models.Deck{
		LearnerID:   100,
		Name:        "Academic Word List",
		Description: "High-frequency academic vocabulary",
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	deck, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(deck)
	s.Assert().Equal("Academic Word List", deck.Name)
	s.Assert().Equal(int64(100), deck.LearnerID)
}

func (s *DeckRepositorySuite) TestGet_NotFound() {
	deck, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(deck)
}

func (s *DeckRepositorySuite) TestListForLearner_OwnedAndSubscribed() {
	ctx := context.Background()
	s.insertLearner(100, "aliya")
	s.insertLearner(200, "author")

	ownID, err := s.repo.Insert(ctx, models.Deck{LearnerID: 100, Name: "My Deck"})
	s.Require().NoError(err)
	sharedID, err := s.repo.Insert(ctx, models.Deck{LearnerID: 200, Name: "Shared Deck"})
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, models.Deck{LearnerID: 200, Name: "Private Deck"})
	s.Require().NoError(err)

	decks, err := s.repo.ListForLearner(ctx, 100)
	s.Require().NoError(err)
	s.Require().Len(decks, 1)
	s.Assert().Equal(ownID, decks[0].ID)

	err = s.repo.Subscribe(ctx, 100, sharedID)
	s.Require().NoError(err)

	decks, err = s.repo.ListForLearner(ctx, 100)
	s.Require().NoError(err)
	s.Require().Len(decks, 2, "subscribed decks join the list, unsubscribed ones stay out")
}

func (s *DeckRepositorySuite) TestSubscribe_Idempotent() {
	ctx := context.Background()
	s.insertLearner(100, "aliya")
	s.insertLearner(200, "author")

	deckID, err := s.repo.Insert(ctx, models.Deck{LearnerID: 200, Name: "Shared Deck"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Subscribe(ctx, 100, deckID))
	s.Require().NoError(s.repo.Subscribe(ctx, 100, deckID), "repeated subscribe is a no-op")

	var rows int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deck_subscriptions WHERE learner_id = ?`, 100).Scan(&rows)
	s.Require().NoError(err)
	s.Assert().Equal(1, rows)
}

func TestDeckRepositorySuite(t *testing.T) {
	suite.Run(t, new(DeckRepositorySuite))
}
