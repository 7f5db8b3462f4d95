package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Upsert(ctx context.Context, learner models.Learner) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("upserting learner: id=%d", learner.ID)

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
INSERT INTO learners (id, username)
VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET username = excluded.username, last_activity_at = CURRENT_TIMESTAMP
RETURNING id, username, created_at, last_activity_at
`, learner.ID, learner.Username).Scan(&l.ID, &l.Username, &l.CreatedAt, &l.LastActivityAt)
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, err
	}
	log.Debug("learner upserted: id=%d", l.ID)
	return &l, nil
}

func (r *learnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("getting learner: id=%d", id)

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at, last_activity_at
FROM learners
WHERE id = ?
`, id).Scan(&l.ID, &l.Username, &l.CreatedAt, &l.LastActivityAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("learner not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) TouchActivity(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("updating learner activity: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE learners SET last_activity_at = ? WHERE id = ?`, t, id)
	if err != nil {
		log.Error("failed to update learner activity: %v", err)
	}
	return err
}
