package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type MilestoneRepository interface {
	// Record stores the milestone for the goal. It reports false when the
	// milestone was already recorded.
	Record(ctx context.Context, goalID string, milestone int, at time.Time) (bool, error)
}

type milestoneRepository struct {
	db *sqlx.DB
}

func NewMilestoneRepository(db *sqlx.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Record(ctx context.Context, goalID string, milestone int, at time.Time) (bool, error) {
	query := `INSERT INTO goal_milestones (goal_id, milestone, notified_at) VALUES ($1, $2, $3)
	          ON CONFLICT (goal_id, milestone) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, goalID, milestone, at)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
