package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/templui/goalpace/internal/model"
)

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrActiveLimitReached = errors.New("active goal limit reached")
)

type GoalRepository interface {
	CreateWithinLimit(ctx context.Context, goal *model.Goal, limit int) error
	ByID(ctx context.Context, goalID string) (*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	UpdateCurrentValue(ctx context.Context, userID, goalID string, value decimal.Decimal) error
	ReactivateWithinLimit(ctx context.Context, userID, goalID string, limit int) error
	Deactivate(ctx context.Context, userID, goalID, reason string) error
	DeactivateByIDs(ctx context.Context, goalIDs []string, reason string) (int64, error)
	CountActive(ctx context.Context, userID string) (int, error)
	ListByOwner(ctx context.Context, userID string, filters model.GoalFilters) ([]*model.Goal, error)
	ListActiveByOwner(ctx context.Context, userID string) ([]*model.Goal, error)
	ListExpiredActive(ctx context.Context, now time.Time) ([]*model.Goal, error)
}

type goalRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// CreateWithinLimit inserts the goal unless the owner already has limit active goals.
// The owner's users row is touched first so concurrent creates for the same owner
// serialize on it (row lock on Postgres, write lock on SQLite).
func (r *goalRepository) CreateWithinLimit(ctx context.Context, goal *model.Goal, limit int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = lockOwner(ctx, tx, goal.UserID)
	if err != nil {
		return err
	}

	count, err := countActive(ctx, tx, goal.UserID)
	if err != nil {
		return err
	}
	if count >= limit {
		return ErrActiveLimitReached
	}

	query := `INSERT INTO goals (id, user_id, title, description, target_type, target_value, current_value,
	              period_type, period_start, period_end, is_active, inactive_reason, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetType,
		goal.TargetValue,
		goal.CurrentValue,
		goal.PeriodType,
		goal.PeriodStart,
		goal.PeriodEnd,
		goal.IsActive,
		goal.InactiveReason,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	return tx.Commit()
}

func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, goal, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Update writes the mutable columns. target_type, target_value and period_start
// are never written after creation.
func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	goal.UpdatedAt = r.now()

	query := `UPDATE goals
	          SET title = $1, description = $2, period_type = $3, period_end = $4, current_value = $5,
	              is_active = $6, inactive_reason = $7, updated_at = $8
	          WHERE id = $9 AND user_id = $10`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.PeriodType,
		goal.PeriodEnd,
		goal.CurrentValue,
		goal.IsActive,
		goal.InactiveReason,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	return expectRows(result)
}

func (r *goalRepository) UpdateCurrentValue(ctx context.Context, userID, goalID string, value decimal.Decimal) error {
	query := `UPDATE goals SET current_value = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, value, r.now(), goalID, userID)
	if err != nil {
		return err
	}

	return expectRows(result)
}

func (r *goalRepository) ReactivateWithinLimit(ctx context.Context, userID, goalID string, limit int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = lockOwner(ctx, tx, userID)
	if err != nil {
		return err
	}

	count, err := countActive(ctx, tx, userID)
	if err != nil {
		return err
	}
	if count >= limit {
		return ErrActiveLimitReached
	}

	query := `UPDATE goals SET is_active = $1, inactive_reason = NULL, updated_at = $2
	          WHERE id = $3 AND user_id = $4`

	result, err := tx.ExecContext(ctx, query, true, r.now(), goalID, userID)
	if err != nil {
		return err
	}

	err = expectRows(result)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *goalRepository) Deactivate(ctx context.Context, userID, goalID, reason string) error {
	query := `UPDATE goals SET is_active = $1, inactive_reason = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query, false, reason, r.now(), goalID, userID)
	if err != nil {
		return err
	}

	return expectRows(result)
}

// DeactivateByIDs flips every listed goal that is still active in a single statement.
func (r *goalRepository) DeactivateByIDs(ctx context.Context, goalIDs []string, reason string) (int64, error) {
	if len(goalIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(
		`UPDATE goals SET is_active = ?, inactive_reason = ?, updated_at = ? WHERE is_active = ? AND id IN (?)`,
		false, reason, r.now(), true, goalIDs,
	)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *goalRepository) CountActive(ctx context.Context, userID string) (int, error) {
	return countActive(ctx, r.db, userID)
}

func (r *goalRepository) ListByOwner(ctx context.Context, userID string, filters model.GoalFilters) ([]*model.Goal, error) {
	conditions := []string{"user_id = ?"}
	args := []any{userID}

	if filters.IsActive != nil {
		conditions = append(conditions, "is_active = ?")
		args = append(args, *filters.IsActive)
	}
	if filters.PeriodType != nil {
		conditions = append(conditions, "period_type = ?")
		args = append(args, *filters.PeriodType)
	}
	if filters.TargetType != nil {
		conditions = append(conditions, "target_type = ?")
		args = append(args, *filters.TargetType)
	}

	query := `SELECT * FROM goals WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY is_active DESC, created_at DESC`

	goals := []*model.Goal{}
	err := r.db.SelectContext(ctx, &goals, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ListActiveByOwner(ctx context.Context, userID string) ([]*model.Goal, error) {
	active := true
	return r.ListByOwner(ctx, userID, model.GoalFilters{IsActive: &active})
}

func (r *goalRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT * FROM goals WHERE is_active = $1 AND period_end < $2 ORDER BY period_end ASC`

	err := r.db.SelectContext(ctx, &goals, query, true, now)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func lockOwner(ctx context.Context, tx *sqlx.Tx, userID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE users SET updated_at = updated_at WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to lock owner: %w", err)
	}
	return nil
}

func countActive(ctx context.Context, q sqlx.QueryerContext, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND is_active = $2`
	err := sqlx.GetContext(ctx, q, &count, query, userID, true)
	return count, err
}

func expectRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
