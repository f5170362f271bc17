package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Window is an inclusive [From, To] range used by aggregate queries.
type Window struct {
	From time.Time
	To   time.Time
}

// MoneyScale matches the NUMERIC(15, 2) money columns. SQLite sums them as
// floats, so totals are rounded back to this scale before use.
const MoneyScale = 2

type MetricRepository interface {
	SumSales(ctx context.Context, userID string, window Window, statuses []string) (decimal.Decimal, error)
	CountSales(ctx context.Context, userID string, window Window, statuses []string) (int64, error)
	SumAdSpend(ctx context.Context, userID string, window Window) (decimal.Decimal, error)
}

type metricRepository struct {
	db *sqlx.DB
}

func NewMetricRepository(db *sqlx.DB) MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) SumSales(ctx context.Context, userID string, window Window, statuses []string) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}

	query, args, err := sqlx.In(
		`SELECT COALESCE(SUM(amount), 0) FROM sales
		 WHERE user_id = ? AND created_at >= ? AND created_at <= ? AND status IN (?)`,
		userID, window.From, window.To, statuses,
	)
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	err = r.db.GetContext(ctx, &total, r.db.Rebind(query), args...)
	if err != nil {
		return decimal.Zero, err
	}

	return total.Round(MoneyScale), nil
}

func (r *metricRepository) CountSales(ctx context.Context, userID string, window Window, statuses []string) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(
		`SELECT COUNT(*) FROM sales
		 WHERE user_id = ? AND created_at >= ? AND created_at <= ? AND status IN (?)`,
		userID, window.From, window.To, statuses,
	)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.GetContext(ctx, &count, r.db.Rebind(query), args...)
	return count, err
}

func (r *metricRepository) SumAdSpend(ctx context.Context, userID string, window Window) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM ad_spends
	          WHERE user_id = $1 AND spend_date >= $2 AND spend_date <= $3`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, userID, window.From, window.To)
	if err != nil {
		return decimal.Zero, err
	}

	return total.Round(MoneyScale), nil
}
