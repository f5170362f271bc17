package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/model"
)

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *model.Sale) error
	CreateAdSpend(ctx context.Context, spend *model.AdSpend) error
}

type saleRepository struct {
	db *sqlx.DB
}

func NewSaleRepository(db *sqlx.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreateSale(ctx context.Context, sale *model.Sale) error {
	query := `INSERT INTO sales (id, user_id, amount, status, source, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.UserID,
		sale.Amount,
		sale.Status,
		sale.Source,
		sale.CreatedAt,
	)

	return err
}

func (r *saleRepository) CreateAdSpend(ctx context.Context, spend *model.AdSpend) error {
	query := `INSERT INTO ad_spends (id, user_id, amount, platform, spend_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		spend.ID,
		spend.UserID,
		spend.Amount,
		spend.Platform,
		spend.SpendDate,
		spend.CreatedAt,
	)

	return err
}
