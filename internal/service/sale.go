package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/validation"
)

type RecordSaleInput struct {
	Amount    decimal.Decimal `json:"amount" validate:"gt=0,decimal_places=2"`
	Status    string          `json:"status" validate:"required,oneof=pending paid delivered cancelled refunded"`
	Source    string          `json:"source" validate:"omitempty,oneof=manual pagbank coinzz whatsapp"`
	CreatedAt *time.Time      `json:"created_at"`
}

type RecordAdSpendInput struct {
	Amount    decimal.Decimal `json:"amount" validate:"gt=0,decimal_places=2"`
	Platform  string          `json:"platform" validate:"required,oneof=facebook_ads google_ads tiktok_ads"`
	SpendDate time.Time       `json:"spend_date" validate:"required"`
}

// SaleService records the facts goals are measured against and refreshes the
// owner's active goals after each write.
type SaleService struct {
	repo     repository.SaleRepository
	goals    repository.GoalRepository
	progress *ProgressService
	now      func() time.Time
}

func NewSaleService(repo repository.SaleRepository, goals repository.GoalRepository, progress *ProgressService) *SaleService {
	return &SaleService{
		repo:     repo,
		goals:    goals,
		progress: progress,
		now:      utcNow,
	}
}

func (s *SaleService) RecordSale(ctx context.Context, userID string, input RecordSaleInput) (*model.Sale, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    input.Amount,
		Status:    input.Status,
		Source:    input.Source,
		CreatedAt: s.now(),
	}
	if sale.Source == "" {
		sale.Source = model.SaleSourceManual
	}
	if input.CreatedAt != nil {
		sale.CreatedAt = input.CreatedAt.UTC()
	}

	err = s.repo.CreateSale(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.refreshActive(ctx, userID)
	return sale, nil
}

func (s *SaleService) RecordAdSpend(ctx context.Context, userID string, input RecordAdSpendInput) (*model.AdSpend, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	spend := &model.AdSpend{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    input.Amount,
		Platform:  input.Platform,
		SpendDate: input.SpendDate.UTC(),
		CreatedAt: s.now(),
	}

	err = s.repo.CreateAdSpend(ctx, spend)
	if err != nil {
		return nil, fmt.Errorf("failed to record ad spend: %w", err)
	}

	s.refreshActive(ctx, userID)
	return spend, nil
}

// refreshActive recalculates every active goal of the owner. The write that
// triggered it has already succeeded, so failures are only logged.
func (s *SaleService) refreshActive(ctx context.Context, userID string) {
	goals, err := s.goals.ListActiveByOwner(ctx, userID)
	if err != nil {
		slog.Error("failed to list goals for refresh", "error", err, "user_id", userID)
		return
	}

	for _, goal := range goals {
		_, err := s.progress.Refresh(ctx, goal)
		if err != nil {
			slog.Error("failed to refresh goal", "error", err, "goal_id", goal.ID, "user_id", userID)
		}
	}
}
