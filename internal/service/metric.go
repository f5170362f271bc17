package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
)

// MetricService computes the raw value a goal is measured against.
type MetricService struct {
	repo repository.MetricRepository
}

func NewMetricService(repo repository.MetricRepository) *MetricService {
	return &MetricService{repo: repo}
}

// Aggregate returns the goal's metric over its period window, scoped to its owner.
// CUSTOM goals are returned as stored.
func (s *MetricService) Aggregate(ctx context.Context, goal *model.Goal) (decimal.Decimal, error) {
	window := repository.Window{From: goal.PeriodStart, To: goal.PeriodEnd}

	switch goal.TargetType {
	case model.TargetTypeRevenue:
		return s.revenue(ctx, goal.UserID, window)
	case model.TargetTypeProfit:
		return s.profit(ctx, goal.UserID, window)
	case model.TargetTypeOrders:
		return s.orders(ctx, goal.UserID, window)
	case model.TargetTypeCustom:
		return goal.CurrentValue, nil
	}

	return decimal.Zero, fmt.Errorf("unknown target type %q", goal.TargetType)
}

func (s *MetricService) revenue(ctx context.Context, userID string, window repository.Window) (decimal.Decimal, error) {
	total, err := s.repo.SumSales(ctx, userID, window, model.CountedSaleStatuses)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

func (s *MetricService) profit(ctx context.Context, userID string, window repository.Window) (decimal.Decimal, error) {
	revenue, err := s.revenue(ctx, userID, window)
	if err != nil {
		return decimal.Zero, err
	}

	spend, err := s.repo.SumAdSpend(ctx, userID, window)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ad spend: %w", err)
	}

	profit := revenue.Sub(spend)
	if profit.IsNegative() {
		return decimal.Zero, nil
	}
	return profit, nil
}

func (s *MetricService) orders(ctx context.Context, userID string, window repository.Window) (decimal.Decimal, error) {
	count, err := s.repo.CountSales(ctx, userID, window, model.CountedSaleStatuses)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to count sales: %w", err)
	}
	return decimal.NewFromInt(count), nil
}
