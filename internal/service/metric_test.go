package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpace/internal/model"
)

func TestAggregateProfitIsFlooredAtZero(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")

	env.sale(t, owner, "10000", model.SaleStatusPaid, date(2025, 10, 5))
	env.adSpend(t, owner, "13000", date(2025, 10, 6))

	progress := env.createGoal(t, owner, october(model.TargetTypeProfit, "5000"))
	assertDecimal(t, "0", progress.CurrentValue)
	assertDecimal(t, "0", progress.ProgressPercentage)
}

func TestAggregateProfit(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")

	env.sale(t, owner, "10000", model.SaleStatusPaid, date(2025, 10, 5))
	env.sale(t, owner, "2500.50", model.SaleStatusRefunded, date(2025, 10, 5))
	env.adSpend(t, owner, "1500", date(2025, 10, 6))
	env.adSpend(t, owner, "2500", date(2025, 10, 20))
	env.adSpend(t, owner, "9000", date(2025, 11, 2))

	progress := env.createGoal(t, owner, october(model.TargetTypeProfit, "8000"))
	assertDecimal(t, "6000", progress.CurrentValue)
	assertDecimal(t, "75", progress.ProgressPercentage)
}

func TestAggregateIsScopedToOwnerAndWindow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	other := env.user(t, "other@example.com")

	env.sale(t, owner, "100", model.SaleStatusPaid, date(2025, 10, 1))
	env.sale(t, owner, "200", model.SaleStatusDelivered, date(2025, 10, 31))
	env.sale(t, owner, "400", model.SaleStatusCancelled, date(2025, 10, 10))
	env.sale(t, owner, "800", model.SaleStatusPaid, date(2025, 11, 1))
	env.sale(t, other, "1600", model.SaleStatusPaid, date(2025, 10, 10))

	metrics := env.progress.metrics
	goal := &model.Goal{
		UserID:      owner,
		TargetType:  model.TargetTypeRevenue,
		PeriodStart: date(2025, 10, 1),
		PeriodEnd:   date(2025, 10, 31),
	}

	revenue, err := metrics.Aggregate(context.Background(), goal)
	require.NoError(t, err)
	assertDecimal(t, "300", revenue)

	goal.TargetType = model.TargetTypeOrders
	orders, err := metrics.Aggregate(context.Background(), goal)
	require.NoError(t, err)
	assertDecimal(t, "2", orders)
}

func TestAggregateUnknownTargetType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.progress.metrics.Aggregate(context.Background(), &model.Goal{TargetType: "VISITS"})
	require.Error(t, err)
}

func TestAggregateRoundsToMoneyScale(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")

	env.sale(t, owner, "0.1", model.SaleStatusPaid, date(2025, 10, 2))
	env.sale(t, owner, "0.2", model.SaleStatusPaid, date(2025, 10, 3))
	env.adSpend(t, owner, "0.1", date(2025, 10, 4))
	env.adSpend(t, owner, "0.2", date(2025, 10, 5))

	revenue := env.createGoal(t, owner, october(model.TargetTypeRevenue, "1"))
	assert.Equal(t, "0.3", revenue.CurrentValue.String())

	got, err := env.goals.Get(context.Background(), revenue.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "0.3", got.CurrentValue.String())

	profit := env.createGoal(t, owner, october(model.TargetTypeProfit, "1"))
	assert.True(t, profit.CurrentValue.IsZero(), profit.CurrentValue.String())
}
