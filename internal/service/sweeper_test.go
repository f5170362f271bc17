package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpace/internal/model"
)

func TestSweepDeactivatesExpiredIncompleteGoals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner@example.com")

	env.sale(t, owner, "1200", model.SaleStatusPaid, date(2025, 9, 10))

	september := october(model.TargetTypeRevenue, "5000")
	september.PeriodStart = date(2025, 9, 1)
	september.PeriodEnd = date(2025, 9, 30)
	incomplete := env.createGoal(t, owner, september)

	september.TargetValue = decimal.NewFromInt(1200)
	completed := env.createGoal(t, owner, september)
	assert.Equal(t, model.ProgressCompleted, completed.ProgressStatus)

	running := env.createGoal(t, owner, october(model.TargetTypeRevenue, "5000"))

	deactivated, err := env.sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deactivated)

	stored, err := env.goalRepo.ByID(ctx, incomplete.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.InactiveReason)
	assert.Equal(t, model.InactiveReasonExpired, *stored.InactiveReason)

	for _, id := range []string{completed.ID, running.ID} {
		stored, err := env.goalRepo.ByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, stored.IsActive, id)
	}

	deactivated, err = env.sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, deactivated)
}

func TestSweepWithNothingExpired(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	env.createGoal(t, owner, october(model.TargetTypeOrders, "3"))

	deactivated, err := env.sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deactivated)
}

func TestSweepKeepsGoalCompletedByFractionalSales(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner@example.com")

	env.sale(t, owner, "0.1", model.SaleStatusPaid, date(2025, 9, 10))
	env.sale(t, owner, "0.7", model.SaleStatusPaid, date(2025, 9, 11))

	september := october(model.TargetTypeRevenue, "0.8")
	september.PeriodStart = date(2025, 9, 1)
	september.PeriodEnd = date(2025, 9, 30)
	created := env.createGoal(t, owner, september)

	assertDecimal(t, "0.8", created.CurrentValue)
	assert.Equal(t, model.ProgressCompleted, created.ProgressStatus)

	deactivated, err := env.sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, deactivated)

	stored, err := env.goalRepo.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Nil(t, stored.InactiveReason)
}
