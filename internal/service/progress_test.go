package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpace/internal/model"
)

func goalWith(current, target string, start, end time.Time) *model.Goal {
	return &model.Goal{
		ID:           "goal-1",
		UserID:       "user-1",
		TargetType:   model.TargetTypeRevenue,
		TargetValue:  decimal.RequireFromString(target),
		CurrentValue: decimal.RequireFromString(current),
		PeriodStart:  start,
		PeriodEnd:    end,
		IsActive:     true,
	}
}

func TestCalculateProgressStatusBoundaries(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)
	now := date(2025, 10, 11)

	tests := []struct {
		current    string
		percentage string
		status     model.ProgressStatus
	}{
		{"0", "0", model.ProgressNotStarted},
		{"999", "9.99", model.ProgressNotStarted},
		{"1000", "10", model.ProgressInProgress},
		{"7999", "79.99", model.ProgressInProgress},
		{"8000", "80", model.ProgressAlmostThere},
		{"8500", "85", model.ProgressAlmostThere},
		{"10000", "100", model.ProgressCompleted},
		{"12000", "120", model.ProgressCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			progress := CalculateProgress(goalWith(tt.current, "10000", start, end), now)
			assertDecimal(t, tt.percentage, progress.ProgressPercentage)
			assert.Equal(t, tt.status, progress.ProgressStatus)
		})
	}
}

func TestCalculateProgressRoundsHalfUp(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)

	// 1/3 of 3 = 33.333.. and 2/3 = 66.666..
	progress := CalculateProgress(goalWith("1", "3", start, end), date(2025, 10, 2))
	assertDecimal(t, "33.33", progress.ProgressPercentage)

	progress = CalculateProgress(goalWith("2", "3", start, end), date(2025, 10, 2))
	assertDecimal(t, "66.67", progress.ProgressPercentage)

	progress = CalculateProgress(goalWith("1", "8", start, end), date(2025, 10, 2))
	assertDecimal(t, "12.5", progress.ProgressPercentage)

	// 0.125% is exactly half way between 0.12 and 0.13
	progress = CalculateProgress(goalWith("1", "800", start, end), date(2025, 10, 2))
	assertDecimal(t, "0.13", progress.ProgressPercentage)
}

func TestCalculateProgressPacing(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)

	progress := CalculateProgress(goalWith("10950", "15000", start, end), now)

	assertDecimal(t, "73", progress.ProgressPercentage)
	assert.Equal(t, 15, progress.DaysElapsed)
	assert.Equal(t, 15, progress.DaysRemaining)
	// 15.5 of 30 days
	assertDecimal(t, "51.67", progress.ExpectedProgress)
	assert.True(t, progress.IsOnTrack)
	assertDecimal(t, "270", progress.DailyTarget)
	assertDecimal(t, "730", progress.CurrentDailyAvg)
	assert.Equal(t, model.ProgressInProgress, progress.ProgressStatus)
}

func TestCalculateProgressBehindPace(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)

	progress := CalculateProgress(goalWith("3000", "15000", start, end), date(2025, 10, 21))

	assertDecimal(t, "20", progress.ProgressPercentage)
	assertDecimal(t, "66.67", progress.ExpectedProgress)
	assert.False(t, progress.IsOnTrack)
	assert.Equal(t, 20, progress.DaysElapsed)
	assert.Equal(t, 10, progress.DaysRemaining)
	assertDecimal(t, "1200", progress.DailyTarget)
	assertDecimal(t, "150", progress.CurrentDailyAvg)
}

func TestCalculateProgressBeforeStart(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)

	progress := CalculateProgress(goalWith("0", "1000", start, end), date(2025, 9, 25))

	assert.Equal(t, 0, progress.DaysElapsed)
	assert.Equal(t, 36, progress.DaysRemaining)
	assertDecimal(t, "0", progress.ExpectedProgress)
	assertDecimal(t, "0", progress.CurrentDailyAvg)
	assert.True(t, progress.IsOnTrack)
	assert.Equal(t, model.ProgressNotStarted, progress.ProgressStatus)
}

func TestCalculateProgressAfterEnd(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)
	now := date(2025, 11, 15)

	expired := CalculateProgress(goalWith("9000", "10000", start, end), now)
	assert.Equal(t, model.ProgressExpiredIncomplete, expired.ProgressStatus)
	assert.Equal(t, 0, expired.DaysRemaining)
	assertDecimal(t, "0", expired.DailyTarget)
	assertDecimal(t, "150", expired.ExpectedProgress)
	assert.False(t, expired.IsOnTrack)

	// completion outranks expiry
	done := CalculateProgress(goalWith("10000", "10000", start, end), now)
	assert.Equal(t, model.ProgressCompleted, done.ProgressStatus)
	assert.True(t, done.IsOnTrack)
}

func TestCalculateProgressZeroTarget(t *testing.T) {
	start, end := date(2025, 10, 1), date(2025, 10, 31)

	progress := CalculateProgress(goalWith("50", "0", start, end), date(2025, 10, 2))
	assertDecimal(t, "0", progress.ProgressPercentage)
	assert.Equal(t, model.ProgressNotStarted, progress.ProgressStatus)
}

func TestCalculateProgressDegeneratePeriod(t *testing.T) {
	at := date(2025, 10, 1)

	progress := CalculateProgress(goalWith("0", "100", at, at), at.Add(time.Hour))
	assertDecimal(t, "0", progress.ExpectedProgress)
}

func TestRefreshPersistsAggregate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "owner@example.com")

	created := env.createGoal(t, owner, october(model.TargetTypeRevenue, "1000"))
	assertDecimal(t, "0", created.CurrentValue)

	// insert directly so SaleService does not refresh for us
	_, err := env.db.Exec(`INSERT INTO sales (id, user_id, amount, status, source, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		"sale-1", owner, "250", model.SaleStatusPaid, model.SaleSourceManual, date(2025, 10, 5))
	require.NoError(t, err)

	stored, err := env.goalRepo.ByID(ctx, created.ID)
	require.NoError(t, err)
	assertDecimal(t, "0", stored.CurrentValue)

	progress, err := env.progress.Refresh(ctx, stored)
	require.NoError(t, err)
	assertDecimal(t, "250", progress.CurrentValue)
	assertDecimal(t, "25", progress.ProgressPercentage)

	stored, err = env.goalRepo.ByID(ctx, created.ID)
	require.NoError(t, err)
	assertDecimal(t, "250", stored.CurrentValue)
}
