package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
)

const day = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

type ProgressService struct {
	goals         repository.GoalRepository
	metrics       *MetricService
	notifications *NotificationService
	now           func() time.Time
}

func NewProgressService(
	goals repository.GoalRepository,
	metrics *MetricService,
	notifications *NotificationService,
) *ProgressService {
	return &ProgressService{
		goals:         goals,
		metrics:       metrics,
		notifications: notifications,
		now:           utcNow,
	}
}

// Refresh recomputes the goal's current value, stores it and returns the
// enriched view. Milestone notification failures are logged, never returned.
func (s *ProgressService) Refresh(ctx context.Context, goal *model.Goal) (*model.GoalProgress, error) {
	value, err := s.metrics.Aggregate(ctx, goal)
	if err != nil {
		return nil, err
	}

	if !goal.IsCustom() {
		err = s.goals.UpdateCurrentValue(ctx, goal.UserID, goal.ID, value)
		if err != nil {
			return nil, fmt.Errorf("failed to store current value: %w", err)
		}
		goal.CurrentValue = value
	}

	progress := CalculateProgress(goal, s.now())

	if s.notifications != nil && goal.IsActive {
		_, err = s.notifications.Check(ctx, progress)
		if err != nil {
			slog.Error("failed to process goal milestone", "error", err, "goal_id", goal.ID, "user_id", goal.UserID)
		}
	}

	return progress, nil
}

// CalculateProgress derives percentage, pacing and status for goal at now.
// Percentages and daily figures are rounded half-up to 2 decimals.
func CalculateProgress(goal *model.Goal, now time.Time) *model.GoalProgress {
	percentage := decimal.Zero
	if goal.TargetValue.IsPositive() {
		percentage = goal.CurrentValue.Mul(hundred).Div(goal.TargetValue).Round(2)
	}

	elapsed := now.Sub(goal.PeriodStart)
	remaining := goal.PeriodEnd.Sub(now)
	total := goal.PeriodEnd.Sub(goal.PeriodStart)

	daysElapsed := 0
	if elapsed > 0 {
		daysElapsed = int(elapsed / day)
	}

	daysRemaining := 0
	if remaining > 0 {
		daysRemaining = int((remaining + day - 1) / day)
	}

	expected := decimal.Zero
	if total > 0 && elapsed > 0 {
		expected = decimal.NewFromInt(int64(elapsed)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
	}

	dailyTarget := decimal.Zero
	if daysRemaining > 0 {
		dailyTarget = goal.TargetValue.Sub(goal.CurrentValue).Div(decimal.NewFromInt(int64(daysRemaining))).Round(2)
	}

	dailyAvg := decimal.Zero
	if daysElapsed > 0 {
		dailyAvg = goal.CurrentValue.Div(decimal.NewFromInt(int64(daysElapsed))).Round(2)
	}

	return &model.GoalProgress{
		Goal:               goal,
		ProgressPercentage: percentage,
		ProgressStatus:     classify(percentage, now, goal.PeriodEnd),
		DaysRemaining:      daysRemaining,
		DaysElapsed:        daysElapsed,
		ExpectedProgress:   expected,
		IsOnTrack:          percentage.GreaterThanOrEqual(expected) || percentage.GreaterThanOrEqual(model.ThresholdComplete),
		DailyTarget:        dailyTarget,
		CurrentDailyAvg:    dailyAvg,
	}
}

// classify applies the status rules in priority order; the first match wins.
func classify(percentage decimal.Decimal, now, periodEnd time.Time) model.ProgressStatus {
	switch {
	case percentage.GreaterThanOrEqual(model.ThresholdComplete):
		return model.ProgressCompleted
	case now.After(periodEnd):
		return model.ProgressExpiredIncomplete
	case percentage.GreaterThanOrEqual(model.ThresholdAlmost):
		return model.ProgressAlmostThere
	case percentage.GreaterThanOrEqual(model.ThresholdStarted):
		return model.ProgressInProgress
	default:
		return model.ProgressNotStarted
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
