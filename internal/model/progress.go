package model

import (
	"github.com/shopspring/decimal"
)

type ProgressStatus string

const (
	ProgressNotStarted        ProgressStatus = "NOT_STARTED"
	ProgressInProgress        ProgressStatus = "IN_PROGRESS"
	ProgressAlmostThere       ProgressStatus = "ALMOST_THERE"
	ProgressCompleted         ProgressStatus = "COMPLETED"
	ProgressExpiredIncomplete ProgressStatus = "EXPIRED_INCOMPLETE"
)

// Percentage thresholds used for status classification and milestones.
var (
	ThresholdStarted  = decimal.NewFromInt(10)
	ThresholdAlmost   = decimal.NewFromInt(80)
	ThresholdComplete = decimal.NewFromInt(100)
)

// GoalProgress is a goal enriched with fields computed at read time.
type GoalProgress struct {
	*Goal

	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	ProgressStatus     ProgressStatus  `json:"progress_status"`
	DaysRemaining      int             `json:"days_remaining"`
	DaysElapsed        int             `json:"days_elapsed"`
	ExpectedProgress   decimal.Decimal `json:"expected_progress"`
	IsOnTrack          bool            `json:"is_on_track"`
	DailyTarget        decimal.Decimal `json:"daily_target"`
	CurrentDailyAvg    decimal.Decimal `json:"current_daily_avg"`
}
