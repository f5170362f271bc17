package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	Milestone80  = 80
	Milestone100 = 100
)

// MilestoneNotification is the payload handed to the delivery service.
type MilestoneNotification struct {
	GoalID       string          `json:"goal_id"`
	GoalTitle    string          `json:"goal_title"`
	Percentage   decimal.Decimal `json:"percentage"`
	Milestone    int             `json:"milestone"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	TargetType   TargetType      `json:"target_type"`
	PeriodType   PeriodType      `json:"period_type"`
	Contact      string          `json:"contact"`
	Timestamp    time.Time       `json:"timestamp"`
}
