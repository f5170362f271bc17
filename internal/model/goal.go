package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxActiveGoals is the number of goals an owner may have active at once.
const MaxActiveGoals = 5

type TargetType string

const (
	TargetTypeRevenue TargetType = "REVENUE"
	TargetTypeProfit  TargetType = "PROFIT"
	TargetTypeOrders  TargetType = "ORDERS"
	TargetTypeCustom  TargetType = "CUSTOM"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetTypeRevenue, TargetTypeProfit, TargetTypeOrders, TargetTypeCustom:
		return true
	}
	return false
}

type PeriodType string

const (
	PeriodTypeDaily     PeriodType = "DAILY"
	PeriodTypeWeekly    PeriodType = "WEEKLY"
	PeriodTypeMonthly   PeriodType = "MONTHLY"
	PeriodTypeQuarterly PeriodType = "QUARTERLY"
	PeriodTypeYearly    PeriodType = "YEARLY"
)

func (p PeriodType) Valid() bool {
	switch p {
	case PeriodTypeDaily, PeriodTypeWeekly, PeriodTypeMonthly, PeriodTypeQuarterly, PeriodTypeYearly:
		return true
	}
	return false
}

// Reasons recorded when a goal leaves the active set.
const (
	InactiveReasonDeleted = "deleted"
	InactiveReasonExpired = "expired"
)

type Goal struct {
	ID             string          `db:"id" json:"id"`
	UserID         string          `db:"user_id" json:"owner_id"`
	Title          string          `db:"title" json:"title"`
	Description    string          `db:"description" json:"description"`
	TargetType     TargetType      `db:"target_type" json:"target_type"`
	TargetValue    decimal.Decimal `db:"target_value" json:"target_value"`
	CurrentValue   decimal.Decimal `db:"current_value" json:"current_value"`
	PeriodType     PeriodType      `db:"period_type" json:"period_type"`
	PeriodStart    time.Time       `db:"period_start" json:"period_start"`
	PeriodEnd      time.Time       `db:"period_end" json:"period_end"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	InactiveReason *string         `db:"inactive_reason" json:"inactive_reason,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// IsCustom reports whether the goal's value is maintained by the caller
// instead of being aggregated from sales data.
func (g *Goal) IsCustom() bool {
	return g.TargetType == TargetTypeCustom
}

// Reached reports whether the stored value meets the target.
func (g *Goal) Reached() bool {
	return g.CurrentValue.GreaterThanOrEqual(g.TargetValue)
}

// GoalFilters narrows ListByOwner. Nil fields are not applied.
type GoalFilters struct {
	IsActive   *bool
	PeriodType *PeriodType
	TargetType *TargetType
}
