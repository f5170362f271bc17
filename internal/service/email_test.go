package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpace/internal/model"
)

func TestGoalMilestoneEmailTemplate(t *testing.T) {
	n := &model.MilestoneNotification{
		GoalID:       "g1",
		GoalTitle:    "October revenue",
		Percentage:   decimal.RequireFromString("85"),
		Milestone:    model.Milestone80,
		TargetValue:  decimal.NewFromInt(10000),
		CurrentValue: decimal.NewFromInt(8500),
		TargetType:   model.TargetTypeRevenue,
		PeriodType:   model.PeriodTypeMonthly,
	}

	subject, body := goalMilestoneEmailTemplate(n, "https://app.example.com/app/goals/g1", "Acme")
	assert.Equal(t, "80% of the way: October revenue", subject)
	assert.Contains(t, body, `Monthly Revenue goal "October revenue" passed 80%`)
	assert.Contains(t, body, "$8500.00 of $10000.00")
	assert.Contains(t, body, "The Acme Team")

	n.Milestone = model.Milestone100
	n.TargetType = model.TargetTypeOrders
	n.TargetValue = decimal.NewFromInt(40)
	n.CurrentValue = decimal.NewFromInt(42)
	subject, body = goalMilestoneEmailTemplate(n, "https://app.example.com/app/goals/g1", "Acme")
	assert.Equal(t, "Goal reached: October revenue", subject)
	assert.Contains(t, body, "42 orders of 40 orders")
}

func TestEmailServiceDevModeOnlyLogs(t *testing.T) {
	email := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Acme", true)

	err := email.SendGoalMilestone(context.Background(), "owner@example.com", &model.MilestoneNotification{GoalID: "g1", Milestone: 80})
	require.NoError(t, err)
}

func TestEmailServiceWithoutClient(t *testing.T) {
	email := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Acme", false)

	err := email.SendGoalMilestone(context.Background(), "owner@example.com", &model.MilestoneNotification{GoalID: "g1", Milestone: 80})
	require.Error(t, err)
}
