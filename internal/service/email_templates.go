package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/templui/goalpace/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// label turns an enum like QUARTERLY into "Quarterly".
func label[T ~string](v T) string {
	return titleCase.String(strings.ToLower(string(v)))
}

func formatGoalValue(targetType model.TargetType, v decimal.Decimal) string {
	switch targetType {
	case model.TargetTypeOrders:
		return v.String() + " orders"
	case model.TargetTypeCustom:
		return v.String()
	default:
		return "$" + v.StringFixed(2)
	}
}

func goalMilestoneEmailTemplate(n *model.MilestoneNotification, goalURL, appName string) (string, string) {
	current := formatGoalValue(n.TargetType, n.CurrentValue)
	target := formatGoalValue(n.TargetType, n.TargetValue)

	if n.Milestone >= model.Milestone100 {
		subject := fmt.Sprintf("Goal reached: %s", n.GoalTitle)
		body := fmt.Sprintf(`Congratulations! You reached your %s %s goal "%s".

Progress: %s%% (%s of %s)

See the details:
%s

Best,
The %s Team`, label(n.PeriodType), label(n.TargetType), n.GoalTitle, n.Percentage.String(), current, target, goalURL, appName)
		return subject, body
	}

	subject := fmt.Sprintf("%d%% of the way: %s", n.Milestone, n.GoalTitle)
	body := fmt.Sprintf(`You are almost there! Your %s %s goal "%s" passed %d%%.

Progress: %s%% (%s of %s)

Keep the pace:
%s

Best,
The %s Team`, label(n.PeriodType), label(n.TargetType), n.GoalTitle, n.Milestone, n.Percentage.String(), current, target, goalURL, appName)
	return subject, body
}
