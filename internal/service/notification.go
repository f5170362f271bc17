package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
)

// Notifier delivers milestone notifications to an owner's contact address.
type Notifier interface {
	SendGoalMilestone(ctx context.Context, contact string, notification *model.MilestoneNotification) error
}

type NotificationService struct {
	users      repository.UserRepository
	milestones repository.MilestoneRepository
	notifier   Notifier
	now        func() time.Time
}

func NewNotificationService(
	users repository.UserRepository,
	milestones repository.MilestoneRepository,
	notifier Notifier,
) *NotificationService {
	return &NotificationService{
		users:      users,
		milestones: milestones,
		notifier:   notifier,
		now:        utcNow,
	}
}

// MilestoneFor maps a progress status to the milestone it represents.
func MilestoneFor(status model.ProgressStatus) (int, bool) {
	switch status {
	case model.ProgressCompleted:
		return model.Milestone100, true
	case model.ProgressAlmostThere:
		return model.Milestone80, true
	}
	return 0, false
}

// Check fires the milestone notification for progress if it has not been sent
// for this goal before. It reports whether a notification was handed to the notifier.
// Delivery errors are logged; the milestone stays recorded and is not retried.
func (s *NotificationService) Check(ctx context.Context, progress *model.GoalProgress) (bool, error) {
	milestone, ok := MilestoneFor(progress.ProgressStatus)
	if !ok {
		return false, nil
	}

	owner, err := s.users.ByID(ctx, progress.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		slog.Warn("goal owner has no contact, skipping milestone", "goal_id", progress.ID, "user_id", progress.UserID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to resolve goal owner: %w", err)
	}

	now := s.now()
	recorded, err := s.milestones.Record(ctx, progress.ID, milestone, now)
	if err != nil {
		return false, fmt.Errorf("failed to record milestone: %w", err)
	}
	if !recorded {
		return false, nil
	}

	notification := &model.MilestoneNotification{
		GoalID:       progress.ID,
		GoalTitle:    progress.Title,
		Percentage:   progress.ProgressPercentage,
		Milestone:    milestone,
		TargetValue:  progress.TargetValue,
		CurrentValue: progress.CurrentValue,
		TargetType:   progress.TargetType,
		PeriodType:   progress.PeriodType,
		Contact:      owner.Email,
		Timestamp:    now,
	}

	err = s.notifier.SendGoalMilestone(ctx, owner.Email, notification)
	if err != nil {
		slog.Error("failed to send milestone notification", "error", err, "goal_id", progress.ID, "milestone", milestone)
		return false, nil
	}

	slog.Info("milestone notification sent", "goal_id", progress.ID, "milestone", milestone, "percentage", progress.ProgressPercentage.String())
	return true, nil
}
