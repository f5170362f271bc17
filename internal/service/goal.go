package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/validation"
)

var (
	ErrGoalNotFound     = repository.ErrGoalNotFound
	ErrGoalLimitReached = repository.ErrActiveLimitReached
	ErrGoalForbidden    = errors.New("goal belongs to another owner")
	ErrInvalidInput     = validation.ErrInvalid
	ErrInvalidPeriod    = &validation.Error{Field: "period_end", Message: "must be after period_start"}
)

type CreateGoalInput struct {
	Title       string           `json:"title" validate:"required,min=3,max=100"`
	Description string           `json:"description" validate:"max=500"`
	TargetType  model.TargetType `json:"target_type" validate:"required,oneof=REVENUE PROFIT ORDERS CUSTOM"`
	TargetValue decimal.Decimal  `json:"target_value" validate:"gt=0,decimal_places=2"`
	PeriodType  model.PeriodType `json:"period_type" validate:"required,oneof=DAILY WEEKLY MONTHLY QUARTERLY YEARLY"`
	PeriodStart time.Time        `json:"period_start" validate:"required"`
	PeriodEnd   time.Time        `json:"period_end" validate:"required"`
}

// UpdateGoalInput is a partial update. TargetType, TargetValue and PeriodStart
// are accepted for wire compatibility and ignored. CurrentValue only applies to
// CUSTOM goals.
type UpdateGoalInput struct {
	Title        *string           `json:"title" validate:"omitempty,min=3,max=100"`
	Description  *string           `json:"description" validate:"omitempty,max=500"`
	PeriodType   *model.PeriodType `json:"period_type" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY QUARTERLY YEARLY"`
	PeriodEnd    *time.Time        `json:"period_end"`
	IsActive     *bool             `json:"is_active"`
	CurrentValue *decimal.Decimal  `json:"current_value" validate:"omitempty,decimal_places=2"`

	TargetType  *model.TargetType `json:"target_type"`
	TargetValue *decimal.Decimal  `json:"target_value"`
	PeriodStart *time.Time        `json:"period_start"`
}

type GoalService struct {
	repo     repository.GoalRepository
	progress *ProgressService
	now      func() time.Time
}

func NewGoalService(repo repository.GoalRepository, progress *ProgressService) *GoalService {
	return &GoalService{
		repo:     repo,
		progress: progress,
		now:      utcNow,
	}
}

func (s *GoalService) Create(ctx context.Context, userID string, input CreateGoalInput) (*model.GoalProgress, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	canCreate, err := s.CanCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !canCreate {
		return nil, ErrGoalLimitReached
	}

	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, ErrInvalidPeriod
	}

	now := s.now()
	goal := &model.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		TargetType:   input.TargetType,
		TargetValue:  input.TargetValue,
		CurrentValue: decimal.Zero,
		PeriodType:   input.PeriodType,
		PeriodStart:  input.PeriodStart.UTC(),
		PeriodEnd:    input.PeriodEnd.UTC(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repo.CreateWithinLimit(ctx, goal, model.MaxActiveGoals)
	if errors.Is(err, repository.ErrActiveLimitReached) {
		return nil, ErrGoalLimitReached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return s.progress.Refresh(ctx, goal)
}

func (s *GoalService) Get(ctx context.Context, goalID, userID string) (*model.GoalProgress, error) {
	goal, err := s.owned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	return s.progress.Refresh(ctx, goal)
}

func (s *GoalService) Update(ctx context.Context, goalID, userID string, input UpdateGoalInput) (*model.GoalProgress, error) {
	goal, err := s.owned(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		input.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		input.Description = &description
	}

	err = validation.Struct(input)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		// omitempty lets a blanked title through the tags
		if *input.Title == "" {
			return nil, &validation.Error{Field: "title", Message: "is required"}
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.PeriodType != nil {
		goal.PeriodType = *input.PeriodType
	}
	if input.PeriodEnd != nil {
		end := input.PeriodEnd.UTC()
		if !end.After(goal.PeriodStart) {
			return nil, ErrInvalidPeriod
		}
		goal.PeriodEnd = end
	}
	if input.CurrentValue != nil && goal.IsCustom() {
		if input.CurrentValue.IsNegative() {
			return nil, &validation.Error{Field: "current_value", Message: "must be at least 0"}
		}
		goal.CurrentValue = *input.CurrentValue
	}

	if input.IsActive != nil && *input.IsActive != goal.IsActive {
		if *input.IsActive {
			err = s.repo.ReactivateWithinLimit(ctx, userID, goalID, model.MaxActiveGoals)
			if errors.Is(err, repository.ErrActiveLimitReached) {
				return nil, ErrGoalLimitReached
			}
			if err != nil {
				return nil, fmt.Errorf("failed to reactivate goal: %w", err)
			}
			goal.InactiveReason = nil
		} else {
			reason := model.InactiveReasonDeleted
			goal.InactiveReason = &reason
		}
		goal.IsActive = *input.IsActive
	}

	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return s.progress.Refresh(ctx, goal)
}

// Delete soft-deletes the goal. Deleting an inactive goal succeeds.
func (s *GoalService) Delete(ctx context.Context, goalID, userID string) error {
	_, err := s.owned(ctx, goalID, userID)
	if err != nil {
		return err
	}

	return s.repo.Deactivate(ctx, userID, goalID, model.InactiveReasonDeleted)
}

func (s *GoalService) CanCreate(ctx context.Context, userID string) (bool, error) {
	count, err := s.repo.CountActive(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to count active goals: %w", err)
	}

	return count < model.MaxActiveGoals, nil
}

// List returns the owner's goals matching every set filter, active first then
// newest first, each with fresh progress.
func (s *GoalService) List(ctx context.Context, userID string, filters model.GoalFilters) ([]*model.GoalProgress, error) {
	goals, err := s.repo.ListByOwner(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	result := make([]*model.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		progress, err := s.progress.Refresh(ctx, goal)
		if err != nil {
			return nil, err
		}
		result = append(result, progress)
	}

	return result, nil
}

// owned loads a goal and verifies it belongs to userID.
func (s *GoalService) owned(ctx context.Context, goalID, userID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if goal.UserID != userID {
		return nil, ErrGoalForbidden
	}

	return goal, nil
}
