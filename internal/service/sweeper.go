package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
)

// SweeperService deactivates goals whose period ended before they were reached.
type SweeperService struct {
	repo repository.GoalRepository
	now  func() time.Time
}

func NewSweeperService(repo repository.GoalRepository) *SweeperService {
	return &SweeperService{repo: repo, now: utcNow}
}

// Sweep returns the number of goals it deactivated. Goals already inactive are
// never scanned, so an immediate second run deactivates nothing.
func (s *SweeperService) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	goals, err := s.repo.ListExpiredActive(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired goals: %w", err)
	}

	// current_value < target_value compares two columns, so it is filtered here
	var ids []string
	for _, goal := range goals {
		if !goal.Reached() {
			ids = append(ids, goal.ID)
		}
	}

	deactivated, err := s.repo.DeactivateByIDs(ctx, ids, model.InactiveReasonExpired)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired goals: %w", err)
	}

	slog.Info("expired goals swept", "scanned", len(goals), "deactivated", deactivated)
	return int(deactivated), nil
}
