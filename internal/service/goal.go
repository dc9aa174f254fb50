package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
)

var ErrInvalidGoal = errors.New("goal points must not be negative")

// GoalService manages declared weekly targets outside the ledger, for goals
// set by an administrator instead of posted as goal emoji.
type GoalService struct {
	weekRepo repository.WeekRepository
	goalRepo repository.UserGoalRepository
	now      func() time.Time
}

func NewGoalService(weekRepo repository.WeekRepository, goalRepo repository.UserGoalRepository) *GoalService {
	return &GoalService{
		weekRepo: weekRepo,
		goalRepo: goalRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Declare sets a user's target for a week. Actuals and rewards already
// stored on the row are left alone.
func (s *GoalService) Declare(ctx context.Context, userID uint64, weekID string, goalPoints int) (*model.UserGoal, error) {
	if goalPoints < 0 {
		return nil, ErrInvalidGoal
	}

	_, err := s.weekRepo.ByID(ctx, weekID)
	if err != nil {
		return nil, err
	}

	goal := &model.UserGoal{
		ID:         uuid.New().String(),
		UserID:     userID,
		WeekID:     weekID,
		GoalPoints: goalPoints,
		UpdatedAt:  s.now(),
	}
	err = s.goalRepo.SetGoalPoints(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to declare goal: %w", err)
	}

	return s.goalRepo.ByUserWeek(ctx, userID, weekID)
}

func (s *GoalService) Goal(ctx context.Context, userID uint64, weekID string) (*model.UserGoal, error) {
	return s.goalRepo.ByUserWeek(ctx, userID, weekID)
}

func (s *GoalService) Goals(ctx context.Context, weekID string) ([]*model.UserGoal, error) {
	return s.goalRepo.ByWeek(ctx, weekID)
}
