package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
)

// WeekResolver maps a chat channel to the week currently bound to it.
type WeekResolver struct {
	weekRepo repository.WeekRepository
}

func NewWeekResolver(weekRepo repository.WeekRepository) *WeekResolver {
	return &WeekResolver{weekRepo: weekRepo}
}

// Resolve returns the active week whose main or goal thread is channelID.
// A nil channel or an unbound channel yields (nil, nil).
func (r *WeekResolver) Resolve(ctx context.Context, channelID *uint64) (*model.Week, error) {
	if channelID == nil || *channelID == 0 {
		return nil, nil
	}

	week, err := r.weekRepo.ByThread(ctx, *channelID)
	if errors.Is(err, repository.ErrWeekNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve week for channel %d: %w", *channelID, err)
	}

	return week, nil
}
