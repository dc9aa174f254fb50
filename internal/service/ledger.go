package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/points"
	"github.com/templui/pomodoro-challenge/internal/repository"
)

// LedgerService keeps exactly one message log row per counted chat message.
type LedgerService struct {
	resolver *WeekResolver
	weekRepo repository.WeekRepository
	logRepo  repository.MessageLogRepository
	catalogs *CatalogService
	now      func() time.Time
}

func NewLedgerService(
	resolver *WeekResolver,
	weekRepo repository.WeekRepository,
	logRepo repository.MessageLogRepository,
	catalogs *CatalogService,
) *LedgerService {
	return &LedgerService{
		resolver: resolver,
		weekRepo: weekRepo,
		logRepo:  logRepo,
		catalogs: catalogs,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Process counts a new chat message. Messages outside a tracked thread, and
// messages already counted (unless force is set), are not errors: they come
// back as StatusNoActiveWeek and StatusAlreadyProcessed.
func (s *LedgerService) Process(ctx context.Context, messageID, userID uint64, content string, channelID *uint64, force bool) (model.ProcessResult, error) {
	week, err := s.resolver.Resolve(ctx, channelID)
	if err != nil {
		return model.ProcessResult{}, err
	}
	if week == nil {
		return model.ProcessResult{Status: model.StatusNoActiveWeek}, nil
	}

	return s.ProcessInWeek(ctx, week, messageID, userID, content, force)
}

// ProcessInWeek counts a message against a known week, skipping channel
// resolution. Historical imports use it with force set.
func (s *LedgerService) ProcessInWeek(ctx context.Context, week *model.Week, messageID, userID uint64, content string, force bool) (model.ProcessResult, error) {
	if !force {
		existing, err := s.logRepo.ByMessageID(ctx, messageID)
		if err == nil {
			return alreadyProcessed(existing), nil
		}
		if !errors.Is(err, repository.ErrMessageLogNotFound) {
			return model.ProcessResult{}, fmt.Errorf("failed to check message %d: %w", messageID, err)
		}
	}

	catalog, _, err := s.catalogs.ForWeek(ctx, week)
	if err != nil {
		return model.ProcessResult{}, err
	}

	return s.record(ctx, week, catalog, messageID, userID, content, force)
}

func (s *LedgerService) record(ctx context.Context, week *model.Week, catalog *points.Catalog, messageID, userID uint64, content string, force bool) (model.ProcessResult, error) {
	calc := points.CalculateText(content, catalog)

	if calc.ResolvedTokens == 0 {
		if !force {
			return model.ProcessResult{Status: model.StatusNoEmoji, WeekID: week.ID}, nil
		}
		// Forced reprocessing of a message whose emoji were edited away
		// zeroes the existing row instead of creating an empty one.
		err := s.logRepo.UpdatePoints(ctx, messageID, model.Breakdown{})
		if errors.Is(err, repository.ErrMessageLogNotFound) {
			return model.ProcessResult{Status: model.StatusNoEmoji, WeekID: week.ID}, nil
		}
		if err != nil {
			return model.ProcessResult{}, fmt.Errorf("failed to reset message %d: %w", messageID, err)
		}
		return model.ProcessResult{Status: model.StatusProcessed, WeekID: week.ID}, nil
	}

	now := s.now()
	log := &model.MessageLog{
		MessageID: messageID,
		UserID:    userID,
		WeekID:    week.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	log.SetBreakdown(calc.Points)

	if force {
		err := s.logRepo.Upsert(ctx, log)
		if err != nil {
			return model.ProcessResult{}, fmt.Errorf("failed to store message %d: %w", messageID, err)
		}
	} else {
		inserted, err := s.logRepo.Insert(ctx, log)
		if err != nil {
			return model.ProcessResult{}, fmt.Errorf("failed to store message %d: %w", messageID, err)
		}
		if !inserted {
			// Lost a race with a concurrent delivery of the same message.
			existing, err := s.logRepo.ByMessageID(ctx, messageID)
			if err != nil {
				return model.ProcessResult{}, fmt.Errorf("failed to reload message %d: %w", messageID, err)
			}
			return alreadyProcessed(existing), nil
		}
	}

	slog.Debug("message processed",
		"message_id", messageID,
		"user_id", userID,
		"week_id", log.WeekID,
		"pomodoro", calc.Points.Pomodoro,
		"bonus", calc.Points.Bonus,
		"goal", calc.Points.Goal,
		"force", force,
	)

	return model.ProcessResult{
		Status:         model.StatusProcessed,
		WeekID:         log.WeekID,
		Points:         calc.Points,
		ResolvedTokens: calc.ResolvedTokens,
	}, nil
}

// Update recalculates an edited message against the week it was counted in.
// Edits to messages that were never counted return false and write nothing.
func (s *LedgerService) Update(ctx context.Context, messageID uint64, newContent string) (bool, error) {
	existing, err := s.logRepo.ByMessageID(ctx, messageID)
	if errors.Is(err, repository.ErrMessageLogNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load message %d: %w", messageID, err)
	}

	week, err := s.weekRepo.ByID(ctx, existing.WeekID)
	if err != nil {
		return false, fmt.Errorf("failed to load week of message %d: %w", messageID, err)
	}

	catalog, _, err := s.catalogs.ForWeek(ctx, week)
	if err != nil {
		return false, err
	}

	calc := points.CalculateText(newContent, catalog)
	err = s.logRepo.UpdatePoints(ctx, messageID, calc.Points)
	if errors.Is(err, repository.ErrMessageLogNotFound) {
		// deleted between read and write
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update message %d: %w", messageID, err)
	}

	slog.Debug("message updated", "message_id", messageID, "week_id", week.ID, "points", calc.Points)
	return true, nil
}

// Delete forgets a message. It returns false when nothing was stored.
func (s *LedgerService) Delete(ctx context.Context, messageID uint64) (bool, error) {
	err := s.logRepo.Delete(ctx, messageID)
	if errors.Is(err, repository.ErrMessageLogNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete message %d: %w", messageID, err)
	}
	return true, nil
}

// Entry returns the stored row for a message.
func (s *LedgerService) Entry(ctx context.Context, messageID uint64) (*model.MessageLog, error) {
	return s.logRepo.ByMessageID(ctx, messageID)
}

func alreadyProcessed(existing *model.MessageLog) model.ProcessResult {
	return model.ProcessResult{
		Status: model.StatusAlreadyProcessed,
		WeekID: existing.WeekID,
		Points: existing.Breakdown(),
	}
}
