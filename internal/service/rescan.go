package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
)

// RescanService replays historical messages of one week through the ledger
// in force mode, so late edits converge to what live processing would store.
type RescanService struct {
	weekRepo repository.WeekRepository
	ledger   *LedgerService
}

func NewRescanService(weekRepo repository.WeekRepository, ledger *LedgerService) *RescanService {
	return &RescanService{
		weekRepo: weekRepo,
		ledger:   ledger,
	}
}

// Run processes messages in order. A failing message is recorded and
// skipped. Cancelling ctx stops the run between messages; the partial result
// is returned together with ctx.Err(). Only a missing week or catalog fails
// the whole run.
func (s *RescanService) Run(ctx context.Context, weekID string, messages []model.RescanMessage) (model.RescanResult, error) {
	result := model.RescanResult{WeekID: weekID}

	week, err := s.weekRepo.ByID(ctx, weekID)
	if err != nil {
		return result, fmt.Errorf("failed to load week %s: %w", weekID, err)
	}

	catalog, _, err := s.ledger.catalogs.ForWeek(ctx, week)
	if err != nil {
		return result, err
	}

	slog.Info("rescan started", "week_id", weekID, "week", week.Number, "messages", len(messages))

	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			slog.Warn("rescan cancelled",
				"week_id", weekID,
				"processed", result.TotalProcessed,
				"remaining", len(messages)-result.TotalProcessed,
			)
			return result, err
		}

		_, err := s.ledger.record(ctx, week, catalog, msg.MessageID, msg.UserID, msg.Content, true)
		result.TotalProcessed++
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, model.RescanFailure{
				MessageID: msg.MessageID,
				Error:     err.Error(),
			})
			slog.Warn("rescan message failed", "week_id", weekID, "message_id", msg.MessageID, "error", err)
			continue
		}
		result.Succeeded++
	}

	slog.Info("rescan finished",
		"week_id", weekID,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)

	return result, nil
}

// RunBatches feeds paginated history through Run, one page at a time, and
// merges the results. next returns the following page or an empty slice
// when history is exhausted; paging delay is the caller's concern.
func (s *RescanService) RunBatches(ctx context.Context, weekID string, next func(ctx context.Context) ([]model.RescanMessage, error)) (model.RescanResult, error) {
	total := model.RescanResult{WeekID: weekID}

	for {
		batch, err := next(ctx)
		if err != nil {
			return total, fmt.Errorf("failed to fetch rescan batch: %w", err)
		}
		if len(batch) == 0 {
			return total, nil
		}

		res, err := s.Run(ctx, weekID, batch)
		total.Succeeded += res.Succeeded
		total.Failed += res.Failed
		total.TotalProcessed += res.TotalProcessed
		total.Failures = append(total.Failures, res.Failures...)
		total.Cancelled = res.Cancelled
		if err != nil {
			return total, err
		}
	}
}
