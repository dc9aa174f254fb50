package service

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/templui/pomodoro-challenge/internal/db"
	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/storage"
)

var ErrArchiveDisabled = errors.New("leaderboard archive is not configured")

// LeaderboardService aggregates the ledger into weekly reports and assigns
// rewards to users who reached their goal.
type LeaderboardService struct {
	db       *sqlx.DB
	weekRepo repository.WeekRepository
	logRepo  repository.MessageLogRepository
	goalRepo repository.UserGoalRepository
	catalogs *CatalogService
	archive  storage.Storage
	pick     func(n int) int
	now      func() time.Time
}

// NewLeaderboardService wires the aggregator. archive may be nil, in which
// case posted reports are not archived.
func NewLeaderboardService(
	database *sqlx.DB,
	weekRepo repository.WeekRepository,
	logRepo repository.MessageLogRepository,
	goalRepo repository.UserGoalRepository,
	catalogs *CatalogService,
	archive storage.Storage,
) *LeaderboardService {
	return &LeaderboardService{
		db:       database,
		weekRepo: weekRepo,
		logRepo:  logRepo,
		goalRepo: goalRepo,
		catalogs: catalogs,
		archive:  archive,
		pick:     rand.IntN,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Generate builds the report for a week. It never returns an error: lookup
// and storage failures produce a ReportError report, and a week without
// counted messages produces ReportNoData.
func (s *LeaderboardService) Generate(ctx context.Context, weekID string) model.LeaderboardReport {
	report, err := s.generate(ctx, weekID)
	if err != nil {
		slog.Error("failed to generate leaderboard", "error", err, "week_id", weekID)
		return model.LeaderboardReport{
			Kind:        model.ReportError,
			WeekID:      weekID,
			MessageKey:  model.ReportErrorKey,
			GeneratedAt: s.now(),
		}
	}
	return report
}

func (s *LeaderboardService) generate(ctx context.Context, weekID string) (model.LeaderboardReport, error) {
	week, err := s.weekRepo.ByID(ctx, weekID)
	if err != nil {
		return model.LeaderboardReport{}, fmt.Errorf("failed to load week %s: %w", weekID, err)
	}

	catalog, challenge, err := s.catalogs.ForWeek(ctx, week)
	if err != nil {
		return model.LeaderboardReport{}, err
	}

	report := model.LeaderboardReport{
		Kind:          model.ReportNoData,
		Title:         fmt.Sprintf("Week %d Leaderboard", week.Number),
		ChallengeName: challenge.Name,
		WeekID:        week.ID,
		WeekNumber:    week.Number,
		GeneratedAt:   s.now(),
	}

	var (
		weekly     []model.UserTotals
		cumulative []model.UserTotals
		collected  []model.UserTotals
		goals      []*model.UserGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		weekly, err = s.logRepo.WeeklyTotals(gctx, week.ID)
		if err != nil {
			return fmt.Errorf("failed to sum week %s: %w", week.ID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cumulative, err = s.logRepo.CumulativeTotals(gctx, challenge.ID, week.Number)
		if err != nil {
			return fmt.Errorf("failed to sum challenge %s: %w", challenge.ID, err)
		}
		return nil
	})
	if week.Number > 0 {
		g.Go(func() error {
			var err error
			collected, err = s.logRepo.CumulativeTotals(gctx, challenge.ID, 0)
			if err != nil {
				return fmt.Errorf("failed to sum goal collection of challenge %s: %w", challenge.ID, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.ByWeek(gctx, week.ID)
		if err != nil {
			return fmt.Errorf("failed to load goals of week %s: %w", week.ID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.LeaderboardReport{}, err
	}

	if len(weekly) == 0 {
		report.MessageKey = model.ReportNoDataKey
		return report, nil
	}

	cumulativeByUser := lo.KeyBy(cumulative, func(t model.UserTotals) uint64 { return t.UserID })
	goalByUser := lo.KeyBy(goals, func(g *model.UserGoal) uint64 { return g.UserID })
	collectedByUser := lo.KeyBy(collected, func(t model.UserTotals) uint64 { return t.UserID })

	pool := catalog.Rewards()
	slices.Sort(pool)

	now := s.now()
	entries := make([]model.LeaderboardEntry, 0, len(weekly))
	rows := make([]*model.UserGoal, 0, len(weekly))

	for _, totals := range weekly {
		points := totals.Breakdown()
		existing := goalByUser[totals.UserID]

		// Without goal emoji in the week itself, the target is a declared
		// goal, then whatever was posted during goal collection (week 0).
		if points.Goal == 0 && existing != nil {
			points.Goal = existing.GoalPoints
		}
		if points.Goal == 0 {
			points.Goal = collectedByUser[totals.UserID].Goal
		}

		entry := model.LeaderboardEntry{
			UserID:         totals.UserID,
			Weekly:         points,
			WeeklyMessages: totals.Messages,
			GoalAchieved:   points.Achieved(),
		}
		if cum, ok := cumulativeByUser[totals.UserID]; ok {
			entry.Cumulative = cum.Breakdown()
			entry.CumulativeMessages = cum.Messages
			entry.CumulativeGoalAchieved = entry.Cumulative.Achieved()
		}

		row := &model.UserGoal{
			ID:             uuid.New().String(),
			UserID:         totals.UserID,
			WeekID:         week.ID,
			GoalPoints:     points.Goal,
			PomodoroActual: points.Pomodoro,
			BonusActual:    points.Bonus,
			Achieved:       entry.GoalAchieved,
			UpdatedAt:      now,
		}
		if entry.GoalAchieved {
			if existing != nil && existing.HasReward() {
				row.RewardEmoji = existing.RewardEmoji
			} else {
				row.RewardEmoji = s.drawReward(pool)
			}
		}

		entries = append(entries, entry)
		rows = append(rows, row)
	}

	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		goalRepo := repository.NewUserGoalRepository(tx)
		for _, row := range rows {
			if err := goalRepo.Upsert(ctx, row); err != nil {
				return fmt.Errorf("failed to store goal of user %d: %w", row.UserID, err)
			}
		}
		return nil
	})
	if err != nil {
		return model.LeaderboardReport{}, err
	}

	for i, row := range rows {
		if row.RewardEmoji != nil {
			entries[i].RewardEmoji = *row.RewardEmoji
		}
	}

	rank(entries)

	stats := &model.LeaderboardStats{
		Participants:  len(entries),
		TotalPoints:   lo.SumBy(entries, func(e model.LeaderboardEntry) int { return e.WeeklyTotal() }),
		TotalMessages: lo.SumBy(entries, func(e model.LeaderboardEntry) int { return e.WeeklyMessages }),
		GoalsAchieved: lo.CountBy(entries, func(e model.LeaderboardEntry) bool { return e.GoalAchieved }),
	}

	report.Kind = model.ReportData
	report.Entries = entries
	report.Stats = stats
	report.Footer = Footer(stats.Participants, stats.TotalPoints, stats.GoalsAchieved)

	slog.Info("leaderboard generated",
		"week_id", week.ID,
		"week", week.Number,
		"participants", stats.Participants,
		"goals_achieved", stats.GoalsAchieved,
	)

	return report, nil
}

// drawReward picks uniformly from pool. An empty pool assigns nothing.
func (s *LeaderboardService) drawReward(pool []string) *string {
	if len(pool) == 0 {
		return nil
	}
	reward := pool[s.pick(len(pool))]
	return &reward
}

// rank orders entries by weekly total, highest first, and numbers them.
// Equal totals fall back to ascending user id.
func rank(entries []model.LeaderboardEntry) {
	slices.SortFunc(entries, func(a, b model.LeaderboardEntry) int {
		if c := cmp.Compare(b.WeeklyTotal(), a.WeeklyTotal()); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// MarkPosted records that the report for a week went out. With an archive
// configured, data reports are stored first and no-data reports remove any
// earlier snapshot.
func (s *LeaderboardService) MarkPosted(ctx context.Context, weekID string, report model.LeaderboardReport) error {
	week, err := s.weekRepo.ByID(ctx, weekID)
	if err != nil {
		return err
	}

	if s.archive != nil {
		key := ArchiveKey(week)
		switch report.Kind {
		case model.ReportData:
			body, err := json.Marshal(report)
			if err != nil {
				return fmt.Errorf("failed to encode leaderboard: %w", err)
			}
			err = s.archive.Save(ctx, key, bytes.NewReader(body), "application/json")
			if err != nil {
				return fmt.Errorf("failed to archive leaderboard: %w", err)
			}
			slog.Info("leaderboard archived", "week_id", week.ID, "key", key)
		case model.ReportNoData:
			// a week emptied by deletions must not keep an old snapshot
			err := s.archive.Delete(ctx, key)
			if err != nil {
				return fmt.Errorf("failed to remove archived leaderboard: %w", err)
			}
		}
	}

	return s.weekRepo.SetPosted(ctx, week.ID, true)
}

// ArchiveURL returns a temporary link to the archived report of a week.
func (s *LeaderboardService) ArchiveURL(ctx context.Context, weekID string) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}

	week, err := s.weekRepo.ByID(ctx, weekID)
	if err != nil {
		return "", err
	}

	return s.archive.URL(ctx, ArchiveKey(week))
}

// ArchiveKey is the object key of a week's archived report.
func ArchiveKey(week *model.Week) string {
	return fmt.Sprintf("%s/week-%d.json", week.ChallengeID, week.Number)
}
