package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/templui/pomodoro-challenge/internal/db"
	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/validation"
)

var (
	ErrChallengeInactive = errors.New("challenge is not active")
	ErrThreadRequired    = errors.New("thread id is required")
)

// ChallengeService manages the lifecycle of challenges and their weeks.
type ChallengeService struct {
	db            *sqlx.DB
	challengeRepo repository.ChallengeRepository
	weekRepo      repository.WeekRepository
	now           func() time.Time
}

func NewChallengeService(
	database *sqlx.DB,
	challengeRepo repository.ChallengeRepository,
	weekRepo repository.WeekRepository,
) *ChallengeService {
	return &ChallengeService{
		db:            database,
		challengeRepo: challengeRepo,
		weekRepo:      weekRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Start creates an active challenge together with its goal collection week,
// bound to the sign-up thread and optionally a separate goal thread.
func (s *ChallengeService) Start(ctx context.Context, serverID uint64, name string, startDate time.Time, threadID uint64, goalThreadID *uint64) (*model.Challenge, *model.Week, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateChallengeName(name); err != nil {
		return nil, nil, err
	}
	if threadID == 0 {
		return nil, nil, ErrThreadRequired
	}

	now := s.now()
	challenge := &model.Challenge{
		ID:        uuid.New().String(),
		ServerID:  serverID,
		Name:      name,
		StartDate: startDate.UTC(),
		Active:    true,
		CreatedAt: now,
	}
	week := &model.Week{
		ID:           uuid.New().String(),
		ChallengeID:  challenge.ID,
		Number:       model.GoalCollectionWeek,
		ThreadID:     threadID,
		GoalThreadID: goalThreadID,
		CreatedAt:    now,
	}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := repository.NewChallengeRepository(tx).Create(ctx, challenge); err != nil {
			return fmt.Errorf("failed to create challenge: %w", err)
		}
		if err := repository.NewWeekRepository(tx).Create(ctx, week); err != nil {
			return fmt.Errorf("failed to create goal week: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("challenge started", "challenge_id", challenge.ID, "server_id", serverID, "name", name)
	return challenge, week, nil
}

// NextWeek opens the week after the latest one, bound to threadID.
func (s *ChallengeService) NextWeek(ctx context.Context, challengeID string, threadID uint64, goalThreadID *uint64) (*model.Week, error) {
	if threadID == 0 {
		return nil, ErrThreadRequired
	}

	challenge, err := s.challengeRepo.ByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.Active {
		return nil, ErrChallengeInactive
	}

	number := model.GoalCollectionWeek
	latest, err := s.weekRepo.Latest(ctx, challengeID)
	switch {
	case err == nil:
		number = latest.Number + 1
	case !errors.Is(err, repository.ErrWeekNotFound):
		return nil, fmt.Errorf("failed to load latest week: %w", err)
	}

	week := &model.Week{
		ID:           uuid.New().String(),
		ChallengeID:  challengeID,
		Number:       number,
		ThreadID:     threadID,
		GoalThreadID: goalThreadID,
		CreatedAt:    s.now(),
	}
	if err := s.weekRepo.Create(ctx, week); err != nil {
		return nil, fmt.Errorf("failed to create week %d: %w", number, err)
	}

	slog.Info("week opened", "challenge_id", challengeID, "week_id", week.ID, "week", number)
	return week, nil
}

// Rebind moves a week to other threads, e.g. after a thread was recreated.
func (s *ChallengeService) Rebind(ctx context.Context, weekID string, threadID uint64, goalThreadID *uint64) error {
	if threadID == 0 {
		return ErrThreadRequired
	}
	return s.weekRepo.SetThreads(ctx, weekID, threadID, goalThreadID)
}

// End deactivates a challenge. Its weeks stop accepting live messages but
// remain available for rescans and leaderboards.
func (s *ChallengeService) End(ctx context.Context, challengeID string) error {
	err := s.challengeRepo.SetActive(ctx, challengeID, false)
	if err != nil {
		return err
	}
	slog.Info("challenge ended", "challenge_id", challengeID)
	return nil
}

func (s *ChallengeService) Challenge(ctx context.Context, challengeID string) (*model.Challenge, error) {
	return s.challengeRepo.ByID(ctx, challengeID)
}

func (s *ChallengeService) Active(ctx context.Context, serverID uint64) ([]*model.Challenge, error) {
	return s.challengeRepo.Active(ctx, serverID)
}

func (s *ChallengeService) Weeks(ctx context.Context, challengeID string) ([]*model.Week, error) {
	return s.weekRepo.Weeks(ctx, challengeID)
}

// WeekDates returns the first and last instant of a week.
func (s *ChallengeService) WeekDates(ctx context.Context, weekID string) (time.Time, time.Time, error) {
	week, err := s.weekRepo.ByID(ctx, weekID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	challenge, err := s.challengeRepo.ByID(ctx, week.ChallengeID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return challenge.WeekStart(week.Number), challenge.WeekEnd(week.Number), nil
}
