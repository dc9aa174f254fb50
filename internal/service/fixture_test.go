package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/db/dbtest"
	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
)

const (
	testServer     = uint64(700000000000000001)
	signupThread   = uint64(1000)
	goalThread     = uint64(1001)
	weekOneThread  = uint64(2000)
	unboundChannel = uint64(4242)

	tomato = "\U0001F345"
	fire   = "\U0001F525"
	dart   = "\U0001F3AF"
	trophy = "\U0001F3C6"
)

type fixture struct {
	db          *sqlx.DB
	logRepo     repository.MessageLogRepository
	goalRepo    repository.UserGoalRepository
	challenges  *ChallengeService
	catalogs    *CatalogService
	ledger      *LedgerService
	rescan      *RescanService
	leaderboard *LeaderboardService
	goals       *GoalService

	challenge *model.Challenge
	week0     *model.Week
	week1     *model.Week
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	wrapLogs func(repository.MessageLogRepository) repository.MessageLogRepository
	rewards  []string
}

// withLogRepo lets a test put a fake in front of the real ledger table.
func withLogRepo(wrap func(repository.MessageLogRepository) repository.MessageLogRepository) fixtureOption {
	return func(c *fixtureConfig) { c.wrapLogs = wrap }
}

func withRewards(codes ...string) fixtureOption {
	return func(c *fixtureConfig) { c.rewards = codes }
}

// newFixture starts a challenge with week 0 on the sign-up and goal threads
// and week 1 on its own thread. The catalog scores :tomato: 25 pomodoro,
// :fire: 5 bonus and :dart: 10 goal.
func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	ctx := context.Background()

	cfg := fixtureConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	database := dbtest.New(t)
	challengeRepo := repository.NewChallengeRepository(database)
	weekRepo := repository.NewWeekRepository(database)
	emojiRepo := repository.NewEmojiRepository(database)
	goalRepo := repository.NewUserGoalRepository(database)
	var logRepo repository.MessageLogRepository = repository.NewMessageLogRepository(database)
	if cfg.wrapLogs != nil {
		logRepo = cfg.wrapLogs(logRepo)
	}

	catalogs := NewCatalogService(challengeRepo, emojiRepo)
	ledger := NewLedgerService(NewWeekResolver(weekRepo), weekRepo, logRepo, catalogs)

	f := &fixture{
		db:          database,
		logRepo:     logRepo,
		goalRepo:    goalRepo,
		challenges:  NewChallengeService(database, challengeRepo, weekRepo),
		catalogs:    catalogs,
		ledger:      ledger,
		rescan:      NewRescanService(weekRepo, ledger),
		leaderboard: NewLeaderboardService(database, weekRepo, logRepo, goalRepo, catalogs, nil),
		goals:       NewGoalService(weekRepo, goalRepo),
	}
	f.leaderboard.pick = func(int) int { return 0 }

	gt := goalThread
	challenge, week0, err := f.challenges.Start(ctx, testServer, "Autumn focus", time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), signupThread, &gt)
	if err != nil {
		t.Fatalf("start challenge: %v", err)
	}
	week1, err := f.challenges.NextWeek(ctx, challenge.ID, weekOneThread, nil)
	if err != nil {
		t.Fatalf("open week 1: %v", err)
	}
	f.challenge, f.week0, f.week1 = challenge, week0, week1

	f.addEmoji(t, ":tomato:", model.CategoryPomodoro, 25)
	f.addEmoji(t, ":fire:", model.CategoryBonus, 5)
	f.addEmoji(t, ":dart:", model.CategoryGoal, 10)
	for _, code := range cfg.rewards {
		f.addEmoji(t, code, model.CategoryReward, 1)
	}

	return f
}

func (f *fixture) addEmoji(t *testing.T, code string, category model.Category, pts int) *model.Emoji {
	t.Helper()
	e, err := f.catalogs.AddEmoji(context.Background(), testServer, &f.challenge.ID, code, category, pts)
	if err != nil {
		t.Fatalf("add emoji %s: %v", code, err)
	}
	return e
}

// post processes content in channel without force and expects no error.
func (f *fixture) post(t *testing.T, messageID, userID uint64, content string, channel uint64) model.ProcessResult {
	t.Helper()
	res, err := f.ledger.Process(context.Background(), messageID, userID, content, &channel, false)
	if err != nil {
		t.Fatalf("process message %d: %v", messageID, err)
	}
	return res
}

func (f *fixture) count(t *testing.T, weekID string) int {
	t.Helper()
	n, err := f.logRepo.CountByWeek(context.Background(), weekID)
	if err != nil {
		t.Fatalf("count week %s: %v", weekID, err)
	}
	return n
}
