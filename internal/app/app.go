package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/config"
	"github.com/templui/pomodoro-challenge/internal/db"
	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/service"
	"github.com/templui/pomodoro-challenge/internal/storage"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	AuthService        *service.AuthService
	ChallengeService   *service.ChallengeService
	CatalogService     *service.CatalogService
	LedgerService      *service.LedgerService
	RescanService      *service.RescanService
	LeaderboardService *service.LeaderboardService
	GoalService        *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	if cfg.MigrateOnStart {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %v", err)
		}
	}

	// Storage (nil when no bucket is configured)
	archive, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	return NewWithDB(cfg, database, archive), nil
}

// NewWithDB wires services over an open, migrated database.
func NewWithDB(cfg *config.Config, database *sqlx.DB, archive storage.Storage) *App {
	// Repositories
	challengeRepository := repository.NewChallengeRepository(database)
	weekRepository := repository.NewWeekRepository(database)
	emojiRepository := repository.NewEmojiRepository(database)
	messageLogRepository := repository.NewMessageLogRepository(database)
	userGoalRepository := repository.NewUserGoalRepository(database)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry, cfg.AppName)
	catalogService := service.NewCatalogService(challengeRepository, emojiRepository)
	challengeService := service.NewChallengeService(database, challengeRepository, weekRepository)
	ledgerService := service.NewLedgerService(
		service.NewWeekResolver(weekRepository),
		weekRepository,
		messageLogRepository,
		catalogService,
	)
	rescanService := service.NewRescanService(weekRepository, ledgerService)
	leaderboardService := service.NewLeaderboardService(
		database,
		weekRepository,
		messageLogRepository,
		userGoalRepository,
		catalogService,
		archive,
	)
	goalService := service.NewGoalService(weekRepository, userGoalRepository)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		AuthService:        authService,
		ChallengeService:   challengeService,
		CatalogService:     catalogService,
		LedgerService:      ledgerService,
		RescanService:      rescanService,
		LeaderboardService: leaderboardService,
		GoalService:        goalService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
