package routes

import (
	"net/http"

	"github.com/templui/pomodoro-challenge/internal/app"
	"github.com/templui/pomodoro-challenge/internal/handler"
	"github.com/templui/pomodoro-challenge/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	event := handler.NewEventHandler(app.LedgerService)
	challenge := handler.NewChallengeHandler(app.ChallengeService, app.CatalogService)
	week := handler.NewWeekHandler(app.ChallengeService, app.RescanService, app.LeaderboardService, app.GoalService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// ============================================================================
	// ADMIN API (bearer token)
	// ============================================================================

	api := http.NewServeMux()

	// Chat events
	api.HandleFunc("POST /events/messages", event.Create)
	api.HandleFunc("GET /events/messages/{id}", event.Get)
	api.HandleFunc("PATCH /events/messages/{id}", event.Update)
	api.HandleFunc("DELETE /events/messages/{id}", event.Delete)

	// Challenges
	api.HandleFunc("POST /challenges", challenge.Start)
	api.HandleFunc("POST /challenges/{id}/weeks", challenge.NextWeek)
	api.HandleFunc("GET /challenges/{id}/weeks", challenge.Weeks)
	api.HandleFunc("DELETE /challenges/{id}", challenge.End)

	// Emoji catalog
	api.HandleFunc("POST /emojis", challenge.AddEmoji)
	api.HandleFunc("GET /emojis", challenge.Emojis)
	api.HandleFunc("DELETE /emojis/{id}", challenge.RetireEmoji)

	// Weeks
	api.HandleFunc("GET /weeks/{id}", week.Dates)
	api.HandleFunc("PUT /weeks/{id}/threads", week.Rebind)
	api.HandleFunc("POST /weeks/{id}/rescan", week.Rescan)
	api.HandleFunc("GET /weeks/{id}/leaderboard", week.Leaderboard)
	api.HandleFunc("POST /weeks/{id}/leaderboard/posted", week.Posted)
	api.HandleFunc("GET /weeks/{id}/leaderboard/archive", week.Archive)
	api.HandleFunc("GET /weeks/{id}/goals", week.Goals)
	api.HandleFunc("PUT /weeks/{id}/goals/{user}", week.DeclareGoal)

	mux.Handle("/", middleware.Chain(
		api,
		middleware.RateLimit(app.Cfg.RateLimit, app.Cfg.RateLimitWindow),
		middleware.RequireAdmin(app.AuthService),
	))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
	)

	return handler
}
