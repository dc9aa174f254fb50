package middleware

import (
	"net/http"

	"github.com/templui/pomodoro-challenge/internal/config"
	"github.com/templui/pomodoro-challenge/internal/ctxkeys"
)

// Config middleware adds the sanitized app configuration to the request context.
// Secrets like JWTSecret and DBConnection are excluded.
func Config(cfg *config.Config) Middleware {
	clean := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), clean)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
