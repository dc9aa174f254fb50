package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/pomodoro-challenge/internal/ctxkeys"
	"github.com/templui/pomodoro-challenge/internal/service"
)

// RequireAdmin rejects requests without a valid admin bearer token and puts
// the token subject into the context.
func RequireAdmin(authService *service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			subject, err := authService.VerifyAdmin(token)
			if err != nil {
				slog.Warn("admin token rejected", "error", err, "path", r.URL.Path, "ip", getClientIP(r))
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin", error="invalid_token"`)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := ctxkeys.WithAdmin(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
