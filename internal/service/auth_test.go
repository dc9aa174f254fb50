package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAdminToken(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour, "Pomodoro Challenge")

	token, expiry, err := auth.GenerateJWT("tomato-bot")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiry) <= 0 {
		t.Errorf("expiry %v is not in the future", expiry)
	}

	subject, err := auth.VerifyAdmin(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "tomato-bot" {
		t.Errorf("subject = %q", subject)
	}

	if _, _, err := auth.GenerateJWT("  "); !errors.Is(err, ErrSubjectRequired) {
		t.Errorf("blank subject err = %v", err)
	}
}

func TestAdminTokenRejected(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour, "Pomodoro Challenge")

	sign := func(secret string, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign("other", jwt.MapClaims{"sub": "x", "role": "admin", "iss": "Pomodoro Challenge", "exp": exp})},
		{"expired", sign("test-secret", jwt.MapClaims{"sub": "x", "role": "admin", "iss": "Pomodoro Challenge", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"no expiry", sign("test-secret", jwt.MapClaims{"sub": "x", "role": "admin", "iss": "Pomodoro Challenge"})},
		{"wrong role", sign("test-secret", jwt.MapClaims{"sub": "x", "role": "user", "iss": "Pomodoro Challenge", "exp": exp})},
		{"wrong issuer", sign("test-secret", jwt.MapClaims{"sub": "x", "role": "admin", "iss": "someone", "exp": exp})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.VerifyAdmin(tt.token); err == nil {
				t.Error("token accepted")
			}
		})
	}
}
