package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/templui/pomodoro-challenge/internal/app"
	"github.com/templui/pomodoro-challenge/internal/config"
	"github.com/templui/pomodoro-challenge/internal/db/dbtest"
	"github.com/templui/pomodoro-challenge/internal/model"
)

const tomato = "\U0001F345"

type api struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newAPI(t *testing.T) *api {
	t.Helper()

	cfg := &config.Config{
		AppName:         "Pomodoro Challenge",
		AppEnv:          "test",
		DBDriver:        "sqlite",
		JWTSecret:       "route-test-secret",
		JWTExpiry:       time.Hour,
		RescanBatchSize: 10,
		RateLimit:       1000,
		RateLimitWindow: time.Minute,
	}
	a := app.NewWithDB(cfg, dbtest.New(t), nil)

	token, _, err := a.AuthService.GenerateJWT("test-bot")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	return &api{t: t, handler: SetupRoutes(a), token: token}
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.doAs(a.token, method, path, body)
}

func (a *api) doAs(token, method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, want, rec.Body.String())
	}
}

func TestHealthIsPublic(t *testing.T) {
	a := newAPI(t)

	rec := a.doAs("", http.MethodGet, "/healthz", nil)
	expectStatus(t, rec, http.StatusOK)

	body := decode[map[string]any](t, rec)
	if body["app"] != "Pomodoro Challenge" || body["schema_version"].(float64) < 1 {
		t.Errorf("health = %v", body)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.doAs(tt.token, http.MethodPost, "/events/messages", map[string]any{"message_id": "1"})
			expectStatus(t, rec, http.StatusUnauthorized)
		})
	}
}

func TestChallengeFlow(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/challenges", map[string]any{
		"server_id":      "42",
		"name":           "Autumn focus",
		"start_date":     "2026-10-05",
		"thread_id":      "1000",
		"goal_thread_id": "1001",
	})
	expectStatus(t, rec, http.StatusCreated)
	started := decode[struct {
		Challenge model.Challenge `json:"challenge"`
		Week      model.Week      `json:"week"`
	}](t, rec)
	if started.Week.Number != 0 || started.Week.ThreadID != 1000 {
		t.Fatalf("week 0 = %+v", started.Week)
	}

	rec = a.do(http.MethodPost, "/emojis", map[string]any{
		"server_id":    "42",
		"challenge_id": started.Challenge.ID,
		"code":         ":tomato:",
		"category":     "pomodoro",
		"points":       25,
	})
	expectStatus(t, rec, http.StatusCreated)

	rec = a.do(http.MethodPost, "/emojis", map[string]any{
		"server_id": "42",
		"code":      "two words",
		"category":  "bonus",
		"points":    5,
	})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = a.do(http.MethodPost, "/challenges/"+started.Challenge.ID+"/weeks", map[string]any{"thread_id": "2000"})
	expectStatus(t, rec, http.StatusCreated)
	week1 := decode[model.Week](t, rec)

	event := map[string]any{
		"message_id": "1",
		"user_id":    "10",
		"channel_id": "2000",
		"content":    "done " + tomato,
	}
	rec = a.do(http.MethodPost, "/events/messages", event)
	expectStatus(t, rec, http.StatusOK)
	if res := decode[map[string]any](t, rec); res["status"] != "processed" {
		t.Fatalf("first event = %v", res)
	}

	rec = a.do(http.MethodPost, "/events/messages", event)
	expectStatus(t, rec, http.StatusOK)
	if res := decode[map[string]any](t, rec); res["status"] != "already_processed" {
		t.Fatalf("second event = %v", res)
	}

	rec = a.do(http.MethodPost, "/events/messages", map[string]any{"message_id": "2", "user_id": "10", "content": tomato})
	expectStatus(t, rec, http.StatusOK)
	if res := decode[map[string]any](t, rec); res["status"] != "no_active_week" {
		t.Fatalf("event without channel = %v", res)
	}

	rec = a.do(http.MethodPatch, "/events/messages/1", map[string]any{"content": tomato + tomato})
	expectStatus(t, rec, http.StatusOK)
	if res := decode[map[string]bool](t, rec); !res["updated"] {
		t.Fatalf("update = %v", res)
	}

	rec = a.do(http.MethodPost, "/weeks/"+week1.ID+"/rescan", map[string]any{
		"messages": []map[string]any{
			{"message_id": "3", "user_id": "11", "content": tomato},
			{"message_id": "4", "user_id": "11", "content": tomato},
		},
	})
	expectStatus(t, rec, http.StatusOK)
	if res := decode[model.RescanResult](t, rec); res.Succeeded != 2 || res.Failed != 0 {
		t.Fatalf("rescan = %+v", res)
	}

	rec = a.do(http.MethodGet, "/weeks/"+week1.ID+"/leaderboard", nil)
	expectStatus(t, rec, http.StatusOK)
	report := decode[model.LeaderboardReport](t, rec)
	if report.Kind != model.ReportData || len(report.Entries) != 2 {
		t.Fatalf("report = %+v", report)
	}
	// both users have 50 points: ascending user id breaks the tie
	if report.Entries[0].UserID != 10 || report.Entries[1].UserID != 11 {
		t.Errorf("ranking = %+v", report.Entries)
	}

	rec = a.do(http.MethodPost, "/weeks/"+week1.ID+"/leaderboard/posted", nil)
	expectStatus(t, rec, http.StatusOK)

	rec = a.do(http.MethodGet, "/weeks/"+week1.ID+"/leaderboard/archive", nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec = a.do(http.MethodDelete, "/events/messages/1", nil)
	expectStatus(t, rec, http.StatusOK)
	if res := decode[map[string]bool](t, rec); !res["deleted"] {
		t.Errorf("delete = %v", res)
	}
	rec = a.do(http.MethodDelete, "/events/messages/1", nil)
	expectStatus(t, rec, http.StatusOK)
	if res := decode[map[string]bool](t, rec); res["deleted"] {
		t.Errorf("second delete = %v", res)
	}
}

func TestRouteErrors(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"bad message id", http.MethodPost, "/events/messages", map[string]any{"message_id": "x", "user_id": "1"}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/events/messages", map[string]any{"message_id": "1", "user_id": "1", "extra": true}, http.StatusBadRequest},
		{"unknown message edit", http.MethodPatch, "/events/messages/99", map[string]any{"content": tomato}, http.StatusOK},
		{"unknown message", http.MethodGet, "/events/messages/99", nil, http.StatusNotFound},
		{"rescan unknown week", http.MethodPost, "/weeks/missing/rescan", map[string]any{"messages": []any{}}, http.StatusNotFound},
		{"leaderboard unknown week", http.MethodGet, "/weeks/missing/leaderboard", nil, http.StatusInternalServerError},
		{"next week unknown challenge", http.MethodPost, "/challenges/missing/weeks", map[string]any{"thread_id": "5"}, http.StatusNotFound},
		{"rebind unknown week", http.MethodPut, "/weeks/missing/threads", map[string]any{"thread_id": "7"}, http.StatusNotFound},
		{"negative goal", http.MethodPut, "/weeks/missing/goals/10", map[string]any{"goal_points": -1}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.body)
			expectStatus(t, rec, tt.status)
		})
	}
}
