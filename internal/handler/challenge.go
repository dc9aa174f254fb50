package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/service"
	"github.com/templui/pomodoro-challenge/internal/validation"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
	catalogService   *service.CatalogService
}

func NewChallengeHandler(challengeService *service.ChallengeService, catalogService *service.CatalogService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		catalogService:   catalogService,
	}
}

type startRequest struct {
	ServerID     string `json:"server_id"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	ThreadID     string `json:"thread_id"`
	GoalThreadID string `json:"goal_thread_id"`
}

type startResponse struct {
	Challenge *model.Challenge `json:"challenge"`
	Week      *model.Week      `json:"week"`
}

type weekRequest struct {
	ThreadID     string `json:"thread_id"`
	GoalThreadID string `json:"goal_thread_id"`
}

type emojiRequest struct {
	ServerID    string         `json:"server_id"`
	ChallengeID *string        `json:"challenge_id"`
	Code        string         `json:"code"`
	Category    model.Category `json:"category"`
	Points      int            `json:"points"`
}

func (h *ChallengeHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	serverID, err := parseID(req.ServerID)
	if err != nil || serverID == nil {
		http.Error(w, "server_id is required", http.StatusBadRequest)
		return
	}
	threadID, err := parseID(req.ThreadID)
	if err != nil || threadID == nil {
		http.Error(w, "thread_id is required", http.StatusBadRequest)
		return
	}
	goalThreadID, err := parseID(req.GoalThreadID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	challenge, week, err := h.challengeService.Start(r.Context(), *serverID, req.Name, startDate, *threadID, goalThreadID)
	if err != nil {
		if isInvalidInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to start challenge", "error", err, "server_id", *serverID)
		http.Error(w, "Failed to start challenge", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, startResponse{Challenge: challenge, Week: week})
}

func (h *ChallengeHandler) NextWeek(w http.ResponseWriter, r *http.Request) {
	challengeID := r.PathValue("id")

	var req weekRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	threadID, err := parseID(req.ThreadID)
	if err != nil || threadID == nil {
		http.Error(w, "thread_id is required", http.StatusBadRequest)
		return
	}
	goalThreadID, err := parseID(req.GoalThreadID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	week, err := h.challengeService.NextWeek(r.Context(), challengeID, *threadID, goalThreadID)
	switch {
	case errors.Is(err, repository.ErrChallengeNotFound):
		http.Error(w, "Challenge not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrChallengeInactive):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		slog.Error("failed to open week", "error", err, "challenge_id", challengeID)
		http.Error(w, "Failed to open week", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, week)
}

func (h *ChallengeHandler) End(w http.ResponseWriter, r *http.Request) {
	challengeID := r.PathValue("id")

	err := h.challengeService.End(r.Context(), challengeID)
	if errors.Is(err, repository.ErrChallengeNotFound) {
		http.Error(w, "Challenge not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to end challenge", "error", err, "challenge_id", challengeID)
		http.Error(w, "Failed to end challenge", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChallengeHandler) Weeks(w http.ResponseWriter, r *http.Request) {
	challengeID := r.PathValue("id")

	weeks, err := h.challengeService.Weeks(r.Context(), challengeID)
	if err != nil {
		slog.Error("failed to list weeks", "error", err, "challenge_id", challengeID)
		http.Error(w, "Failed to list weeks", http.StatusInternalServerError)
		return
	}
	if weeks == nil {
		weeks = []*model.Week{}
	}

	writeJSON(w, http.StatusOK, weeks)
}

func (h *ChallengeHandler) AddEmoji(w http.ResponseWriter, r *http.Request) {
	var req emojiRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	serverID, err := parseID(req.ServerID)
	if err != nil || serverID == nil {
		http.Error(w, "server_id is required", http.StatusBadRequest)
		return
	}

	e, err := h.catalogService.AddEmoji(r.Context(), *serverID, req.ChallengeID, req.Code, req.Category, req.Points)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			http.Error(w, "Challenge not found", http.StatusNotFound)
			return
		}
		if isInvalidInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("failed to add emoji", "error", err, "server_id", *serverID, "code", req.Code)
		http.Error(w, "Failed to add emoji", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (h *ChallengeHandler) Emojis(w http.ResponseWriter, r *http.Request) {
	serverID, err := parseID(r.URL.Query().Get("server_id"))
	if err != nil || serverID == nil {
		http.Error(w, "server_id is required", http.StatusBadRequest)
		return
	}

	emojis, err := h.catalogService.List(r.Context(), *serverID)
	if err != nil {
		slog.Error("failed to list emojis", "error", err, "server_id", *serverID)
		http.Error(w, "Failed to list emojis", http.StatusInternalServerError)
		return
	}
	if emojis == nil {
		emojis = []*model.Emoji{}
	}

	writeJSON(w, http.StatusOK, emojis)
}

func (h *ChallengeHandler) RetireEmoji(w http.ResponseWriter, r *http.Request) {
	emojiID := r.PathValue("id")

	err := h.catalogService.Retire(r.Context(), emojiID)
	if errors.Is(err, repository.ErrEmojiNotFound) {
		http.Error(w, "Emoji not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to retire emoji", "error", err, "emoji_id", emojiID)
		http.Error(w, "Failed to retire emoji", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// isInvalidInput reports whether err was caused by the request itself.
func isInvalidInput(err error) bool {
	for _, target := range []error{
		validation.ErrChallengeNameRequired,
		validation.ErrChallengeNameTooLong,
		validation.ErrEmojiCodeRequired,
		validation.ErrEmojiCodeInvalid,
		validation.ErrEmojiCategory,
		validation.ErrEmojiPoints,
		service.ErrThreadRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
