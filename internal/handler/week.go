package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/pomodoro-challenge/internal/model"
	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/service"
)

type WeekHandler struct {
	challengeService   *service.ChallengeService
	rescanService      *service.RescanService
	leaderboardService *service.LeaderboardService
	goalService        *service.GoalService
}

func NewWeekHandler(
	challengeService *service.ChallengeService,
	rescanService *service.RescanService,
	leaderboardService *service.LeaderboardService,
	goalService *service.GoalService,
) *WeekHandler {
	return &WeekHandler{
		challengeService:   challengeService,
		rescanService:      rescanService,
		leaderboardService: leaderboardService,
		goalService:        goalService,
	}
}

type rescanRequest struct {
	Messages []model.RescanMessage `json:"messages"`
}

type goalRequest struct {
	GoalPoints int `json:"goal_points"`
}

type weekDates struct {
	WeekID string `json:"week_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func (h *WeekHandler) Dates(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")

	start, end, err := h.challengeService.WeekDates(r.Context(), weekID)
	if errors.Is(err, repository.ErrWeekNotFound) || errors.Is(err, repository.ErrChallengeNotFound) {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load week dates", "error", err, "week_id", weekID)
		http.Error(w, "Failed to load week", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, weekDates{
		WeekID: weekID,
		Start:  start.Format("2006-01-02"),
		End:    end.Format("2006-01-02"),
	})
}

type threadsRequest struct {
	ThreadID     string `json:"thread_id"`
	GoalThreadID string `json:"goal_thread_id"`
}

// Rebind moves a week to new chat threads.
func (h *WeekHandler) Rebind(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")

	var req threadsRequest
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

	err = h.challengeService.Rebind(r.Context(), weekID, *threadID, goalThreadID)
	if errors.Is(err, repository.ErrWeekNotFound) {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to rebind week", "error", err, "week_id", weekID)
		http.Error(w, "Failed to rebind week", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WeekHandler) Rescan(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")

	var req rescanRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.rescanService.Run(r.Context(), weekID, req.Messages)
	if errors.Is(err, repository.ErrWeekNotFound) {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}
	if err != nil && !res.Cancelled {
		slog.Error("rescan failed", "error", err, "week_id", weekID)
		http.Error(w, "Rescan failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *WeekHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	report := h.leaderboardService.Generate(r.Context(), r.PathValue("id"))
	writeJSON(w, reportStatus(report), report)
}

// Posted generates the final report of a week, archives it and marks the
// week as posted.
func (h *WeekHandler) Posted(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")

	report := h.leaderboardService.Generate(r.Context(), weekID)
	if report.Kind == model.ReportError {
		writeJSON(w, reportStatus(report), report)
		return
	}

	err := h.leaderboardService.MarkPosted(r.Context(), weekID, report)
	if err != nil {
		slog.Error("failed to mark leaderboard posted", "error", err, "week_id", weekID)
		http.Error(w, "Failed to mark leaderboard posted", http.StatusInternalServerError)
		return
	}

	slog.Info("leaderboard posted", "week_id", weekID, "kind", report.Kind)
	writeJSON(w, http.StatusOK, report)
}

func (h *WeekHandler) Archive(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")

	url, err := h.leaderboardService.ArchiveURL(r.Context(), weekID)
	if errors.Is(err, service.ErrArchiveDisabled) || errors.Is(err, repository.ErrWeekNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to presign archive url", "error", err, "week_id", weekID)
		http.Error(w, "Failed to load archive", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *WeekHandler) DeclareGoal(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")
	userID, err := pathID(r, "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req goalRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := h.goalService.Declare(r.Context(), userID, weekID, req.GoalPoints)
	switch {
	case errors.Is(err, service.ErrInvalidGoal):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, repository.ErrWeekNotFound):
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("failed to declare goal", "error", err, "week_id", weekID, "user_id", userID)
		http.Error(w, "Failed to declare goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *WeekHandler) Goals(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")

	goals, err := h.goalService.Goals(r.Context(), weekID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "week_id", weekID)
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}
	if goals == nil {
		goals = []*model.UserGoal{}
	}

	writeJSON(w, http.StatusOK, goals)
}

func reportStatus(report model.LeaderboardReport) int {
	if report.Kind == model.ReportError {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
