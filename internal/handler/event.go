package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/pomodoro-challenge/internal/repository"
	"github.com/templui/pomodoro-challenge/internal/service"
)

// EventHandler receives chat events forwarded by the bot.
type EventHandler struct {
	ledger *service.LedgerService
}

func NewEventHandler(ledger *service.LedgerService) *EventHandler {
	return &EventHandler{
		ledger: ledger,
	}
}

type messageEvent struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	Force     bool   `json:"force"`
}

type messageEdit struct {
	Content string `json:"content"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req messageEvent
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	messageID, err := parseID(req.MessageID)
	if err != nil || messageID == nil {
		http.Error(w, "message_id is required", http.StatusBadRequest)
		return
	}
	userID, err := parseID(req.UserID)
	if err != nil || userID == nil {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	channelID, err := parseID(req.ChannelID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.ledger.Process(r.Context(), *messageID, *userID, req.Content, channelID, req.Force)
	if err != nil {
		slog.Error("failed to process message", "error", err, "message_id", *messageID, "user_id", *userID)
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.ledger.Entry(r.Context(), messageID)
	if errors.Is(err, repository.ErrMessageLogNotFound) {
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load message", "error", err, "message_id", messageID)
		http.Error(w, "Failed to load message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req messageEdit
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.ledger.Update(r.Context(), messageID, req.Content)
	if err != nil {
		slog.Error("failed to update message", "error", err, "message_id", messageID)
		http.Error(w, "Failed to update message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := h.ledger.Delete(r.Context(), messageID)
	if err != nil {
		slog.Error("failed to delete message", "error", err, "message_id", messageID)
		http.Error(w, "Failed to delete message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
