package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"resort-concierge/auth"
	"resort-concierge/chat-svc/internal/domain"
	"resort-concierge/chat-svc/internal/service"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Chat   service.ChatServiceInterface
	Logger *log.Entry
}

func NewHandler(chat service.ChatServiceInterface, logger *log.Entry) *Handler {
	return &Handler{Chat: chat, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/chat/messages", h.sendMessage).Methods("POST")
	r.HandleFunc("/api/chat/messages", h.listMessages).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "chat-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	default:
		h.Logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.respondError(w, r, auth.ErrUnauthenticated)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		h.respondError(w, r, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	msg, err := h.Chat.Send(r.Context(), identity, body.Content)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		h.respondError(w, r, auth.ErrUnauthenticated)
		return
	}

	query := r.URL.Query()
	limit, offset := 0, 0
	var err error
	if raw := query.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			h.respondError(w, r, domain.NewValidationError("limit", "must be a number"))
			return
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil {
			h.respondError(w, r, domain.NewValidationError("offset", "must be a number"))
			return
		}
	}

	messages, err := h.Chat.List(r.Context(), identity, limit, offset)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
