package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"resort-concierge/analytics-svc/internal/domain"
	"resort-concierge/analytics-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Analytics service.AnalyticsServiceInterface
	Logger    *log.Entry
}

func NewHandler(svc service.AnalyticsServiceInterface, logger *log.Entry) *Handler {
	return &Handler{Analytics: svc, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/venues/{id}/popular", h.getPopularItems).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) getPopularItems(w http.ResponseWriter, r *http.Request) {
	venueID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": domain.ErrInvalidVenue.Error()})
		return
	}
	period := domain.Period(strings.ToLower(r.URL.Query().Get("period")))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	response, err := h.Analytics.PopularItems(r.Context(), venueID, period, limit)
	if errors.Is(err, domain.ErrInvalidPeriod) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.Logger.WithError(err).WithField("venue_id", venueID).Error("popular items failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, response)
}
