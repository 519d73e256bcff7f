// Package gateway fronts the concierge services behind a single origin.
package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"resort-concierge/config"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var popularPath = regexp.MustCompile(`^/api/venues/[^/]+/popular/?$`)

type Gateway struct {
	upstreams config.UpstreamConfig
	client    HTTPClient
	logger    *log.Entry
}

func NewGateway(upstreams config.UpstreamConfig, client HTTPClient, logger *log.Entry) *Gateway {
	return &Gateway{
		upstreams: upstreams,
		client:    client,
		logger:    logger,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Upstream picks the service that owns an API path. The empty string means
// no service does.
func (g *Gateway) Upstream(path string) string {
	switch {
	case path == "/api/chat" || strings.HasPrefix(path, "/api/chat/"):
		return g.upstreams.ChatSvcURL
	case popularPath.MatchString(path):
		return g.upstreams.AnalyticsSvcURL
	case strings.HasPrefix(path, "/api/"):
		return g.upstreams.GuestSvcURL
	}
	return ""
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	logger := g.logger.WithFields(log.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"upstream": targetURL,
	})
	logger.Debug("proxying request")

	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		logger.WithError(err).Error("Failed to create upstream request")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	if host := r.Header.Get("X-Forwarded-For"); host != "" {
		req.Header.Set("X-Forwarded-For", host+", "+r.RemoteAddr)
	} else {
		req.Header.Set("X-Forwarded-For", r.RemoteAddr)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("Failed to reach upstream")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.WithError(err).Warn("Failed to copy upstream response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target := g.Upstream(r.URL.Path)
	if target == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "route not found"})
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
