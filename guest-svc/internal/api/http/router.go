package httpapi

import (
	"net/http"

	"resort-concierge/auth"
	"resort-concierge/logging"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// NewRouter serves /health openly and everything else behind the identity
// provider.
func NewRouter(handler *Handler, provider auth.IdentityProvider, logger *log.Entry) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.healthCheck).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware(provider, logger))
	handler.RegisterRoutes(api)

	return corsPolicy().Handler(logging.Middleware(logger)(r))
}

func corsPolicy() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
}
