package httpapi

import (
	"net/http"

	"resort-concierge/auth"
	"resort-concierge/logging"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler, provider auth.IdentityProvider, logger *log.Entry) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.healthCheck).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware(provider, logger))
	handler.RegisterRoutes(api)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(logging.Middleware(logger)(r))
}
