package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resort-concierge/api-gateway/internal/gateway"
	"resort-concierge/config"
	"resort-concierge/logging"
	"resort-concierge/server"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("api-gateway")
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	logger := logging.New("api-gateway", cfg.LogLevel)

	gw := gateway.NewGateway(cfg.Upstream, &http.Client{Timeout: 30 * time.Second}, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(logging.Middleware(logger)(gw.SetupRoutes()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, cfg.HTTPAddr, handler, logger); err != nil {
		logger.WithError(err).Fatal("api-gateway stopped")
	}
}
