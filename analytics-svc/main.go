package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "resort-concierge/analytics-svc/internal/api/http"
	"resort-concierge/analytics-svc/internal/service"
	"resort-concierge/analytics-svc/internal/storage"
	"resort-concierge/auth"
	"resort-concierge/config"
	"resort-concierge/logging"
	"resort-concierge/server"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("analytics-svc")
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	logger := logging.New("analytics-svc", cfg.LogLevel)

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()
	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	analyticsService := service.NewAnalyticsService(
		storage.NewRedisLeaderboard(rdb),
		storage.NewPostgresRepository(db),
		logger,
	)
	provider := auth.NewHTTPProvider(cfg.Auth.URL, cfg.Auth.APIKey, &http.Client{Timeout: cfg.Auth.Timeout})
	router := httpapi.NewRouter(httpapi.NewHandler(analyticsService, logger), provider, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, cfg.HTTPAddr, router, logger); err != nil {
		logger.WithError(err).Fatal("analytics-svc stopped")
	}
}
