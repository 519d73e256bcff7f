package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resort-concierge/auth"
	httpapi "resort-concierge/chat-svc/internal/api/http"
	"resort-concierge/chat-svc/internal/service"
	"resort-concierge/chat-svc/internal/storage"
	"resort-concierge/config"
	"resort-concierge/logging"
	"resort-concierge/server"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("chat-svc")
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	logger := logging.New("chat-svc", cfg.LogLevel)

	db := sqlx.NewDb(config.MustInitPostgres(cfg.DB), "postgres")
	defer db.Close()
	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	chatService := service.NewChatService(
		storage.NewPostgresRepository(db),
		auth.NewProfileResolver(auth.NewPostgresProfileRepository(db.DB)),
		storage.NewRedisThrottle(rdb, cfg.Chat.SendLimit, cfg.Chat.SendWindow),
		logger,
	)
	provider := auth.NewHTTPProvider(cfg.Auth.URL, cfg.Auth.APIKey, &http.Client{Timeout: cfg.Auth.Timeout})
	router := httpapi.NewRouter(httpapi.NewHandler(chatService, logger), provider, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, cfg.HTTPAddr, router, logger); err != nil {
		logger.WithError(err).Fatal("chat-svc stopped")
	}
}
