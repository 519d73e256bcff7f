package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resort-concierge/agg-svc/internal/service"
	"resort-concierge/agg-svc/internal/storage"
	"resort-concierge/config"
	"resort-concierge/logging"
	"resort-concierge/server"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load("agg-svc")
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	logger := logging.New("agg-svc", cfg.LogLevel)

	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()
	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		consumer.Start(ctx)
		return nil
	})
	g.Go(func() error {
		return server.Run(ctx, cfg.HTTPAddr, healthRouter(), logger)
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Fatal("agg-svc stopped")
	}
}

func healthRouter() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"service":   "agg-svc",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}).Methods("GET")
	return r
}
