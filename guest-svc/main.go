package main

import (
	"embed"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resort-concierge/auth"
	"resort-concierge/config"
	httpapi "resort-concierge/guest-svc/internal/api/http"
	"resort-concierge/guest-svc/internal/cart"
	"resort-concierge/guest-svc/internal/service"
	"resort-concierge/guest-svc/internal/storage"
	"resort-concierge/logging"
	"resort-concierge/server"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:           "guest-svc",
		Usage:          "catalog, cart, orders and notifications for resort guests",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back every migration"},
				},
				Action: runMigrations,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("guest-svc exited")
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load("guest-svc")
	if err != nil {
		return err
	}
	logger := logging.New("guest-svc", cfg.LogLevel)

	db := config.MustInitPostgres(cfg.DB)
	defer db.Close()
	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()
	writer := config.NewKafkaWriter(cfg.Kafka, logger)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	catalogService := service.NewCatalogService(repo)
	orderService := service.NewOrderService(
		repo,
		repo,
		repo,
		storage.NewKafkaPublisher(writer),
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		logger,
	)
	notificationService := service.NewNotificationService(repo)
	cartService := cart.NewService(storage.NewRedisCartStore(rdb, cfg.CartTTL), catalogService, orderService, 0, logger)

	profiles := auth.NewProfileResolver(auth.NewPostgresProfileRepository(db))
	provider := auth.NewHTTPProvider(cfg.Auth.URL, cfg.Auth.APIKey, &http.Client{Timeout: cfg.Auth.Timeout})

	handler := httpapi.NewHandler(catalogService, orderService, notificationService, cartService, profiles, logger)
	router := httpapi.NewRouter(handler, provider, logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg.HTTPAddr, router, logger)
}

func runMigrations(c *cli.Context) error {
	cfg, err := config.Load("guest-svc")
	if err != nil {
		return err
	}
	logger := logging.New("guest-svc", cfg.LogLevel)

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.DB.URL())
	if err != nil {
		return err
	}
	defer m.Close()

	if c.Bool("down") {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return err
	}

	version, dirty, _ := m.Version()
	logger.WithFields(log.Fields{"version": version, "dirty": dirty}).Info("migrations applied")
	return nil
}
