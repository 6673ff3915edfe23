package bootstrap

import (
	"errors"
	"log/slog"
	"strings"

	qaengine "devexchange/contexts/knowledge-exchange/qa-engine"
	postgresadapter "devexchange/contexts/knowledge-exchange/qa-engine/adapters/postgres"
	redisadapter "devexchange/contexts/knowledge-exchange/qa-engine/adapters/redis"
	"devexchange/contexts/knowledge-exchange/qa-engine/ports"
	"devexchange/internal/platform/config"
	"devexchange/internal/platform/db"
	"devexchange/internal/platform/httpserver"
	"devexchange/internal/platform/messaging"

	"github.com/redis/go-redis/v9"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const domainEventsTopic = "qa.domain-events"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)

	var unreadCache ports.UnreadCountCache
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		unreadCache = redisadapter.NewCache(redis.NewClient(&redis.Options{Addr: addr}))
	}

	var publisher ports.EventPublisher
	if cfg.EnableEventBus {
		publisher = messaging.NewBus(logger).TopicPublisher(domainEventsTopic)
	}

	engine := qaengine.NewModule(qaengine.Dependencies{
		Questions:     repo,
		Answers:       repo,
		Acceptance:    repo,
		Notifications: repo,
		UnreadCache:   unreadCache,
		Publisher:     publisher,
		Clock:         postgresadapter.SystemClock{},
		IDGen:         postgresadapter.UUIDGenerator{},
		MaxAttempts:   cfg.VoteMaxAttempts,
		Logger:        logger,
	})

	server := httpserver.New(engine, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run() error {
	defer func() {
		if err := a.postgres.Close(); err != nil {
			a.logger.Error("postgres close failed",
				"event", "bootstrap_postgres_close_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()
	return a.server.Start()
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
