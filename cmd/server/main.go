package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"idrelay/internal/journal"
	"idrelay/internal/notification/handler"
	notifmetrics "idrelay/internal/notification/metrics"
	"idrelay/internal/notification/service"
	"idrelay/internal/platform/config"
	"idrelay/internal/platform/httpserver"
	"idrelay/internal/platform/kafka/producer"
	"idrelay/internal/platform/logger"
	platformredis "idrelay/internal/platform/redis"
	"idrelay/internal/secrets"
	httptransport "idrelay/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, err := producer.New(ctx, producer.Config{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic,
		EnsureTopic: cfg.EnsureTopic,
	}, log)
	if err != nil {
		log.Error("failed to start kafka producer", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	secretStore, cleanup, err := buildSecretStore(ctx, cfg)
	if err != nil {
		log.Error("failed to connect secret store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	journalStore, journalCleanup, err := buildJournal(ctx, cfg)
	if err != nil {
		log.Error("failed to open dispatch journal", "error", err)
		os.Exit(1)
	}
	defer journalCleanup()

	pipeline, err := service.New(publisher,
		service.Config{MarketingExcludedCountries: cfg.MarketingExcludedCountries},
		service.WithLogger(log),
		service.WithMetrics(notifmetrics.New()),
		service.WithJournal(journalStore),
	)
	if err != nil {
		log.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	webhook := handler.New(pipeline, secretStore, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(webhook))

	log.Info("starting idrelay", "addr", cfg.Addr, "kafka_topic", cfg.KafkaTopic)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func buildSecretStore(ctx context.Context, cfg config.Server) (secrets.Store, func(), error) {
	if cfg.RedisURL != "" {
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return secrets.NewRedisStore(client.Client), func() { _ = client.Close() }, nil
	}
	return secrets.NewInMemoryStore(cfg.SecretValues), func() {}, nil
}

func buildJournal(ctx context.Context, cfg config.Server) (journal.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		return journal.NewInMemoryStore(), func() {}, nil
	}
	db, err := journal.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	store := journal.NewPostgresStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { _ = db.Close() }, nil
}
