package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/antonym0505/intermodal/internal/cache"
	"github.com/antonym0505/intermodal/internal/config"
	"github.com/antonym0505/intermodal/internal/db"
	"github.com/antonym0505/intermodal/internal/handoff"
	"github.com/antonym0505/intermodal/internal/kafka"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/logger"
	"github.com/antonym0505/intermodal/internal/registry"
	"github.com/antonym0505/intermodal/internal/repository/postgresql"
	"github.com/antonym0505/intermodal/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	zlog := logger.New(cfg.Debug)
	defer zlog.Sync()

	var producer kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers)
	} else {
		producer = kafka.NewConsoleProducer()
	}
	defer producer.Close()

	var (
		containerStore ledger.Store
		facilityStore  registry.Store
		users          server.UserAuthenticator
		events         handoff.EventSink
		publisher      *kafka.Publisher
	)

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.NewDb(ctx, cfg.DSN())
		if err != nil {
			log.Fatalf("database init: %v", err)
		}
		defer database.Close()

		containerStore = postgresql.NewContainerRepo(database)
		facilityStore = postgresql.NewFacilityRepo(database)
		outboxRepo := postgresql.NewOutboxTaskRepo()

		userRepo := postgresql.NewUserRepo(database)
		if cfg.AdminPassword != "" {
			if err := userRepo.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword,
				ledger.Identity(cfg.OperatorIdentity)); err != nil {
				log.Fatalf("admin bootstrap: %v", err)
			}
		}
		users = userRepo

		events = kafka.NewOutboxSink(database, outboxRepo, cfg.KafkaTopic, zlog)
		publisher = kafka.NewPublisher(database, outboxRepo, producer, zlog, kafka.PublisherConfig{
			PollInterval: cfg.OutboxPollEvery,
			BatchSize:    50,
			MaxAttempts:  5,
		})

	case config.BackendFile:
		fileStore, err := ledger.NewFileStore(cfg.DataFile)
		if err != nil {
			log.Fatalf("ledger file init: %v", err)
		}
		containerStore = fileStore
		facilityStore = registry.NewMemoryStore()
		events = kafka.NewProducerSink(producer, cfg.KafkaTopic, zlog)

	default:
		containerStore = ledger.NewMemoryStore()
		facilityStore = registry.NewMemoryStore()
		events = kafka.NewProducerSink(producer, cfg.KafkaTopic, zlog)
	}

	operator := ledger.Identity(cfg.OperatorIdentity)
	if operator.IsZero() {
		zlog.Warn("no operator identity configured, service starts read-only")
	}

	reg := registry.New(facilityStore, operator, zlog)
	led := ledger.New(containerStore, reg, operator, zlog, ledger.Config{
		MinHandoffDuration:   cfg.MinHandoffDuration,
		EnforceHandoffExpiry: cfg.EnforceHandoffExpiry,
	})
	coordinator := handoff.NewCoordinator(led, handoff.NewCorrelationStore(), events, zlog, handoff.Config{
		EmitDiscards: cfg.EmitDiscards,
	})

	auditManager := server.NewAuditManager(2, 5, 500*time.Millisecond, producer, cfg.AuditTopic, zlog)

	srv := server.New(led, reg, coordinator, users, cache.NewContainerCache(), events, zlog, auditManager)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gCtx, cfg.HTTPPort)
	})

	if publisher != nil {
		g.Go(func() error {
			publisher.Run(gCtx)
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if publisher != nil {
			publisher.Shutdown()
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Error("service stopped with error", zap.Error(err))
	}
	zlog.Info("service stopped")
}
