package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Image-Gallery/config"
	"github.com/andreyxaxa/Image-Gallery/internal/controller/restapi"
	v1 "github.com/andreyxaxa/Image-Gallery/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Image-Gallery/internal/controller/worker/outbox"
	infrakafka "github.com/andreyxaxa/Image-Gallery/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Image-Gallery/internal/infrastructure/processor"
	"github.com/andreyxaxa/Image-Gallery/internal/repo/persistent"
	"github.com/andreyxaxa/Image-Gallery/internal/usecase/auth"
	"github.com/andreyxaxa/Image-Gallery/internal/usecase/gallery"
	"github.com/andreyxaxa/Image-Gallery/pkg/httpserver"
	"github.com/andreyxaxa/Image-Gallery/pkg/kafka/producer"
	"github.com/andreyxaxa/Image-Gallery/pkg/logger"
	"github.com/andreyxaxa/Image-Gallery/pkg/postgres"
	"github.com/andreyxaxa/Image-Gallery/pkg/s3client"
	"github.com/andreyxaxa/Image-Gallery/pkg/session"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Sessions
	sessions := session.New(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	// Use-Case

	// gallery use-case
	galleryUseCase := gallery.New(
		persistent.NewBlobRepo(s3c, cfg.S3.Bucket),
		persistent.NewImageMetadataRepo(pg),
		persistent.NewOutboxRepo(pg),
		pg,
		processor.New(),
		l,
	)

	// auth use-case
	authUseCase := auth.New(persistent.NewUserRepo(pg), sessions)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		galleryUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
		l,
		outbox.Config{
			PollInterval:        cfg.OutboxRelay.PollInterval,
			MarkFailedInterval:  cfg.OutboxRelay.MarkFailedInterval,
			CleanupInterval:     cfg.OutboxRelay.CleanupInterval,
			ProcessBatchTimeout: cfg.OutboxRelay.ProcessBatchTimeout,
			BatchSize:           cfg.OutboxRelay.BatchSize,
			MaxRetries:          cfg.OutboxRelay.MaxRetries,
		},
	)

	// HTTP Server
	views, err := v1.ViewsEngine()
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - v1.ViewsEngine: %w", err))
	}

	httpServer := httpserver.New(
		l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.Views(views),
	)
	restapi.NewRouter(httpServer.App, cfg, galleryUseCase, authUseCase, sessions, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}
}
