package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-pos/internal/bootstrap"
	"go-pos/internal/config"
	"go-pos/internal/messaging/kafka"
	"go-pos/internal/messaging/kafka/producer"
	"go-pos/internal/shared/connection"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RunWorker relays committed outbox events to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.worker")

	if cfg.App.Store != config.StorePostgres {
		return errors.New("the outbox worker needs APP_STORE=postgres")
	}
	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		connection.DSN(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode),
		cfg.DB.Retries,
		logger,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.DB.Retries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	reg := prometheus.NewRegistry()
	relay := producer.NewRelay(kafka.NewOutboxRepository(sqlDB), kafkaWriter, logger, reg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Kafka.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := bootstrap.RunHTTPServer(ctx, mux, bootstrap.ServerConfig{Port: cfg.Kafka.MetricsPort}, bootstrap.NewStdoutAuditLogger(logger), logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	relay.Run(ctx, cfg.Kafka.PollInterval)

	logger.Info("worker shut down")
	return nil
}
