package producer

import (
	"context"
	"time"

	"go-pos/internal/messaging/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 3 * time.Second
)

// Relay moves committed outbox rows to Kafka. A row that fails to publish is
// marked failed and retried after its backoff; the batch carries on.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    Writer
	logger    *zap.Logger
	batchSize int

	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func NewRelay(repo kafka.OutboxRepository, writer Writer, logger *zap.Logger, reg prometheus.Registerer) *Relay {
	r := &Relay{
		repo:      repo,
		writer:    writer,
		logger:    logger.Named("kafka.producer.relay"),
		batchSize: defaultBatchSize,
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox events published to Kafka by event type.",
		}, []string{"event_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Subsystem: "outbox",
			Name:      "failed_total",
			Help:      "Outbox events that failed to publish by event type.",
		}, []string{"event_type"}),
	}
	if reg != nil {
		reg.MustRegister(r.published, r.failed)
	}
	return r
}

// Run polls every interval until ctx is done.
func (r *Relay) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Once(ctx); err != nil {
				r.logger.Error("relay outbox batch failed", zap.Error(err))
			}
		}
	}
}

// Once relays a single batch and reports how many events were published.
func (r *Relay) Once(ctx context.Context) (int, error) {
	pending, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	r.logger.Debug("relaying outbox batch", zap.Int("count", len(pending)))

	sent := 0
	for _, event := range pending {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("request_id", event.RequestID),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			r.failed.WithLabelValues(event.EventType).Inc()
			log.Warn("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if err := r.repo.MarkFailed(ctx, event.ID, err.Error()); err != nil {
				log.Error("mark outbox event failed", zap.Error(err))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// published but not marked: the event will be sent again
			log.Error("mark outbox event sent failed", zap.Error(err))
			continue
		}
		r.published.WithLabelValues(event.EventType).Inc()
		sent++
	}
	return sent, nil
}
