package producer

import (
	"context"
	"time"

	"go-hrm/internal/messaging/kafka"

	"go.uber.org/zap"
)

const batchSize = 50

type relayStats struct {
	sent   int
	failed int
}

// ProcessOutboxEvents relays pending outbox rows to Kafka every
// pollInterval until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-ticker.C:
			// Keep draining while whole batches go out; anything short of
			// that waits for the next tick.
			for {
				stats, err := processPendingEvents(ctx, repo, writer, log)
				if err != nil {
					log.Error("relay outbox batch failed", zap.Error(err))
					break
				}
				if stats.sent+stats.failed > 0 {
					log.Info("outbox batch relayed", zap.Int("sent", stats.sent), zap.Int("failed", stats.failed))
				}
				if stats.sent < batchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (relayStats, error) {
	var stats relayStats

	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return stats, err
	}

	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			stats.failed++
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				logger.Error("outbox event dead lettered", append(fields, zap.Int("attempts", event.RetryCount+1), zap.Error(err))...)
			} else {
				logger.Warn("publish outbox event failed", append(fields, zap.Error(err))...)
			}
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// The message is already on the topic; consumers tolerate the
			// duplicate that the next poll will produce.
			logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		stats.sent++
		logger.Debug("outbox event sent", fields...)
	}

	return stats, nil
}
