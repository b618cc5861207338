package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader a consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// errPermanent marks a message that can never be processed. The loop
// commits it so the partition is not blocked.
type errPermanent struct{ err error }

func (e errPermanent) Error() string { return e.err.Error() }
func (e errPermanent) Unwrap() error { return e.err }

func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return errPermanent{err: err}
}

func IsPermanent(err error) bool {
	var p errPermanent
	return errors.As(err, &p)
}

// Retry delays for a message whose handler failed and for failed fetches.
// The delay doubles per attempt up to retryMax.
var (
	retryInitial = 200 * time.Millisecond
	retryMax     = 5 * time.Second
)

// Run fetches messages until ctx is cancelled. A transient handler error
// retries the same message with backoff, so offsets are committed in order
// and never past an unprocessed message. Permanent errors are logged and
// committed.
func Run(ctx context.Context, name string, reader MessageReader, handle HandlerFunc, logger *zap.Logger) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	fetchDelay := retryInitial
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Duration("retry_in", fetchDelay), zap.Error(err))
			if !wait(ctx, fetchDelay) {
				log.Info("consumer stopped")
				return
			}
			fetchDelay = nextDelay(fetchDelay)
			continue
		}
		fetchDelay = retryInitial

		if !settle(ctx, log, msg, handle) {
			log.Info("consumer stopped", zap.Int64("uncommitted_offset", msg.Offset))
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// settle runs handle until it succeeds or fails permanently. It returns
// false when ctx ends first; the message must then stay uncommitted.
func settle(ctx context.Context, log *zap.Logger, msg kafkago.Message, handle HandlerFunc) bool {
	delay := retryInitial
	for attempt := 1; ; attempt++ {
		err := handle(ctx, msg)
		if err == nil {
			return true
		}
		if IsPermanent(err) {
			log.Warn("dropping unprocessable message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			return true
		}
		log.Error("handle message failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !wait(ctx, delay) {
			return false
		}
		delay = nextDelay(delay)
	}
}

func nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > retryMax {
		return retryMax
	}
	return d
}

func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// eventID prefers the outbox id header and falls back to the partition
// offset so replays of the same message stay idempotent.
func eventID(msg kafkago.Message) string {
	if id := header(msg, "event_id"); id != "" {
		return id
	}
	return fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
}
