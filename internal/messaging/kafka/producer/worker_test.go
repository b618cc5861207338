package producer

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/messaging/kafka"
	kafkaMock "go-hrm/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	WriteFn func(ctx context.Context, msgs ...kafkago.Message) error
	written []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.WriteFn != nil {
		if err := f.WriteFn(ctx, msgs...); err != nil {
			return err
		}
	}
	f.written = append(f.written, msgs...)
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("sent events are marked sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "o-1", RequestID: "rid", AggregateID: "agg-1", EventType: "task_assigned", Topic: "hr.task.assigned.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)

		stats, err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, relayStats{sent: 1}, stats)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "agg-1", string(writer.written[0].Key))
		assert.Equal(t, "hr.task.assigned.v1", writer.written[0].Topic)
	})

	t.Run("publish failure marks failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{WriteFn: func(ctx context.Context, msgs ...kafkago.Message) error {
			return errors.New("broker down")
		}}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{{ID: "o-2", Topic: "t", Payload: []byte(`{}`)}}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-2", "broker down").Return(nil)

		stats, err := processPendingEvents(ctx, repo, writer, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, relayStats{failed: 1}, stats)
		assert.Empty(t, writer.written)
	})

	t.Run("mark sent failure is not counted as sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{{ID: "o-3", Topic: "t", Payload: []byte(`{}`)}}, nil)
		repo.EXPECT().MarkSent(ctx, "o-3").Return(errors.New("db down"))

		stats, err := processPendingEvents(ctx, repo, writer, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, relayStats{}, stats)
		assert.Len(t, writer.written, 1)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		_, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.EqualError(t, err, "db down")
	})
}
