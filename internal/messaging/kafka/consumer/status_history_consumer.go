package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type StatusHistoryRecorder interface {
	RecordHistory(ctx context.Context, eventID string, event events.EmployeeStatusChangedEvent) error
}

// StatusHistoryHandler appends every employee_status_changed event to the
// status history.
func StatusHistoryHandler(recorder StatusHistoryRecorder, logger *zap.Logger) HandlerFunc {
	log := logger.Named("kafka.consumer.status_history")
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.EmployeeStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return Permanent(fmt.Errorf("decode %s: %w", events.EmployeeStatusChangedEventType, err))
		}
		if event.EventType != events.EmployeeStatusChangedEventType {
			return nil
		}
		if event.EmployeeID == "" {
			return Permanent(fmt.Errorf("%s without employee id", events.EmployeeStatusChangedEventType))
		}

		if err := recorder.RecordHistory(ctx, eventID(msg), event); err != nil {
			return err
		}

		log.Info("status history recorded",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("status", event.Status),
		)
		return nil
	}
}
