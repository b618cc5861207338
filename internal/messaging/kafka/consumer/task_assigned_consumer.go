package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type AssigneeDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]employee.Summary, error)
}

// TaskAssignedHandler emits one notification log entry per assignee of a
// newly created task.
func TaskAssignedHandler(directory AssigneeDirectory, logger *zap.Logger) HandlerFunc {
	log := logger.Named("kafka.consumer.task_assigned")
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.TaskAssignedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return Permanent(fmt.Errorf("decode %s: %w", events.TaskAssignedEventType, err))
		}
		if event.EventType != events.TaskAssignedEventType {
			return nil
		}

		people, err := directory.Summaries(ctx, event.AssigneeIDs)
		if err != nil {
			return err
		}

		for _, id := range event.AssigneeIDs {
			person, ok := people[id]
			if !ok {
				log.Warn("task assignee no longer exists",
					zap.String("task_id", event.TaskID),
					zap.String("employee_id", id),
				)
				continue
			}
			log.Info("task assignment notification",
				zap.String("request_id", event.RequestID),
				zap.String("task_id", event.TaskID),
				zap.String("title", event.Title),
				zap.String("employee_id", id),
				zap.String("employee_name", person.FullName),
				zap.String("email", person.Email),
				zap.Time("due_date", event.DueDate),
			)
		}
		return nil
	}
}
