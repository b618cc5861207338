package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-hrm/internal/config"
	"go-hrm/internal/employee"
	"go-hrm/internal/employeestatus"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/messaging/kafka/consumer"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer runs the status history and task notification consumers, each
// in its own consumer group, until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeService := employee.NewService(sqlDB, employee.NewRepository(gormDB), counter.NewRepository(gormDB), nil)
	statusService := employeestatus.NewService(
		sqlDB,
		employeestatus.NewRepository(gormDB),
		employeeService,
		kafka.NewOutboxRepository(sqlDB),
	)

	statusReader := newReader(cfg.Kafka, events.EmployeeStatusTopic, "status-history")
	defer statusReader.Close()

	taskReader := newReader(cfg.Kafka, events.TaskAssignedTopic, "task-notifications")
	defer taskReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.Run(ctx, "status_history", statusReader, consumer.StatusHistoryHandler(statusService, logger), logger)
	}()
	go func() {
		defer wg.Done()
		consumer.Run(ctx, "task_assigned", taskReader, consumer.TaskAssignedHandler(employeeService, logger), logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}

func newReader(cfg config.KafkaConfig, topic, name string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          topic,
		GroupID:        cfg.ConsumerGroup + "-" + name,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
