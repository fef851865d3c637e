package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kartikey1112/hrms-dashboard/internal/config"
	"github.com/kartikey1112/hrms-dashboard/internal/events"
	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	"github.com/kartikey1112/hrms-dashboard/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const leaveNameSyncGroup = "hrms-leave-employee-name"

func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return ErrKafkaBrokerRequired
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	leaveRepo := leave.NewRepository(gormDB)
	leaveService := leave.NewService(sqlDB, leaveRepo)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        leaveNameSyncGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeEmployeeLifecycle(ctx, reader, leaveService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
