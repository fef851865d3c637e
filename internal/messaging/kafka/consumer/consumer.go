package consumer

import (
	"context"
	"encoding/json"

	"github.com/kartikey1112/hrms-dashboard/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LeaveNameSyncer rewrites the denormalized employee name on leave requests.
type LeaveNameSyncer interface {
	SyncEmployeeName(ctx context.Context, employeeID, name string) (int64, error)
}

// ConsumeEmployeeLifecycle applies employee_updated events to leave requests.
// Other event types are acknowledged and skipped. A failed sync leaves the
// message uncommitted so it is redelivered.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	leaves LeaveNameSyncer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handleEmployeeLifecycle(ctx, msg, leaves, log); err != nil {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

func handleEmployeeLifecycle(ctx context.Context, msg kafkago.Message, leaves LeaveNameSyncer, log *zap.Logger) error {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed", zap.Error(err))
		return nil
	}

	if event.EventType != events.EmployeeUpdated {
		log.Debug("employee lifecycle event skipped",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
		)
		return nil
	}

	n, err := leaves.SyncEmployeeName(ctx, event.EmployeeID, event.Name)
	if err != nil {
		log.Error("sync leave employee name failed",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return err
	}

	log.Info("leave employee name synced",
		zap.String("request_id", event.RequestID),
		zap.String("employee_id", event.EmployeeID),
		zap.Int64("rows", n),
	)
	return nil
}
