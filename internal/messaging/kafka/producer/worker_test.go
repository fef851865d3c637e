package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/kartikey1112/hrms-dashboard/internal/messaging/kafka"
	kafkaMock "github.com/kartikey1112/hrms-dashboard/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failFor map[string]error
	written []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.failFor[string(m.Key)]; err != nil {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("success - publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{{
			ID:            "o-1",
			RequestID:     "req-1",
			AggregateType: "employee",
			AggregateID:   "emp-1",
			EventType:     "employee_updated",
			Topic:         "hrms.employee.lifecycle.v1",
			Payload:       []byte(`{"employee_id":"emp-1"}`),
		}}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)

		err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		require.Len(t, writer.written, 1)
		msg := writer.written[0]
		assert.Equal(t, "hrms.employee.lifecycle.v1", msg.Topic)
		assert.Equal(t, []byte("emp-1"), msg.Key)
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-1")})
	})

	t.Run("negative - publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"emp-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "emp-1", Topic: "t", Payload: []byte("{}")},
			{ID: "o-2", AggregateID: "emp-2", Topic: "t", Payload: []byte("{}")},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Len(t, writer.written, 1)
	})

	t.Run("negative - list pending error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.EqualError(t, err, "db down")
	})
}
