package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type fakeSyncer struct {
	mu    sync.Mutex
	err   error
	calls map[string]string
}

func (s *fakeSyncer) SyncEmployeeName(_ context.Context, employeeID, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]string{}
	}
	s.calls[employeeID] = name
	return 2, s.err
}

func message(t *testing.T, eventType, id, name string) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:  eventType,
		EmployeeID: id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
	return kafkago.Message{Key: []byte(id), Value: payload}
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	t.Run("success - updated event syncs names and commits", func(t *testing.T) {
		reader := &fakeReader{queue: []kafkago.Message{
			message(t, events.EmployeeUpdated, "emp-1", "Jane Roe"),
			message(t, events.EmployeeCreated, "emp-2", "John Doe"),
			{Value: []byte("not json")},
		}}
		syncer := &fakeSyncer{}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			ConsumeEmployeeLifecycle(ctx, reader, syncer, zap.NewNop())
			close(done)
		}()

		assert.Eventually(t, func() bool { return reader.commits() == 3 }, time.Second, 10*time.Millisecond)
		cancel()
		<-done

		assert.Equal(t, map[string]string{"emp-1": "Jane Roe"}, syncer.calls)
	})

	t.Run("negative - sync failure is not committed", func(t *testing.T) {
		syncer := &fakeSyncer{err: errors.New("db down")}

		err := handleEmployeeLifecycle(
			context.Background(),
			message(t, events.EmployeeUpdated, "emp-1", "Jane Roe"),
			syncer,
			zap.NewNop(),
		)

		assert.EqualError(t, err, "db down")
	})
}
