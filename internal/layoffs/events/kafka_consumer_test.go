package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeReader hands out queued messages, then blocks until ctx is cancelled.
type fakeReader struct {
	msgs chan kafka.Message

	mu        sync.Mutex
	committed []kafka.Message
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-f.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func (f *fakeReader) commits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

func TestConsumer(t *testing.T) {
	good, err := json.Marshal(importEvent(ImportCompleted))
	require.NoError(t, err)
	rejected, err := json.Marshal(importEvent(ImportBatchFailed))
	require.NoError(t, err)

	reader := &fakeReader{msgs: make(chan kafka.Message, 3)}
	reader.msgs <- kafka.Message{Value: []byte("{not json")}
	reader.msgs <- kafka.Message{Value: rejected}
	reader.msgs <- kafka.Message{Value: good}

	core, recorded := observer.New(zap.ErrorLevel)
	consumer := newConsumer(reader, zap.New(core))

	handled := make(chan EventType, 3)
	consumer.RegisterHandler(func(_ context.Context, e Event) error {
		handled <- e.Type
		if e.Type == ImportBatchFailed {
			return errors.New("boom")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)

	assert.Equal(t, ImportBatchFailed, <-handled)
	assert.Equal(t, ImportCompleted, <-handled)
	assert.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	consumer.Close()

	assert.True(t, reader.closed)
	assert.Equal(t, 1, recorded.FilterMessage("Failed to parse event").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Failed to handle event").Len())
}
