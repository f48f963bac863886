package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/acoruss/acoruss.github.io/config"
	"github.com/acoruss/acoruss.github.io/internal/models"
	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	messages  []kafka.Message
	committed []int64
	fetchErr  error
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.messages) == 0 {
		if f.fetchErr != nil {
			return kafka.Message{}, f.fetchErr
		}
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

func dlqMessage(t *testing.T, offset int64, reference string) kafka.Message {
	t.Helper()
	value, err := json.Marshal(models.DLQMessage{PaymentReference: reference, Event: models.EventPaymentSuccess, Attempts: 3})
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Key: []byte(reference), Value: value}
}

func fastRetry(attempts int) config.RetryConfig {
	return config.RetryConfig{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestConsume_HandlesAndCommitsUntilIdle(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{
		dlqMessage(t, 10, "acoruss-1"),
		{Offset: 11, Value: []byte("not json")},
		dlqMessage(t, 12, "acoruss-2"),
	}}
	c := &DLQConsumer{Reader: reader, RetryConfig: fastRetry(3), Idle: 20 * time.Millisecond}

	var seen []string
	handled, err := c.Consume(context.Background(), func(ctx context.Context, msg models.DLQMessage) error {
		seen = append(seen, msg.PaymentReference)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, handled)
	assert.Equal(t, []string{"acoruss-1", "acoruss-2"}, seen)
	assert.Equal(t, []int64{10, 11, 12}, reader.committed)
}

func TestConsume_RetriesHandler(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{dlqMessage(t, 1, "acoruss-1")}}
	c := &DLQConsumer{Reader: reader, RetryConfig: fastRetry(3), Idle: 20 * time.Millisecond}

	calls := 0
	handled, err := c.Consume(context.Background(), func(ctx context.Context, msg models.DLQMessage) error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, handled)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int64{1}, reader.committed)
}

func TestConsume_FailedMessageIsNotCommitted(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{dlqMessage(t, 7, "acoruss-1"), dlqMessage(t, 8, "acoruss-2")}}
	c := &DLQConsumer{Reader: reader, RetryConfig: fastRetry(2), Idle: 20 * time.Millisecond}

	handled, err := c.Consume(context.Background(), func(ctx context.Context, msg models.DLQMessage) error {
		return errors.New("service not found")
	})

	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, 0, handled)
	assert.Empty(t, reader.committed)
}

func TestConsume_ReadError(t *testing.T) {
	reader := &fakeReader{fetchErr: errors.New("broker unreachable")}
	c := &DLQConsumer{Reader: reader, RetryConfig: fastRetry(1)}

	_, err := c.Consume(context.Background(), func(ctx context.Context, msg models.DLQMessage) error { return nil })

	assert.ErrorContains(t, err, "broker unreachable")
}

func TestCalculateBackoff_CapsAtMaxDelay(t *testing.T) {
	c := &DLQConsumer{RetryConfig: config.RetryConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}}

	assert.Equal(t, 100*time.Millisecond, c.calculateBackoff(0))
	assert.Equal(t, 400*time.Millisecond, c.calculateBackoff(2))
	assert.Equal(t, time.Second, c.calculateBackoff(8))
}
