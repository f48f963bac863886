package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/acoruss/acoruss.github.io/config"
	"github.com/acoruss/acoruss.github.io/internal/models"
	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DLQHandler processes one dead-lettered webhook.
type DLQHandler func(ctx context.Context, msg models.DLQMessage) error

// DLQConsumer reads webhooks that exhausted their delivery attempts. An
// offset is committed only once its message was handled, so a failed
// replay is picked up again by the next run.
type DLQConsumer struct {
	Reader      messageReader
	RetryConfig config.RetryConfig
	// Idle ends Consume once no message arrived for this long. Zero waits
	// until the context is cancelled.
	Idle time.Duration
}

func NewDLQConsumer(brokers []string, topic, groupID string, retryConfig config.RetryConfig, idle time.Duration) *DLQConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &DLQConsumer{Reader: reader, RetryConfig: retryConfig, Idle: idle}
}

// Consume hands every message to handler until ctx is done or the topic has
// been idle for c.Idle. It returns the number of messages handled.
func (c *DLQConsumer) Consume(ctx context.Context, handler DLQHandler) (int, error) {
	handled := 0
	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				logrus.WithField("handled", handled).Info("dead letter topic idle, stopping")
				return handled, nil
			}
			if ctx.Err() != nil {
				return handled, nil
			}
			return handled, fmt.Errorf("error reading dead letter topic: %w", err)
		}

		var dlq models.DLQMessage
		if err := json.Unmarshal(msg.Value, &dlq); err != nil {
			logrus.WithError(err).WithField("offset", msg.Offset).Error("skipping undecodable dead letter message")
		} else if err := c.processMessage(ctx, dlq, handler); err != nil {
			return handled, err
		} else {
			handled++
		}

		if err := c.Reader.CommitMessages(ctx, msg); err != nil {
			return handled, fmt.Errorf("error committing offset %d: %w", msg.Offset, err)
		}
	}
}

func (c *DLQConsumer) fetch(ctx context.Context) (kafka.Message, error) {
	if c.Idle <= 0 {
		return c.Reader.FetchMessage(ctx)
	}
	fetchCtx, cancel := context.WithTimeout(ctx, c.Idle)
	defer cancel()
	return c.Reader.FetchMessage(fetchCtx)
}

func (c *DLQConsumer) processMessage(ctx context.Context, msg models.DLQMessage, handler DLQHandler) error {
	attempts := max(c.RetryConfig.MaxAttempts, 1)
	log := logrus.WithFields(logrus.Fields{"reference": msg.PaymentReference, "event": msg.Event})

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		backoff := c.calculateBackoff(attempt)
		log.WithError(err).Warnf("handler error, attempt %d/%d, retrying in %v", attempt+1, attempts, backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("replaying %s for %s failed after %d attempts: %w", msg.Event, msg.PaymentReference, attempts, err)
}

func (c *DLQConsumer) calculateBackoff(attempt int) time.Duration {
	delay := time.Duration(math.Pow(2, float64(attempt))) * c.RetryConfig.BaseDelay

	if delay > c.RetryConfig.MaxDelay {
		delay = c.RetryConfig.MaxDelay
	}

	if c.RetryConfig.Jitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3)
		delay = delay + jitter - time.Duration(float64(delay)*0.15)
	}

	return delay
}

func (c *DLQConsumer) Close() error {
	return c.Reader.Close()
}
