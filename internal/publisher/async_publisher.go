package publisher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrBufferFull = errors.New("publish buffer is full")

// Publisher is implemented by KafkaPublisher and NopPublisher.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
	Close() error
}

type envelope struct {
	topic   string
	message interface{}
}

// AsyncPublisher moves publishing off the caller's goroutine. Publish only
// enqueues; a single background loop writes in enqueue order.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	ch      chan envelope

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAsyncPublisher(next Publisher, buffer int, timeout time.Duration) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 1024
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	a := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		ch:      make(chan envelope, buffer),
		done:    make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *AsyncPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return errors.New("publisher is closed")
	}
	select {
	case a.ch <- envelope{topic: topic, message: message}:
		return nil
	default:
		return ErrBufferFull
	}
}

func (a *AsyncPublisher) loop() {
	defer close(a.done)
	for env := range a.ch {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.next.Publish(ctx, env.topic, env.message); err != nil {
			logrus.WithError(err).WithField("topic", env.topic).Error("failed to publish event")
		}
		cancel()
	}
}

// Close publishes what is still buffered, then closes the underlying publisher.
func (a *AsyncPublisher) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	<-a.done
	return a.next.Close()
}
