package publisher

import (
	"context"

	"github.com/sirupsen/logrus"
)

// NopPublisher stands in when Kafka is disabled. It only logs at debug level.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	logrus.WithField("topic", topic).Debugf("kafka disabled, dropping %T", message)
	return nil
}

func (NopPublisher) Close() error { return nil }
