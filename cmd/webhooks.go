package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/publisher"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/acoruss/acoruss.github.io/internal/subscriber"
	"github.com/acoruss/acoruss.github.io/internal/webhook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type serviceFinder interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

// replayer re-queues dead-lettered webhooks for their service.
type replayer struct {
	services   serviceFinder
	dispatcher *webhook.Dispatcher
}

func (r *replayer) handle(ctx context.Context, msg models.DLQMessage) error {
	svc, err := r.services.GetByID(ctx, msg.ServiceID)
	if err != nil {
		return fmt.Errorf("service %s: %w", msg.ServiceID, err)
	}
	if !svc.Enabled {
		logrus.WithFields(logrus.Fields{"reference": msg.PaymentReference, "service": svc.Slug}).
			Warn("service is disabled, dropping dead-lettered webhook")
		return nil
	}
	return r.dispatcher.Redeliver(svc, msg)
}

func webhooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Operate on outgoing service webhooks",
	}
	cmd.AddCommand(webhooksReplayCmd())
	return cmd
}

func webhooksReplayCmd() *cobra.Command {
	var idle time.Duration
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Redeliver webhooks from the dead letter topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Kafka.Enabled {
				return errors.New("kafka is disabled, there is no dead letter topic to replay")
			}
			delays, err := cfg.Webhook.Schedule()
			if err != nil {
				return err
			}
			db, err := cfg.DB.GormConnect()
			if err != nil {
				return err
			}

			dlq := publisher.NewKafkaPublisher(cfg.Kafka.BrokerList(), []string{cfg.Kafka.WebhookDLQTopic}, cfg.Kafka.GetRetryConfig())
			defer dlq.Close()

			dispatcher := webhook.NewDispatcher(webhook.Config{
				Workers:   cfg.Webhook.Workers,
				QueueSize: cfg.Webhook.QueueSize,
				Timeout:   cfg.Webhook.Timeout,
				Delays:    delays,
				UserAgent: cfg.Webhook.UserAgent,
				DLQTopic:  cfg.Kafka.WebhookDLQTopic,
			}, store.NewAttemptStore(db), dlq)
			dispatcher.Start()

			consumer := subscriber.NewDLQConsumer(cfg.Kafka.BrokerList(), cfg.Kafka.WebhookDLQTopic, cfg.Kafka.ReplayGroupID, cfg.Kafka.GetRetryConfig(), idle)
			defer consumer.Close()

			r := &replayer{services: store.NewServiceStore(db), dispatcher: dispatcher}
			handled, consumeErr := consumer.Consume(cmd.Context(), r.handle)

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := dispatcher.Shutdown(ctx); err != nil {
				logrus.WithError(err).Warn("replayed webhooks still pending at exit")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "replayed %d webhooks\n", handled)
			return consumeErr
		},
	}
	cmd.Flags().DurationVar(&idle, "idle", 10*time.Second, "stop after the topic has been idle this long, 0 runs until interrupted")
	return cmd
}
