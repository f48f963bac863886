package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/acoruss/acoruss.github.io/config"
	"github.com/acoruss/acoruss.github.io/internal/exchange"
	"github.com/acoruss/acoruss.github.io/internal/gateway"
	"github.com/acoruss/acoruss.github.io/internal/guard"
	"github.com/acoruss/acoruss.github.io/internal/handlers"
	"github.com/acoruss/acoruss.github.io/internal/metrics"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/publisher"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/acoruss/acoruss.github.io/internal/service"
	"github.com/acoruss/acoruss.github.io/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	config     *config.Config
	Router     *gin.Engine
	db         *gorm.DB
	limiter    *guard.KeyedLimiter
	dispatcher *webhook.Dispatcher
	publisher  publisher.Publisher
}

// Initialize connects to the database and wires every component behind the
// router. It does not start serving.
func (a *App) Initialize(cfg *config.Config) error {
	a.config = cfg
	metrics.RegisterMetrics()

	db, err := cfg.DB.GormConnect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return a.wire(db)
}

// wire builds the components on top of an open, migrated database.
func (a *App) wire(db *gorm.DB) error {
	cfg := a.config
	a.db = db

	delays, err := cfg.Webhook.Schedule()
	if err != nil {
		return err
	}
	settlement := models.Currency(strings.ToUpper(cfg.Paystack.SettlementCurrency))
	if !settlement.IsValid() {
		return fmt.Errorf("unsupported settlement currency %q", cfg.Paystack.SettlementCurrency)
	}

	payments := store.NewPaymentStore(db)
	services := store.NewServiceStore(db)
	attempts := store.NewAttemptStore(db)

	a.publisher = newPublisher(cfg.Kafka)

	a.limiter = guard.NewKeyedLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	accessGuard := guard.New(services, a.limiter)

	rates := exchange.NewCache(
		exchange.NewOpenERAPI(cfg.Exchange.BaseURL, cfg.Exchange.Timeout),
		cfg.Exchange.TTL,
		cfg.Exchange.MaxStale,
	)
	paystack := gateway.NewPaystack(cfg.Paystack.SecretKey, cfg.Paystack.BaseURL, cfg.Paystack.Timeout)
	if cfg.Paystack.SecretKey == "" {
		logrus.Warn("PAYSTACK_SECRET_KEY is not set, gateway calls will fail")
	}

	a.dispatcher = webhook.NewDispatcher(webhook.Config{
		Workers:   cfg.Webhook.Workers,
		QueueSize: cfg.Webhook.QueueSize,
		Timeout:   cfg.Webhook.Timeout,
		Delays:    delays,
		UserAgent: cfg.Webhook.UserAgent,
		DLQTopic:  cfg.Kafka.WebhookDLQTopic,
	}, attempts, a.publisher)
	a.dispatcher.Start()

	paymentService := service.NewPaymentService(payments, services, paystack, rates, a.dispatcher, a.publisher, service.Options{
		SettlementCurrency: settlement,
		ReferencePrefix:    cfg.APP.ReferencePrefix,
		GatewayCallbackURL: strings.TrimRight(cfg.APP.PublicURL, "/") + "/api/v1/payments/callback/",
		EventsTopic:        cfg.Kafka.PaymentEventsTopic,
	})
	paymentHandler := handlers.NewPaymentHandler(paymentService, paystack)

	if cfg.APP.ENV == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	if err := a.Router.SetTrustedProxies(cfg.APP.Proxies()); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}
	a.Router.Use(handlers.RequestIDMiddleware(), handlers.RequestLogger(), gin.Recovery())
	a.RegisterRoutes(paymentHandler, accessGuard)
	return nil
}

func newPublisher(cfg config.Kafka) publisher.Publisher {
	if !cfg.Enabled {
		logrus.Info("kafka disabled, payment events are not published")
		return publisher.NopPublisher{}
	}
	kafka := publisher.NewKafkaPublisher(cfg.BrokerList(), cfg.Topics(), cfg.GetRetryConfig())
	return publisher.NewAsyncPublisher(kafka, 1024, cfg.RetryMaxDelay*time.Duration(cfg.RetryMaxAttempts))
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests,
// pending webhooks and queued events, in that order.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.config.APP.PORT),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok {
			a.close(context.Background())
			return err
		}
	case sig := <-stop:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("http shutdown")
	}
	a.close(ctx)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.dispatcher.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("webhook dispatcher did not drain in time")
	}
	if err := a.publisher.Close(); err != nil {
		logrus.WithError(err).Warn("closing publisher")
	}
	a.limiter.Close()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
