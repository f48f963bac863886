package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// New reads the configuration from the environment. When GO_ENV=local the
// values in .env are loaded first.
func New() (*Config, error) {
	var Config Config
	if os.Getenv("GO_ENV") == "local" {
		if err := godotenv.Load(".env"); err != nil {
			logrus.Warn("Error can't get the environment variables by file")
		}
	}

	if err := env.Parse(&Config); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	return &Config, nil
}

type Config struct {
	APP
	DB
	Paystack
	Exchange
	RateLimit
	Webhook
	Kafka
	Log
}

type APP struct {
	PORT            string `env:"APP_PORT" envDefault:"8080"`
	ENV             string `env:"APP_ENV" envDefault:"development"`
	PublicURL       string `env:"APP_PUBLIC_URL" envDefault:"http://localhost:8080"`
	TrustedProxies  string `env:"APP_TRUSTED_PROXIES"`
	ReferencePrefix string `env:"APP_REFERENCE_PREFIX" envDefault:"acoruss"`
}

// Proxies returns the trusted proxy list, nil when none is configured.
func (a APP) Proxies() []string {
	return splitCSV(a.TrustedProxies)
}

type DB struct {
	DRIVER          string        `env:"DB_DRIVER" envDefault:"postgres"`
	HOST            string        `env:"DB_HOST"`
	USER            string        `env:"DB_USER"`
	PASSWORD        string        `env:"DB_PASSWORD"`
	NAME            string        `env:"DB_NAME"`
	PORT            string        `env:"DB_PORT"`
	SSLMODE         string        `env:"DB_SSLMODE" envDefault:"disable"`
	SQLITEPATH      string        `env:"DB_SQLITE_PATH" envDefault:"payments.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

type Paystack struct {
	SecretKey          string        `env:"PAYSTACK_SECRET_KEY"`
	BaseURL            string        `env:"PAYSTACK_BASE_URL" envDefault:"https://api.paystack.co"`
	Timeout            time.Duration `env:"PAYSTACK_TIMEOUT" envDefault:"30s"`
	SettlementCurrency string        `env:"SETTLEMENT_CURRENCY" envDefault:"KES"`
}

type Exchange struct {
	BaseURL  string        `env:"EXCHANGE_RATE_URL" envDefault:"https://open.er-api.com/v6/latest"`
	TTL      time.Duration `env:"EXCHANGE_RATE_TTL" envDefault:"1h"`
	MaxStale time.Duration `env:"EXCHANGE_RATE_MAX_STALE" envDefault:"24h"`
	Timeout  time.Duration `env:"EXCHANGE_RATE_TIMEOUT" envDefault:"10s"`
}

type RateLimit struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"60"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

type Webhook struct {
	Timeout     time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"15s"`
	RetryDelays string        `env:"WEBHOOK_RETRY_DELAYS" envDefault:"1s,5s"`
	Workers     int           `env:"WEBHOOK_WORKERS" envDefault:"4"`
	QueueSize   int           `env:"WEBHOOK_QUEUE_SIZE" envDefault:"256"`
	UserAgent   string        `env:"WEBHOOK_USER_AGENT" envDefault:"Acoruss-Payments/1.0"`
}

// Schedule parses RetryDelays. Entry i is the wait before attempt i+2.
func (w Webhook) Schedule() ([]time.Duration, error) {
	var delays []time.Duration
	for _, raw := range splitCSV(w.RetryDelays) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook retry delay %q: %w", raw, err)
		}
		delays = append(delays, d)
	}
	return delays, nil
}

type Kafka struct {
	Enabled            bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers            string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	PaymentEventsTopic string `env:"KAFKA_PAYMENT_EVENTS_TOPIC" envDefault:"payments.events"`
	WebhookDLQTopic    string `env:"KAFKA_WEBHOOK_DLQ_TOPIC" envDefault:"webhooks.dlq"`
	ReplayGroupID      string `env:"KAFKA_REPLAY_GROUP_ID" envDefault:"acoruss-webhook-replay"`

	RetryMaxAttempts int           `env:"KAFKA_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"KAFKA_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay    time.Duration `env:"KAFKA_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter      bool          `env:"KAFKA_RETRY_JITTER" envDefault:"true"`
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (k Kafka) GetRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: k.RetryMaxAttempts,
		BaseDelay:   k.RetryBaseDelay,
		MaxDelay:    k.RetryMaxDelay,
		Jitter:      k.RetryJitter,
	}
}

func (k Kafka) BrokerList() []string {
	return splitCSV(k.Brokers)
}

func (k Kafka) Topics() []string {
	return []string{k.PaymentEventsTopic, k.WebhookDLQTopic}
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Configure applies level and formatter to the standard logrus logger.
func (l Log) Configure() {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", l.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if l.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
