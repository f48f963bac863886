package models

import "time"

type WebhookEvent string

const (
	EventPaymentSuccess  WebhookEvent = "payment.success"
	EventPaymentRefunded WebhookEvent = "payment.refunded"
)

// WebhookDeliveryAttempt is the audit record of one POST to a service's
// webhook URL. Rows are written once, after the attempt's outcome is known.
type WebhookDeliveryAttempt struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	PaymentReference string       `gorm:"size:100;not null;index" json:"payment_reference"`
	ServiceID        string       `gorm:"size:36;not null;index" json:"service_id"`
	Event            WebhookEvent `gorm:"size:50;not null" json:"event"`
	URL              string       `gorm:"size:500;not null" json:"url"`
	Attempt          int          `gorm:"not null" json:"attempt"`
	ScheduledAt      time.Time    `gorm:"not null" json:"scheduled_at"`
	SentAt           time.Time    `gorm:"not null" json:"sent_at"`
	ResponseStatus   *int         `json:"response_status"`
	Succeeded        bool         `gorm:"not null" json:"succeeded"`
	Final            bool         `gorm:"not null" json:"final"`
	Error            string       `gorm:"size:500" json:"error,omitempty"`
	DurationMS       int64        `json:"duration_ms"`
	CreatedAt        time.Time    `json:"created_at"`
}
