package models

import "time"

// PaymentEvent is published to the payment events topic on every ledger
// transition.
type PaymentEvent struct {
	Reference      string        `json:"reference"`
	ServiceID      string        `json:"service_id"`
	Transition     string        `json:"transition"`
	Status         PaymentStatus `json:"status"`
	RefundStatus   RefundStatus  `json:"refund_status"`
	Amount         string        `json:"amount"`
	Currency       Currency      `json:"currency"`
	RefundedAmount string        `json:"refunded_amount"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

func NewPaymentEvent(p *Payment, transition string) PaymentEvent {
	return PaymentEvent{
		Reference:      p.Reference,
		ServiceID:      p.ServiceID,
		Transition:     transition,
		Status:         p.Status,
		RefundStatus:   p.RefundStatus,
		Amount:         p.Amount.StringFixed(2),
		Currency:       p.Currency,
		RefundedAmount: p.RefundedAmount.StringFixed(2),
		OccurredAt:     time.Now().UTC(),
	}
}

// Key partitions payment events by reference.
func (e PaymentEvent) Key() string { return e.Reference }

// WebhookPayload is the body POSTed to a service's webhook URL.
type WebhookPayload struct {
	Event WebhookEvent       `json:"event"`
	Data  WebhookPaymentData `json:"data"`
}

type WebhookPaymentData struct {
	Reference          string         `json:"reference"`
	ServiceReference   string         `json:"service_reference"`
	Email              string         `json:"email"`
	Name               string         `json:"name"`
	Amount             string         `json:"amount"`
	Currency           Currency       `json:"currency"`
	SettlementAmount   string         `json:"settlement_amount"`
	SettlementCurrency Currency       `json:"settlement_currency"`
	Status             PaymentStatus  `json:"status"`
	Channel            string         `json:"channel"`
	Fees               string         `json:"fees"`
	Description        string         `json:"description"`
	RefundStatus       RefundStatus   `json:"refund_status"`
	RefundedAmount     string         `json:"refunded_amount"`
	Metadata           map[string]any `json:"metadata"`
	CreatedAt          time.Time      `json:"created_at"`
}

func NewWebhookPayload(p *Payment, event WebhookEvent) WebhookPayload {
	metadata := map[string]any(p.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return WebhookPayload{
		Event: event,
		Data: WebhookPaymentData{
			Reference:          p.Reference,
			ServiceReference:   p.ServiceReference,
			Email:              p.Email,
			Name:               p.Name,
			Amount:             p.Amount.StringFixed(2),
			Currency:           p.Currency,
			SettlementAmount:   p.SettlementAmount.StringFixed(2),
			SettlementCurrency: p.SettlementCurrency,
			Status:             p.Status,
			Channel:            p.Channel,
			Fees:               p.Fees.StringFixed(2),
			Description:        p.Description,
			RefundStatus:       p.RefundStatus,
			RefundedAmount:     p.RefundedAmount.StringFixed(2),
			Metadata:           metadata,
			CreatedAt:          p.CreatedAt.UTC(),
		},
	}
}

// DLQMessage records a webhook that exhausted its delivery attempts.
type DLQMessage struct {
	PaymentReference string       `json:"payment_reference"`
	ServiceID        string       `json:"service_id"`
	Event            WebhookEvent `json:"event"`
	URL              string       `json:"url"`
	Body             string       `json:"body"`
	Attempts         int          `json:"attempts"`
	LastError        string       `json:"last_error,omitempty"`
	Timestamp        time.Time    `json:"timestamp"`
}

func (m DLQMessage) Key() string { return m.PaymentReference }
