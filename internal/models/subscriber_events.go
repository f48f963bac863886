package models

import "encoding/json"

// Events received from the upstream processor on its webhook.
const (
	UpstreamChargeSuccess   = "charge.success"
	UpstreamChargeFailed    = "charge.failed"
	UpstreamRefundProcessed = "refund.processed"
	UpstreamRefundFailed    = "refund.failed"
)

type UpstreamEvent struct {
	Event string            `json:"event"`
	Data  UpstreamEventData `json:"data"`
}

// UpstreamEventData covers both charge and refund payloads. Amounts are in
// the settlement currency's minor unit.
type UpstreamEventData struct {
	ID                   json.Number `json:"id"`
	Reference            string      `json:"reference"`
	TransactionReference string      `json:"transaction_reference"`
	Status               string      `json:"status"`
	Channel              string      `json:"channel"`
	Fees                 int64       `json:"fees"`
	Amount               int64       `json:"amount"`
	Currency             string      `json:"currency"`
	GatewayResponse      string      `json:"gateway_response"`
}

// PaymentReference returns the reference the event is about. Refund events
// name the original transaction in transaction_reference.
func (d UpstreamEventData) PaymentReference() string {
	if d.TransactionReference != "" {
		return d.TransactionReference
	}
	return d.Reference
}
