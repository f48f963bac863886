package dto

import (
	"strings"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
)

type InitiatePaymentRequest struct {
	Email            string           `json:"email" binding:"required,email,max=255"`
	Amount           *decimal.Decimal `json:"amount" binding:"required"`
	Currency         string           `json:"currency" binding:"omitempty,max=3"`
	Name             string           `json:"name" binding:"max=255"`
	Description      string           `json:"description" binding:"max=500"`
	ServiceReference string           `json:"service_reference" binding:"max=255"`
	CallbackURL      string           `json:"callback_url" binding:"omitempty,url,max=500"`
	Metadata         map[string]any   `json:"metadata"`
	IdempotencyKey   string           `json:"idempotency_key" binding:"max=255"`
}

func (p *InitiatePaymentRequest) Sanitize() {
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.ServiceReference = strings.TrimSpace(p.ServiceReference)
	p.CallbackURL = strings.TrimSpace(p.CallbackURL)
	p.IdempotencyKey = strings.TrimSpace(p.IdempotencyKey)

	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = string(models.CurrencyKES)
	}
}

// ToEntity maps the request onto a new payment. Amounts, references and the
// owning service are filled in by the caller.
func (p *InitiatePaymentRequest) ToEntity() *models.Payment {
	payment := &models.Payment{
		Email:            p.Email,
		Name:             p.Name,
		Description:      p.Description,
		ServiceReference: p.ServiceReference,
		Currency:         models.Currency(p.Currency),
		CallbackURL:      p.CallbackURL,
		Status:           models.StatusPending,
		RefundStatus:     models.RefundNone,
	}
	if p.IdempotencyKey != "" {
		key := p.IdempotencyKey
		payment.IdempotencyKey = &key
	}
	return payment
}

type RefundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Reason string           `json:"reason" binding:"max=255"`
}

type ListPaymentsQuery struct {
	Status  string `form:"status"`
	Email   string `form:"email"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

type CurrencyConversion struct {
	OriginalAmount     string    `json:"original_amount"`
	OriginalCurrency   string    `json:"original_currency"`
	ExchangeRate       string    `json:"exchange_rate"`
	ConvertedAmount    string    `json:"converted_amount"`
	SettlementCurrency string    `json:"settlement_currency"`
	RateSource         string    `json:"rate_source"`
	RateTimestamp      time.Time `json:"rate_timestamp"`
	Stale              bool      `json:"stale,omitempty"`
}

type InitiatePaymentResponse struct {
	Reference          string              `json:"reference"`
	AuthorizationURL   string              `json:"authorization_url"`
	CallbackURL        string              `json:"callback_url"`
	Status             string              `json:"status"`
	CurrencyConversion *CurrencyConversion `json:"currency_conversion,omitempty"`
}

type PaymentResponse struct {
	Reference           string         `json:"reference"`
	ServiceReference    string         `json:"service_reference"`
	Email               string         `json:"email"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	Amount              string         `json:"amount"`
	Currency            string         `json:"currency"`
	SettlementAmount    string         `json:"settlement_amount"`
	SettlementCurrency  string         `json:"settlement_currency"`
	ExchangeRate        *string        `json:"exchange_rate"`
	Status              string         `json:"status"`
	Channel             string         `json:"channel"`
	Fees                string         `json:"fees"`
	NetAmount           string         `json:"net_amount"`
	RefundStatus        string         `json:"refund_status"`
	RefundedAmount      string         `json:"refunded_amount"`
	RefundableAmount    string         `json:"refundable_amount"`
	PendingRefundAmount string         `json:"pending_refund_amount"`
	AuthorizationURL    string         `json:"authorization_url"`
	CallbackURL         string         `json:"callback_url"`
	Metadata            map[string]any `json:"metadata"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

type PaymentListItem struct {
	Reference        string    `json:"reference"`
	ServiceReference string    `json:"service_reference"`
	Email            string    `json:"email"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	RefundStatus     string    `json:"refund_status"`
	CreatedAt        time.Time `json:"created_at"`
}

type RefundResponse struct {
	Reference        string `json:"reference"`
	RefundStatus     string `json:"refund_status"`
	RefundedAmount   string `json:"refunded_amount"`
	RefundableAmount string `json:"refundable_amount"`
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	var rate *string
	if p.ExchangeRate.Valid {
		s := p.ExchangeRate.Decimal.String()
		rate = &s
	}
	metadata := map[string]any(p.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return PaymentResponse{
		Reference:           p.Reference,
		ServiceReference:    p.ServiceReference,
		Email:               p.Email,
		Name:                p.Name,
		Description:         p.Description,
		Amount:              p.Amount.StringFixed(2),
		Currency:            string(p.Currency),
		SettlementAmount:    p.SettlementAmount.StringFixed(2),
		SettlementCurrency:  string(p.SettlementCurrency),
		ExchangeRate:        rate,
		Status:              string(p.Status),
		Channel:             p.Channel,
		Fees:                p.Fees.StringFixed(2),
		NetAmount:           p.NetAmount().StringFixed(2),
		RefundStatus:        string(p.RefundStatus),
		RefundedAmount:      p.RefundedAmount.StringFixed(2),
		RefundableAmount:    p.RefundableAmount().StringFixed(2),
		PendingRefundAmount: p.PendingRefundAmount.StringFixed(2),
		AuthorizationURL:    p.AuthorizationURL,
		CallbackURL:         p.CallbackURL,
		Metadata:            metadata,
		CreatedAt:           p.CreatedAt.UTC(),
		UpdatedAt:           p.UpdatedAt.UTC(),
	}
}

func NewPaymentListItems(payments []models.Payment) []PaymentListItem {
	items := make([]PaymentListItem, 0, len(payments))
	for _, p := range payments {
		items = append(items, PaymentListItem{
			Reference:        p.Reference,
			ServiceReference: p.ServiceReference,
			Email:            p.Email,
			Amount:           p.Amount.StringFixed(2),
			Currency:         string(p.Currency),
			Status:           string(p.Status),
			RefundStatus:     string(p.RefundStatus),
			CreatedAt:        p.CreatedAt.UTC(),
		})
	}
	return items
}

func NewRefundResponse(p *models.Payment) RefundResponse {
	return RefundResponse{
		Reference:        p.Reference,
		RefundStatus:     string(p.RefundStatus),
		RefundedAmount:   p.RefundedAmount.StringFixed(2),
		RefundableAmount: p.RefundableAmount().StringFixed(2),
	}
}

// NewCurrencyConversion describes the payment's rate snapshot, nil when the
// payment was made in the settlement currency.
func NewCurrencyConversion(p *models.Payment, source string, stale bool) *CurrencyConversion {
	if !p.ExchangeRate.Valid {
		return nil
	}
	conv := &CurrencyConversion{
		OriginalAmount:     p.Amount.StringFixed(2),
		OriginalCurrency:   string(p.Currency),
		ExchangeRate:       p.ExchangeRate.Decimal.String(),
		ConvertedAmount:    p.SettlementAmount.StringFixed(2),
		SettlementCurrency: string(p.SettlementCurrency),
		RateSource:         source,
		Stale:              stale,
	}
	if p.RateFetchedAt != nil {
		conv.RateTimestamp = p.RateFetchedAt.UTC()
	}
	return conv
}
