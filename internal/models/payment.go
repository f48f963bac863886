package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string
type RefundStatus string
type Currency string

const (
	StatusPending   PaymentStatus = "pending"
	StatusSuccess   PaymentStatus = "success"
	StatusFailed    PaymentStatus = "failed"
	StatusAbandoned PaymentStatus = "abandoned"

	RefundNone    RefundStatus = "none"
	RefundPending RefundStatus = "pending"
	RefundPartial RefundStatus = "partial"
	RefundFull    RefundStatus = "full"

	CurrencyKES Currency = "KES"
	CurrencyUSD Currency = "USD"
	CurrencyNGN Currency = "NGN"
)

// SupportedCurrencies lists the request currencies the proxy accepts.
var SupportedCurrencies = []Currency{CurrencyKES, CurrencyUSD, CurrencyNGN}

// Payment is one attempted charge. Status and RefundStatus are independent:
// RefundStatus only moves once Status is success.
type Payment struct {
	ID                  string              `gorm:"primaryKey;size:36"`
	Reference           string              `gorm:"size:100;uniqueIndex;not null"`
	ServiceID           string              `gorm:"size:36;not null;index;uniqueIndex:idx_payments_service_idempotency,priority:1"`
	IdempotencyKey      *string             `gorm:"size:255;uniqueIndex:idx_payments_service_idempotency,priority:2"`
	ServiceReference    string              `gorm:"size:255"`
	Email               string              `gorm:"size:255;not null;index"`
	Name                string              `gorm:"size:255"`
	Description         string              `gorm:"size:500"`
	Amount              decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Currency            Currency            `gorm:"size:3;not null"`
	SettlementAmount    decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	SettlementCurrency  Currency            `gorm:"size:3;not null"`
	ExchangeRate        decimal.NullDecimal `gorm:"type:numeric(18,6)"`
	RateSourceCurrency  string              `gorm:"size:3"`
	RateFetchedAt       *time.Time
	Status              PaymentStatus   `gorm:"size:20;not null;index"`
	Channel             string          `gorm:"size:50"`
	Fees                decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RefundStatus        RefundStatus    `gorm:"size:20;not null"`
	RefundedAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PendingRefundAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PriorRefundStatus   RefundStatus    `gorm:"size:20"`
	// Settlement currency side of the refunds: what was sent to the
	// processor for booked refunds and for the one in flight.
	SettlementRefunded      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PendingSettlementRefund decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AuthorizationURL        string          `gorm:"size:500"`
	CallbackURL             string          `gorm:"size:500"`
	UpstreamID              string          `gorm:"size:100"`
	UpstreamRefundID        string          `gorm:"size:100"`
	// BookedRefundIDs holds the processor ids of every booked refund.
	BookedRefundIDs datatypes.JSONSlice[string]
	IPAddress       string `gorm:"size:64"`
	Metadata        datatypes.JSONMap
	Version         int `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Version == 0 {
		p.Version = 1
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	if p.RefundStatus == "" {
		p.RefundStatus = RefundNone
	}
	return
}

// NewReference returns a globally unique reference such as acoruss-1a2b3c4d5e6f.
func NewReference(prefix string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, id[:12])
}

func (c Currency) IsValid() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusAbandoned:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusAbandoned
}

// NetAmount is what the processor settles after fees.
func (p *Payment) NetAmount() decimal.Decimal {
	return p.SettlementAmount.Sub(p.Fees)
}

// RefundableAmount is the part of Amount not yet refunded.
func (p *Payment) RefundableAmount() decimal.Decimal {
	remaining := p.Amount.Sub(p.RefundedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

func (p *Payment) IsRefundable() bool {
	return p.Status == StatusSuccess &&
		p.RefundStatus != RefundFull &&
		p.RefundStatus != RefundPending &&
		p.RefundableAmount().IsPositive()
}

// MarkSucceeded applies an upstream confirmed charge. A repeat confirmation
// returns ErrAlreadyApplied; a confirmation for a failed or abandoned payment
// returns ErrIllegalTransition and leaves the payment untouched.
func (p *Payment) MarkSucceeded(upstreamID, channel string, fees decimal.Decimal) error {
	switch p.Status {
	case StatusPending:
		p.Status = StatusSuccess
		p.UpstreamID = upstreamID
		p.Channel = channel
		p.Fees = fees
		return nil
	case StatusSuccess:
		return ErrAlreadyApplied
	default:
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, p.Status, StatusSuccess)
	}
}

// MarkUnsuccessful moves a pending payment to failed or abandoned.
func (p *Payment) MarkUnsuccessful(status PaymentStatus) error {
	if status != StatusFailed && status != StatusAbandoned {
		return fmt.Errorf("%w: %s is not an unsuccessful status", ErrIllegalTransition, status)
	}
	switch p.Status {
	case StatusPending:
		p.Status = status
		return nil
	case status:
		return ErrAlreadyApplied
	default:
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, p.Status, status)
	}
}

// BeginRefund reserves a refund of requested, or of the whole refundable
// balance when requested is nil, and returns the reserved amount.
func (p *Payment) BeginRefund(requested *decimal.Decimal) (decimal.Decimal, error) {
	if p.Status != StatusSuccess || p.RefundStatus == RefundFull {
		return decimal.Zero, ErrNotRefundable
	}
	if p.RefundStatus == RefundPending {
		return decimal.Zero, ErrRefundInProgress
	}

	remaining := p.RefundableAmount()
	amount := remaining
	if requested != nil {
		amount = requested.Round(2)
		if !amount.IsPositive() {
			return decimal.Zero, NewValidationError(map[string]string{"amount": "Must be a positive number"})
		}
		if amount.GreaterThan(remaining) {
			return decimal.Zero, fmt.Errorf("%w: requested %s, refundable %s", ErrRefundExceedsBalance, amount.StringFixed(2), remaining.StringFixed(2))
		}
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrNotRefundable
	}

	p.PriorRefundStatus = p.RefundStatus
	p.RefundStatus = RefundPending
	p.PendingRefundAmount = amount
	p.PendingSettlementRefund = p.settlementFor(amount)
	return amount, nil
}

// HasBookedRefund reports whether the processor refund id was already booked.
func (p *Payment) HasBookedRefund(upstreamID string) bool {
	for _, id := range p.BookedRefundIDs {
		if id == upstreamID {
			return true
		}
	}
	return false
}

// MatchRefundEvent checks that a processor refund event is about the refund
// in flight. An event for a booked refund returns ErrAlreadyApplied. Any other
// event must carry the settlement amount reserved for the pending refund.
func (p *Payment) MatchRefundEvent(upstreamID string, settlement decimal.Decimal) error {
	if p.Status != StatusSuccess {
		return fmt.Errorf("%w: refund on %s payment", ErrIllegalTransition, p.Status)
	}
	if upstreamID != "" && p.HasBookedRefund(upstreamID) {
		return ErrAlreadyApplied
	}
	if p.RefundStatus != RefundPending {
		return fmt.Errorf("%w: refund %q matches no refund in flight", ErrIllegalTransition, upstreamID)
	}
	if !settlement.Equal(p.PendingSettlementRefund) {
		return fmt.Errorf("%w: refund %q of %s does not match the %s in flight",
			ErrIllegalTransition, upstreamID, settlement.StringFixed(2), p.PendingSettlementRefund.StringFixed(2))
	}
	return nil
}

// CompleteRefund books the pending refund under the processor's refund id.
// An id that was already booked returns ErrAlreadyApplied.
func (p *Payment) CompleteRefund(upstreamID string) error {
	if p.Status != StatusSuccess {
		return fmt.Errorf("%w: refund on %s payment", ErrIllegalTransition, p.Status)
	}
	if upstreamID != "" && p.HasBookedRefund(upstreamID) {
		return ErrAlreadyApplied
	}
	if p.RefundStatus != RefundPending {
		return ErrAlreadyApplied
	}
	p.RefundedAmount = p.RefundedAmount.Add(p.PendingRefundAmount)
	p.SettlementRefunded = p.SettlementRefunded.Add(p.PendingSettlementRefund)
	if p.RefundedAmount.GreaterThanOrEqual(p.Amount) {
		p.RefundedAmount = p.Amount
		p.RefundStatus = RefundFull
	} else {
		p.RefundStatus = RefundPartial
	}
	if upstreamID != "" {
		p.UpstreamRefundID = upstreamID
		p.BookedRefundIDs = append(p.BookedRefundIDs, upstreamID)
	}
	p.PendingRefundAmount = decimal.Zero
	p.PendingSettlementRefund = decimal.Zero
	p.PriorRefundStatus = ""
	return nil
}

// FailRefund drops the pending refund and restores the previous refund status.
func (p *Payment) FailRefund() error {
	if p.RefundStatus != RefundPending {
		return ErrAlreadyApplied
	}
	p.RefundStatus = p.PriorRefundStatus
	if p.RefundStatus == "" {
		p.RefundStatus = RefundNone
	}
	p.PendingRefundAmount = decimal.Zero
	p.PendingSettlementRefund = decimal.Zero
	p.PriorRefundStatus = ""
	return nil
}

// SettlementRefundable is the part of SettlementAmount not yet refunded.
func (p *Payment) SettlementRefundable() decimal.Decimal {
	remaining := p.SettlementAmount.Sub(p.SettlementRefunded)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// settlementFor converts a refund into the settlement currency with the
// payment's rate snapshot. Refunding the rest of the balance takes the rest
// of the settlement amount, so rounded partial refunds never add up to more
// than was charged.
func (p *Payment) settlementFor(amount decimal.Decimal) decimal.Decimal {
	remaining := p.SettlementRefundable()
	if amount.GreaterThanOrEqual(p.RefundableAmount()) {
		return remaining
	}
	converted := amount
	if p.ExchangeRate.Valid {
		converted = amount.Mul(p.ExchangeRate.Decimal).Round(2)
	}
	if converted.GreaterThan(remaining) {
		return remaining
	}
	return converted
}

// RefundRequestAmount is the settlement amount to ask the processor for the
// pending refund. Refunding the whole untouched payment returns nil so the
// processor refunds the full transaction.
func (p *Payment) RefundRequestAmount() *decimal.Decimal {
	if p.SettlementRefunded.IsZero() && p.PendingSettlementRefund.Equal(p.SettlementAmount) {
		return nil
	}
	amount := p.PendingSettlementRefund
	return &amount
}
