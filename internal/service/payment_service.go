package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acoruss/acoruss.github.io/internal/exchange"
	"github.com/acoruss/acoruss.github.io/internal/gateway"
	"github.com/acoruss/acoruss.github.io/internal/metrics"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/models/dto"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Ledger transitions as published on the payment events topic.
const (
	TransitionCreated         = "created"
	TransitionSucceeded       = "succeeded"
	TransitionFailed          = "failed"
	TransitionAbandoned       = "abandoned"
	TransitionRefundRequested = "refund_requested"
	TransitionRefunded        = "refunded"
	TransitionRefundFailed    = "refund_failed"
)

// PaymentRepo defines the payment persistence operations the ledger needs.
// Status and refund changes only go through Transition.
type PaymentRepo interface {
	CreateIdempotent(ctx context.Context, payment *models.Payment) (*models.Payment, bool, error)
	GetByIdempotencyKey(ctx context.Context, serviceID, key string) (*models.Payment, error)
	GetByReference(ctx context.Context, reference string) (*models.Payment, error)
	GetForService(ctx context.Context, serviceID, reference string) (*models.Payment, error)
	List(ctx context.Context, serviceID string, filter store.PaymentFilter) ([]models.Payment, int64, error)
	Transition(ctx context.Context, reference string, fn func(*models.Payment) error) (*models.Payment, error)
}

type ServiceRepo interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

// Gateway is the upstream payment processor.
type Gateway interface {
	Charge(ctx context.Context, req gateway.ChargeRequest) (gateway.ChargeResult, error)
	Verify(ctx context.Context, reference string) (gateway.Transaction, error)
	Refund(ctx context.Context, req gateway.RefundRequest) (gateway.RefundResult, error)
}

type RateProvider interface {
	Rate(ctx context.Context, from, to models.Currency) (exchange.Quote, error)
}

type WebhookDispatcher interface {
	Enqueue(svc *models.Service, payment *models.Payment, event models.WebhookEvent) error
}

// Publisher defines the interface for publishing events to Kafka topics.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

type Options struct {
	SettlementCurrency models.Currency
	ReferencePrefix    string
	// GatewayCallbackURL is where the processor sends the customer after
	// checkout; the proxy verifies there and forwards to the service.
	GatewayCallbackURL string
	EventsTopic        string
}

// PaymentService is the payment ledger. It owns every state change of a
// payment and triggers the webhooks and events that follow from it.
type PaymentService struct {
	Payments  PaymentRepo
	Services  ServiceRepo
	Gateway   Gateway
	Rates     RateProvider
	Webhooks  WebhookDispatcher
	Publisher Publisher
	opts      Options
}

func NewPaymentService(payments PaymentRepo, services ServiceRepo, gw Gateway, rates RateProvider, webhooks WebhookDispatcher, publisher Publisher, opts Options) *PaymentService {
	if opts.SettlementCurrency == "" {
		opts.SettlementCurrency = models.CurrencyKES
	}
	if opts.ReferencePrefix == "" {
		opts.ReferencePrefix = "acoruss"
	}
	return &PaymentService{
		Payments:  payments,
		Services:  services,
		Gateway:   gw,
		Rates:     rates,
		Webhooks:  webhooks,
		Publisher: publisher,
		opts:      opts,
	}
}

// InitiateResult is the outcome of Initiate. Created is false when an earlier
// payment with the same idempotency key was returned.
type InitiateResult struct {
	Payment    *models.Payment
	Conversion *exchange.Conversion
	Created    bool
}

// Initiate validates the request, converts the amount to the settlement
// currency, records the payment and opens a checkout with the processor.
//
// A replayed idempotency key returns the stored payment without calling the
// processor again. If the processor call fails the payment stays pending and
// the error is returned.
func (s *PaymentService) Initiate(ctx context.Context, svc *models.Service, req *dto.InitiatePaymentRequest, clientIP string) (*InitiateResult, error) {
	req.Sanitize()
	if err := s.validateInitiate(svc, req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.Payments.GetByIdempotencyKey(ctx, svc.ID, req.IdempotencyKey)
		if err == nil {
			metrics.PaymentsInitiated.WithLabelValues(string(existing.Currency), "false").Inc()
			return &InitiateResult{Payment: existing}, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	amount := req.Amount.Round(2)
	currency := models.Currency(req.Currency)
	conv, err := exchange.Convert(ctx, s.Rates, amount, currency, s.opts.SettlementCurrency)
	if err != nil {
		return nil, err
	}

	payment := req.ToEntity()
	payment.Reference = models.NewReference(s.opts.ReferencePrefix)
	payment.ServiceID = svc.ID
	payment.Amount = amount
	payment.SettlementAmount = conv.ConvertedAmount
	payment.SettlementCurrency = conv.SettlementCurrency
	payment.IPAddress = clientIP
	if payment.CallbackURL == "" {
		payment.CallbackURL = svc.DefaultCallbackURL
	}
	if conv.Applied {
		fetchedAt := conv.FetchedAt
		payment.ExchangeRate = decimal.NewNullDecimal(conv.Rate)
		payment.RateSourceCurrency = string(currency)
		payment.RateFetchedAt = &fetchedAt
	}
	payment.Metadata = buildMetadata(svc, req)

	stored, created, err := s.Payments.CreateIdempotent(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("error creating payment: %w", err)
	}
	metrics.PaymentsInitiated.WithLabelValues(string(currency), fmt.Sprint(created)).Inc()
	if !created {
		return &InitiateResult{Payment: stored}, nil
	}
	metrics.PaymentAmounts.WithLabelValues(string(stored.SettlementCurrency)).Observe(stored.SettlementAmount.InexactFloat64())
	s.emit(ctx, stored, TransitionCreated)

	log := logrus.WithFields(logrus.Fields{"reference": stored.Reference, "service": svc.Slug})
	charge, err := s.Gateway.Charge(ctx, gateway.ChargeRequest{
		Email:       stored.Email,
		Amount:      stored.SettlementAmount,
		Currency:    stored.SettlementCurrency,
		Reference:   stored.Reference,
		CallbackURL: s.opts.GatewayCallbackURL,
		Metadata: map[string]any{
			"payment_id":        stored.ID,
			"service":           svc.Slug,
			"service_reference": stored.ServiceReference,
			"description":       stored.Description,
			"original_amount":   stored.Amount.StringFixed(2),
			"original_currency": string(stored.Currency),
		},
	})
	if err != nil {
		log.WithError(err).Error("payment initiation failed upstream, payment left pending")
		return nil, &models.PendingPaymentError{Reference: stored.Reference, Err: err}
	}

	updated, err := s.Payments.Transition(ctx, stored.Reference, func(p *models.Payment) error {
		p.AuthorizationURL = charge.AuthorizationURL
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error saving authorization url: %w", err)
	}
	log.Info("payment initiated")
	return &InitiateResult{Payment: updated, Conversion: &conv, Created: true}, nil
}

func (s *PaymentService) validateInitiate(svc *models.Service, req *dto.InitiatePaymentRequest) error {
	fields := map[string]string{}
	if req.Email == "" {
		fields["email"] = "Required"
	}
	if req.Amount == nil || !req.Amount.Round(2).IsPositive() {
		fields["amount"] = "Must be a positive number"
	}

	currency := models.Currency(req.Currency)
	switch {
	case !currency.IsValid():
		fields["currency"] = "Must be one of: " + joinCurrencies(models.SupportedCurrencies)
	case !svc.AllowsCurrency(currency):
		fields["currency"] = "Not allowed for this service. Allowed: " + strings.Join(svc.AllowedCurrencies, ", ")
	}

	if len(fields) > 0 {
		return models.NewValidationError(fields)
	}
	return nil
}

// buildMetadata tags the payment with its service. Client keys win on clash.
func buildMetadata(svc *models.Service, req *dto.InitiatePaymentRequest) datatypes.JSONMap {
	metadata := datatypes.JSONMap{
		"service":           svc.Slug,
		"service_reference": req.ServiceReference,
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	return metadata
}

func joinCurrencies(cs []models.Currency) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Get returns a payment owned by svc.
func (s *PaymentService) Get(ctx context.Context, svc *models.Service, reference string) (*models.Payment, error) {
	return s.Payments.GetForService(ctx, svc.ID, reference)
}

type ListResult struct {
	Payments []models.Payment
	Meta     dto.Meta
}

// List pages through svc's payments. per_page is clamped to 1..100 and page
// to at least 1; an unknown status filter is ignored.
func (s *PaymentService) List(ctx context.Context, svc *models.Service, q dto.ListPaymentsQuery) (*ListResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	switch {
	case perPage == 0:
		perPage = defaultPerPage
	case perPage < 1:
		perPage = 1
	case perPage > maxPerPage:
		perPage = maxPerPage
	}

	filter := store.PaymentFilter{Email: strings.TrimSpace(q.Email), Page: page, PerPage: perPage}
	if status := models.PaymentStatus(q.Status); status.IsValid() {
		filter.Status = status
	}

	payments, total, err := s.Payments.List(ctx, svc.ID, filter)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return &ListResult{
		Payments: payments,
		Meta:     dto.Meta{Total: total, Page: page, PerPage: perPage, Pages: pages},
	}, nil
}

// Refund refunds amount, or the whole refundable balance when amount is nil.
//
// The refund is reserved on the payment before the processor is called, so a
// second refund fails with ErrRefundInProgress until the first settles. An
// explicit rejection releases the reservation. A timeout keeps it and the
// processor's refund webhook settles it later.
func (s *PaymentService) Refund(ctx context.Context, svc *models.Service, reference string, req *dto.RefundRequest) (*models.Payment, error) {
	if _, err := s.Payments.GetForService(ctx, svc.ID, reference); err != nil {
		return nil, err
	}

	var reserved decimal.Decimal
	payment, err := s.Payments.Transition(ctx, reference, func(p *models.Payment) error {
		var err error
		reserved, err = p.BeginRefund(req.Amount)
		return err
	})
	if err != nil {
		metrics.Refunds.WithLabelValues("rejected").Inc()
		return nil, err
	}
	s.emit(ctx, payment, TransitionRefundRequested)

	log := logrus.WithFields(logrus.Fields{
		"reference": reference,
		"service":   svc.Slug,
		"amount":    reserved.StringFixed(2),
	})

	result, err := s.Gateway.Refund(ctx, gateway.RefundRequest{
		TransactionReference: reference,
		Amount:               payment.RefundRequestAmount(),
		Reason:               strings.TrimSpace(req.Reason),
	})
	if err != nil {
		if gateway.IsUnavailable(err) {
			metrics.Refunds.WithLabelValues("unknown").Inc()
			log.WithError(err).Warn("refund outcome unknown, waiting for processor webhook")
			return nil, err
		}
		metrics.Refunds.WithLabelValues("failed").Inc()
		log.WithError(err).Warn("refund rejected upstream")
		if reverted, ferr := s.Payments.Transition(ctx, reference, func(p *models.Payment) error { return p.FailRefund() }); ferr == nil {
			s.emit(ctx, reverted, TransitionRefundFailed)
		} else if !errors.Is(ferr, models.ErrAlreadyApplied) {
			log.WithError(ferr).Error("failed to release refund reservation")
		}
		return nil, err
	}

	refunded, err := s.Payments.Transition(ctx, reference, func(p *models.Payment) error {
		return p.CompleteRefund(result.ID)
	})
	switch {
	case errors.Is(err, models.ErrAlreadyApplied):
		// The processor's webhook settled it first.
		return s.Payments.GetByReference(ctx, reference)
	case err != nil:
		return nil, fmt.Errorf("error booking refund: %w", err)
	}

	metrics.Refunds.WithLabelValues("completed").Inc()
	log.Info("refund booked")
	s.emit(ctx, refunded, TransitionRefunded)
	s.notify(svc, refunded, models.EventPaymentRefunded)
	return refunded, nil
}

// HandleUpstreamEvent applies a verified processor webhook. Events about
// unknown payments, repeats and events that would move a payment backwards
// are logged and dropped; only storage failures are returned.
func (s *PaymentService) HandleUpstreamEvent(ctx context.Context, event models.UpstreamEvent) error {
	reference := event.Data.PaymentReference()
	log := logrus.WithFields(logrus.Fields{"reference": reference, "event": event.Event})
	if reference == "" {
		log.Warn("upstream event without reference")
		return nil
	}

	switch event.Event {
	case models.UpstreamChargeSuccess:
		_, err := s.applyChargeSuccess(ctx, reference, event.Data.ID.String(), event.Data.Channel, gateway.FromMinor(event.Data.Fees))
		return s.dropBenign(log, err)

	case models.UpstreamChargeFailed:
		_, err := s.applyChargeFailure(ctx, reference, models.StatusFailed)
		return s.dropBenign(log, err)

	case models.UpstreamRefundProcessed:
		id, amount := event.Data.ID.String(), gateway.FromMinor(event.Data.Amount)
		p, err := s.Payments.Transition(ctx, reference, func(p *models.Payment) error {
			if err := p.MatchRefundEvent(id, amount); err != nil {
				return err
			}
			return p.CompleteRefund(id)
		})
		if err != nil {
			return s.dropBenign(log, err)
		}
		metrics.Refunds.WithLabelValues("completed").Inc()
		s.emit(ctx, p, TransitionRefunded)
		s.notifyOwner(ctx, p, models.EventPaymentRefunded)
		return nil

	case models.UpstreamRefundFailed:
		id, amount := event.Data.ID.String(), gateway.FromMinor(event.Data.Amount)
		p, err := s.Payments.Transition(ctx, reference, func(p *models.Payment) error {
			if err := p.MatchRefundEvent(id, amount); err != nil {
				return err
			}
			return p.FailRefund()
		})
		if errors.Is(err, models.ErrAlreadyApplied) {
			log.WithField("refund_id", id).Error("anomaly: processor failed a refund that was already booked")
			return nil
		}
		if err != nil {
			return s.dropBenign(log, err)
		}
		metrics.Refunds.WithLabelValues("failed").Inc()
		s.emit(ctx, p, TransitionRefundFailed)
		return nil

	default:
		log.Debug("ignoring upstream event")
		return nil
	}
}

// Verify asks the processor for the authoritative state of a payment and
// applies it. Statuses the processor still reports as in flight leave the
// payment pending.
func (s *PaymentService) Verify(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := s.Payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.Status.IsTerminal() {
		return payment, nil
	}

	tx, err := s.Gateway.Verify(ctx, reference)
	if err != nil {
		logrus.WithError(err).WithField("reference", reference).Warn("verification failed, payment left pending")
		return payment, err
	}

	log := logrus.WithFields(logrus.Fields{"reference": reference, "upstream_status": tx.Status})
	var updated *models.Payment
	switch tx.Status {
	case "success":
		updated, err = s.applyChargeSuccess(ctx, reference, tx.ID, tx.Channel, tx.Fees)
	case "failed", "reversed":
		updated, err = s.applyChargeFailure(ctx, reference, models.StatusFailed)
	case "abandoned":
		updated, err = s.applyChargeFailure(ctx, reference, models.StatusAbandoned)
	default:
		log.Info("payment still in flight upstream")
		return payment, nil
	}
	if err := s.dropBenign(log, err); err != nil {
		return nil, err
	}
	if updated == nil {
		return s.Payments.GetByReference(ctx, reference)
	}
	return updated, nil
}

func (s *PaymentService) applyChargeSuccess(ctx context.Context, reference, upstreamID, channel string, fees decimal.Decimal) (*models.Payment, error) {
	p, err := s.Payments.Transition(ctx, reference, func(p *models.Payment) error {
		return p.MarkSucceeded(upstreamID, channel, fees)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"reference": reference, "channel": channel}).Info("payment succeeded")
	s.emit(ctx, p, TransitionSucceeded)
	s.notifyOwner(ctx, p, models.EventPaymentSuccess)
	return p, nil
}

func (s *PaymentService) applyChargeFailure(ctx context.Context, reference string, status models.PaymentStatus) (*models.Payment, error) {
	p, err := s.Payments.Transition(ctx, reference, func(p *models.Payment) error {
		return p.MarkUnsuccessful(status)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"reference": reference, "status": status}).Info("payment unsuccessful")
	transition := TransitionFailed
	if status == models.StatusAbandoned {
		transition = TransitionAbandoned
	}
	s.emit(ctx, p, transition)
	return p, nil
}

// dropBenign swallows the outcomes of an upstream event that must not make
// the processor retry, logging each.
func (s *PaymentService) dropBenign(log *logrus.Entry, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrAlreadyApplied):
		log.Debug("upstream event already applied")
		return nil
	case errors.Is(err, models.ErrNotFound):
		log.Warn("upstream event for unknown payment")
		return nil
	case errors.Is(err, models.ErrIllegalTransition):
		log.WithError(err).Warn("anomaly: upstream event conflicts with recorded state, dropped")
		return nil
	default:
		return err
	}
}

func (s *PaymentService) emit(ctx context.Context, p *models.Payment, transition string) {
	metrics.Transitions.WithLabelValues(transition).Inc()
	if s.Publisher == nil || s.opts.EventsTopic == "" {
		return
	}
	if err := s.Publisher.Publish(ctx, s.opts.EventsTopic, models.NewPaymentEvent(p, transition)); err != nil {
		logrus.WithError(err).WithField("reference", p.Reference).Warn("failed to publish payment event")
	}
}

func (s *PaymentService) notifyOwner(ctx context.Context, p *models.Payment, event models.WebhookEvent) {
	svc, err := s.Services.GetByID(ctx, p.ServiceID)
	if err != nil {
		logrus.WithError(err).WithField("reference", p.Reference).Error("cannot load service for webhook")
		return
	}
	s.notify(svc, p, event)
}

func (s *PaymentService) notify(svc *models.Service, p *models.Payment, event models.WebhookEvent) {
	if err := s.Webhooks.Enqueue(svc, p, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"reference": p.Reference,
			"event":     event,
		}).Error("failed to queue webhook")
	}
}
