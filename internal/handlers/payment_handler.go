package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/acoruss/acoruss.github.io/internal/exchange"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/models/dto"
	"github.com/acoruss/acoruss.github.io/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaystackSignatureHeader carries the processor's HMAC-SHA512 of the body.
const PaystackSignatureHeader = "X-Paystack-Signature"

type PaymentService interface {
	Initiate(ctx context.Context, svc *models.Service, req *dto.InitiatePaymentRequest, clientIP string) (*service.InitiateResult, error)
	Get(ctx context.Context, svc *models.Service, reference string) (*models.Payment, error)
	List(ctx context.Context, svc *models.Service, q dto.ListPaymentsQuery) (*service.ListResult, error)
	Refund(ctx context.Context, svc *models.Service, reference string, req *dto.RefundRequest) (*models.Payment, error)
	HandleUpstreamEvent(ctx context.Context, event models.UpstreamEvent) error
	Verify(ctx context.Context, reference string) (*models.Payment, error)
}

type SignatureVerifier interface {
	VerifySignature(body []byte, signature string) bool
}

type PaymentHandler struct {
	Service    PaymentService
	Signatures SignatureVerifier
}

func NewPaymentHandler(s PaymentService, signatures SignatureVerifier) *PaymentHandler {
	useJSONFieldNames()
	return &PaymentHandler{Service: s, Signatures: signatures}
}

// POST /api/v1/payments/initiate/
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindFailure(err, "body"))
		return
	}

	res, err := h.Service.Initiate(c.Request.Context(), CurrentService(c), &req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	p := res.Payment
	source, stale := exchange.SourceName, false
	if res.Conversion != nil {
		source, stale = res.Conversion.Source, res.Conversion.Stale
	}
	message := "Payment initiated"
	if !res.Created {
		message = "Existing payment returned for idempotency key"
	}
	c.JSON(http.StatusOK, dto.OK(message, dto.InitiatePaymentResponse{
		Reference:          p.Reference,
		AuthorizationURL:   p.AuthorizationURL,
		CallbackURL:        p.CallbackURL,
		Status:             string(p.Status),
		CurrencyConversion: dto.NewCurrencyConversion(p, source, stale),
	}))
}

// GET /api/v1/payments/:reference/
func (h *PaymentHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), CurrentService(c), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.NewPaymentResponse(p)))
}

// GET /api/v1/payments/
func (h *PaymentHandler) List(c *gin.Context) {
	var q dto.ListPaymentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindFailure(err, "query"))
		return
	}

	res, err := h.Service.List(c.Request.Context(), CurrentService(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{
		Status: true,
		Data:   dto.NewPaymentListItems(res.Payments),
		Meta:   &res.Meta,
	})
}

// POST /api/v1/payments/:reference/refund/
//
// An empty body refunds the whole refundable balance.
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, bindFailure(err, "body"))
		return
	}

	p, err := h.Service.Refund(c.Request.Context(), CurrentService(c), c.Param("reference"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Refund processed", dto.NewRefundResponse(p)))
}

// POST /api/v1/webhooks/paystack
//
// Any verified event is acknowledged with 200 unless it could not be stored,
// so the processor only retries on our failures.
func (h *PaymentHandler) PaystackWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, models.NewValidationError(map[string]string{"body": "Unreadable"}))
		return
	}
	if !h.Signatures.VerifySignature(body, c.GetHeader(PaystackSignatureHeader)) {
		logrus.WithField("client_ip", c.ClientIP()).Warn("rejected upstream webhook with invalid signature")
		respondError(c, models.ErrInvalidSignature)
		return
	}

	var event models.UpstreamEvent
	if err := json.Unmarshal(body, &event); err != nil {
		respondError(c, models.NewValidationError(map[string]string{"body": "Malformed input"}))
		return
	}
	if err := h.Service.HandleUpstreamEvent(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Webhook received", nil))
}

// GET /api/v1/payments/callback/?reference=
//
// The customer lands here after checkout. The payment is verified upstream and
// the customer is sent on to the service's callback URL.
func (h *PaymentHandler) VerifyCallback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	if reference == "" {
		respondError(c, models.NewValidationError(map[string]string{"reference": "Required"}))
		return
	}

	p, err := h.Service.Verify(c.Request.Context(), reference)
	if err != nil {
		if p == nil {
			respondError(c, err)
			return
		}
		logrus.WithError(err).WithField("reference", reference).Warn("verification incomplete, redirecting with current status")
	}

	target, err := callbackTarget(p)
	if err != nil || target == "" {
		if err != nil {
			logrus.WithError(err).WithField("reference", reference).Warn("unusable callback url")
		}
		c.JSON(http.StatusOK, dto.OK("Payment verified", dto.NewPaymentResponse(p)))
		return
	}
	c.Redirect(http.StatusFound, target)
}

func callbackTarget(p *models.Payment) (string, error) {
	if p.CallbackURL == "" {
		return "", nil
	}
	u, err := url.Parse(p.CallbackURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("reference", p.Reference)
	q.Set("status", string(p.Status))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
