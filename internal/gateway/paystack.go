package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Paystack is the upstream processor client. Amounts cross the wire in the
// currency's minor unit.
type Paystack struct {
	SecretKey string
	BaseURL   string
	Client    *http.Client
}

func NewPaystack(secretKey, baseURL string, timeout time.Duration) *Paystack {
	return &Paystack{
		SecretKey: secretKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Client:    &http.Client{Timeout: timeout},
	}
}

type ChargeRequest struct {
	Email       string
	Amount      decimal.Decimal
	Currency    models.Currency
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

type ChargeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Transaction is the processor's view of a charge.
type Transaction struct {
	ID              string
	Reference       string
	Status          string
	Channel         string
	Amount          decimal.Decimal
	Fees            decimal.Decimal
	Currency        string
	GatewayResponse string
}

type RefundRequest struct {
	TransactionReference string
	// Amount in the settlement currency. Nil refunds the whole transaction.
	Amount *decimal.Decimal
	Reason string
}

type RefundResult struct {
	ID     string
	Status string
	Amount decimal.Decimal
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeBody struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Reference   string         `json:"reference"`
	Currency    string         `json:"currency"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type transactionData struct {
	ID              json.Number `json:"id"`
	Reference       string      `json:"reference"`
	Status          string      `json:"status"`
	Channel         string      `json:"channel"`
	Amount          int64       `json:"amount"`
	Fees            int64       `json:"fees"`
	Currency        string      `json:"currency"`
	GatewayResponse string      `json:"gateway_response"`
}

type refundBody struct {
	Transaction  string `json:"transaction"`
	Amount       int64  `json:"amount,omitempty"`
	MerchantNote string `json:"merchant_note,omitempty"`
}

type refundData struct {
	ID     json.Number `json:"id"`
	Status string      `json:"status"`
	Amount int64       `json:"amount"`
}

// Charge initializes a transaction and returns the checkout URL.
func (p *Paystack) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	body := initializeBody{
		Email:       req.Email,
		Amount:      ToMinor(req.Amount),
		Reference:   req.Reference,
		Currency:    string(req.Currency),
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	var data initializeData
	if err := p.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return ChargeResult{}, err
	}
	if data.AuthorizationURL == "" {
		return ChargeResult{}, &models.GatewayError{Kind: models.ErrGatewayRejected, Message: "no authorization url returned"}
	}
	return ChargeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the authoritative state of a transaction.
func (p *Paystack) Verify(ctx context.Context, reference string) (Transaction, error) {
	var data transactionData
	if err := p.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:              data.ID.String(),
		Reference:       data.Reference,
		Status:          data.Status,
		Channel:         data.Channel,
		Amount:          FromMinor(data.Amount),
		Fees:            FromMinor(data.Fees),
		Currency:        data.Currency,
		GatewayResponse: data.GatewayResponse,
	}, nil
}

// Refund asks the processor to refund a settled transaction.
func (p *Paystack) Refund(ctx context.Context, req RefundRequest) (RefundResult, error) {
	body := refundBody{
		Transaction:  req.TransactionReference,
		MerchantNote: req.Reason,
	}
	if req.Amount != nil {
		body.Amount = ToMinor(*req.Amount)
	}

	var data refundData
	if err := p.do(ctx, http.MethodPost, "/refund", body, &data); err != nil {
		return RefundResult{}, err
	}
	return RefundResult{
		ID:     data.ID.String(),
		Status: data.Status,
		Amount: FromMinor(data.Amount),
	}, nil
}

// VerifySignature checks an inbound webhook body against X-Paystack-Signature,
// the hex HMAC-SHA512 of the raw body keyed with the secret key.
func (p *Paystack) VerifySignature(body []byte, signature string) bool {
	if p.SecretKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(p.SecretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func (p *Paystack) do(ctx context.Context, method, path string, in, out interface{}) error {
	if p.SecretKey == "" {
		return &models.GatewayError{Kind: models.ErrGatewayUnavailable, Message: "payment gateway not configured"}
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshaling %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Error("paystack request failed")
		return &models.GatewayError{Kind: models.ErrGatewayUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &models.GatewayError{Kind: models.ErrGatewayUnavailable, Message: err.Error(), Status: resp.StatusCode}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusInternalServerError {
		return &models.GatewayError{Kind: models.ErrGatewayUnavailable, Message: messageOr(env.Message, resp.Status), Status: resp.StatusCode}
	}
	if decodeErr != nil {
		return &models.GatewayError{Kind: models.ErrGatewayUnavailable, Message: "unreadable response: " + decodeErr.Error(), Status: resp.StatusCode}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Status {
		logrus.WithFields(logrus.Fields{
			"path":    path,
			"status":  resp.StatusCode,
			"message": env.Message,
		}).Warn("paystack rejected request")
		return &models.GatewayError{Kind: models.ErrGatewayRejected, Message: messageOr(env.Message, resp.Status), Status: resp.StatusCode}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &models.GatewayError{Kind: models.ErrGatewayUnavailable, Message: "unreadable data: " + err.Error(), Status: resp.StatusCode}
		}
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// IsUnavailable reports whether err means the outcome is unknown, as opposed
// to an explicit rejection.
func IsUnavailable(err error) bool {
	return errors.Is(err, models.ErrGatewayUnavailable)
}

// ToMinor converts a major-unit amount to the minor unit, e.g. 25.50 -> 2550.
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
