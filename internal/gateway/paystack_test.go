package gateway_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/gateway"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "sk_test_secret"

func newServer(t *testing.T, handler http.HandlerFunc) *gateway.Paystack {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.NewPaystack(secret, srv.URL, 2*time.Second)
}

func TestCharge_SendsMinorUnits(t *testing.T) {
	var body map[string]any
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer "+secret, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"acoruss-1"}}`))
	})

	res, err := client.Charge(context.Background(), gateway.ChargeRequest{
		Email:       "jane@example.com",
		Amount:      decimal.RequireFromString("3237.50"),
		Currency:    models.CurrencyKES,
		Reference:   "acoruss-1",
		CallbackURL: "https://pay.acoruss.com/api/v1/payments/callback/",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", res.AuthorizationURL)
	assert.Equal(t, float64(323750), body["amount"])
	assert.Equal(t, "KES", body["currency"])
	assert.Equal(t, "acoruss-1", body["reference"])
}

func TestCharge_Rejected(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid Email Address Passed"}`))
	})

	_, err := client.Charge(context.Background(), gateway.ChargeRequest{Amount: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, models.ErrGatewayRejected)
	assert.ErrorContains(t, err, "Invalid Email Address Passed")
	assert.False(t, gateway.IsUnavailable(err))
}

func TestCharge_ServerErrorIsUnavailable(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Charge(context.Background(), gateway.ChargeRequest{Amount: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
	assert.True(t, gateway.IsUnavailable(err))
}

func TestCharge_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()
	client := gateway.NewPaystack(secret, srv.URL, 50*time.Millisecond)

	_, err := client.Charge(context.Background(), gateway.ChargeRequest{Amount: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}

func TestCharge_NotConfigured(t *testing.T) {
	client := gateway.NewPaystack("", "http://127.0.0.1:1", time.Second)

	_, err := client.Charge(context.Background(), gateway.ChargeRequest{})

	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}

func TestVerify(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/acoruss-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"id":4099260516,"reference":"acoruss-1","status":"success","channel":"card","amount":323750,"fees":4856,"currency":"KES","gateway_response":"Approved"}}`))
	})

	tx, err := client.Verify(context.Background(), "acoruss-1")

	require.NoError(t, err)
	assert.Equal(t, "4099260516", tx.ID)
	assert.Equal(t, "success", tx.Status)
	assert.Equal(t, "card", tx.Channel)
	assert.Equal(t, "3237.50", tx.Amount.StringFixed(2))
	assert.Equal(t, "48.56", tx.Fees.StringFixed(2))
}

func TestRefund_PartialSendsAmount(t *testing.T) {
	var body map[string]any
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refund", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"status":true,"message":"Refund has been queued for processing","data":{"id":3018284,"status":"pending","amount":129500}}`))
	})

	amount := decimal.RequireFromString("1295.00")
	res, err := client.Refund(context.Background(), gateway.RefundRequest{
		TransactionReference: "acoruss-1",
		Amount:               &amount,
		Reason:               "customer request",
	})

	require.NoError(t, err)
	assert.Equal(t, "3018284", res.ID)
	assert.Equal(t, "acoruss-1", body["transaction"])
	assert.Equal(t, float64(129500), body["amount"])
	assert.Equal(t, "customer request", body["merchant_note"])
}

func TestRefund_FullOmitsAmount(t *testing.T) {
	var body map[string]any
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":1,"status":"processed","amount":323750}}`))
	})

	_, err := client.Refund(context.Background(), gateway.RefundRequest{TransactionReference: "acoruss-1"})

	require.NoError(t, err)
	assert.NotContains(t, body, "amount")
}

func TestVerifySignature(t *testing.T) {
	client := gateway.NewPaystack(secret, "http://unused", time.Second)
	body := []byte(`{"event":"charge.success","data":{"reference":"acoruss-1"}}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifySignature(body, valid))
	assert.False(t, client.VerifySignature(body, "deadbeef"))
	assert.False(t, client.VerifySignature(append(body, ' '), valid))
	assert.False(t, client.VerifySignature(body, ""))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2550), gateway.ToMinor(decimal.RequireFromString("25.50")))
	assert.Equal(t, int64(250000), gateway.ToMinor(decimal.RequireFromString("2500")))
	assert.Equal(t, "12.34", gateway.FromMinor(1234).StringFixed(2))
}
