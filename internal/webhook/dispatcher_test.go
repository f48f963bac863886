package webhook_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/acoruss/acoruss.github.io/internal/testutil"
	"github.com/acoruss/acoruss.github.io/internal/webhook"
	"github.com/acoruss/acoruss.github.io/internal/webhook/mocks"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type received struct {
	at        time.Time
	event     string
	signature string
	body      []byte
}

type receiver struct {
	mu       sync.Mutex
	requests []received
	statuses []int
	inflight atomic.Int32
	overlap  atomic.Bool
}

func (r *receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.inflight.Add(1) > 1 {
		r.overlap.Store(true)
	}
	defer r.inflight.Add(-1)

	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	n := len(r.requests)
	r.requests = append(r.requests, received{
		at:        time.Now(),
		event:     req.Header.Get(webhook.EventHeader),
		signature: req.Header.Get(webhook.SignatureHeader),
		body:      body,
	})
	status := http.StatusOK
	if n < len(r.statuses) {
		status = r.statuses[n]
	}
	r.mu.Unlock()

	time.Sleep(5 * time.Millisecond)
	w.WriteHeader(status)
}

func (r *receiver) snapshot() []received {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]received(nil), r.requests...)
}

func testService(url string) *models.Service {
	return &models.Service{ID: "svc-1", Slug: "shop", APISecret: "sk_" + "0123456789abcdef", WebhookURL: url}
}

func testPayment() *models.Payment {
	return &models.Payment{
		Reference:          "acoruss-0123456789ab",
		ServiceID:          "svc-1",
		Email:              "jane@example.com",
		Amount:             decimal.RequireFromString("25.00"),
		Currency:           models.CurrencyUSD,
		SettlementAmount:   decimal.RequireFromString("3237.50"),
		SettlementCurrency: models.CurrencyKES,
		Status:             models.StatusSuccess,
		RefundStatus:       models.RefundNone,
		Channel:            "card",
		CreatedAt:          time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC),
	}
}

func drain(t *testing.T, d *webhook.Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))
}

func TestDispatcher_RetriesUntilSuccess(t *testing.T) {
	recv := &receiver{statuses: []int{500, 500, 200}}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	db := testutil.NewDB(t)
	attempts := store.NewAttemptStore(db)
	pub := mocks.NewMockPublisher(t)

	delays := []time.Duration{20 * time.Millisecond, 100 * time.Millisecond}
	d := webhook.NewDispatcher(webhook.Config{Workers: 2, Delays: delays, DLQTopic: "webhooks.dlq"}, attempts, pub)
	d.Start()

	svc := testService(srv.URL)
	require.NoError(t, d.Enqueue(svc, testPayment(), models.EventPaymentSuccess))
	drain(t, d)

	reqs := recv.snapshot()
	require.Len(t, reqs, 3)
	assert.GreaterOrEqual(t, reqs[1].at.Sub(reqs[0].at), delays[0])
	assert.GreaterOrEqual(t, reqs[2].at.Sub(reqs[1].at), delays[1])
	for _, r := range reqs {
		assert.Equal(t, "payment.success", r.event)
		assert.True(t, webhook.Verify(svc.APISecret, r.body, r.signature))
		assert.Equal(t, webhook.Sign(svc.APISecret, r.body), r.signature)
	}

	rows, err := attempts.ListForPayment(context.Background(), "acoruss-0123456789ab")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Attempt)
		require.NotNil(t, row.ResponseStatus)
	}
	assert.Equal(t, 500, *rows[0].ResponseStatus)
	assert.False(t, rows[0].Succeeded)
	assert.False(t, rows[1].Final)
	assert.True(t, rows[2].Succeeded)
	assert.True(t, rows[2].Final)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_PayloadShape(t *testing.T) {
	recv := &receiver{}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	rec := mocks.NewMockAttemptRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.AnythingOfType("*models.WebhookDeliveryAttempt")).Return(nil).Once()

	d := webhook.NewDispatcher(webhook.Config{Workers: 1, Delays: []time.Duration{time.Millisecond}}, rec, nil)
	d.Start()
	require.NoError(t, d.Enqueue(testService(srv.URL), testPayment(), models.EventPaymentSuccess))
	drain(t, d)

	reqs := recv.snapshot()
	require.Len(t, reqs, 1)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].body, &payload))
	assert.Equal(t, "payment.success", payload["event"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, "acoruss-0123456789ab", data["reference"])
	assert.Equal(t, "25.00", data["amount"])
	assert.Equal(t, "3237.50", data["settlement_amount"])
	assert.Equal(t, "card", data["channel"])
	assert.Equal(t, map[string]any{}, data["metadata"])
}

func TestDispatcher_ExhaustedGoesToDeadLetter(t *testing.T) {
	recv := &receiver{statuses: []int{502, 503, 500}}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	rec := mocks.NewMockAttemptRecorder(t)
	var rows []*models.WebhookDeliveryAttempt
	var mu sync.Mutex
	rec.EXPECT().Record(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, attempt *models.WebhookDeliveryAttempt) {
			mu.Lock()
			rows = append(rows, attempt)
			mu.Unlock()
		}).
		Return(nil).
		Times(3)

	pub := mocks.NewMockPublisher(t)
	pub.EXPECT().
		Publish(mock.Anything, "webhooks.dlq", mock.MatchedBy(func(m models.DLQMessage) bool {
			return m.PaymentReference == "acoruss-0123456789ab" &&
				m.Attempts == 3 &&
				m.Event == models.EventPaymentRefunded &&
				m.LastError == "unexpected status 500"
		})).
		Return(nil).
		Once()

	d := webhook.NewDispatcher(webhook.Config{
		Workers:  1,
		Delays:   []time.Duration{time.Millisecond, time.Millisecond},
		DLQTopic: "webhooks.dlq",
	}, rec, pub)
	d.Start()
	require.NoError(t, d.Enqueue(testService(srv.URL), testPayment(), models.EventPaymentRefunded))
	drain(t, d)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, rows, 3)
	assert.True(t, rows[2].Final)
	assert.False(t, rows[2].Succeeded)
}

func TestDispatcher_UnreachableEndpointRecordsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := mocks.NewMockAttemptRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.MatchedBy(func(a *models.WebhookDeliveryAttempt) bool {
		return a.ResponseStatus == nil && a.Error != "" && !a.Succeeded
	})).Return(nil).Once()

	d := webhook.NewDispatcher(webhook.Config{Workers: 1, Delays: nil}, rec, nil)
	d.Start()
	require.NoError(t, d.Enqueue(testService(url), testPayment(), models.EventPaymentSuccess))
	drain(t, d)
}

func TestDispatcher_SkipsServiceWithoutWebhookURL(t *testing.T) {
	rec := mocks.NewMockAttemptRecorder(t)
	d := webhook.NewDispatcher(webhook.Config{Workers: 1}, rec, nil)
	d.Start()

	require.NoError(t, d.Enqueue(testService(""), testPayment(), models.EventPaymentSuccess))
	drain(t, d)

	rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestDispatcher_SamePaymentIsDeliveredInOrder(t *testing.T) {
	recv := &receiver{statuses: []int{500, 200, 200}}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	rec := mocks.NewMockAttemptRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.Anything).Return(nil).Times(3)

	d := webhook.NewDispatcher(webhook.Config{Workers: 4, Delays: []time.Duration{30 * time.Millisecond}}, rec, nil)
	d.Start()

	svc := testService(srv.URL)
	require.NoError(t, d.Enqueue(svc, testPayment(), models.EventPaymentSuccess))
	require.NoError(t, d.Enqueue(svc, testPayment(), models.EventPaymentRefunded))
	drain(t, d)

	reqs := recv.snapshot()
	require.Len(t, reqs, 3)
	assert.Equal(t, "payment.success", reqs[0].event)
	assert.Equal(t, "payment.success", reqs[1].event)
	assert.Equal(t, "payment.refunded", reqs[2].event)
	assert.False(t, recv.overlap.Load())
}

func TestDispatcher_EnqueueAfterShutdownFails(t *testing.T) {
	d := webhook.NewDispatcher(webhook.Config{Workers: 1}, mocks.NewMockAttemptRecorder(t), nil)
	d.Start()
	drain(t, d)

	err := d.Enqueue(testService("http://127.0.0.1:1"), testPayment(), models.EventPaymentSuccess)
	assert.Error(t, err)
}

func TestDispatcher_RedeliverResignsRecordedBody(t *testing.T) {
	recv := &receiver{}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	rec := mocks.NewMockAttemptRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.MatchedBy(func(a *models.WebhookDeliveryAttempt) bool {
		return a.Attempt == 1 && a.Succeeded && a.URL == srv.URL
	})).Return(nil).Once()

	d := webhook.NewDispatcher(webhook.Config{Workers: 1}, rec, nil)
	d.Start()

	svc := testService(srv.URL)
	svc.APISecret = "sk_rotated"
	msg := models.DLQMessage{
		PaymentReference: "acoruss-0123456789ab",
		Event:            models.EventPaymentSuccess,
		URL:              "https://old.example.com/hooks",
		Body:             `{"event":"payment.success","data":{"reference":"acoruss-0123456789ab"}}`,
		Attempts:         3,
	}
	require.NoError(t, d.Redeliver(svc, msg))
	drain(t, d)

	reqs := recv.snapshot()
	require.Len(t, reqs, 1)
	assert.Equal(t, msg.Body, string(reqs[0].body))
	assert.True(t, webhook.Verify("sk_rotated", reqs[0].body, reqs[0].signature))

	assert.Error(t, d.Redeliver(testService(""), msg))
}

func TestDispatcher_ForcedShutdownReportsQueuedDeliveries(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	rec := mocks.NewMockAttemptRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.Anything).Return(nil).Maybe()

	d := webhook.NewDispatcher(webhook.Config{Workers: 1, QueueSize: 8}, rec, nil)
	d.Start()
	svc := testService(srv.URL)

	first := testPayment()
	require.NoError(t, d.Enqueue(svc, first, models.EventPaymentSuccess))
	<-started

	queued := []string{"acoruss-bbbbbbbbbbbb", "acoruss-cccccccccccc"}
	for _, ref := range queued {
		p := testPayment()
		p.Reference = ref
		require.NoError(t, d.Enqueue(svc, p, models.EventPaymentSuccess))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, d.Shutdown(ctx))

	var abandoned []string
	for _, entry := range hook.AllEntries() {
		if entry.Message == "dispatcher stopped, webhook delivery abandoned" {
			abandoned = append(abandoned, entry.Data["reference"].(string))
		}
	}
	assert.ElementsMatch(t, queued, abandoned)
}

func TestSign(t *testing.T) {
	body := []byte(`{"event":"payment.success"}`)
	sig := webhook.Sign("sk_secret", body)

	assert.Len(t, sig, 64)
	assert.True(t, webhook.Verify("sk_secret", body, sig))
	assert.False(t, webhook.Verify("sk_other", body, sig))
}
