package models_test

import (
	"testing"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paid(amount string) *models.Payment {
	return &models.Payment{
		Amount:           decimal.RequireFromString(amount),
		SettlementAmount: decimal.RequireFromString(amount),
		Status:           models.StatusSuccess,
		RefundStatus:     models.RefundNone,
	}
}

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMarkSucceeded(t *testing.T) {
	p := &models.Payment{Status: models.StatusPending}

	require.NoError(t, p.MarkSucceeded("42", "card", decimal.RequireFromString("12.50")))
	assert.Equal(t, models.StatusSuccess, p.Status)
	assert.Equal(t, "42", p.UpstreamID)

	assert.ErrorIs(t, p.MarkSucceeded("42", "card", decimal.Zero), models.ErrAlreadyApplied)
	assert.Equal(t, "12.50", p.Fees.StringFixed(2))
}

func TestMarkSucceeded_TerminalFailureIsNotReopened(t *testing.T) {
	for _, status := range []models.PaymentStatus{models.StatusFailed, models.StatusAbandoned} {
		p := &models.Payment{Status: status}
		err := p.MarkSucceeded("1", "card", decimal.Zero)
		assert.ErrorIs(t, err, models.ErrIllegalTransition)
		assert.Equal(t, status, p.Status)
	}
}

func TestMarkUnsuccessful(t *testing.T) {
	p := &models.Payment{Status: models.StatusPending}
	require.NoError(t, p.MarkUnsuccessful(models.StatusAbandoned))
	assert.Equal(t, models.StatusAbandoned, p.Status)
	assert.ErrorIs(t, p.MarkUnsuccessful(models.StatusAbandoned), models.ErrAlreadyApplied)
	assert.ErrorIs(t, p.MarkUnsuccessful(models.StatusFailed), models.ErrIllegalTransition)

	done := paid("10")
	assert.ErrorIs(t, done.MarkUnsuccessful(models.StatusFailed), models.ErrIllegalTransition)
	assert.ErrorIs(t, (&models.Payment{Status: models.StatusPending}).MarkUnsuccessful(models.StatusSuccess), models.ErrIllegalTransition)
}

func TestRefundLifecycle_PartialThenFull(t *testing.T) {
	p := paid("2500.00")

	reserved, err := p.BeginRefund(amt("1000"))
	require.NoError(t, err)
	assert.Equal(t, "1000.00", reserved.StringFixed(2))
	assert.Equal(t, models.RefundPending, p.RefundStatus)
	assert.False(t, p.IsRefundable())

	_, err = p.BeginRefund(amt("1"))
	assert.ErrorIs(t, err, models.ErrRefundInProgress)

	require.NoError(t, p.CompleteRefund("rf-1"))
	assert.Equal(t, models.RefundPartial, p.RefundStatus)
	assert.Equal(t, "1500.00", p.RefundableAmount().StringFixed(2))
	assert.ErrorIs(t, p.CompleteRefund("rf-1"), models.ErrAlreadyApplied)

	reserved, err = p.BeginRefund(nil)
	require.NoError(t, err)
	assert.Equal(t, "1500.00", reserved.StringFixed(2))
	assert.ErrorIs(t, p.CompleteRefund("rf-1"), models.ErrAlreadyApplied)
	require.NoError(t, p.CompleteRefund("rf-2"))
	assert.Equal(t, models.RefundFull, p.RefundStatus)
	assert.True(t, p.RefundedAmount.Equal(p.Amount))
	assert.Equal(t, []string{"rf-1", "rf-2"}, []string(p.BookedRefundIDs))
	assert.Equal(t, "rf-2", p.UpstreamRefundID)

	_, err = p.BeginRefund(nil)
	assert.ErrorIs(t, err, models.ErrNotRefundable)
}

func TestBeginRefund_Rejections(t *testing.T) {
	t.Run("pending payment", func(t *testing.T) {
		p := paid("100")
		p.Status = models.StatusPending
		_, err := p.BeginRefund(nil)
		assert.ErrorIs(t, err, models.ErrNotRefundable)
	})

	t.Run("exceeds balance", func(t *testing.T) {
		p := paid("100")
		p.RefundedAmount = decimal.RequireFromString("60")
		p.RefundStatus = models.RefundPartial
		_, err := p.BeginRefund(amt("40.01"))
		assert.ErrorIs(t, err, models.ErrRefundExceedsBalance)
		assert.Equal(t, models.RefundPartial, p.RefundStatus)
	})

	t.Run("non positive amount", func(t *testing.T) {
		p := paid("100")
		_, err := p.BeginRefund(amt("0.001"))
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Equal(t, models.RefundNone, p.RefundStatus)
	})
}

func TestFailRefund_RestoresPriorStatus(t *testing.T) {
	p := paid("100")
	p.RefundedAmount = decimal.RequireFromString("30")
	p.RefundStatus = models.RefundPartial

	_, err := p.BeginRefund(amt("20"))
	require.NoError(t, err)
	require.NoError(t, p.FailRefund())

	assert.Equal(t, models.RefundPartial, p.RefundStatus)
	assert.True(t, p.PendingRefundAmount.IsZero())
	assert.Equal(t, "70.00", p.RefundableAmount().StringFixed(2))
	assert.ErrorIs(t, p.FailRefund(), models.ErrAlreadyApplied)
}

func TestCompleteRefund_OnlyForSuccessfulPayments(t *testing.T) {
	p := paid("100")
	p.Status = models.StatusFailed
	p.RefundStatus = models.RefundPending
	assert.ErrorIs(t, p.CompleteRefund("rf-1"), models.ErrIllegalTransition)
}

func converted() *models.Payment {
	p := paid("25.00")
	p.Currency = models.CurrencyUSD
	p.SettlementAmount = decimal.RequireFromString("3237.50")
	p.ExchangeRate = decimal.NewNullDecimal(decimal.RequireFromString("129.50"))
	return p
}

func TestRefundRequestAmount(t *testing.T) {
	full := converted()
	_, err := full.BeginRefund(nil)
	require.NoError(t, err)
	assert.Nil(t, full.RefundRequestAmount())

	partial := converted()
	_, err = partial.BeginRefund(amt("10"))
	require.NoError(t, err)
	require.NotNil(t, partial.RefundRequestAmount())
	assert.Equal(t, "1295.00", partial.RefundRequestAmount().StringFixed(2))

	kes := paid("500")
	_, err = kes.BeginRefund(amt("120.5"))
	require.NoError(t, err)
	require.NotNil(t, kes.RefundRequestAmount())
	assert.Equal(t, "120.50", kes.RefundRequestAmount().StringFixed(2))
}

func TestRefund_ConvertedPartialsNeverExceedSettlement(t *testing.T) {
	p := converted()

	_, err := p.BeginRefund(amt("12.33"))
	require.NoError(t, err)
	assert.Equal(t, "1596.74", p.RefundRequestAmount().StringFixed(2))
	require.NoError(t, p.CompleteRefund("rf-1"))

	_, err = p.BeginRefund(amt("12.67"))
	require.NoError(t, err)
	assert.Equal(t, "1640.76", p.RefundRequestAmount().StringFixed(2))
	require.NoError(t, p.CompleteRefund("rf-2"))

	assert.Equal(t, models.RefundFull, p.RefundStatus)
	assert.True(t, p.SettlementRefunded.Equal(p.SettlementAmount))
	assert.True(t, p.SettlementRefundable().IsZero())
}

func TestMatchRefundEvent(t *testing.T) {
	p := paid("2500")
	_, err := p.BeginRefund(amt("300"))
	require.NoError(t, err)
	require.NoError(t, p.CompleteRefund("r1"))
	_, err = p.BeginRefund(amt("500"))
	require.NoError(t, err)

	assert.ErrorIs(t, p.MatchRefundEvent("r1", decimal.RequireFromString("300")), models.ErrAlreadyApplied)
	assert.ErrorIs(t, p.MatchRefundEvent("r9", decimal.RequireFromString("300")), models.ErrIllegalTransition)
	assert.NoError(t, p.MatchRefundEvent("r2", decimal.RequireFromString("500")))

	require.NoError(t, p.FailRefund())
	assert.ErrorIs(t, p.MatchRefundEvent("r2", decimal.RequireFromString("500")), models.ErrIllegalTransition)
	assert.Equal(t, "300.00", p.RefundedAmount.StringFixed(2))
}

func TestNewReference(t *testing.T) {
	a := models.NewReference("acoruss")
	b := models.NewReference("acoruss")
	assert.Regexp(t, `^acoruss-[0-9a-f]{12}$`, a)
	assert.NotEqual(t, a, b)
}

func TestServiceAllowlists(t *testing.T) {
	svc := &models.Service{}
	assert.True(t, svc.AllowsIP("203.0.113.9"))
	assert.True(t, svc.AllowsCurrency(models.CurrencyNGN))

	svc.AllowedIPs = []string{"10.0.0.1"}
	svc.AllowedCurrencies = []string{"kes", "USD"}
	assert.False(t, svc.AllowsIP("203.0.113.9"))
	assert.True(t, svc.AllowsIP("10.0.0.1"))
	assert.True(t, svc.AllowsCurrency(models.CurrencyKES))
	assert.False(t, svc.AllowsCurrency(models.CurrencyNGN))
}
