package exchange

import (
	"context"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
)

// Conversion records how a requested amount became a settlement amount.
type Conversion struct {
	OriginalAmount     decimal.Decimal
	OriginalCurrency   models.Currency
	Rate               decimal.Decimal
	ConvertedAmount    decimal.Decimal
	SettlementCurrency models.Currency
	Applied            bool
	Source             string
	FetchedAt          time.Time
	Stale              bool
}

// RateProvider is satisfied by *Cache.
type RateProvider interface {
	Rate(ctx context.Context, from, to models.Currency) (Quote, error)
}

// Convert turns amount in from into the settlement currency, rounded to two
// decimals half away from zero.
func Convert(ctx context.Context, rates RateProvider, amount decimal.Decimal, from, settlement models.Currency) (Conversion, error) {
	if from == settlement {
		return Conversion{
			OriginalAmount:     amount,
			OriginalCurrency:   from,
			Rate:               decimal.NewFromInt(1),
			ConvertedAmount:    amount.Round(2),
			SettlementCurrency: settlement,
			Source:             "identity",
			FetchedAt:          time.Now().UTC(),
		}, nil
	}

	q, err := rates.Rate(ctx, from, settlement)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		OriginalAmount:     amount,
		OriginalCurrency:   from,
		Rate:               q.Rate,
		ConvertedAmount:    amount.Mul(q.Rate).Round(2),
		SettlementCurrency: settlement,
		Applied:            true,
		Source:             SourceName,
		FetchedAt:          q.FetchedAt.UTC(),
		Stale:              q.Stale,
	}, nil
}
