package repositories

import (
	"context"

	"github.com/SscSPs/forexflex/internal/core/domain"
)

// ExchangeRateProvider fetches live rates from the remote rate service.
type ExchangeRateProvider interface {
	// FetchRates retrieves the full rate table for a base currency.
	FetchRates(ctx context.Context, baseCode string) (*domain.ExchangeRateTable, error)

	// FetchRate retrieves the rate converting one unit of fromCode into toCode.
	FetchRate(ctx context.Context, fromCode, toCode string) (float64, error)
}
