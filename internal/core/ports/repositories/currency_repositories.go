package repositories

import (
	"context"

	"github.com/SscSPs/forexflex/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies in list order.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
