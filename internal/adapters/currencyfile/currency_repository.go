package currencyfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/forexflex/internal/apperrors"
	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	"github.com/samber/lo"
)

// CurrencyRepository serves the currency list loaded at startup. It is read-only.
type CurrencyRepository struct {
	currencies []domain.Currency
	byCode     map[string]domain.Currency
}

// NewCurrencyRepository creates a repository over the given currencies, keeping their order.
func NewCurrencyRepository(currencies []domain.Currency) *CurrencyRepository {
	return &CurrencyRepository{
		currencies: currencies,
		byCode: lo.KeyBy(currencies, func(c domain.Currency) string {
			return c.CurrencyCode
		}),
	}
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *CurrencyRepository) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	c, ok := r.byCode[strings.ToUpper(currencyCode)]
	if !ok {
		return nil, fmt.Errorf("currency %s: %w", currencyCode, apperrors.ErrNotFound)
	}
	return &c, nil
}

// ListCurrencies returns a copy of the currency list.
func (r *CurrencyRepository) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, len(r.currencies))
	copy(out, r.currencies)
	return out, nil
}

var _ portsrepo.CurrencyReader = (*CurrencyRepository)(nil)
