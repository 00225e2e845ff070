package dto

import (
	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/samber/lo"
)

// CurrencyResponse defines the structure for API responses containing currency details.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Name:         c.Name,
		DisplayName:  c.DisplayName(),
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	return lo.Map(currencies, func(c domain.Currency, _ int) CurrencyResponse {
		return ToCurrencyResponse(c)
	})
}
