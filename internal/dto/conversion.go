package dto

import (
	"time"

	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/samber/lo"
)

// ConvertRequest defines the input of one conversion, from the HTML form or the JSON API.
// Amount is checked by the converter so that a zero amount reports incomplete input.
type ConvertRequest struct {
	FromCurrencyCode string  `json:"fromCurrencyCode" form:"from" binding:"required"`
	ToCurrencyCode   string  `json:"toCurrencyCode" form:"to" binding:"required"`
	Amount           float64 `json:"amount" form:"amount"`
}

// ConversionResponse defines the structure for API responses containing a conversion record.
type ConversionResponse struct {
	ID              string    `json:"id"`
	FromCode        string    `json:"fromCode"`
	ToCode          string    `json:"toCode"`
	FromName        string    `json:"fromName"`
	ToName          string    `json:"toName"`
	Amount          float64   `json:"amount"`
	ConvertedAmount float64   `json:"convertedAmount"`
	Rate            float64   `json:"rate"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ExchangeRateResponse defines the structure for API responses containing a live rate.
type ExchangeRateResponse struct {
	FromCurrencyCode string  `json:"fromCurrencyCode"`
	ToCurrencyCode   string  `json:"toCurrencyCode"`
	Rate             float64 `json:"rate"`
}

// ToConversionResponse converts a domain.ConversionRecord to ConversionResponse DTO
func ToConversionResponse(record *domain.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		ID:              record.ID,
		FromCode:        record.FromCode,
		ToCode:          record.ToCode,
		FromName:        record.FromName,
		ToName:          record.ToName,
		Amount:          record.Amount,
		ConvertedAmount: record.ConvertedAmount,
		Rate:            record.Rate,
		CreatedAt:       record.CreatedAt,
	}
}

// ToListConversionResponse converts history records to response DTOs, keeping their order.
func ToListConversionResponse(records []domain.ConversionRecord) []ConversionResponse {
	return lo.Map(records, func(record domain.ConversionRecord, _ int) ConversionResponse {
		return ToConversionResponse(&record)
	})
}
