package domain

import "time"

// ConversionRecord is the immutable result of one successful conversion.
type ConversionRecord struct {
	ID              string    `json:"id"`
	FromCode        string    `json:"fromCode"`
	ToCode          string    `json:"toCode"`
	FromName        string    `json:"fromName"` // display label, e.g. "USD (US Dollar)"
	ToName          string    `json:"toName"`
	Amount          float64   `json:"amount"`
	ConvertedAmount float64   `json:"convertedAmount"`
	Rate            float64   `json:"rate"`
	CreatedAt       time.Time `json:"createdAt"`
}
