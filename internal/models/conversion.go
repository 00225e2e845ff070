package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRecord is one row of the conversions table.
type ConversionRecord struct {
	Seq             int64           `json:"-"`               // Insertion order within the table
	ConversionID    string          `json:"conversionID"`    // Record ID (UUID), not unique
	SessionID       string          `json:"sessionID"`       // FK -> conversion_sessions.session_id
	FromCode        string          `json:"fromCode"`
	ToCode          string          `json:"toCode"`
	FromName        string          `json:"fromName"`
	ToName          string          `json:"toName"`
	Amount          decimal.Decimal `json:"amount"`          // NUMERIC
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // NUMERIC
	Rate            decimal.Decimal `json:"rate"`            // NUMERIC
	CreatedAt       time.Time       `json:"createdAt"`
}

// ConversionSession is one row of the conversion_sessions table.
// A nil ExpiresAt never expires.
type ConversionSession struct {
	SessionID string     `json:"sessionID"`
	ExpiresAt *time.Time `json:"expiresAt"`
}
