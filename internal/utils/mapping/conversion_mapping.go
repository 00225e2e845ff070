package mapping

import (
	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/SscSPs/forexflex/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelConversion converts a domain ConversionRecord to a model ConversionRecord of the given session
func ToModelConversion(sessionID string, d domain.ConversionRecord) models.ConversionRecord {
	return models.ConversionRecord{
		ConversionID:    d.ID,
		SessionID:       sessionID,
		FromCode:        d.FromCode,
		ToCode:          d.ToCode,
		FromName:        d.FromName,
		ToName:          d.ToName,
		Amount:          decimal.NewFromFloat(d.Amount),
		ConvertedAmount: decimal.NewFromFloat(d.ConvertedAmount),
		Rate:            decimal.NewFromFloat(d.Rate),
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

// ToDomainConversion converts a model ConversionRecord to a domain ConversionRecord
func ToDomainConversion(m models.ConversionRecord) domain.ConversionRecord {
	return domain.ConversionRecord{
		ID:              m.ConversionID,
		FromCode:        m.FromCode,
		ToCode:          m.ToCode,
		FromName:        m.FromName,
		ToName:          m.ToName,
		Amount:          m.Amount.InexactFloat64(),
		ConvertedAmount: m.ConvertedAmount.InexactFloat64(),
		Rate:            m.Rate.InexactFloat64(),
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

// ToDomainConversions converts model rows to domain records, keeping their order.
func ToDomainConversions(ms []models.ConversionRecord) []domain.ConversionRecord {
	out := make([]domain.ConversionRecord, len(ms))
	for i, m := range ms {
		out[i] = ToDomainConversion(m)
	}
	return out
}
