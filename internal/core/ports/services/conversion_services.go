package services

import (
	"context"

	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/SscSPs/forexflex/internal/dto"
)

// ConversionSession computes conversions and owns one session's append-only history.
type ConversionSession interface {
	// SessionID returns the identifier of the owning session.
	SessionID() string

	// Convert returns amount * rate.
	Convert(amount, rate float64) float64

	// RecordHistory appends a record to the session history.
	RecordHistory(ctx context.Context, record domain.ConversionRecord) error

	// History returns the session history in chronological order.
	History(ctx context.Context) ([]domain.ConversionRecord, error)
}

// ConverterSvc defines the conversion use case
type ConverterSvc interface {
	// OpenSession binds a ConversionSession to the given session.
	OpenSession(session domain.Session) ConversionSession

	// Convert fetches the rate, computes the result and records it in the session history.
	Convert(ctx context.Context, session ConversionSession, req dto.ConvertRequest) (*domain.ConversionRecord, error)
}

// ConverterSvcFacade combines all conversion-related service interfaces
type ConverterSvcFacade interface {
	ConverterSvc
	ExchangeRateReaderSvc
}
