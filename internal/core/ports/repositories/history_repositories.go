package repositories

import (
	"context"

	"github.com/SscSPs/forexflex/internal/core/domain"
)

// HistoryReader defines read operations for session conversion history
type HistoryReader interface {
	// ListRecords returns the session's records in insertion order.
	// An unknown session has an empty history.
	ListRecords(ctx context.Context, sessionID string) ([]domain.ConversionRecord, error)
}

// HistoryWriter defines write operations for session conversion history
type HistoryWriter interface {
	// AppendRecord appends a record to the end of the session's history.
	AppendRecord(ctx context.Context, sessionID string, record domain.ConversionRecord) error
}

// HistoryRepositoryFacade combines all history-related repository interfaces
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
