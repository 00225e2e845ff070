package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
)

// conversionSession binds one session to its append-only history.
type conversionSession struct {
	session domain.Session
	history portsrepo.HistoryRepositoryFacade
}

// NewConversionSession creates a ConversionSession for the given session over a history store.
func NewConversionSession(session domain.Session, history portsrepo.HistoryRepositoryFacade) portssvc.ConversionSession {
	return &conversionSession{session: session, history: history}
}

func (s *conversionSession) SessionID() string {
	return s.session.ID
}

// Convert is plain float multiplication; rounding is left to display formatting.
func (s *conversionSession) Convert(amount, rate float64) float64 {
	return amount * rate
}

func (s *conversionSession) RecordHistory(ctx context.Context, record domain.ConversionRecord) error {
	if err := s.history.AppendRecord(ctx, s.session.ID, record); err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}
	return nil
}

func (s *conversionSession) History(ctx context.Context) ([]domain.ConversionRecord, error) {
	records, err := s.history.ListRecords(ctx, s.session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversion history: %w", err)
	}
	return records, nil
}
