package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/SscSPs/forexflex/internal/apperrors"
	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
	"github.com/SscSPs/forexflex/internal/dto"
	"github.com/google/uuid"
)

type converterService struct {
	rates    portsrepo.ExchangeRateProvider
	history  portsrepo.HistoryRepositoryFacade
	currency portssvc.CurrencyReaderSvc
	now      func() time.Time
}

// NewConverterService creates the conversion use case.
func NewConverterService(
	rates portsrepo.ExchangeRateProvider,
	history portsrepo.HistoryRepositoryFacade,
	currency portssvc.CurrencyReaderSvc,
) portssvc.ConverterSvcFacade {
	return &converterService{
		rates:    rates,
		history:  history,
		currency: currency,
		now:      time.Now,
	}
}

func (s *converterService) OpenSession(session domain.Session) portssvc.ConversionSession {
	return NewConversionSession(session, s.history)
}

// Convert validates the input, fetches the live rate and records the result.
// On any failure the session history is left unchanged.
func (s *converterService) Convert(ctx context.Context, session portssvc.ConversionSession, req dto.ConvertRequest) (*domain.ConversionRecord, error) {
	fromCode := normalizeCode(req.FromCurrencyCode)
	toCode := normalizeCode(req.ToCurrencyCode)
	if fromCode == "" || toCode == "" {
		return nil, fmt.Errorf("%w: both currencies must be selected", apperrors.ErrInputIncomplete)
	}
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a finite number greater than zero", apperrors.ErrInputIncomplete)
	}

	rate, err := s.rates.FetchRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRateUnavailable, toCode)
	}

	converted := session.Convert(req.Amount, rate)
	if math.IsInf(converted, 0) {
		return nil, fmt.Errorf("%w: converted amount is out of range", apperrors.ErrInputIncomplete)
	}

	record := domain.ConversionRecord{
		ID:              uuid.NewString(),
		FromCode:        fromCode,
		ToCode:          toCode,
		FromName:        s.displayName(ctx, fromCode),
		ToName:          s.displayName(ctx, toCode),
		Amount:          req.Amount,
		ConvertedAmount: converted,
		Rate:            rate,
		CreatedAt:       s.now().UTC(),
	}

	if err := session.RecordHistory(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// LookupRate returns the live rate without touching any history.
func (s *converterService) LookupRate(ctx context.Context, fromCode, toCode string) (float64, error) {
	fromCode = normalizeCode(fromCode)
	toCode = normalizeCode(toCode)
	if fromCode == "" || toCode == "" {
		return 0, fmt.Errorf("%w: both currencies must be selected", apperrors.ErrInputIncomplete)
	}
	return s.rates.FetchRate(ctx, fromCode, toCode)
}

// displayName resolves the selector label, falling back to the bare code for unknown currencies.
func (s *converterService) displayName(ctx context.Context, code string) string {
	c, err := s.currency.GetCurrencyByCode(ctx, code)
	if err != nil {
		return code
	}
	return c.DisplayName()
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
