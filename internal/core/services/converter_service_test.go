package services_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/SscSPs/forexflex/internal/adapters/history"
	"github.com/SscSPs/forexflex/internal/apperrors"
	"github.com/SscSPs/forexflex/internal/core/domain"
	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
	"github.com/SscSPs/forexflex/internal/core/services"
	"github.com/SscSPs/forexflex/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateProvider ---
type MockExchangeRateProvider struct {
	mock.Mock
}

func (m *MockExchangeRateProvider) FetchRates(ctx context.Context, baseCode string) (*domain.ExchangeRateTable, error) {
	args := m.Called(ctx, baseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateTable), args.Error(1)
}

func (m *MockExchangeRateProvider) FetchRate(ctx context.Context, fromCode, toCode string) (float64, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(float64), args.Error(1)
}

// --- Mock HistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) AppendRecord(ctx context.Context, sessionID string, record domain.ConversionRecord) error {
	args := m.Called(ctx, sessionID, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListRecords(ctx context.Context, sessionID string) ([]domain.ConversionRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversionRecord), args.Error(1)
}

// --- Test Suite ---
type ConverterServiceTestSuite struct {
	suite.Suite
	mockRates    *MockExchangeRateProvider
	mockCurrency *MockCurrencyRepository
	store        *history.MemoryStore
	service      portssvc.ConverterSvcFacade
	session      portssvc.ConversionSession
}

func (suite *ConverterServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockExchangeRateProvider)
	suite.mockCurrency = new(MockCurrencyRepository)
	suite.store = history.NewMemoryStore(0)
	suite.service = services.NewConverterService(suite.mockRates, suite.store, services.NewCurrencyService(suite.mockCurrency))
	suite.session = suite.service.OpenSession(domain.Session{ID: uuid.NewString()})

	suite.mockCurrency.On("FindCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD", Name: "US Dollar"}, nil).Maybe()
	suite.mockCurrency.On("FindCurrencyByCode", mock.Anything, "EUR").Return(&domain.Currency{CurrencyCode: "EUR", Name: "Euro"}, nil).Maybe()
	suite.mockCurrency.On("FindCurrencyByCode", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Maybe()
}

func (suite *ConverterServiceTestSuite) historyLen() int {
	records, err := suite.session.History(context.Background())
	suite.Require().NoError(err)
	return len(records)
}

// --- Test Cases ---

func (suite *ConverterServiceTestSuite) TestConvert_Success() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil).Once()

	record, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Amount:           100,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.NotEmpty(record.ID)
	suite.Equal("USD", record.FromCode)
	suite.Equal("EUR", record.ToCode)
	suite.Equal("USD (US Dollar)", record.FromName)
	suite.Equal("EUR (Euro)", record.ToName)
	suite.Equal(100.0, record.Amount)
	suite.Equal(0.92, record.Rate)
	suite.Equal(100*0.92, record.ConvertedAmount)
	suite.InDelta(92.00, record.ConvertedAmount, 1e-9)
	suite.False(record.CreatedAt.IsZero())

	records, err := suite.session.History(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(*record, records[0])
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ConverterServiceTestSuite) TestConvert_NormalizesCodes() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil).Once()

	record, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{
		FromCurrencyCode: " usd ",
		ToCurrencyCode:   "eur",
		Amount:           1,
	})

	suite.Require().NoError(err)
	suite.Equal("USD", record.FromCode)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ConverterServiceTestSuite) TestConvert_UnknownCurrencyFallsBackToCode() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "XAU").Return(0.0004, nil).Once()

	record, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XAU",
		Amount:           5,
	})

	suite.Require().NoError(err)
	suite.Equal("XAU", record.ToName)
}

func (suite *ConverterServiceTestSuite) TestConvert_InputIncomplete() {
	ctx := context.Background()
	cases := []dto.ConvertRequest{
		{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 0},
		{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: -5},
		{FromCurrencyCode: "", ToCurrencyCode: "EUR", Amount: 10},
		{FromCurrencyCode: "USD", ToCurrencyCode: "  ", Amount: 10},
	}

	for _, req := range cases {
		record, err := suite.service.Convert(ctx, suite.session, req)
		suite.Nil(record)
		suite.ErrorIs(err, apperrors.ErrInputIncomplete, fmt.Sprintf("%+v", req))
	}

	suite.mockRates.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(0, suite.historyLen())
}

func (suite *ConverterServiceTestSuite) TestConvert_NonFiniteAmountsAreRejected() {
	ctx := context.Background()

	record, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: math.Inf(1)})
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrInputIncomplete)
	suite.mockRates.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything, mock.Anything)

	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(1.08, nil).Once()
	record, err = suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 1.7e308})
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrInputIncomplete)

	suite.mockRates.AssertExpectations(suite.T())
	suite.Equal(0, suite.historyLen())
}

func (suite *ConverterServiceTestSuite) TestConvert_FetchFailuresLeaveHistoryUnchanged() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil).Once()
	_, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 1})
	suite.Require().NoError(err)

	failures := []struct {
		name string
		err  error
		is   error
	}{
		{name: "network", err: fmt.Errorf("%w: dial tcp: refused", apperrors.ErrNetwork), is: apperrors.ErrNetwork},
		{name: "service", err: &apperrors.ServiceError{StatusCode: http.StatusInternalServerError}, is: apperrors.ErrService},
		{name: "unavailable", err: fmt.Errorf("%w: GBP", apperrors.ErrRateUnavailable), is: apperrors.ErrRateUnavailable},
	}

	for _, f := range failures {
		suite.Run(f.name, func() {
			suite.mockRates.On("FetchRate", ctx, "USD", "GBP").Return(0.0, f.err).Once()

			record, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "GBP", Amount: 10})

			suite.Nil(record)
			suite.ErrorIs(err, f.is)
			suite.Equal(1, suite.historyLen())
		})
	}
}

func (suite *ConverterServiceTestSuite) TestConvert_ServiceErrorKeepsStatus() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.0, &apperrors.ServiceError{StatusCode: http.StatusInternalServerError}).Once()

	_, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 100})

	var serviceErr *apperrors.ServiceError
	suite.Require().ErrorAs(err, &serviceErr)
	suite.Equal(http.StatusInternalServerError, serviceErr.StatusCode)
	suite.Equal(0, suite.historyLen())
}

func (suite *ConverterServiceTestSuite) TestConvert_ZeroRateIsUnavailable() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.0, nil).Once()

	_, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 100})

	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.Equal(0, suite.historyLen())
}

func (suite *ConverterServiceTestSuite) TestConvert_HistoryIsOrdered() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil)

	amounts := []float64{1, 2.5, 10, 0.01, 1000}
	for _, amount := range amounts {
		_, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: amount})
		suite.Require().NoError(err)
	}

	records, err := suite.session.History(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(records, len(amounts))
	for i, amount := range amounts {
		suite.Equal(amount, records[i].Amount)
		suite.Equal(amount*0.92, records[i].ConvertedAmount)
	}
}

func (suite *ConverterServiceTestSuite) TestConvert_SessionsAreIsolated() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil)
	other := suite.service.OpenSession(domain.Session{ID: uuid.NewString()})

	_, err := suite.service.Convert(ctx, suite.session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 1})
	suite.Require().NoError(err)

	records, err := other.History(ctx)
	suite.Require().NoError(err)
	suite.Empty(records)
	suite.Equal(1, suite.historyLen())
}

func (suite *ConverterServiceTestSuite) TestConvert_RecordFailure() {
	ctx := context.Background()
	repo := new(MockHistoryRepository)
	svc := services.NewConverterService(suite.mockRates, repo, services.NewCurrencyService(suite.mockCurrency))
	session := svc.OpenSession(domain.Session{ID: "s1"})

	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil).Once()
	repo.On("AppendRecord", ctx, "s1", mock.AnythingOfType("domain.ConversionRecord")).Return(errors.New("store down")).Once()

	record, err := svc.Convert(ctx, session, dto.ConvertRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: 1})

	suite.Nil(record)
	suite.ErrorContains(err, "store down")
	repo.AssertExpectations(suite.T())
}

func (suite *ConverterServiceTestSuite) TestLookupRate() {
	ctx := context.Background()
	suite.mockRates.On("FetchRate", ctx, "USD", "EUR").Return(0.92, nil).Once()

	rate, err := suite.service.LookupRate(ctx, "usd", "eur")

	suite.Require().NoError(err)
	suite.Equal(0.92, rate)
	suite.Equal(0, suite.historyLen())

	_, err = suite.service.LookupRate(ctx, "", "EUR")
	suite.ErrorIs(err, apperrors.ErrInputIncomplete)
}

func TestConverterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConverterServiceTestSuite))
}

func TestConversionSession_ConvertIsMultiplication(t *testing.T) {
	session := services.NewConversionSession(domain.Session{ID: "s"}, history.NewMemoryStore(0))

	cases := []struct{ amount, rate float64 }{
		{0, 0.92},
		{100, 0.92},
		{1, 1},
		{123.456, 149.52},
		{1e9, 0.000123},
		{0.1, 0.2},
	}
	for _, c := range cases {
		assert.Equal(t, c.amount*c.rate, session.Convert(c.amount, c.rate))
	}
	assert.Equal(t, "s", session.SessionID())
}

func TestConversionSession_HistoryError(t *testing.T) {
	repo := new(MockHistoryRepository)
	repo.On("ListRecords", mock.Anything, "s").Return(nil, errors.New("boom")).Once()
	session := services.NewConversionSession(domain.Session{ID: "s"}, repo)

	_, err := session.History(context.Background())

	assert.ErrorContains(t, err, "boom")
}
