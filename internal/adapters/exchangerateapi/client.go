package exchangerateapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/forexflex/internal/apperrors"
	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	"github.com/SscSPs/forexflex/pkg/config"
	"github.com/go-resty/resty/v2"
)

const resultSuccess = "success"

// latestResponse is the v6 "latest" payload of exchangerate-api.com.
// See: https://www.exchangerate-api.com/docs/standard-requests
type latestResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	ErrorType       string             `json:"error-type,omitempty"`
}

// Client fetches live rate tables from exchangerate-api.com.
// Every call issues exactly one request; nothing is cached or retried.
type Client struct {
	apiKey string
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a rate client for the configured endpoint.
func NewClient(cfg config.ExchangeRateConfig, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json")

	return &Client{
		apiKey: cfg.APIKey,
		http:   httpClient,
		logger: logger,
	}
}

// FetchRates retrieves the full rate table for baseCode.
func (c *Client) FetchRates(ctx context.Context, baseCode string) (*domain.ExchangeRateTable, error) {
	baseCode = strings.TrimSpace(baseCode)
	if baseCode == "" {
		return nil, fmt.Errorf("%w: base currency code is required", apperrors.ErrValidation)
	}

	logger := c.logger.With(slog.String("base_code", baseCode))
	logger.Debug("Fetching exchange rates")

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"apiKey": c.apiKey,
			"base":   baseCode,
		}).
		Get("/{apiKey}/latest/{base}")
	if err != nil {
		// The request URL embeds the API key, so only the cause is kept.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		logger.Warn("Rate service unreachable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
	}

	var payload latestResponse
	decodeErr := json.Unmarshal(resp.Body(), &payload)

	if resp.StatusCode() != http.StatusOK {
		logger.Warn("Rate service returned non-success status", slog.Int("status", resp.StatusCode()))
		return nil, &apperrors.ServiceError{StatusCode: resp.StatusCode(), ErrorType: payload.ErrorType}
	}
	if decodeErr != nil || payload.ConversionRates == nil {
		logger.Warn("Rate service returned a malformed body")
		return nil, &apperrors.ServiceError{StatusCode: resp.StatusCode(), ErrorType: "malformed-response"}
	}
	if payload.Result != "" && payload.Result != resultSuccess {
		logger.Warn("Rate service reported an error", slog.String("error_type", payload.ErrorType))
		return nil, &apperrors.ServiceError{StatusCode: resp.StatusCode(), ErrorType: payload.ErrorType}
	}

	table := &domain.ExchangeRateTable{
		BaseCode: baseCode,
		Rates:    payload.ConversionRates,
	}
	if payload.BaseCode != "" {
		table.BaseCode = payload.BaseCode
	}

	logger.Debug("Exchange rates fetched", slog.Int("count", len(table.Rates)))
	return table, nil
}

// FetchRate retrieves the rate converting one unit of fromCode into toCode.
func (c *Client) FetchRate(ctx context.Context, fromCode, toCode string) (float64, error) {
	toCode = strings.TrimSpace(toCode)
	if toCode == "" {
		return 0, fmt.Errorf("%w: target currency code is required", apperrors.ErrValidation)
	}

	table, err := c.FetchRates(ctx, fromCode)
	if err != nil {
		return 0, err
	}

	rate, ok := table.Rate(toCode)
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrRateUnavailable, toCode)
	}
	return rate, nil
}

var _ portsrepo.ExchangeRateProvider = (*Client)(nil)
