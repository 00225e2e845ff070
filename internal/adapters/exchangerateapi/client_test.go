package exchangerateapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/forexflex/internal/adapters/exchangerateapi"
	"github.com/SscSPs/forexflex/internal/apperrors"
	"github.com/SscSPs/forexflex/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*exchangerateapi.Client, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := exchangerateapi.NewClient(config.ExchangeRateConfig{
		APIURL:      server.URL,
		APIKey:      testAPIKey,
		HTTPTimeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return client, &calls
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_FetchRate_Success(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/"+testAPIKey+"/latest/USD", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.92,"JPY":149.5}}`)
	})

	rate, err := client.FetchRate(context.Background(), "USD", "EUR")

	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
	assert.Equal(t, 1, *calls)
}

func TestClient_FetchRates_ReturnsTable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"success","base_code":"EUR","conversion_rates":{"EUR":1,"USD":1.087}}`)
	})

	table, err := client.FetchRates(context.Background(), "EUR")

	require.NoError(t, err)
	assert.Equal(t, "EUR", table.BaseCode)
	assert.Len(t, table.Rates, 2)
	assert.Equal(t, 1.087, table.Rates["USD"])
}

func TestClient_FetchRate_NotFetchedTwice(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"success","conversion_rates":{"EUR":0.92}}`)
	})

	for i := 0; i < 3; i++ {
		_, err := client.FetchRate(context.Background(), "USD", "EUR")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, *calls, "rates must be fetched fresh for every request")
}

func TestClient_FetchRate_MissingTarget(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"success","conversion_rates":{"USD":1,"GBP":0.79}}`)
	})

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	assert.Contains(t, err.Error(), "EUR")
}

func TestClient_FetchRate_ZeroRateIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"success","conversion_rates":{"EUR":0}}`)
	})

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestClient_FetchRate_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `internal error`)
	})

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrService)
	var serviceErr *apperrors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusInternalServerError, serviceErr.StatusCode)
}

func TestClient_FetchRate_ErrorTypeFromBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"result":"error","error-type":"invalid-key"}`)
	})

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	var serviceErr *apperrors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusForbidden, serviceErr.StatusCode)
	assert.Equal(t, "invalid-key", serviceErr.ErrorType)
}

func TestClient_FetchRate_ErrorResultWithOKStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"error","error-type":"unsupported-code","conversion_rates":{}}`)
	})

	_, err := client.FetchRate(context.Background(), "XXX", "EUR")

	var serviceErr *apperrors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "unsupported-code", serviceErr.ErrorType)
}

func TestClient_FetchRate_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `not json`)
	})

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	assert.ErrorIs(t, err, apperrors.ErrService)
}

func TestClient_FetchRate_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := exchangerateapi.NewClient(config.ExchangeRateConfig{
		APIURL:      url,
		APIKey:      testAPIKey,
		HTTPTimeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.NotErrorIs(t, err, apperrors.ErrService)
}

func TestClient_FetchRate_RequiresCodes(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"success","conversion_rates":{"EUR":0.92}}`)
	})

	_, err := client.FetchRate(context.Background(), "", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = client.FetchRate(context.Background(), "USD", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Equal(t, 0, *calls)
}

func TestClient_FetchRate_NetworkErrorHidesAPIKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := exchangerateapi.NewClient(config.ExchangeRateConfig{
		APIURL:      url,
		APIKey:      "super-secret-key",
		HTTPTimeout: time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.FetchRate(context.Background(), "USD", "EUR")

	require.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.NotContains(t, err.Error(), "super-secret-key")
}
