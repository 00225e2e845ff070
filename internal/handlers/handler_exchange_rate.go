package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
	"github.com/SscSPs/forexflex/internal/dto"
	"github.com/SscSPs/forexflex/internal/middleware"
	"github.com/gin-gonic/gin"
)

type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateReaderSvc
}

func newExchangeRateHandler(rs portssvc.ExchangeRateReaderSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateReaderSvc, lookupLimit gin.HandlerFunc) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("/:from/:to", lookupLimit, h.getExchangeRate)
	}
}

// getExchangeRate godoc
// @Summary Get a live exchange rate
// @Description Retrieves the current rate from one currency to another without recording a conversion
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "From Currency Code"
// @Param   to path string true "To Currency Code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Currency not available"
// @Failure 502 {object} map[string]string "Rate service error"
// @Failure 503 {object} map[string]string "Rate service unreachable"
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	fromCode := strings.ToUpper(c.Param("from"))
	toCode := strings.ToUpper(c.Param("to"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("from_code", fromCode),
		slog.String("to_code", toCode),
	)
	logger.Info("Received request to get exchange rate")

	rate, err := h.rateService.LookupRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		failure := describeConversionError(err, toCode)
		if failure.status >= http.StatusInternalServerError {
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
		} else {
			logger.Warn("Exchange rate not available", slog.String("error", err.Error()))
		}
		c.JSON(failure.status, gin.H{"error": failure.message})
		return
	}

	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             rate,
	})
}
