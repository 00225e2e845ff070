package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
	"github.com/SscSPs/forexflex/internal/dto"
	"github.com/SscSPs/forexflex/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// conversionHandler handles HTTP requests related to conversions.
type conversionHandler struct {
	converterService portssvc.ConverterSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(conv portssvc.ConverterSvcFacade) *conversionHandler {
	return &conversionHandler{
		converterService: conv,
	}
}

// registerConversionRoutes registers routes related to conversions.
func registerConversionRoutes(rg *gin.RouterGroup, converterService portssvc.ConverterSvcFacade, submitLimit gin.HandlerFunc) {
	h := newConversionHandler(converterService)

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", submitLimit, h.createConversion)
		conversions.GET("", h.listConversions)
	}
}

// createConversion godoc
// @Summary Convert an amount
// @Description Fetches the live rate, converts the amount and appends the result to the session history
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 201 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Incomplete input"
// @Failure 404 {object} map[string]string "Currency not available"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]string "Rate service error"
// @Failure 503 {object} map[string]string "Rate service unreachable"
// @Router /conversions [post]
func (h *conversionHandler) createConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Incomplete conversion request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInputIncomplete})
			return
		}
		logger.Warn("Failed to bind JSON for CreateConversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	toCode := strings.ToUpper(strings.TrimSpace(req.ToCurrencyCode))
	logger = logger.With(slog.String("from_code", req.FromCurrencyCode), slog.String("to_code", toCode))
	logger.Info("Received request to convert", slog.Float64("amount", req.Amount))

	record, err := h.converterService.Convert(c.Request.Context(), h.converterService.OpenSession(session), req)
	if err != nil {
		failure := describeConversionError(err, toCode)
		if failure.status >= http.StatusInternalServerError {
			logger.Error("Conversion failed", slog.String("error", err.Error()))
		} else {
			logger.Warn("Conversion rejected", slog.String("error", err.Error()))
		}
		c.JSON(failure.status, gin.H{"error": failure.message})
		return
	}

	logger.Info("Conversion completed", slog.String("conversion_id", record.ID))
	c.JSON(http.StatusCreated, dto.ToConversionResponse(record))
}

// listConversions godoc
// @Summary List session conversions
// @Description Retrieves the conversion history of the current session in submission order
// @Tags conversions
// @Produce  json
// @Success 200 {array} dto.ConversionResponse
// @Failure 500 {object} map[string]string "Failed to load conversion history"
// @Router /conversions [get]
func (h *conversionHandler) listConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	history, err := h.converterService.OpenSession(session).History(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load conversion history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversion history"})
		return
	}

	logger.Info("Conversion history listed", slog.Int("count", len(history)))
	c.JSON(http.StatusOK, dto.ToListConversionResponse(history))
}
