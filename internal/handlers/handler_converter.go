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

// converterPageHandler serves the browser converter page.
type converterPageHandler struct {
	currencyService  portssvc.CurrencySvcFacade
	converterService portssvc.ConverterSvcFacade
}

func newConverterPageHandler(cs portssvc.CurrencySvcFacade, conv portssvc.ConverterSvcFacade) *converterPageHandler {
	return &converterPageHandler{
		currencyService:  cs,
		converterService: conv,
	}
}

// registerConverterPageRoutes registers the page routes. Submissions go through submitLimit.
func registerConverterPageRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, submitLimit gin.HandlerFunc) {
	h := newConverterPageHandler(services.Currency, services.Converter)

	rg.GET("/", h.showConverter)
	rg.POST("/", submitLimit, h.submitConversion)
}

// showConverter renders the empty form together with the session history.
func (h *converterPageHandler) showConverter(c *gin.Context) {
	h.render(c, http.StatusOK, "", "", func(*dto.ConverterPage) {})
}

// submitConversion converts the submitted form and re-renders the page with the outcome.
func (h *converterPageHandler) submitConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.String(http.StatusInternalServerError, "Session unavailable")
		return
	}

	fromCode := strings.ToUpper(strings.TrimSpace(c.PostForm("from")))
	toCode := strings.ToUpper(strings.TrimSpace(c.PostForm("to")))
	amount := c.PostForm("amount")

	var req dto.ConvertRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Incomplete conversion form", slog.String("error", err.Error()))
		h.render(c, http.StatusBadRequest, fromCode, toCode, func(page *dto.ConverterPage) {
			page.Amount = amount
			page.Warning = msgInputIncomplete
		})
		return
	}

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode))
	record, err := h.converterService.Convert(c.Request.Context(), h.converterService.OpenSession(session), req)
	if err != nil {
		failure := describeConversionError(err, toCode)
		if failure.warning || failure.status == http.StatusNotFound {
			logger.Warn("Conversion rejected", slog.String("error", err.Error()))
		} else {
			logger.Error("Conversion failed", slog.String("error", err.Error()))
		}
		h.render(c, failure.status, fromCode, toCode, func(page *dto.ConverterPage) {
			page.Amount = amount
			if failure.warning {
				page.Warning = failure.message
			} else {
				page.Error = failure.message
			}
		})
		return
	}

	logger.Info("Conversion completed", slog.Float64("rate", record.Rate))
	h.render(c, http.StatusOK, fromCode, toCode, func(page *dto.ConverterPage) {
		page.Amount = amount
		page.Result = dto.ToConversionResultView(record)
	})
}

// render builds the page for the current selection and session, then applies the outcome.
func (h *converterPageHandler) render(c *gin.Context, status int, fromCode, toCode string, outcome func(*dto.ConverterPage)) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	currencies, err := h.currencyService.ListCurrencies(ctx)
	if err != nil {
		logger.Error("Failed to list currencies from service", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Failed to load currencies")
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.String(http.StatusInternalServerError, "Session unavailable")
		return
	}
	history, err := h.converterService.OpenSession(session).History(ctx)
	if err != nil {
		logger.Error("Failed to load conversion history", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Failed to load conversion history")
		return
	}

	page := dto.NewConverterPage(currencies, fromCode, toCode, history)
	outcome(&page)
	c.HTML(status, converterTemplate, page)
}
