package handlers

import (
	"net/http"

	"github.com/SscSPs/forexflex/cmd/docs"
	portssvc "github.com/SscSPs/forexflex/internal/core/ports/services"
	"github.com/SscSPs/forexflex/internal/middleware"
	"github.com/SscSPs/forexflex/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// Every request that reaches the rate service is throttled by rateLimiter.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	sessions := middleware.SessionMiddleware(middleware.SessionConfig{
		Secret:     cfg.SessionSecret,
		CookieName: cfg.SessionCookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.IsProduction,
	})
	rateLimit := middleware.RateLimit(rateLimiter)

	// Browser converter page
	loadTemplates(r)
	page := r.Group("", sessions)
	registerConverterPageRoutes(page, services, rateLimit)

	setupAPIV1Routes(r, cfg, services, sessions, rateLimit)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	sessions gin.HandlerFunc,
	rateLimit gin.HandlerFunc,
) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	} else {
		// history is bound to the session cookie
		corsConfig.AllowCredentials = true
	}

	v1 := r.Group("/api/v1", cors.New(corsConfig), sessions)
	// preflight requests are answered by the cors middleware
	v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	registerCurrencyRoutes(v1, services.Currency)
	registerConversionRoutes(v1, services.Converter, rateLimit)
	registerExchangeRateRoutes(v1, services.Converter, rateLimit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
