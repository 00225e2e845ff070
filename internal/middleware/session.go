package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "forexflex"

// SessionConfig controls how session tokens are signed and stored in the browser.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// IssueSessionToken starts a new session and returns its signed token.
func IssueSessionToken(cfg SessionConfig, now time.Time) (domain.Session, string, error) {
	session := domain.Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(cfg.TTL).Truncate(time.Second),
	}
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return domain.Session{}, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return session, token, nil
}

// ParseSessionToken validates a session token and returns the session it identifies.
func ParseSessionToken(cfg SessionConfig, tokenString string) (domain.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Session{}, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return domain.Session{}, errors.New("invalid session claims")
	}
	return domain.Session{ID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// SessionMiddleware resolves the browser session from its signed cookie, starting a
// new session when the cookie is missing, expired or tampered with.
func SessionMiddleware(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		var session domain.Session
		tokenString, err := c.Cookie(cfg.CookieName)
		if err == nil {
			session, err = ParseSessionToken(cfg, tokenString)
			if err != nil {
				logger.Info("Discarding session cookie", slog.String("reason", err.Error()))
			}
		}

		if err != nil {
			var token string
			session, token, err = IssueSessionToken(cfg, time.Now())
			if err != nil {
				logger.Error("Failed to start session", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
			logger.Info("Started new session", slog.String("session_id", session.ID))
		}

		enrichedLogger := logger.With(slog.String("session_id", session.ID))
		ctx := context.WithValue(c.Request.Context(), sessionKey, session)
		c.Request = c.Request.WithContext(AddLoggerToCtx(ctx, enrichedLogger))
		c.Set(string(sessionKey), session)

		c.Next()
	}
}
