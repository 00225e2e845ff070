package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// History store backends.
const (
	HistoryStoreMemory   = "memory"
	HistoryStoreRedis    = "redis"
	HistoryStorePostgres = "postgres"
)

const (
	defaultHTTPTimeout   = 10 * time.Second
	defaultSessionTTL    = 12 * time.Hour
	defaultSessionSecret = "default_insecure_session_secret_please_change_this_!@#$"
)

// ExchangeRateConfig holds the settings of the remote rate service.
type ExchangeRateConfig struct {
	APIURL      string
	APIKey      string
	HTTPTimeout time.Duration
}

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	ExchangeRate     ExchangeRateConfig
	CurrencyListPath string

	SessionSecret     string
	SessionCookieName string
	SessionTTL        time.Duration

	HistoryStore string
	RedisURL     string
	DatabaseURL  string

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("EXCHANGE_RATE_API_KEY", "")
	v.SetDefault("EXCHANGE_RATE_HTTP_TIMEOUT", defaultHTTPTimeout.String())
	v.SetDefault("CURRENCY_LIST_PATH", "")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_COOKIE_NAME", "ffsid")
	v.SetDefault("SESSION_TTL", defaultSessionTTL.String())
	v.SetDefault("HISTORY_STORE", HistoryStoreMemory)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Defaults can be overridden by .env values, which in turn are overridden by the real environment.
	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		CurrencyListPath:  v.GetString("CURRENCY_LIST_PATH"),
		SessionSecret:     v.GetString("SESSION_SECRET"),
		SessionCookieName: v.GetString("SESSION_COOKIE_NAME"),
		HistoryStore:      strings.ToLower(strings.TrimSpace(v.GetString("HISTORY_STORE"))),
		RedisURL:          v.GetString("REDIS_URL"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RateLimit:         v.GetString("RATE_LIMIT"),
		ExchangeRate: ExchangeRateConfig{
			APIURL: strings.TrimRight(v.GetString("EXCHANGE_RATE_API_URL"), "/"),
			APIKey: v.GetString("EXCHANGE_RATE_API_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.ExchangeRate.HTTPTimeout = parseDuration("EXCHANGE_RATE_HTTP_TIMEOUT", v.GetString("EXCHANGE_RATE_HTTP_TIMEOUT"), defaultHTTPTimeout)
	cfg.SessionTTL = parseDuration("SESSION_TTL", v.GetString("SESSION_TTL"), defaultSessionTTL)

	if cfg.SessionSecret == "" || cfg.SessionSecret == defaultSessionSecret {
		cfg.SessionSecret = defaultSessionSecret
		log.Println("Warning: SESSION_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "ffsid"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	var errs []error
	if cfg.ExchangeRate.APIKey == "" {
		errs = append(errs, errors.New("EXCHANGE_RATE_API_KEY is required"))
	}
	if cfg.ExchangeRate.APIURL == "" {
		errs = append(errs, errors.New("EXCHANGE_RATE_API_URL is required"))
	}
	if cfg.CurrencyListPath == "" {
		errs = append(errs, errors.New("CURRENCY_LIST_PATH is required"))
	}
	switch cfg.HistoryStore {
	case HistoryStoreMemory:
	case HistoryStoreRedis:
		if cfg.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when HISTORY_STORE is redis"))
		}
	case HistoryStorePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when HISTORY_STORE is postgres"))
		}
	default:
		errs = append(errs, errors.New("HISTORY_STORE must be memory, redis or postgres, got "+cfg.HistoryStore))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return cfg, nil
}

func parseDuration(key, raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
