package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tally/internal/currency"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Logging
	LogLevel string

	// Auth
	JWTSecret        string
	JWTExpirationDur time.Duration
	PipelineAPIKey   string
	AllowCapture     bool

	// Capture
	SeedTickers        []string
	TickersFile        string
	QuoteSource        string
	FxSource           string
	PivotCurrency      string
	FxQuoteCurrencies  []string
	RequestTimeout     time.Duration
	CaptureConcurrency int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		PipelineAPIKey: os.Getenv("PIPELINE_API_KEY"),

		SeedTickers:       SplitSymbols(os.Getenv("TICKERS")),
		TickersFile:       os.Getenv("TICKERS_FILE"),
		QuoteSource:       strings.ToLower(getEnv("QUOTE_SOURCE", "yahoo")),
		FxSource:          strings.ToLower(getEnv("FX_SOURCE", "frankfurter")),
		PivotCurrency:     strings.ToUpper(getEnv("PIVOT_CURRENCY", "EUR")),
		FxQuoteCurrencies: SplitSymbols(getEnv("FX_QUOTE_CURRENCIES", "USD,CNY")),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "720h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 720h\n", expStr)
		expDur = 720 * time.Hour
	}
	config.JWTExpirationDur = expDur

	allow, err := parseBool(os.Getenv("ALLOW_CAPTURE"), false)
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_CAPTURE value: %w", err)
	}
	config.AllowCapture = allow

	timeout, err := parseTimeout(os.Getenv("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	config.RequestTimeout = timeout

	concurrency, err := parsePositiveInt(os.Getenv("CAPTURE_CONCURRENCY"), 1)
	if err != nil {
		return nil, fmt.Errorf("invalid CAPTURE_CONCURRENCY value: %w", err)
	}
	config.CaptureConcurrency = concurrency

	switch config.QuoteSource {
	case "yahoo", "finance-go":
	default:
		return nil, fmt.Errorf("invalid QUOTE_SOURCE %q: must be yahoo or finance-go", config.QuoteSource)
	}
	switch config.FxSource {
	case "frankfurter", "yahoo":
	default:
		return nil, fmt.Errorf("invalid FX_SOURCE %q: must be frankfurter or yahoo", config.FxSource)
	}

	for _, code := range append([]string{config.PivotCurrency}, config.FxQuoteCurrencies...) {
		if !currency.IsISO4217(code) {
			return nil, fmt.Errorf("invalid currency code %q in PIVOT_CURRENCY or FX_QUOTE_CURRENCIES", code)
		}
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CaptureAllowed reports whether capture may be triggered over HTTP.
func (c *Config) CaptureAllowed() bool {
	return c.IsProduction() || c.AllowCapture
}

// SplitSymbols parses a comma-separated symbol list, trimming, uppercasing
// and dropping empty entries.
func SplitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parseBool(s string, defaultVal bool) (bool, error) {
	if s == "" {
		return defaultVal, nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be true, false, 1, or 0, got %q", s)
	}
}

func parsePositiveInt(s string, defaultVal int) (int, error) {
	if s == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}
