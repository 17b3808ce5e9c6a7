package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// External service configurations
	Alpaca  AlpacaConfig
	Bedrock BedrockConfig
	Yahoo   YahooConfig

	// Analysis configuration
	Analysis AnalysisConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// AlpacaConfig holds Alpaca market data API configuration
type AlpacaConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// BedrockConfig holds AWS Bedrock configuration for the sentiment model
type BedrockConfig struct {
	Region    string
	ModelID   string
	MaxTokens int
}

// YahooConfig holds Yahoo Finance client configuration
type YahooConfig struct {
	BaseURL   string
	UserAgent string
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	HistoryDays      int // lookback window for price history
	RSIWindow        int // RSI trailing window
	NewsCandidateCap int // max raw news titles processed per request
	DisplayHeadlines int // max headlines returned for display
	TimeoutSeconds   int
	ConcurrencyLimit int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
			BaseURL:   getEnvString("ALPACA_BASE_URL", "https://paper-api.alpaca.markets"),
		},
		Bedrock: BedrockConfig{
			Region:    os.Getenv("AWS_REGION"),
			ModelID:   os.Getenv("BEDROCK_MODEL_ID"),
			MaxTokens: getEnvInt("BEDROCK_MAX_TOKENS", 256),
		},
		Yahoo: YahooConfig{
			BaseURL:   getEnvString("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			UserAgent: getEnvString("YAHOO_USER_AGENT", "insight-alpha/1.0"),
		},
		Analysis: AnalysisConfig{
			HistoryDays:      getEnvInt("ANALYSIS_HISTORY_DAYS", 730),
			RSIWindow:        getEnvInt("ANALYSIS_RSI_WINDOW", 14),
			NewsCandidateCap: getEnvInt("ANALYSIS_NEWS_CANDIDATE_CAP", 20),
			DisplayHeadlines: getEnvInt("ANALYSIS_DISPLAY_HEADLINES", 5),
			TimeoutSeconds:   getEnvInt("ANALYSIS_TIMEOUT_SECONDS", 60),
			ConcurrencyLimit: getEnvInt("ANALYSIS_CONCURRENCY_LIMIT", 3),
		},
		HTTP: HTTPConfig{
			Port:               getEnvString("HTTP_PORT", "8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Analysis.RSIWindow <= 0 {
		return fmt.Errorf("ANALYSIS_RSI_WINDOW must be positive, got %d", c.Analysis.RSIWindow)
	}
	if c.Analysis.HistoryDays <= c.Analysis.RSIWindow {
		return fmt.Errorf("ANALYSIS_HISTORY_DAYS must exceed the RSI window, got %d", c.Analysis.HistoryDays)
	}
	if c.Analysis.NewsCandidateCap <= 0 {
		return fmt.Errorf("ANALYSIS_NEWS_CANDIDATE_CAP must be positive, got %d", c.Analysis.NewsCandidateCap)
	}
	if c.Analysis.DisplayHeadlines <= 0 {
		return fmt.Errorf("ANALYSIS_DISPLAY_HEADLINES must be positive, got %d", c.Analysis.DisplayHeadlines)
	}
	if c.Analysis.DisplayHeadlines > c.Analysis.NewsCandidateCap {
		return fmt.Errorf("ANALYSIS_DISPLAY_HEADLINES must not exceed the candidate cap, got %d > %d",
			c.Analysis.DisplayHeadlines, c.Analysis.NewsCandidateCap)
	}
	if c.Analysis.TimeoutSeconds <= 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT_SECONDS must be positive, got %d", c.Analysis.TimeoutSeconds)
	}
	if c.Analysis.ConcurrencyLimit <= 0 {
		return fmt.Errorf("ANALYSIS_CONCURRENCY_LIMIT must be positive, got %d", c.Analysis.ConcurrencyLimit)
	}

	return nil
}

// HasAlpaca returns true if Alpaca configuration is available
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

// HasBedrock returns true if the sentiment model configuration is available
func (c *Config) HasBedrock() bool {
	return c.Bedrock.Region != "" && c.Bedrock.ModelID != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Alpaca: AlpacaConfig{
			BaseURL: "https://paper-api.alpaca.markets",
		},
		Bedrock: BedrockConfig{
			MaxTokens: 256,
		},
		Yahoo: YahooConfig{
			BaseURL:   "https://query1.finance.yahoo.com",
			UserAgent: "insight-alpha/test",
		},
		Analysis: AnalysisConfig{
			HistoryDays:      730,
			RSIWindow:        14,
			NewsCandidateCap: 20,
			DisplayHeadlines: 5,
			TimeoutSeconds:   60,
			ConcurrencyLimit: 3,
		},
		HTTP: HTTPConfig{
			Port:               "8080",
			CORSAllowedOrigins: "*",
		},
	}
}
