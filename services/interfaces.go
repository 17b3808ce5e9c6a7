package services

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"insight-alpha/models"
)

// LLMService defines the interface for sentiment model invocations
type LLMService interface {
	InvokeWithPrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MarketDataService defines the interface for historical price data
type MarketDataService interface {
	GetBars(ctx context.Context, symbol string, start, end time.Time, timeframe marketdata.TimeFrame) ([]models.Bar, error)
	GetDailyBars(ctx context.Context, symbol string, days int) ([]models.Bar, error)
}

// FundamentalsService defines the interface for fundamentals and news feeds
type FundamentalsService interface {
	GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
	GetNews(ctx context.Context, symbol string, limit int) ([]models.RawNewsItem, error)
}

// Compile-time interface verification
var _ LLMService = (*BedrockService)(nil)
var _ MarketDataService = (*AlpacaService)(nil)
var _ FundamentalsService = (*YahooService)(nil)
