package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Valuation is the outcome of a DCF computation. When the preconditions are
// unmet or the math degenerates, Available is false and FairValue is zero;
// callers render that as "N/A" rather than treating it as an error.
type Valuation struct {
	Available bool            `json:"available"`
	FairValue decimal.Decimal `json:"fair_value"`
}

// SentimentLabel is the directional classification of aggregated news sentiment
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral/Mixed"
	SentimentNoData   SentimentLabel = "No News Data"
)

// SentimentSummary aggregates per-headline scores into a single reading.
// HasData is false when zero headlines were successfully scored; Mean is
// meaningless in that case and must not be displayed.
type SentimentSummary struct {
	Label   SentimentLabel `json:"label"`
	Mean    float64        `json:"mean"`
	Scored  int            `json:"scored"`
	Skipped int            `json:"skipped"`
	HasData bool           `json:"has_data"`
}

// ChartPoint is one chart-ready sample: close price with its RSI reading.
// Points inside the RSI warmup window are excluded from the series.
type ChartPoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Close     decimal.Decimal `json:"close"`
	RSI       float64         `json:"rsi"`
}

// Analysis is the full result of one ticker analysis request. It is computed
// fresh per request and never persisted.
type Analysis struct {
	ID        uuid.UUID        `json:"id"`
	Ticker    string           `json:"ticker"`
	Price     decimal.Decimal  `json:"price"`
	Target    decimal.Decimal  `json:"target"`
	DCF       Valuation        `json:"dcf"`
	RSI       float64          `json:"rsi"`
	Sentiment SentimentSummary `json:"sentiment"`
	Chart     []ChartPoint     `json:"chart"`
	Headlines []Headline       `json:"headlines"`
	Summary   string           `json:"summary,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
