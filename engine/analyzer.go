// Package engine orchestrates one ticker analysis: validate, fetch
// fundamentals and price history, compute indicators, normalize news, score
// sentiment, assemble the result. Each request runs the chain sequentially
// and every result is computed fresh; nothing is cached across requests.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"insight-alpha/config"
	"insight-alpha/indicator"
	"insight-alpha/models"
	"insight-alpha/news"
	"insight-alpha/observability"
	"insight-alpha/sentiment"
)

// neutralRSI is reported when the history is too short for a defined RSI.
const neutralRSI = 50.0

// Analyzer runs the analysis pipeline against the external data providers.
type Analyzer struct {
	market    MarketDataService
	data      FundamentalsService
	sentiment SentimentScorer
	cfg       *config.Config
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(market MarketDataService, data FundamentalsService, scorer SentimentScorer, cfg *config.Config) *Analyzer {
	return &Analyzer{
		market:    market,
		data:      data,
		sentiment: scorer,
		cfg:       cfg,
	}
}

// Analyze runs the full pipeline for one raw ticker string.
// Failure modes: a malformed ticker returns a ValidationError before any
// fetch; missing price data returns ErrTickerNotFound; a failed DCF degrades
// to an unavailable valuation; a failed news fetch degrades to the no-data
// sentiment state. Nothing here panics or retries.
func (a *Analyzer) Analyze(ctx context.Context, rawTicker string) (*models.Analysis, error) {
	ticker, err := ValidateTicker(rawTicker)
	if err != nil {
		return nil, err
	}

	metrics := observability.GetMetrics()
	metrics.RecordAnalysisRequest(ticker)
	timer := metrics.NewTimer()
	log := observability.WithTicker(ticker)

	fundamentals, bars, err := a.fetchMarketData(ctx, ticker)
	if err != nil {
		if errors.Is(err, models.ErrTickerNotFound) {
			metrics.RecordAnalysisError(ticker, "not_found")
		} else {
			metrics.RecordAnalysisError(ticker, "upstream")
		}
		timer.ObserveAnalysis(ticker, "error")
		return nil, err
	}

	rsi, chart := a.computeIndicators(bars)
	valuation := indicator.DCF(*fundamentals)
	if !valuation.Available {
		log.Info("DCF unavailable for ticker",
			"free_cash_flow", fundamentals.FreeCashFlow,
			"shares_outstanding", fundamentals.SharesOutstanding)
	}

	headlines, summary := a.scoreNews(ctx, ticker, log)

	timer.ObserveAnalysis(ticker, "ok")

	return &models.Analysis{
		ID:        uuid.New(),
		Ticker:    ticker,
		Price:     fundamentals.CurrentPrice,
		Target:    fundamentals.TargetMeanPrice,
		DCF:       valuation,
		RSI:       rsi,
		Sentiment: summary,
		Chart:     chart,
		Headlines: headlines,
		Summary:   fundamentals.Summary,
		CreatedAt: time.Now(),
	}, nil
}

// fetchMarketData retrieves the fundamentals snapshot and price history.
// A snapshot without a price or an empty history means the ticker is unknown.
func (a *Analyzer) fetchMarketData(ctx context.Context, ticker string) (*models.Fundamentals, []models.Bar, error) {
	metrics := observability.GetMetrics()

	stage := metrics.NewTimer()
	fundamentals, err := a.data.GetFundamentals(ctx, ticker)
	stage.ObserveStage("fundamentals")
	if err != nil {
		if errors.Is(err, models.ErrTickerNotFound) {
			return nil, nil, models.ErrTickerNotFound
		}
		return nil, nil, fmt.Errorf("fundamentals fetch failed: %w", err)
	}
	if !fundamentals.HasPrice() {
		return nil, nil, models.ErrTickerNotFound
	}

	stage = metrics.NewTimer()
	bars, err := a.market.GetDailyBars(ctx, ticker, a.cfg.Analysis.HistoryDays)
	stage.ObserveStage("history")
	if err != nil {
		return nil, nil, fmt.Errorf("price history fetch failed: %w", err)
	}
	if len(bars) == 0 {
		return nil, nil, models.ErrTickerNotFound
	}

	return fundamentals, bars, nil
}

// computeIndicators derives the RSI series and the chart-ready points,
// dropping the undefined warmup region.
func (a *Analyzer) computeIndicators(bars []models.Bar) (float64, []models.ChartPoint) {
	stage := observability.GetMetrics().NewTimer()
	defer stage.ObserveStage("indicators")

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close.InexactFloat64()
	}

	series := indicator.RSISeries(closes, a.cfg.Analysis.RSIWindow)

	chart := make([]models.ChartPoint, 0, len(bars))
	for i, bar := range bars {
		if math.IsNaN(series[i]) {
			continue
		}
		chart = append(chart, models.ChartPoint{
			Timestamp: bar.Timestamp,
			Close:     bar.Close,
			RSI:       series[i],
		})
	}

	rsi, ok := indicator.LatestRSI(series)
	if !ok {
		rsi = neutralRSI
	}

	return rsi, chart
}

// scoreNews fetches, normalizes and scores the news feed. A fetch failure is
// logged and degrades to an empty batch; the aggregator then reports the
// distinguished no-data state.
func (a *Analyzer) scoreNews(ctx context.Context, ticker string, log *slog.Logger) ([]models.Headline, models.SentimentSummary) {
	metrics := observability.GetMetrics()

	stage := metrics.NewTimer()
	items, err := a.data.GetNews(ctx, ticker, a.cfg.Analysis.NewsCandidateCap)
	stage.ObserveStage("news")
	if err != nil {
		log.Warn("news fetch failed, continuing without news", "error", err)
		items = nil
	}

	normalized := news.NormalizeWithCaps(items, a.cfg.Analysis.NewsCandidateCap, a.cfg.Analysis.DisplayHeadlines)

	stage = metrics.NewTimer()
	summary := a.sentiment.Score(ctx, normalized.Titles)
	stage.ObserveStage("sentiment")

	return normalized.Display, summary
}

// SentimentScorer aggregates headline sentiment for the pipeline.
type SentimentScorer interface {
	Score(ctx context.Context, titles []string) models.SentimentSummary
}

var _ SentimentScorer = (*sentiment.Aggregator)(nil)
