package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"insight-alpha/models"
	"insight-alpha/observability"
)

// YahooService handles communication with the Yahoo Finance API for
// fundamentals snapshots and the raw news feed.
type YahooService struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewYahooService creates a new YahooService instance
func NewYahooService(baseURL, userAgent string) *YahooService {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// rawValue is Yahoo's number wrapper; Raw is absent for missing fields.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) float() float64 {
	if v.Raw == nil {
		return 0
	}
	return *v.Raw
}

func (v rawValue) decimal() decimal.Decimal {
	if v.Raw == nil {
		return decimal.Decimal{}
	}
	return decimal.NewFromFloat(*v.Raw)
}

// quoteSummaryResponse represents the quoteSummary envelope
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				CurrentPrice    rawValue `json:"currentPrice"`
				TargetMeanPrice rawValue `json:"targetMeanPrice"`
				FreeCashFlow    rawValue `json:"freeCashflow"`
				RevenueGrowth   rawValue `json:"revenueGrowth"`
				ProfitMargins   rawValue `json:"profitMargins"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				SharesOutstanding rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
			SummaryProfile struct {
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"summaryProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// GetFundamentals returns the fundamentals snapshot for a symbol. A symbol
// the provider does not know yields models.ErrTickerNotFound.
func (s *YahooService) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerYahoo, "quote_summary")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(BreakerYahoo, "quote_summary")

	params := url.Values{}
	params.Set("modules", "financialData,defaultKeyStatistics,summaryProfile")

	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s",
		s.baseURL, url.PathEscape(symbol), params.Encode())

	var summary quoteSummaryResponse
	_, err := WithCircuitBreaker(ctx, BreakerYahoo, func() (struct{}, error) {
		return struct{}{}, s.getJSON(ctx, endpoint, &summary)
	})
	if err != nil {
		metrics.RecordExternalAPIError(BreakerYahoo, "quote_summary", "fetch")
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", symbol, err)
	}

	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		return nil, models.ErrTickerNotFound
	}

	r := summary.QuoteSummary.Result[0]
	return &models.Fundamentals{
		Symbol:            symbol,
		CurrentPrice:      r.FinancialData.CurrentPrice.decimal(),
		TargetMeanPrice:   r.FinancialData.TargetMeanPrice.decimal(),
		FreeCashFlow:      r.FinancialData.FreeCashFlow.decimal(),
		SharesOutstanding: int64(r.DefaultKeyStatistics.SharesOutstanding.float()),
		RevenueGrowth:     r.FinancialData.RevenueGrowth.float(),
		ProfitMargin:      r.FinancialData.ProfitMargins.float(),
		Summary:           r.SummaryProfile.LongBusinessSummary,
		UpdatedAt:         time.Now(),
	}, nil
}

// newsSearchResponse represents the news portion of the search endpoint.
// Items arrive in two schema generations, so each entry is decoded into the
// fully optional RawNewsItem shape.
type newsSearchResponse struct {
	News []models.RawNewsItem `json:"news"`
}

// GetNews returns the raw news feed for a symbol. Records are returned as-is;
// normalization is the caller's concern.
func (s *YahooService) GetNews(ctx context.Context, symbol string, limit int) ([]models.RawNewsItem, error) {
	if limit <= 0 {
		limit = 20
	}

	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerYahoo, "news_search")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(BreakerYahoo, "news_search")

	params := url.Values{}
	params.Set("q", symbol)
	params.Set("newsCount", fmt.Sprintf("%d", limit))
	params.Set("quotesCount", "0")

	endpoint := fmt.Sprintf("%s/v1/finance/search?%s", s.baseURL, params.Encode())

	var search newsSearchResponse
	_, err := WithCircuitBreaker(ctx, BreakerYahoo, func() (struct{}, error) {
		return struct{}{}, s.getJSON(ctx, endpoint, &search)
	})
	if err != nil {
		metrics.RecordExternalAPIError(BreakerYahoo, "news_search", "fetch")
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}

	return search.News, nil
}

// getJSON performs a GET request and decodes the JSON body into out
func (s *YahooService) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.ErrTickerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
