package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents the latest traded price for a symbol
type Quote struct {
	Symbol    string          `json:"symbol"`
	Last      decimal.Decimal `json:"last"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// Bar represents OHLCV price data for a time period
type Bar struct {
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
}

// Fundamentals is a read-only snapshot of the valuation inputs for a symbol.
// Any field may be zero when the provider omits it; consumers must treat
// zero-valued FreeCashFlow and SharesOutstanding as missing.
type Fundamentals struct {
	Symbol            string          `json:"symbol"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	TargetMeanPrice   decimal.Decimal `json:"target_mean_price"`
	FreeCashFlow      decimal.Decimal `json:"free_cash_flow"`
	SharesOutstanding int64           `json:"shares_outstanding"`
	RevenueGrowth     float64         `json:"revenue_growth"`
	ProfitMargin      float64         `json:"profit_margin"`
	Summary           string          `json:"summary,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// HasPrice reports whether the provider returned a usable current price.
// A snapshot without a price means the ticker was not found.
func (f *Fundamentals) HasPrice() bool {
	return f != nil && f.CurrentPrice.IsPositive()
}
