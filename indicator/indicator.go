// Package indicator computes the derived financial metrics the analysis
// pipeline reports: a trailing RSI series over a close-price history and a
// discounted-cash-flow fair value from a fundamentals snapshot.
package indicator

import (
	"math"

	"github.com/shopspring/decimal"

	"insight-alpha/models"
)

// DefaultRSIWindow is the standard RSI lookback period.
const DefaultRSIWindow = 14

// RSISeries computes the Relative Strength Index for each index of closes.
// Gains and losses are period-over-period deltas averaged with a trailing
// simple mean of length window. The first window entries have insufficient
// lookback and are NaN; callers must drop them before display. A zero loss
// average saturates the index at exactly 100.
func RSISeries(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 || len(closes) < window+1 {
		return out
	}

	for i := window; i < len(closes); i++ {
		var gain, loss float64
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - closes[j-1]
			if d > 0 {
				gain += d
			} else {
				loss -= d
			}
		}
		meanGain := gain / float64(window)
		meanLoss := loss / float64(window)

		if meanLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := meanGain / meanLoss
		out[i] = 100.0 - (100.0 / (1.0 + rs))
	}

	return out
}

// LatestRSI returns the most recent defined RSI value in the series.
func LatestRSI(series []float64) (float64, bool) {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			return series[i], true
		}
	}
	return 0, false
}

// Assumptions are the fixed DCF model parameters.
type Assumptions struct {
	Years    int
	Growth   decimal.Decimal // annual free-cash-flow growth
	Discount decimal.Decimal // discount rate
	Terminal decimal.Decimal // terminal growth rate
}

// DefaultAssumptions are the model parameters used for every analysis:
// 5-year horizon, 12% growth, 10% discount, 3% terminal growth.
var DefaultAssumptions = Assumptions{
	Years:    5,
	Growth:   decimal.NewFromFloat(0.12),
	Discount: decimal.NewFromFloat(0.10),
	Terminal: decimal.NewFromFloat(0.03),
}

// DCF computes a per-share fair value using the default assumptions.
func DCF(f models.Fundamentals) models.Valuation {
	return DCFWith(f, DefaultAssumptions)
}

// DCFWith projects free cash flow forward, discounts each year plus a
// Gordon-growth terminal value back to present, and divides by shares
// outstanding. It fails closed: any unmet precondition (non-positive free
// cash flow, missing shares, discount not above terminal growth) yields an
// unavailable valuation instead of an error.
func DCFWith(f models.Fundamentals, a Assumptions) models.Valuation {
	if !f.FreeCashFlow.IsPositive() || f.SharesOutstanding <= 0 {
		return models.Valuation{}
	}
	if a.Years <= 0 || a.Discount.LessThanOrEqual(a.Terminal) {
		return models.Valuation{}
	}

	one := decimal.NewFromInt(1)
	growthFactor := one.Add(a.Growth)
	discountFactor := one.Add(a.Discount)

	var presentValue decimal.Decimal
	projected := f.FreeCashFlow
	for i := 1; i <= a.Years; i++ {
		projected = projected.Mul(growthFactor)
		discounted := projected.Div(discountFactor.Pow(decimal.NewFromInt(int64(i))))
		presentValue = presentValue.Add(discounted)
	}

	// projected now holds FCF in the final projection year
	terminalValue := projected.Mul(one.Add(a.Terminal)).Div(a.Discount.Sub(a.Terminal))
	discountedTerminal := terminalValue.Div(discountFactor.Pow(decimal.NewFromInt(int64(a.Years))))

	fairValue := presentValue.Add(discountedTerminal).
		Div(decimal.NewFromInt(f.SharesOutstanding)).
		Round(2)

	return models.Valuation{Available: true, FairValue: fairValue}
}
