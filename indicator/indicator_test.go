package indicator

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"insight-alpha/models"
)

func TestRSISeries_WarmupIsNaN(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 13, 14, 13, 15, 16, 15, 17, 18, 17, 19, 20, 21}
	series := RSISeries(closes, DefaultRSIWindow)

	if len(series) != len(closes) {
		t.Fatalf("series length = %d, want %d", len(series), len(closes))
	}
	for i := 0; i < DefaultRSIWindow; i++ {
		if !math.IsNaN(series[i]) {
			t.Errorf("series[%d] = %v, want NaN during warmup", i, series[i])
		}
	}
	for i := DefaultRSIWindow; i < len(series); i++ {
		if math.IsNaN(series[i]) {
			t.Errorf("series[%d] is NaN, want defined value", i)
		}
	}
}

func TestRSISeries_Bounds(t *testing.T) {
	closes := []float64{44, 47, 45, 50, 48, 52, 49, 53, 51, 55, 52, 56, 54, 58, 55, 59, 57, 61, 58, 62}
	series := RSISeries(closes, DefaultRSIWindow)

	for i, v := range series {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("series[%d] = %v, want value in [0, 100]", i, v)
		}
	}
}

func TestRSISeries_Saturation(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{
			name:   "monotonic gains saturate at 100",
			closes: []float64{40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 51, 52, 53, 54, 55},
			want:   100.0,
		},
		{
			name:   "monotonic losses pin at 0",
			closes: []float64{55, 54, 53, 52, 51, 50, 49, 48, 47, 46, 45, 44, 43, 42, 41, 40},
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := RSISeries(tt.closes, DefaultRSIWindow)
			got := series[len(series)-1]
			if got != tt.want {
				t.Errorf("last RSI = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRSISeries_BalancedGainsAndLosses(t *testing.T) {
	// Alternating +1/-1 deltas: mean gain equals mean loss, RSI is exactly 50
	closes := []float64{10, 11, 10, 11, 10}
	series := RSISeries(closes, 2)

	for i := 2; i < len(series); i++ {
		if series[i] != 50.0 {
			t.Errorf("series[%d] = %v, want 50", i, series[i])
		}
	}
}

func TestRSISeries_TooShort(t *testing.T) {
	series := RSISeries([]float64{10, 11, 12}, DefaultRSIWindow)
	for i, v := range series {
		if !math.IsNaN(v) {
			t.Errorf("series[%d] = %v, want NaN for short history", i, v)
		}
	}
}

func TestLatestRSI(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name   string
		series []float64
		want   float64
		wantOK bool
	}{
		{
			name:   "last value defined",
			series: []float64{nan, nan, 60.5},
			want:   60.5,
			wantOK: true,
		},
		{
			name:   "all undefined",
			series: []float64{nan, nan, nan},
			wantOK: false,
		},
		{
			name:   "empty series",
			series: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LatestRSI(tt.series)
			if ok != tt.wantOK {
				t.Fatalf("LatestRSI() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("LatestRSI() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDCF_FairValue(t *testing.T) {
	f := models.Fundamentals{
		FreeCashFlow:      decimal.NewFromInt(1_000_000),
		SharesOutstanding: 100_000,
	}

	got := DCF(f)
	if !got.Available {
		t.Fatal("DCF() unavailable, want available valuation")
	}

	// Closed-form reference: 5 years of 12% growth discounted at 10%,
	// plus a 3% Gordon terminal value discounted from year 5.
	fcf := 1_000_000.0
	var pv float64
	projected := fcf
	for i := 1; i <= 5; i++ {
		projected *= 1.12
		pv += projected / math.Pow(1.10, float64(i))
	}
	terminal := projected * 1.03 / (0.10 - 0.03)
	pv += terminal / math.Pow(1.10, 5)
	want := pv / 100_000.0

	if diff := math.Abs(got.FairValue.InexactFloat64() - want); diff > 0.01 {
		t.Errorf("DCF() fair value = %v, want %v within $0.01", got.FairValue, want)
	}
}

func TestDCF_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		f    models.Fundamentals
	}{
		{
			name: "zero free cash flow",
			f:    models.Fundamentals{SharesOutstanding: 1000},
		},
		{
			name: "negative free cash flow",
			f: models.Fundamentals{
				FreeCashFlow:      decimal.NewFromInt(-500_000),
				SharesOutstanding: 1000,
			},
		},
		{
			name: "zero shares outstanding",
			f: models.Fundamentals{
				FreeCashFlow: decimal.NewFromInt(1_000_000),
			},
		},
		{
			name: "negative shares outstanding",
			f: models.Fundamentals{
				FreeCashFlow:      decimal.NewFromInt(1_000_000),
				SharesOutstanding: -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DCF(tt.f)
			if got.Available {
				t.Errorf("DCF() available with fair value %v, want unavailable", got.FairValue)
			}
			if !got.FairValue.IsZero() {
				t.Errorf("unavailable valuation carries fair value %v, want zero", got.FairValue)
			}
		})
	}
}

func TestDCFWith_BadAssumptions(t *testing.T) {
	f := models.Fundamentals{
		FreeCashFlow:      decimal.NewFromInt(1_000_000),
		SharesOutstanding: 100_000,
	}

	tests := []struct {
		name string
		a    Assumptions
	}{
		{
			name: "discount equals terminal",
			a: Assumptions{
				Years:    5,
				Growth:   decimal.NewFromFloat(0.12),
				Discount: decimal.NewFromFloat(0.03),
				Terminal: decimal.NewFromFloat(0.03),
			},
		},
		{
			name: "discount below terminal",
			a: Assumptions{
				Years:    5,
				Growth:   decimal.NewFromFloat(0.12),
				Discount: decimal.NewFromFloat(0.02),
				Terminal: decimal.NewFromFloat(0.03),
			},
		},
		{
			name: "zero years",
			a: Assumptions{
				Growth:   decimal.NewFromFloat(0.12),
				Discount: decimal.NewFromFloat(0.10),
				Terminal: decimal.NewFromFloat(0.03),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DCFWith(f, tt.a); got.Available {
				t.Errorf("DCFWith() available with %v, want unavailable", got.FairValue)
			}
		})
	}
}

func TestDCF_MonotonicInFreeCashFlow(t *testing.T) {
	low := DCF(models.Fundamentals{
		FreeCashFlow:      decimal.NewFromInt(1_000_000),
		SharesOutstanding: 100_000,
	})
	high := DCF(models.Fundamentals{
		FreeCashFlow:      decimal.NewFromInt(2_000_000),
		SharesOutstanding: 100_000,
	})

	if !high.FairValue.GreaterThan(low.FairValue) {
		t.Errorf("fair value %v with doubled FCF not above %v", high.FairValue, low.FairValue)
	}
}
