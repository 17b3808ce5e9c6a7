package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFundamentals_HasPrice(t *testing.T) {
	tests := []struct {
		name string
		f    *Fundamentals
		want bool
	}{
		{name: "nil snapshot", f: nil, want: false},
		{name: "zero price", f: &Fundamentals{}, want: false},
		{name: "negative price", f: &Fundamentals{CurrentPrice: decimal.NewFromInt(-1)}, want: false},
		{name: "positive price", f: &Fundamentals{CurrentPrice: decimal.NewFromFloat(0.01)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.HasPrice(); got != tt.want {
				t.Errorf("HasPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "ticker", Reason: "must not be empty"}

	if got := err.Error(); got != "invalid ticker: must not be empty" {
		t.Errorf("Error() = %q", got)
	}
	if !IsValidation(err) {
		t.Error("IsValidation() = false for ValidationError")
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsValidation() = false for wrapped ValidationError")
	}
	if IsValidation(errors.New("other")) {
		t.Error("IsValidation() = true for unrelated error")
	}
	if IsValidation(ErrTickerNotFound) {
		t.Error("IsValidation() = true for ErrTickerNotFound")
	}
}
