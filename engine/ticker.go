package engine

import (
	"regexp"
	"strings"

	"insight-alpha/models"
)

// maxTickerLen is the longest symbol accepted for analysis.
const maxTickerLen = 6

var tickerPattern = regexp.MustCompile(`^[A-Z]+$`)

// ValidateTicker normalizes and validates a user-supplied ticker symbol.
// Input is trimmed and upper-cased before the checks; a malformed symbol
// returns a ValidationError and no downstream call is made.
func ValidateTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))

	if ticker == "" {
		return "", &models.ValidationError{Field: "ticker", Reason: "must not be empty"}
	}
	if !tickerPattern.MatchString(ticker) {
		return "", &models.ValidationError{Field: "ticker", Reason: "must contain letters A-Z only"}
	}
	if len(ticker) > maxTickerLen {
		return "", &models.ValidationError{Field: "ticker", Reason: "must be at most 6 characters"}
	}

	return ticker, nil
}
