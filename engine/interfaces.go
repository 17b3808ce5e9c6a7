package engine

import "insight-alpha/services"

// Aliases for the upstream service contracts the analyzer depends on.
// Keeping them here lets callers construct an Analyzer without
// importing the services package directly.
type (
	MarketDataService   = services.MarketDataService
	FundamentalsService = services.FundamentalsService
)
