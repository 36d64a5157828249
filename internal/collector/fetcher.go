package collector

import (
	"context"

	"ChainSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchPriceSeries returns the daily price history for asset over
	// the last days, quoted in currency.
	FetchPriceSeries(ctx context.Context, asset string, days int, currency string) (*model.PriceSeries, error)
	// FetchMarketSnapshot returns the top-N assets by market cap with
	// their 30-day percent change.
	FetchMarketSnapshot(ctx context.Context, topN int, currency string) (*model.MarketSnapshot, error)
	// FetchExchangeRate returns how many units of quote one unit of
	// base buys.
	FetchExchangeRate(ctx context.Context, base, quote string) (float64, error)
	Name() string
}
