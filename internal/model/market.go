package model

import "time"

// PricePoint is a single daily close sample.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// PriceSeries holds the raw daily price history for analysis.
// Points are sorted ascending with strictly increasing timestamps.
type PriceSeries struct {
	Asset     string
	Currency  string
	Points    []PricePoint
	FetchedAt time.Time
}

// Prices returns the price column of the series.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent price, or 0 for an empty series.
func (s *PriceSeries) Last() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Price
}

// AssetChange is one asset's 30-day percent price change.
type AssetChange struct {
	Symbol    string
	Change30d float64
}

// MarketSnapshot is a cross-section of the top-N assets by market cap.
type MarketSnapshot struct {
	Assets    []AssetChange
	FetchedAt time.Time
}

// ExchangeRate is the conversion rate from the reference currency to the
// target currency. Fallback is true when the hardcoded default was
// substituted because the conversion source was unreachable.
type ExchangeRate struct {
	Base      string
	Quote     string
	Rate      float64
	Fallback  bool
	FetchedAt time.Time
}
