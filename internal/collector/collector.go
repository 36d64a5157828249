package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ChainSentinel/internal/calculator"
	"ChainSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and
// testing.
type MockFetcher struct {
	Series      *model.PriceSeries
	Snapshot    *model.MarketSnapshot
	Rate        float64
	SeriesErr   error
	SnapshotErr error
	RateErr     error

	SeriesCalls   int
	SnapshotCalls int
	RateCalls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPriceSeries(_ context.Context, asset string, days int, currency string) (*model.PriceSeries, error) {
	m.SeriesCalls++
	if m.SeriesErr != nil {
		return nil, m.SeriesErr
	}
	if m.Series != nil {
		return m.Series, nil
	}
	return GenerateMockSeries(asset, currency, 100, days), nil
}

func (m *MockFetcher) FetchMarketSnapshot(_ context.Context, _ int, _ string) (*model.MarketSnapshot, error) {
	m.SnapshotCalls++
	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	if m.Snapshot != nil {
		return m.Snapshot, nil
	}
	return &model.MarketSnapshot{
		Assets: []model.AssetChange{
			{Symbol: "btc", Change30d: 5},
			{Symbol: "eth", Change30d: 8},
			{Symbol: "sol", Change30d: -2},
		},
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchExchangeRate(_ context.Context, _, _ string) (float64, error) {
	m.RateCalls++
	if m.RateErr != nil {
		return 0, m.RateErr
	}
	if m.Rate != 0 {
		return m.Rate, nil
	}
	return 5.2, nil
}

// GenerateMockSeries builds a gently drifting daily series ending today.
func GenerateMockSeries(asset, currency string, basePrice float64, count int) *model.PriceSeries {
	points := make([]model.PricePoint, count)
	now := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  now.AddDate(0, 0, -(count - 1 - i)),
			Price: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return &model.PriceSeries{Asset: asset, Currency: currency, Points: points, FetchedAt: time.Now()}
}

// Result is the outcome of one refresh pass. SnapshotErr is set when
// the market snapshot could not be fetched; the price-based indicators
// are still valid and the Altcoin Season row renders unavailable.
type Result struct {
	Indicators  *model.OnChainIndicators
	Series      *model.PriceSeries
	Rate        model.ExchangeRate
	SnapshotErr error
}

// CollectorOptions selects what one refresh pass requests upstream.
type CollectorOptions struct {
	Asset           string // upstream asset identifier, e.g. "bitcoin"
	ReferenceSymbol string // season baseline symbol, e.g. "btc"
	LookbackDays    int
	TopN            int
	Currency        string // quote currency for prices, e.g. "usd"
	RateBase        string // conversion base, e.g. "USD"
	RateQuote       string // conversion target, e.g. "BRL"
}

// Collector orchestrates data fetching and indicator computation for
// one refresh pass.
type Collector struct {
	Fetcher Fetcher
	Opts    CollectorOptions
	logger  zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, opts CollectorOptions) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Opts:    opts,
		logger:  log.With().Str("component", "collector").Logger(),
	}
}

// Collect fetches market data and computes all indicators. A price
// series failure aborts the pass; a snapshot failure is carried in the
// result so the rest of the report still renders.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	series, err := c.Fetcher.FetchPriceSeries(ctx, c.Opts.Asset, c.Opts.LookbackDays, c.Opts.Currency)
	if err != nil {
		return nil, fmt.Errorf("fetch price series: %w", err)
	}

	snap, snapErr := c.Fetcher.FetchMarketSnapshot(ctx, c.Opts.TopN, c.Opts.Currency)
	if snapErr != nil {
		c.logger.Warn().Err(snapErr).Msg("market snapshot unavailable, altcoin season row will not render")
	}

	prices := series.Prices()
	ind := &model.OnChainIndicators{CurrentPrice: series.Last()}
	ind.MVRVZScore = calculator.CalculateMVRVZ(prices)
	ind.NUPL = calculator.CalculateNUPL(prices)
	ind.PuellMultiple = calculator.CalculatePuell(prices)
	ind.VDDMultiple = calculator.CalculateVDD(prices)
	ind.RealizedPrice, ind.RealizedPriceOK = calculator.CalculateRealizedPrice(prices)
	if !ind.RealizedPriceOK {
		c.logger.Warn().Int("samples", len(prices)).Msg("series too short for realized price")
	}
	ind.S2FRatio, ind.S2FModelPrice = calculator.CalculateS2F()
	if snapErr == nil {
		ind.AltSeasonIndex = calculator.CalculateAltSeason(snap, c.Opts.ReferenceSymbol)
	}

	rate := c.rate(ctx)
	if rate.Fallback {
		c.logger.Warn().Float64("rate", rate.Rate).Msg("report will use fallback exchange rate")
	}

	c.logger.Info().
		Int("samples", len(prices)).
		Float64("price", ind.CurrentPrice).
		Float64("mvrv_z", ind.MVRVZScore).
		Msg("refresh pass complete")

	return &Result{Indicators: ind, Series: series, Rate: rate, SnapshotErr: snapErr}, nil
}

func (c *Collector) rate(ctx context.Context) model.ExchangeRate {
	type rater interface {
		Rate(ctx context.Context, base, quote string) model.ExchangeRate
	}
	if r, ok := c.Fetcher.(rater); ok {
		return r.Rate(ctx, c.Opts.RateBase, c.Opts.RateQuote)
	}
	value, err := c.Fetcher.FetchExchangeRate(ctx, c.Opts.RateBase, c.Opts.RateQuote)
	if err != nil {
		return model.ExchangeRate{Base: c.Opts.RateBase, Quote: c.Opts.RateQuote, Rate: DefaultFallbackRate, Fallback: true, FetchedAt: time.Now()}
	}
	return model.ExchangeRate{Base: c.Opts.RateBase, Quote: c.Opts.RateQuote, Rate: value, FetchedAt: time.Now()}
}
