package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ChainSentinel/internal/model"
)

// DefaultFallbackRate is substituted when the currency API is
// unreachable and no previously fetched rate exists.
const DefaultFallbackRate = 5.0

// CachedFetcher decorates a Fetcher with a per-key TTL cache. Identical
// requests within the TTL window return the stored value without a
// network round trip; expired entries trigger exactly one new call.
type CachedFetcher struct {
	inner        Fetcher
	cache        *Cache
	fallbackRate float64
	logger       zerolog.Logger
}

// NewCachedFetcher wraps inner with a TTL cache. now may be nil.
func NewCachedFetcher(inner Fetcher, ttl time.Duration, now func() time.Time) *CachedFetcher {
	return &CachedFetcher{
		inner:        inner,
		cache:        NewCache(ttl, now),
		fallbackRate: DefaultFallbackRate,
		logger:       log.With().Str("component", "cached_fetcher").Logger(),
	}
}

func (c *CachedFetcher) Name() string { return c.inner.Name() + "+cache" }

// FetchPriceSeries returns the cached series for (asset, days,
// currency) when fresh, otherwise fetches and stores it.
func (c *CachedFetcher) FetchPriceSeries(ctx context.Context, asset string, days int, currency string) (*model.PriceSeries, error) {
	key := fmt.Sprintf("series:%s:%d:%s", asset, days, currency)
	if v, ok := c.cache.Get(key); ok {
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return v.(*model.PriceSeries), nil
	}
	series, err := c.inner.FetchPriceSeries(ctx, asset, days, currency)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, series)
	return series, nil
}

// FetchMarketSnapshot returns the cached snapshot for (topN, currency)
// when fresh, otherwise fetches and stores it.
func (c *CachedFetcher) FetchMarketSnapshot(ctx context.Context, topN int, currency string) (*model.MarketSnapshot, error) {
	key := fmt.Sprintf("snapshot:%d:%s", topN, currency)
	if v, ok := c.cache.Get(key); ok {
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return v.(*model.MarketSnapshot), nil
	}
	snap, err := c.inner.FetchMarketSnapshot(ctx, topN, currency)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, snap)
	return snap, nil
}

// FetchExchangeRate never fails. Within the TTL window the cached rate
// is returned. On a fetch failure a stale cached rate is reused first
// (it is still a real observed rate); only when none exists is the
// hardcoded default substituted, and that substitution is flagged so
// the presentation layer can warn the user.
func (c *CachedFetcher) FetchExchangeRate(ctx context.Context, base, quote string) (float64, error) {
	rate := c.Rate(ctx, base, quote)
	return rate.Rate, nil
}

// Rate is the flag-carrying variant of FetchExchangeRate.
func (c *CachedFetcher) Rate(ctx context.Context, base, quote string) model.ExchangeRate {
	key := fmt.Sprintf("rate:%s:%s", base, quote)
	if v, ok := c.cache.Get(key); ok {
		return v.(model.ExchangeRate)
	}

	value, err := c.inner.FetchExchangeRate(ctx, base, quote)
	if err == nil {
		rate := model.ExchangeRate{Base: base, Quote: quote, Rate: value, FetchedAt: time.Now()}
		c.cache.Set(key, rate)
		return rate
	}
	c.logger.Warn().Err(err).Msg("exchange rate fetch failed")

	if v, age, ok := c.cache.GetStale(key); ok {
		c.logger.Warn().Dur("age", age).Msg("reusing stale exchange rate")
		return v.(model.ExchangeRate)
	}

	c.logger.Warn().Float64("rate", c.fallbackRate).Msg("using hardcoded fallback rate")
	return model.ExchangeRate{
		Base:      base,
		Quote:     quote,
		Rate:      c.fallbackRate,
		Fallback:  true,
		FetchedAt: time.Now(),
	}
}

// PurgeExpired drops expired cache entries.
func (c *CachedFetcher) PurgeExpired() { c.cache.Purge() }
