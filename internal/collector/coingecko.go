package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ChainSentinel/internal/model"
	"ChainSentinel/internal/platform/httpx"
)

const (
	defaultBaseURL     = "https://api.coingecko.com/api/v3"
	defaultRateBaseURL = "https://api.frankfurter.dev/v1"
)

// CoinGeckoFetcher implements Fetcher against the CoinGecko market API
// and the Frankfurter currency API.
type CoinGeckoFetcher struct {
	BaseURL     string
	RateBaseURL string
	APIKey      string
	client      *httpx.Client
	logger      zerolog.Logger
}

// Options holds options for creating a new CoinGeckoFetcher.
type Options struct {
	BaseURL        string
	RateBaseURL    string
	APIKey         string
	Timeout        time.Duration
	RequestsPerSec int
	ProxyURL       string
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(opts Options) *CoinGeckoFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.RateBaseURL == "" {
		opts.RateBaseURL = defaultRateBaseURL
	}
	return &CoinGeckoFetcher{
		BaseURL:     opts.BaseURL,
		RateBaseURL: opts.RateBaseURL,
		APIKey:      opts.APIKey,
		client: httpx.NewClient(httpx.ClientOptions{
			Timeout:        opts.Timeout,
			RequestsPerSec: opts.RequestsPerSec,
			ProxyURL:       opts.ProxyURL,
		}),
		logger: log.With().Str("component", "coingecko").Logger(),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response shape of /coins/{id}/market_chart.
type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

// marketRecord is one row of /coins/markets.
type marketRecord struct {
	Symbol    string   `json:"symbol"`
	Change30d *float64 `json:"price_change_percentage_30d_in_currency"`
}

func (f *CoinGeckoFetcher) get(ctx context.Context, resource, url string) ([]byte, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchErr(NetworkError, resource, err)
	}
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		// Timeouts and connection failures land here.
		return nil, fetchErr(NetworkError, resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fetchErr(NetworkError, resource, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusErr(resource, resp.StatusCode, body)
	}
	return body, nil
}

// FetchPriceSeries fetches the daily close history from the
// market_chart endpoint. Samples are sorted ascending and duplicate
// timestamps dropped, so downstream rolling windows see a strictly
// increasing series.
func (f *CoinGeckoFetcher) FetchPriceSeries(ctx context.Context, asset string, days int, currency string) (*model.PriceSeries, error) {
	const resource = "price series"
	url := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d&interval=daily",
		f.BaseURL, asset, currency, days)
	f.logger.Debug().Str("asset", asset).Int("days", days).Msg("fetching price series")

	body, ferr := f.get(ctx, resource, url)
	if ferr != nil {
		return nil, ferr
	}

	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fetchErr(MalformedResponse, resource, err)
	}
	if len(chart.Prices) == 0 {
		return nil, fetchErr(MalformedResponse, resource, fmt.Errorf("no price samples in payload"))
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for _, pair := range chart.Prices {
		if len(pair) < 2 {
			return nil, fetchErr(MalformedResponse, resource, fmt.Errorf("price sample has %d fields", len(pair)))
		}
		points = append(points, model.PricePoint{
			Time:  time.UnixMilli(int64(pair[0])).UTC(),
			Price: pair[1],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	// Drop duplicate timestamps, keeping the later sample.
	deduped := points[:0]
	for _, p := range points {
		if len(deduped) > 0 && !p.Time.After(deduped[len(deduped)-1].Time) {
			deduped[len(deduped)-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	f.logger.Debug().Int("samples", len(deduped)).Msg("fetched price series")
	return &model.PriceSeries{
		Asset:     asset,
		Currency:  currency,
		Points:    deduped,
		FetchedAt: time.Now(),
	}, nil
}

// FetchMarketSnapshot fetches the top-N assets by market cap with their
// 30-day percent change from the coins/markets endpoint. Assets missing
// the change field are skipped.
func (f *CoinGeckoFetcher) FetchMarketSnapshot(ctx context.Context, topN int, currency string) (*model.MarketSnapshot, error) {
	const resource = "market snapshot"
	url := fmt.Sprintf("%s/coins/markets?vs_currency=%s&order=market_cap_desc&per_page=%d&page=1&price_change_percentage=30d",
		f.BaseURL, currency, topN)
	f.logger.Debug().Int("top_n", topN).Msg("fetching market snapshot")

	body, ferr := f.get(ctx, resource, url)
	if ferr != nil {
		return nil, ferr
	}

	var records []marketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fetchErr(MalformedResponse, resource, err)
	}
	if len(records) == 0 {
		return nil, fetchErr(MalformedResponse, resource, fmt.Errorf("no assets in payload"))
	}

	assets := make([]model.AssetChange, 0, len(records))
	for _, r := range records {
		if r.Change30d == nil {
			continue
		}
		assets = append(assets, model.AssetChange{Symbol: r.Symbol, Change30d: *r.Change30d})
	}

	f.logger.Debug().Int("assets", len(assets)).Msg("fetched market snapshot")
	return &model.MarketSnapshot{Assets: assets, FetchedAt: time.Now()}, nil
}
