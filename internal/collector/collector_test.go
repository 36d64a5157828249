package collector

import (
	"context"
	"errors"
	"testing"

	"ChainSentinel/internal/model"
)

func testOpts() CollectorOptions {
	return CollectorOptions{
		Asset:           "bitcoin",
		ReferenceSymbol: "btc",
		LookbackDays:    90,
		TopN:            20,
		Currency:        "usd",
		RateBase:        "USD",
		RateQuote:       "BRL",
	}
}

func constantMockSeries(price float64, n int) *model.PriceSeries {
	s := GenerateMockSeries("bitcoin", "usd", price, n)
	for i := range s.Points {
		s.Points[i].Price = price
	}
	return s
}

func TestCollect_EndToEnd_ConstantSeries(t *testing.T) {
	// 90 constant samples: MVRV Z and NUPL must both resolve to 0
	// through their degenerate-input fallbacks.
	mock := &MockFetcher{
		Series: constantMockSeries(100, 90),
		Snapshot: &model.MarketSnapshot{Assets: []model.AssetChange{
			{Symbol: "btc", Change30d: 10},
			{Symbol: "eth", Change30d: 12},
			{Symbol: "sol", Change30d: 25},
			{Symbol: "xrp", Change30d: 3},
			{Symbol: "ada", Change30d: -8},
		}},
		Rate: 5.5,
	}
	col := NewCollector(mock, testOpts())

	res, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ind := res.Indicators
	if ind.MVRVZScore != 0 {
		t.Errorf("expected MVRV Z 0 for constant series, got %v", ind.MVRVZScore)
	}
	if ind.NUPL != 0 {
		t.Errorf("expected NUPL 0 for constant series, got %v", ind.NUPL)
	}
	if ind.AltSeasonIndex != 50.0 {
		t.Errorf("expected altcoin season 50.0, got %v", ind.AltSeasonIndex)
	}
	if !ind.RealizedPriceOK || ind.RealizedPrice != 100 {
		t.Errorf("expected realized price 100, got %v (ok=%v)", ind.RealizedPrice, ind.RealizedPriceOK)
	}
	if ind.PuellMultiple != 1.0 {
		t.Errorf("expected Puell fallback 1.0 for 90 samples, got %v", ind.PuellMultiple)
	}
	if res.Rate.Rate != 5.5 || res.Rate.Fallback {
		t.Errorf("unexpected rate: %+v", res.Rate)
	}
}

func TestCollect_SeriesFailureAborts(t *testing.T) {
	mock := &MockFetcher{SeriesErr: fetchErr(Unauthorized, "price series", nil)}
	col := NewCollector(mock, testOpts())

	_, err := col.Collect(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != Unauthorized {
		t.Fatalf("expected wrapped Unauthorized fetch error, got %v", err)
	}
}

func TestCollect_SnapshotFailureIsPartial(t *testing.T) {
	mock := &MockFetcher{
		Series:      constantMockSeries(100, 90),
		SnapshotErr: fetchErr(RateLimited, "market snapshot", nil),
		Rate:        5.0,
	}
	col := NewCollector(mock, testOpts())

	res, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("snapshot failure must not abort the pass: %v", err)
	}
	if res.SnapshotErr == nil {
		t.Fatal("expected snapshot error to be carried in the result")
	}
	if res.Indicators.NUPL != 0 {
		t.Error("price-based indicators must still compute")
	}
}

func TestCollect_RateFailureFallsBack(t *testing.T) {
	mock := &MockFetcher{
		Series:  constantMockSeries(100, 90),
		RateErr: fetchErr(NetworkError, "exchange rate", nil),
	}
	col := NewCollector(mock, testOpts())

	res, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rate.Rate != DefaultFallbackRate || !res.Rate.Fallback {
		t.Errorf("expected flagged fallback rate, got %+v", res.Rate)
	}
}
