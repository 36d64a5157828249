package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *CoinGeckoFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCoinGeckoFetcher(Options{
		BaseURL:     srv.URL,
		RateBaseURL: srv.URL,
		APIKey:      "test-key",
		Timeout:     2 * time.Second,
	})
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, fe.Kind, err)
	}
}

func TestFetchPriceSeries_OK(t *testing.T) {
	var gotKey string
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-cg-demo-api-key")
		// Unsorted with one duplicate timestamp: ingest must sort and dedupe.
		fmt.Fprint(w, `{"prices":[[172800000,102],[86400000,101],[0,100],[86400000,111]]}`)
	})

	series, err := f.FetchPriceSeries(context.Background(), "bitcoin", 90, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("expected credential header, got %q", gotKey)
	}
	if len(series.Points) != 3 {
		t.Fatalf("expected 3 deduped points, got %d", len(series.Points))
	}
	for i := 1; i < len(series.Points); i++ {
		if !series.Points[i].Time.After(series.Points[i-1].Time) {
			t.Fatal("timestamps not strictly increasing")
		}
	}
	// Duplicate at 86400000 keeps the later sample.
	if series.Points[1].Price != 111 {
		t.Errorf("expected later duplicate to win, got %v", series.Points[1].Price)
	}
	if series.Last() != 102 {
		t.Errorf("expected last price 102, got %v", series.Last())
	}
}

func TestFetchPriceSeries_ErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, Unauthorized},
		{"rate limited", http.StatusTooManyRequests, `{"error":"quota"}`, RateLimited},
		{"server error", http.StatusInternalServerError, "boom", NetworkError},
		{"bad shape", http.StatusOK, `{"prices":"not a list"}`, MalformedResponse},
		{"empty payload", http.StatusOK, `{"prices":[]}`, MalformedResponse},
		{"short sample", http.StatusOK, `{"prices":[[86400000]]}`, MalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := f.FetchPriceSeries(context.Background(), "bitcoin", 90, "usd")
			wantKind(t, err, tt.want)
		})
	}
}

func TestFetchPriceSeries_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, `{"prices":[[0,100]]}`)
	}))
	t.Cleanup(srv.Close)

	f := NewCoinGeckoFetcher(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := f.FetchPriceSeries(context.Background(), "bitcoin", 90, "usd")
	wantKind(t, err, NetworkError)
}

func TestFetchMarketSnapshot_OK(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("price_change_percentage"); got != "30d" {
			t.Errorf("expected 30d change window, got %q", got)
		}
		fmt.Fprint(w, `[
			{"symbol":"btc","price_change_percentage_30d_in_currency":10.5},
			{"symbol":"eth","price_change_percentage_30d_in_currency":12.1},
			{"symbol":"new","price_change_percentage_30d_in_currency":null}
		]`)
	})

	snap, err := f.FetchMarketSnapshot(context.Background(), 20, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Assets) != 2 {
		t.Fatalf("expected 2 assets (null change skipped), got %d", len(snap.Assets))
	}
	if snap.Assets[0].Symbol != "btc" || snap.Assets[0].Change30d != 10.5 {
		t.Errorf("unexpected first asset: %+v", snap.Assets[0])
	}
}

func TestFetchMarketSnapshot_Empty(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	_, err := f.FetchMarketSnapshot(context.Background(), 20, "usd")
	wantKind(t, err, MalformedResponse)
}

func TestFetchExchangeRate(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("expected base USD, got %q", got)
		}
		fmt.Fprint(w, `{"base":"USD","rates":{"BRL":5.43,"EUR":0.92}}`)
	})

	rate, err := f.FetchExchangeRate(context.Background(), "USD", "BRL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 5.43 {
		t.Errorf("expected 5.43, got %v", rate)
	}

	_, err = f.FetchExchangeRate(context.Background(), "USD", "JPY")
	wantKind(t, err, MalformedResponse)
}
