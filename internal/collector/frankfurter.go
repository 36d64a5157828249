package collector

import (
	"context"
	"encoding/json"
	"fmt"
)

// rateResponse is the response shape of the Frankfurter latest endpoint.
type rateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchExchangeRate fetches the conversion rate from base to quote from
// the currency API. Failures carry the same classification as the
// market endpoints; the fallback policy lives in CachedFetcher, not
// here.
func (f *CoinGeckoFetcher) FetchExchangeRate(ctx context.Context, base, quote string) (float64, error) {
	const resource = "exchange rate"
	url := fmt.Sprintf("%s/latest?base=%s", f.RateBaseURL, base)
	f.logger.Debug().Str("base", base).Str("quote", quote).Msg("fetching exchange rate")

	body, ferr := f.get(ctx, resource, url)
	if ferr != nil {
		return 0, ferr
	}

	var payload rateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fetchErr(MalformedResponse, resource, err)
	}
	rate, ok := payload.Rates[quote]
	if !ok {
		return 0, fetchErr(MalformedResponse, resource, fmt.Errorf("no %s rate in payload", quote))
	}
	return rate, nil
}
