package calculator

// nuplWindow is the realized-proxy window for NUPL.
const nuplWindow = 30

// CalculateNUPL computes the net unrealized profit/loss proxy: the
// fractional gap between the current price and its 30-day realized
// proxy. Returns 0 if fewer than 30 samples or the last price is 0.
func CalculateNUPL(prices []float64) float64 {
	if len(prices) < nuplWindow {
		return 0
	}
	current := prices[len(prices)-1]
	if current == 0 {
		return 0
	}
	realized := TrailingMean(prices, nuplWindow)
	return (current - realized) / current
}
