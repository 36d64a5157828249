package calculator

// puellWindow is one trading year of daily samples.
const puellWindow = 365

// vddScale converts the Puell Multiple into the VDD proxy.
const vddScale = 0.8

// CalculatePuell computes the Puell Multiple proxy: current price over
// its trailing-year average. Returns 1.0 if fewer than 365 samples or
// the yearly average is 0.
func CalculatePuell(prices []float64) float64 {
	if len(prices) < puellWindow {
		return 1.0
	}
	yearlyAvg := TrailingMean(prices, puellWindow)
	if yearlyAvg == 0 {
		return 1.0
	}
	return prices[len(prices)-1] / yearlyAvg
}

// CalculateVDD computes the Value-Days-Destroyed proxy as a fixed
// scaling of the Puell Multiple. It inherits Puell's fallback.
func CalculateVDD(prices []float64) float64 {
	return CalculatePuell(prices) * vddScale
}
