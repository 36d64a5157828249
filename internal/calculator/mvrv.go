package calculator

// mvrvWindow is the rolling window of the realized-value proxy.
const mvrvWindow = 90

// CalculateMVRVZ computes the MVRV Z-Score from daily prices.
// The market-to-realized ratio is price over its 90-day rolling mean;
// the Z-Score is how many standard deviations the latest ratio sits
// from the ratio's historical mean.
// Returns 2.0 if fewer than 90 samples, 0 if the ratio never varies.
func CalculateMVRVZ(prices []float64) float64 {
	if len(prices) < mvrvWindow {
		return 2.0
	}

	ratios := make([]float64, 0, len(prices)-mvrvWindow+1)
	for i := mvrvWindow - 1; i < len(prices); i++ {
		realized := RollingMean(prices, mvrvWindow, i)
		if realized == 0 {
			continue
		}
		ratios = append(ratios, prices[i]/realized)
	}
	if len(ratios) == 0 {
		return 0
	}

	sd := StdDev(ratios)
	if sd == 0 {
		return 0
	}
	last := ratios[len(ratios)-1]
	return (last - Mean(ratios)) / sd
}

// CalculateRealizedPrice returns the 90-day realized-value proxy (the
// trailing rolling mean of price). ok is false when the series is too
// short; callers must handle the absence.
func CalculateRealizedPrice(prices []float64) (realized float64, ok bool) {
	if len(prices) < mvrvWindow {
		return 0, false
	}
	return TrailingMean(prices, mvrvWindow), true
}
