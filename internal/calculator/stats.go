package calculator

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values.
// Population (not sample) deviation is used for every rolling statistic
// in this package.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// RollingMean returns the trailing mean of the last `window` values
// ending at index i. The caller must ensure i >= window-1.
func RollingMean(values []float64, window, i int) float64 {
	sum := 0.0
	for j := i - window + 1; j <= i; j++ {
		sum += values[j]
	}
	return sum / float64(window)
}

// TrailingMean returns the rolling mean over the last `window` values.
func TrailingMean(values []float64, window int) float64 {
	return RollingMean(values, window, len(values)-1)
}
