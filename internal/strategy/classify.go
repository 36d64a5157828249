package strategy

import "ChainSentinel/internal/model"

// Classify maps one indicator value to its qualitative signal using the
// centralized threshold table. A value exactly on a boundary falls into
// the upper band. Unknown indicators classify as unavailable.
func Classify(name model.Indicator, value float64) model.Signal {
	bands, ok := Thresholds[name]
	if !ok {
		return model.SignalUnavailable
	}
	for _, b := range bands {
		if value < b.Below {
			return b.Signal
		}
	}
	// Unreachable while every band list ends at +Inf, but NaN values
	// compare false against everything.
	return model.SignalUnavailable
}
