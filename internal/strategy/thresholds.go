package strategy

import (
	"math"

	"ChainSentinel/internal/model"
)

// Band maps values up to (and excluding) Below to a signal. Bands for
// one indicator are ordered ascending; the last band uses +Inf.
type Band struct {
	Below  float64
	Signal model.Signal
}

// Thresholds is the single source of classification boundaries for
// every indicator. Changing a boundary is a config change here, never a
// per-call-site literal.
var Thresholds = map[model.Indicator][]Band{
	model.IndicatorAltSeason: {
		{25, model.SignalBTCSeason},
		{75, model.SignalNeutral},
		{math.Inf(1), model.SignalAltSeason},
	},
	model.IndicatorMVRVZ: {
		{1, model.SignalAccumulate},
		{3, model.SignalNeutral},
		{math.Inf(1), model.SignalOvervalued},
	},
	model.IndicatorNUPL: {
		{0, model.SignalCapitulation},
		{0.5, model.SignalHold},
		{math.Inf(1), model.SignalEuphoria},
	},
	model.IndicatorPuell: {
		{0.5, model.SignalAccumulate},
		{4, model.SignalNeutral},
		{math.Inf(1), model.SignalOverheated},
	},
	// Classified on the premium of price over the realized proxy.
	model.IndicatorRealized: {
		{0, model.SignalBelowRealized},
		{math.Inf(1), model.SignalAboveRealized},
	},
	// Classified on price over the model price.
	model.IndicatorS2F: {
		{1, model.SignalBelowModel},
		{math.Inf(1), model.SignalAboveModel},
	},
	// Classified on the current price in the reference currency.
	model.IndicatorRainbow: {
		{10_000, model.SignalDeepAccumulation},
		{25_000, model.SignalRainbowAccum},
		{50_000, model.SignalHodl},
		{75_000, model.SignalDistribution},
		{100_000, model.SignalRainbowEuphoria},
		{math.Inf(1), model.SignalMaxEuphoria},
	},
	model.IndicatorVDD: {
		{0.75, model.SignalAccumulate},
		{2.5, model.SignalNeutral},
		{math.Inf(1), model.SignalDistribute},
	},
}
