package model

import "time"

// Signal is the qualitative classification of one indicator value.
type Signal string

const (
	SignalAccumulate   Signal = "ACCUMULATE"
	SignalNeutral      Signal = "NEUTRAL"
	SignalOvervalued   Signal = "OVERVALUED"
	SignalOverheated   Signal = "OVERHEATED"
	SignalHold         Signal = "HOLD"
	SignalEuphoria     Signal = "EUPHORIA"
	SignalCapitulation Signal = "CAPITULATION"
	SignalDistribute   Signal = "DISTRIBUTE"

	SignalBTCSeason Signal = "BTC SEASON"
	SignalAltSeason Signal = "ALTSEASON"

	SignalBelowRealized Signal = "BELOW REALIZED"
	SignalAboveRealized Signal = "ABOVE REALIZED"
	SignalBelowModel    Signal = "BELOW MODEL"
	SignalAboveModel    Signal = "ABOVE MODEL"

	SignalDeepAccumulation Signal = "DEEP ACCUMULATION"
	SignalRainbowAccum     Signal = "ACCUMULATION"
	SignalHodl             Signal = "HODL"
	SignalDistribution     Signal = "DISTRIBUTION"
	SignalRainbowEuphoria  Signal = "EUPHORIA ZONE"
	SignalMaxEuphoria      Signal = "MAXIMUM EUPHORIA"

	SignalUnavailable Signal = "UNAVAILABLE"
)

// Indicator identifies one row of the signal report.
type Indicator string

const (
	IndicatorAltSeason Indicator = "Altcoin Season"
	IndicatorMVRVZ     Indicator = "MVRV Z-Score"
	IndicatorNUPL      Indicator = "NUPL"
	IndicatorPuell     Indicator = "Puell Multiple"
	IndicatorRealized  Indicator = "Realized Price"
	IndicatorS2F       Indicator = "Stock-to-Flow"
	IndicatorRainbow   Indicator = "Rainbow Zone"
	IndicatorVDD       Indicator = "VDD Multiple"
)

// ReportOrder is the fixed presentation order of the signal table.
var ReportOrder = []Indicator{
	IndicatorAltSeason,
	IndicatorMVRVZ,
	IndicatorNUPL,
	IndicatorPuell,
	IndicatorRealized,
	IndicatorS2F,
	IndicatorRainbow,
	IndicatorVDD,
}

// IndicatorResult is one computed row: metric value plus its signal.
// Secondary carries an optional companion value (e.g. the S2F model
// price). Available is false when the metric could not be computed.
type IndicatorResult struct {
	Name      Indicator
	Value     float64
	Signal    Signal
	Secondary *float64
	Available bool
}

// Report is the assembled signal table for one refresh pass.
type Report struct {
	GeneratedAt  time.Time
	Asset        string
	Currency     string
	Rate         float64
	RateCurrency string
	RateFallback bool
	Rows         []IndicatorResult
}
