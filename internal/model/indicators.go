package model

// OnChainIndicators holds all computed on-chain proxy metrics.
// Every field except RealizedPrice has a defined fallback value, so a
// partially filled struct still renders a complete report.
type OnChainIndicators struct {
	CurrentPrice    float64
	AltSeasonIndex  float64 // 0 ~ 100
	MVRVZScore      float64
	NUPL            float64
	PuellMultiple   float64
	RealizedPrice   float64
	RealizedPriceOK bool // false when the series is too short
	S2FRatio        float64
	S2FModelPrice   float64
	VDDMultiple     float64
}
