// Package report joins indicator values and their classifications into
// the fixed-order signal table consumed by the presentation layer.
package report

import (
	"time"

	"ChainSentinel/internal/collector"
	"ChainSentinel/internal/model"
	"ChainSentinel/internal/strategy"
)

// Assemble builds the signal table from one refresh pass. Rows follow
// model.ReportOrder. A row whose metric could not be computed is kept
// with Available=false so the rest of the table still renders.
func Assemble(res *collector.Result, asset, currency string) *model.Report {
	ind := res.Indicators
	rows := make([]model.IndicatorResult, 0, len(model.ReportOrder))

	for _, name := range model.ReportOrder {
		rows = append(rows, buildRow(name, ind, res.SnapshotErr != nil))
	}

	return &model.Report{
		GeneratedAt:  time.Now(),
		Asset:        asset,
		Currency:     currency,
		Rate:         res.Rate.Rate,
		RateCurrency: res.Rate.Quote,
		RateFallback: res.Rate.Fallback,
		Rows:         rows,
	}
}

func buildRow(name model.Indicator, ind *model.OnChainIndicators, snapshotMissing bool) model.IndicatorResult {
	row := model.IndicatorResult{Name: name, Available: true}

	switch name {
	case model.IndicatorAltSeason:
		if snapshotMissing {
			return unavailable(name)
		}
		row.Value = ind.AltSeasonIndex
		row.Signal = strategy.Classify(name, row.Value)
	case model.IndicatorMVRVZ:
		row.Value = ind.MVRVZScore
		row.Signal = strategy.Classify(name, row.Value)
	case model.IndicatorNUPL:
		row.Value = ind.NUPL
		row.Signal = strategy.Classify(name, row.Value)
	case model.IndicatorPuell:
		row.Value = ind.PuellMultiple
		row.Signal = strategy.Classify(name, row.Value)
	case model.IndicatorRealized:
		if !ind.RealizedPriceOK {
			return unavailable(name)
		}
		row.Value = ind.RealizedPrice
		premium := 0.0
		if ind.RealizedPrice != 0 {
			premium = ind.CurrentPrice/ind.RealizedPrice - 1
		}
		row.Secondary = ptr(premium)
		row.Signal = strategy.Classify(name, premium)
	case model.IndicatorS2F:
		row.Value = ind.S2FRatio
		row.Secondary = ptr(ind.S2FModelPrice)
		deviation := 0.0
		if ind.S2FModelPrice != 0 {
			deviation = ind.CurrentPrice / ind.S2FModelPrice
		}
		row.Signal = strategy.Classify(name, deviation)
	case model.IndicatorRainbow:
		row.Value = ind.CurrentPrice
		row.Signal = strategy.Classify(name, ind.CurrentPrice)
	case model.IndicatorVDD:
		row.Value = ind.VDDMultiple
		row.Signal = strategy.Classify(name, row.Value)
	default:
		return unavailable(name)
	}

	return row
}

func unavailable(name model.Indicator) model.IndicatorResult {
	return model.IndicatorResult{Name: name, Signal: model.SignalUnavailable}
}

func ptr(v float64) *float64 { return &v }
