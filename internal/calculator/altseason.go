package calculator

import (
	"strings"

	"ChainSentinel/internal/model"
)

// CalculateAltSeason computes the Altcoin Season Index: the share of
// non-reference assets whose 30-day change beats the reference asset's,
// scaled to [0, 100]. Returns 50 when the snapshot is empty, the
// reference asset is missing, or there are no other assets.
func CalculateAltSeason(snap *model.MarketSnapshot, referenceSymbol string) float64 {
	if snap == nil || len(snap.Assets) == 0 {
		return 50
	}

	var refChange float64
	refFound := false
	alts := make([]model.AssetChange, 0, len(snap.Assets))
	for _, a := range snap.Assets {
		if strings.EqualFold(a.Symbol, referenceSymbol) {
			if !refFound {
				refChange = a.Change30d
				refFound = true
			}
			continue
		}
		alts = append(alts, a)
	}
	if !refFound || len(alts) == 0 {
		return 50
	}

	winners := 0
	for _, a := range alts {
		if a.Change30d > refChange {
			winners++
		}
	}

	index := float64(winners) / float64(len(alts)) * 100
	if index > 100 {
		index = 100
	}
	if index < 0 {
		index = 0
	}
	return index
}
