package calculator

import "math"

// Bitcoin supply schedule constants: circulating stock and annual
// issuance (post-2024-halving, 450 BTC/day).
const (
	S2FStock = 19_750_000.0
	S2FFlow  = 164_250.0
)

// Power-law model parameters.
const (
	s2fModelCoeff    = 0.4
	s2fModelExponent = 3.3
)

// CalculateS2F returns the stock-to-flow ratio and the power-law model
// price derived from it. Always computable; no price data needed.
func CalculateS2F() (ratio, modelPrice float64) {
	ratio = S2FStock / S2FFlow
	modelPrice = s2fModelCoeff * math.Pow(ratio, s2fModelExponent)
	return ratio, modelPrice
}
