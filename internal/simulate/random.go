package simulate

import (
	"math/rand"
)

// Amount draws a value uniformly from the band
// [base*(1-variationPct/100), base*(1+variationPct/100)].
// Draws are independent and unseeded; runs are not reproducible.
func Amount(base, variationPct float64) float64 {
	variation := base * (variationPct / 100)
	min := base - variation
	max := base + variation
	return rand.Float64()*(max-min) + min
}

// chance reports true with probability p.
func chance(p float64) bool {
	return rand.Float64() < p
}

// intBetween draws an integer uniformly from [min, max].
func intBetween(min, max int) int {
	return rand.Intn(max-min+1) + min
}

// pick returns a random element of choices.
func pick(choices []string) string {
	return choices[rand.Intn(len(choices))]
}
