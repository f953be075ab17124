package enrich

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// SurvivalFunction returns the upper tail P(X >= k) of a hypergeometric
// distribution: the probability of drawing at least k successes in
// sampled draws without replacement from a population of universe items
// containing inTerm successes.
//
// The tail is summed in log space to stay stable for large populations.
func SurvivalFunction(k, universe, inTerm, sampled int) float64 {
	lo := sampled + inTerm - universe
	if lo < 0 {
		lo = 0
	}
	hi := sampled
	if inTerm < hi {
		hi = inTerm
	}

	// Impossible k wins over the lower support bound, so a contradictory
	// sample larger than the universe still yields 0 rather than 1.
	if k > hi {
		return 0
	}
	if k <= lo {
		return 1
	}

	logDenom := combin.LogGeneralizedBinomial(float64(universe), float64(sampled))
	sum := 0.0
	for i := k; i <= hi; i++ {
		logP := combin.LogGeneralizedBinomial(float64(inTerm), float64(i)) +
			combin.LogGeneralizedBinomial(float64(universe-inTerm), float64(sampled-i)) -
			logDenom
		sum += math.Exp(logP)
	}
	if sum > 1 {
		return 1
	}
	return sum
}
