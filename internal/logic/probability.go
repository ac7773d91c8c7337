package logic

import "math"

// OutcomeProbabilities is the 3-way distribution over the fixture result.
type OutcomeProbabilities struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Base priors before the weighted criteria shift them.
const (
	baseHomeProb = 0.35
	baseDrawProb = 0.25
	baseAwayProb = 0.40
)

// Clamp bounds applied after normalization.
const (
	minOutcomeProb = 0.05
	maxWinProb     = 0.85
	maxDrawProb    = 0.50
)

// PredictProbabilities runs the weighted-heuristic aggregation over the
// criteria vector. Pure and deterministic: criteria are visited in the
// fixed key order.
//
// The triple is normalized to sum to 1 and then clamped. Clamping is NOT
// followed by a second normalization: this keeps exact parity with the
// reference model, at the cost of a documented drift from the sum-to-1
// invariant when a bound engages (an all-neutral vector hits the draw
// ceiling and sums to ~0.948).
func PredictProbabilities(cv CriteriaVector, weights WeightTable) OutcomeProbabilities {
	var homeScore, awayScore, drawFactor float64

	for _, key := range CriteriaKeys {
		v := cv[key].Value
		w := weights.Weight(key)

		if v > 0.5 {
			homeScore += (v - 0.5) * w * 2
		} else {
			awayScore += (0.5 - v) * w * 2
		}

		// Evenly matched criteria push probability mass toward the draw.
		evenness := 1 - math.Abs(v-0.5)*2
		drawFactor += evenness * w
	}

	home := baseHomeProb + homeScore
	draw := baseDrawProb + drawFactor*0.5
	away := baseAwayProb + awayScore

	total := home + draw + away
	home /= total
	draw /= total
	away /= total

	return OutcomeProbabilities{
		Home: clamp(home, minOutcomeProb, maxWinProb),
		Draw: clamp(draw, minOutcomeProb, maxDrawProb),
		Away: clamp(away, minOutcomeProb, maxWinProb),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
