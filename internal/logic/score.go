package logic

import "math"

// Side selects which team a scoreline is predicted for.
type Side int

const (
	HomeSide Side = iota
	AwaySide
)

// baseExpectedGoals is the league-neutral goals expectation per side.
const baseExpectedGoals = 1.2

// PredictScore estimates a non-negative integer scoreline for one side.
// Pure. The scoring-form criterion reads home-biased, so it is mirrored
// for the away side; opponent defensive weakness is the complement of the
// defensive-form criterion.
func PredictScore(cv CriteriaVector, side Side) int {
	expected := baseExpectedGoals

	attackingForm := cv[CritGoalScoringForm].Value
	opponentWeakness := 1 - cv[CritDefensiveForm].Value
	if side == AwaySide {
		attackingForm = 1 - attackingForm
		opponentWeakness = cv[CritDefensiveForm].Value
	}

	expected += (attackingForm - 0.5) * 2
	expected += (opponentWeakness - 0.5) * 1.5

	if side == HomeSide {
		expected += cv[CritHomeAdvantage].Value * 0.3
	}

	// Adverse weather suppresses scoring across the board.
	if cv[CritWeatherConditions].Value < 0.3 {
		expected *= 0.8
	}

	goals := int(math.Round(expected))
	if goals < 0 {
		goals = 0
	}
	return goals
}
