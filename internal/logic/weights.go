package logic

// WeightTable assigns per-criterion weights to the probability model.
// Keys absent from the table fall back to DefaultWeight.
type WeightTable map[string]float64

// DefaultWeight is applied to every criterion without an explicit entry.
const DefaultWeight = 0.01

// DefaultWeights is the production weight table. The 15 explicit entries
// sum to 1.00; weights are data, not code branches, so they can be tuned
// and tested independently of the aggregation algorithm.
var DefaultWeights = WeightTable{
	CritHomeTeamForm:          0.12,
	CritAwayTeamForm:          0.11,
	CritHomeAdvantage:         0.08,
	CritHeadToHeadRecord:      0.07,
	CritGoalScoringForm:       0.09,
	CritDefensiveForm:         0.08,
	CritInjuryImpact:          0.06,
	CritKeyPlayerAvailability: 0.07,
	CritTeamMorale:            0.05,
	CritWeatherConditions:     0.03,
	CritBettingOdds:           0.06,
	CritRecentTransfers:       0.04,
	CritTacticalSetup:         0.05,
	CritMotivationLevel:       0.04,
	CritPhysicalCondition:     0.05,
}

// Weight returns the table entry for key, or DefaultWeight.
func (t WeightTable) Weight(key string) float64 {
	if w, ok := t[key]; ok {
		return w
	}
	return DefaultWeight
}
