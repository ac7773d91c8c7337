package logic

import (
	"math"
	"sort"

	"github.com/matchiq/predictions-api/internal/models"
)

// curatedFeature is one entry of the fixed interpretable subset the
// importance ranker reports on.
type curatedFeature struct {
	key         string
	description string
}

// curatedFeatures is the declared order; it doubles as the tie-break order
// for equal absolute impact.
var curatedFeatures = []curatedFeature{
	{CritHomeTeamForm, "Recent home team performance and momentum"},
	{CritAwayTeamForm, "Recent away team performance and consistency"},
	{CritKeyPlayerAvailability, "Availability of star players and key personnel"},
	{CritHeadToHeadRecord, "Historical matchup results and patterns"},
	{CritGoalScoringForm, "Current attacking efficiency and goal-scoring ability"},
	{CritDefensiveForm, "Defensive solidity and clean sheet record"},
	{CritHomeAdvantage, "Home ground advantage and crowd support"},
	{CritInjuryImpact, "Impact of injuries on team strength"},
	{CritTacticalSetup, "Tactical approach and formation effectiveness"},
	{CritTeamMorale, "Team confidence and psychological state"},
}

// RankFeatureImportance maps each curated criterion to a signed impact in
// [-1, 1] and sorts by descending absolute impact. The sort is stable, so
// ties keep the curated declaration order.
func RankFeatureImportance(cv CriteriaVector) []models.FeatureImportance {
	ranked := make([]models.FeatureImportance, 0, len(curatedFeatures))
	for _, f := range curatedFeatures {
		impact := (cv[f.key].Value - 0.5) * 2
		ranked = append(ranked, models.FeatureImportance{
			Feature:     f.key,
			Impact:      math.Round(impact*100) / 100,
			Description: f.description,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Impact) > math.Abs(ranked[j].Impact)
	})
	return ranked
}
