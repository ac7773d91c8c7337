package logic

// Criterion is one named heuristic signal in [0,1]. 0.5 is the neutral
// prior substituted when the upstream source is unavailable. Informative
// distinguishes a value derived from real data from the neutral default,
// so the confidence estimator does not mistake "no signal" for consensus.
type Criterion struct {
	Value       float64
	Informative bool
}

// CriteriaVector maps every fixed criterion key to its value. Built fresh
// per generation call, never persisted, and always complete: downstream
// components index by name and must never see a missing key.
type CriteriaVector map[string]Criterion

// Criterion keys. The set is closed: the weight table, the importance
// ranker and the reasoning rules all index by these names, so renaming one
// silently changes model behavior. Keep them in sync with CriteriaKeys.
const (
	CritHomeTeamForm          = "home_team_form"
	CritAwayTeamForm          = "away_team_form"
	CritHomeFormSpecific      = "home_form_specific"
	CritAwayFormSpecific      = "away_form_specific"
	CritGoalScoringForm       = "goal_scoring_form"
	CritDefensiveForm         = "defensive_form"
	CritFirstHalfPerformance  = "first_half_performance"
	CritSecondHalfPerformance = "second_half_performance"
	CritComebackAbility       = "comeback_ability"
	CritLeadProtection        = "lead_protection"

	CritHeadToHeadRecord       = "head_to_head_record"
	CritPreviousMeetingOutcome = "previous_meeting_outcome"
	CritScoringTrends          = "scoring_trends"
	CritConcedingTrends        = "conceding_trends"
	CritHomeAdvantage          = "home_advantage"

	CritInjuryImpact          = "injury_impact"
	CritSuspensionImpact      = "suspension_impact"
	CritKeyPlayerAvailability = "key_player_availability"
	CritPlayerFatigue         = "player_fatigue"
	CritPhysicalCondition     = "physical_condition"
	CritAgeProfile            = "age_profile"
	CritTeamChemistry         = "team_chemistry"
	CritDisciplinaryRecord    = "disciplinary_record"
	CritPenaltyRecord         = "penalty_record"

	CritTacticalSetup       = "tactical_setup"
	CritPossessionStyle     = "possession_style"
	CritCounterAttackThreat = "counter_attack_threat"
	CritSetPieceEfficiency  = "set_piece_efficiency"
	CritGoalkeepingForm     = "goalkeeping_form"
	CritManagerExperience   = "manager_experience"
	CritRecentTransfers     = "recent_transfers"
	CritSeasonObjectives    = "season_objectives"

	CritWeatherConditions    = "weather_conditions"
	CritVenueConditions      = "venue_conditions"
	CritCrowdSupport         = "crowd_support"
	CritTravelDistance       = "travel_distance"
	CritTimeZoneDifference   = "time_zone_difference"
	CritRestDays             = "rest_days"
	CritMediaExpectations    = "media_expectations"
	CritSocialMediaSentiment = "social_media_sentiment"

	CritBettingOdds          = "betting_odds"
	CritExpertPredictions    = "expert_predictions"
	CritLeaguePosition       = "league_position"
	CritPointsGap            = "points_gap"
	CritEuropeanCompetitions = "european_competitions"

	CritTeamMorale       = "team_morale"
	CritMotivationLevel  = "motivation_level"
	CritPressureHandling = "pressure_handling"
	CritMentalStrength   = "mental_strength"

	CritCupCommitments = "cup_commitments"
)

// CriteriaKeys is the fixed, ordered, complete key set (50 entries). The
// probability model iterates in this order so identical vectors always
// accumulate in the same sequence.
var CriteriaKeys = []string{
	CritHomeTeamForm,
	CritAwayTeamForm,
	CritHomeFormSpecific,
	CritAwayFormSpecific,
	CritGoalScoringForm,
	CritDefensiveForm,
	CritFirstHalfPerformance,
	CritSecondHalfPerformance,
	CritComebackAbility,
	CritLeadProtection,
	CritHeadToHeadRecord,
	CritPreviousMeetingOutcome,
	CritScoringTrends,
	CritConcedingTrends,
	CritHomeAdvantage,
	CritInjuryImpact,
	CritSuspensionImpact,
	CritKeyPlayerAvailability,
	CritPlayerFatigue,
	CritPhysicalCondition,
	CritAgeProfile,
	CritTeamChemistry,
	CritDisciplinaryRecord,
	CritPenaltyRecord,
	CritTacticalSetup,
	CritPossessionStyle,
	CritCounterAttackThreat,
	CritSetPieceEfficiency,
	CritGoalkeepingForm,
	CritManagerExperience,
	CritRecentTransfers,
	CritSeasonObjectives,
	CritWeatherConditions,
	CritVenueConditions,
	CritCrowdSupport,
	CritTravelDistance,
	CritTimeZoneDifference,
	CritRestDays,
	CritMediaExpectations,
	CritSocialMediaSentiment,
	CritBettingOdds,
	CritExpertPredictions,
	CritLeaguePosition,
	CritPointsGap,
	CritEuropeanCompetitions,
	CritTeamMorale,
	CritMotivationLevel,
	CritPressureHandling,
	CritMentalStrength,
	CritCupCommitments,
}

// CriteriaCount is the size of the fixed key set; the confidence
// estimator's completeness and consensus bonuses divide by it.
const CriteriaCount = 50

// neutral is the value substituted when a source signal is unavailable.
func neutral() Criterion {
	return Criterion{Value: 0.5}
}

// signal clamps v into [0,1] and marks it as derived from real data.
func signal(v float64) Criterion {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return Criterion{Value: v, Informative: true}
}

// NeutralCriteria returns a complete all-neutral vector, the shape the
// gatherer degrades to when every upstream read fails.
func NeutralCriteria() CriteriaVector {
	cv := make(CriteriaVector, CriteriaCount)
	for _, key := range CriteriaKeys {
		cv[key] = neutral()
	}
	return cv
}
