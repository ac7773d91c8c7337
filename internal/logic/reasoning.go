package logic

import (
	"fmt"
	"strings"

	"github.com/matchiq/predictions-api/internal/models"
)

// reasoningContext is what the narrative rules read from.
type reasoningContext struct {
	cv    CriteriaVector
	probs OutcomeProbabilities
	home  string
	away  string
}

// reasoningRule contributes one sentence when its threshold condition
// holds. Rules are additive and evaluated in declaration order; none is
// mutually exclusive with another.
type reasoningRule func(rc *reasoningContext) string

var formRules = []reasoningRule{
	func(rc *reasoningContext) string {
		switch v := rc.cv[CritHomeTeamForm].Value; {
		case v > 0.6:
			return fmt.Sprintf("%s shows excellent recent form with strong momentum. ", rc.home)
		case v < 0.4:
			return fmt.Sprintf("%s has struggled recently with inconsistent performances. ", rc.home)
		}
		return ""
	},
	func(rc *reasoningContext) string {
		switch v := rc.cv[CritAwayTeamForm].Value; {
		case v > 0.6:
			return fmt.Sprintf("%s demonstrates solid away form and adaptability. ", rc.away)
		case v < 0.4:
			return fmt.Sprintf("%s faces challenges in away fixtures. ", rc.away)
		}
		return ""
	},
}

var factorRules = []reasoningRule{
	func(rc *reasoningContext) string {
		if rc.cv[CritKeyPlayerAvailability].Value < 0.5 {
			return "Injury concerns may significantly impact team performance. "
		}
		return ""
	},
	func(rc *reasoningContext) string {
		switch v := rc.cv[CritHeadToHeadRecord].Value; {
		case v > 0.6:
			return fmt.Sprintf("Historical matchups favor %s. ", rc.home)
		case v < 0.4:
			return fmt.Sprintf("%s has dominated recent encounters. ", rc.away)
		}
		return ""
	},
	func(rc *reasoningContext) string {
		if rc.cv[CritHomeAdvantage].Value > 0.6 {
			return "Strong home advantage expected with supportive crowd. "
		}
		return ""
	},
	func(rc *reasoningContext) string {
		if rc.cv[CritWeatherConditions].Value < 0.4 {
			return "Weather conditions may favor defensive play. "
		}
		return ""
	},
}

// GenerateReasoning composes the narrative paragraph from the threshold
// rules plus a closing sentence naming the more probable side. Pure.
func GenerateReasoning(cv CriteriaVector, probs OutcomeProbabilities, match *models.Match) string {
	rc := &reasoningContext{cv: cv, probs: probs, home: displayName(match.HomeTeam, "Home Team"), away: displayName(match.AwayTeam, "Away Team")}

	var b strings.Builder
	fmt.Fprintf(&b, "Comprehensive analysis of %s vs %s using 50 performance criteria:\n\n", rc.home, rc.away)

	for _, rule := range formRules {
		b.WriteString(rule(rc))
	}

	b.WriteString("\n\nKey factors: ")
	for _, rule := range factorRules {
		b.WriteString(rule(rc))
	}

	// An exact tie names the away side.
	winner, probability := rc.home, probs.Home
	if probs.Away >= probs.Home {
		winner, probability = rc.away, probs.Away
	}
	fmt.Fprintf(&b, "\n\nConclusion: Model predicts %s advantage with %.1f%% probability, considering tactical matchups, current form, and situational factors.", winner, probability*100)

	return b.String()
}

func displayName(team *models.Team, fallback string) string {
	if team == nil || team.Name == "" {
		return fallback
	}
	return team.Name
}
