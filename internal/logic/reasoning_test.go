package logic

import (
	"strings"
	"testing"

	"github.com/matchiq/predictions-api/internal/models"
)

func testMatch() *models.Match {
	return &models.Match{
		ID:       "match-1",
		HomeTeam: &models.Team{Name: "Malmö FF"},
		AwayTeam: &models.Team{Name: "AIK"},
	}
}

func TestGenerateReasoning_RuleActivation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]float64
		contains  string
	}{
		{
			name:      "Strong Home Form",
			overrides: map[string]float64{CritHomeTeamForm: 0.7},
			contains:  "Malmö FF shows excellent recent form",
		},
		{
			name:      "Weak Home Form",
			overrides: map[string]float64{CritHomeTeamForm: 0.3},
			contains:  "Malmö FF has struggled recently",
		},
		{
			name:      "Strong Away Form",
			overrides: map[string]float64{CritAwayTeamForm: 0.7},
			contains:  "AIK demonstrates solid away form",
		},
		{
			name:      "Weak Away Form",
			overrides: map[string]float64{CritAwayTeamForm: 0.3},
			contains:  "AIK faces challenges in away fixtures",
		},
		{
			name:      "Injury Concerns",
			overrides: map[string]float64{CritKeyPlayerAvailability: 0.4},
			contains:  "Injury concerns may significantly impact",
		},
		{
			name:      "H2H Favors Home",
			overrides: map[string]float64{CritHeadToHeadRecord: 0.7},
			contains:  "Historical matchups favor Malmö FF",
		},
		{
			name:      "H2H Favors Away",
			overrides: map[string]float64{CritHeadToHeadRecord: 0.3},
			contains:  "AIK has dominated recent encounters",
		},
		{
			name:      "Home Advantage",
			overrides: map[string]float64{CritHomeAdvantage: 0.7},
			contains:  "Strong home advantage expected",
		},
		{
			name:      "Bad Weather",
			overrides: map[string]float64{CritWeatherConditions: 0.3},
			contains:  "Weather conditions may favor defensive play",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := vec(tt.overrides)
			probs := PredictProbabilities(cv, DefaultWeights)
			got := GenerateReasoning(cv, probs, testMatch())

			if !strings.Contains(got, tt.contains) {
				t.Errorf("reasoning missing %q:\n%s", tt.contains, got)
			}
		})
	}
}

func TestGenerateReasoning_NeutralSkipsAllRules(t *testing.T) {
	cv := NeutralCriteria()
	probs := PredictProbabilities(cv, DefaultWeights)
	got := GenerateReasoning(cv, probs, testMatch())

	for _, fragment := range []string{"excellent recent form", "struggled", "Injury concerns", "Historical matchups", "home advantage expected", "defensive play"} {
		if strings.Contains(got, fragment) {
			t.Errorf("neutral vector should not trigger rule %q:\n%s", fragment, got)
		}
	}
	if !strings.Contains(got, "Comprehensive analysis of Malmö FF vs AIK using 50 performance criteria") {
		t.Errorf("missing header:\n%s", got)
	}
}

func TestGenerateReasoning_ConclusionNamesHigherSide(t *testing.T) {
	cv := NeutralCriteria()

	// Away higher.
	got := GenerateReasoning(cv, OutcomeProbabilities{Home: 0.2, Draw: 0.3, Away: 0.5}, testMatch())
	if !strings.Contains(got, "Model predicts AIK advantage with 50.0% probability") {
		t.Errorf("conclusion should name AIK:\n%s", got)
	}

	// Home higher.
	got = GenerateReasoning(cv, OutcomeProbabilities{Home: 0.5, Draw: 0.2, Away: 0.3}, testMatch())
	if !strings.Contains(got, "Model predicts Malmö FF advantage") {
		t.Errorf("conclusion should name Malmö FF:\n%s", got)
	}

	// Exact tie goes to the away side.
	got = GenerateReasoning(cv, OutcomeProbabilities{Home: 0.4, Draw: 0.2, Away: 0.4}, testMatch())
	if !strings.Contains(got, "Model predicts AIK advantage") {
		t.Errorf("tie should name the away side:\n%s", got)
	}
}

func TestGenerateReasoning_FallbackTeamNames(t *testing.T) {
	match := &models.Match{ID: "match-1"}
	cv := NeutralCriteria()
	got := GenerateReasoning(cv, PredictProbabilities(cv, DefaultWeights), match)

	if !strings.Contains(got, "Home Team vs Away Team") {
		t.Errorf("missing fallback names:\n%s", got)
	}
}
