package logic

import "testing"

func TestPredictScore_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]float64
		side      Side
		want      int
	}{
		{
			// 1.2 + 0 + 0 + 0.5*0.3 = 1.35
			name: "Neutral Home",
			side: HomeSide,
			want: 1,
		},
		{
			// 1.2 + 0 + 0 = 1.2
			name: "Neutral Away",
			side: AwaySide,
			want: 1,
		},
		{
			// 1.2 + 0.8 + 0.45 + 0.15 = 2.6
			name: "Strong Attack vs Weak Defense",
			overrides: map[string]float64{
				CritGoalScoringForm: 0.9,
				CritDefensiveForm:   0.2,
			},
			side: HomeSide,
			want: 3,
		},
		{
			// mirrored: 1.2 - 0.8 - 0.45 = -0.05, floored at 0
			name: "Away Side of Lopsided Fixture",
			overrides: map[string]float64{
				CritGoalScoringForm: 0.9,
				CritDefensiveForm:   0.2,
			},
			side: AwaySide,
			want: 0,
		},
		{
			// 2.6 * 0.8 = 2.08
			name: "Bad Weather Suppresses Scoring",
			overrides: map[string]float64{
				CritGoalScoringForm:   0.9,
				CritDefensiveForm:     0.2,
				CritWeatherConditions: 0.2,
			},
			side: HomeSide,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PredictScore(vec(tt.overrides), tt.side); got != tt.want {
				t.Errorf("PredictScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPredictScore_NeverNegative(t *testing.T) {
	overrides := map[string]float64{}
	for _, key := range CriteriaKeys {
		overrides[key] = 0
	}
	cv := vec(overrides)

	for _, side := range []Side{HomeSide, AwaySide} {
		if got := PredictScore(cv, side); got < 0 {
			t.Errorf("side %v: score = %d, want >= 0", side, got)
		}
	}
}
