package logic

import (
	"strings"

	"github.com/matchiq/predictions-api/internal/models"
)

// Per-criterion derivations. Each one is total: malformed or missing raw
// input yields the neutral prior. Values above 0.5 bias toward the home
// side (or toward "favorable" for directionless criteria).

// formScore is the win share of the recent-form window.
func formScore(form []models.FormResult) Criterion {
	if len(form) == 0 {
		return neutral()
	}
	wins := 0
	for _, r := range form {
		if r == models.FormWin {
			wins++
		}
	}
	return signal(float64(wins) / float64(len(form)))
}

// homeVenueForm is the team's win rate in home fixtures this season.
func homeVenueForm(stats *models.TeamStatistics) Criterion {
	if stats == nil || stats.Played.Home <= 0 {
		return neutral()
	}
	return signal(float64(stats.Wins.Home) / float64(stats.Played.Home))
}

// awayVenueForm mirrors homeVenueForm for the away side. High away win
// rate biases the criterion away, hence the complement.
func awayVenueForm(stats *models.TeamStatistics) Criterion {
	if stats == nil || stats.Played.Away <= 0 {
		return neutral()
	}
	return signal(1 - float64(stats.Wins.Away)/float64(stats.Played.Away))
}

func goalsPerGame(stats *models.TeamStatistics, against bool) (float64, bool) {
	if stats == nil || stats.Played.Total <= 0 {
		return 0, false
	}
	goals := stats.GoalsFor.Total
	if against {
		goals = stats.GoalsAgainst.Total
	}
	return float64(goals) / float64(stats.Played.Total), true
}

// scoringForm compares goals-per-game rates of the two sides.
func scoringForm(home, away *models.TeamStatistics) Criterion {
	hg, hok := goalsPerGame(home, false)
	ag, aok := goalsPerGame(away, false)
	if !hok || !aok || hg+ag == 0 {
		return neutral()
	}
	return signal(hg / (hg + ag))
}

// defensiveForm compares goals-conceded rates; a leakier away defense
// biases the criterion toward the home side.
func defensiveForm(home, away *models.TeamStatistics) Criterion {
	hc, hok := goalsPerGame(home, true)
	ac, aok := goalsPerGame(away, true)
	if !hok || !aok || hc+ac == 0 {
		return neutral()
	}
	return signal(ac / (hc + ac))
}

// homeSideWon reports whether the team playing at home in the upcoming
// fixture won the given past meeting, regardless of where it was played.
func homeSideWon(f models.H2HFixture, homeID int) bool {
	if f.HomeTeamID == homeID {
		return f.HomeGoals > f.AwayGoals
	}
	return f.AwayGoals > f.HomeGoals
}

// headToHeadScore is the home side's win share of past meetings.
func headToHeadScore(h2h []models.H2HFixture, homeID int) Criterion {
	if len(h2h) == 0 {
		return neutral()
	}
	wins := 0
	for _, f := range h2h {
		if homeSideWon(f, homeID) {
			wins++
		}
	}
	return signal(float64(wins) / float64(len(h2h)))
}

// previousMeetingOutcome weighs only the most recent meeting.
func previousMeetingOutcome(h2h []models.H2HFixture, homeID int) Criterion {
	if len(h2h) == 0 {
		return neutral()
	}
	last := h2h[0]
	switch {
	case homeSideWon(last, homeID):
		return signal(0.75)
	case last.HomeGoals == last.AwayGoals:
		return signal(0.5)
	default:
		return signal(0.25)
	}
}

// scoringTrends maps the average total goals of past meetings onto [0,1];
// 2.5 goals per meeting sits at the neutral midpoint.
func scoringTrends(h2h []models.H2HFixture) Criterion {
	if len(h2h) == 0 {
		return neutral()
	}
	total := 0
	for _, f := range h2h {
		total += f.HomeGoals + f.AwayGoals
	}
	avg := float64(total) / float64(len(h2h))
	return signal(avg / 5)
}

// concedingTrends is the home side's clean-sheet share of past meetings.
func concedingTrends(h2h []models.H2HFixture, homeID int) Criterion {
	if len(h2h) == 0 {
		return neutral()
	}
	clean := 0
	for _, f := range h2h {
		conceded := f.AwayGoals
		if f.AwayTeamID == homeID {
			conceded = f.HomeGoals
		}
		if conceded == 0 {
			clean++
		}
	}
	return signal(float64(clean) / float64(len(h2h)))
}

// homeAdvantage starts at a fixed prior when the venue is known and grows
// slightly for larger grounds. Unknown venue stays neutral.
func homeAdvantage(venue string) Criterion {
	if venue == "" {
		return neutral()
	}
	advantage := 0.65
	lower := strings.ToLower(venue)
	if strings.Contains(lower, "stadium") || strings.Contains(lower, "stadion") {
		advantage += 0.05
	}
	if strings.Contains(lower, "arena") {
		advantage += 0.03
	}
	if advantage > 0.8 {
		advantage = 0.8
	}
	return signal(advantage)
}

// injuryImpact shifts by 0.1 per injured player, in the home side's favor
// when the away squad is harder hit.
func injuryImpact(homeInjuries, awayInjuries []models.Injury) Criterion {
	if homeInjuries == nil && awayInjuries == nil {
		return neutral()
	}
	return signal(0.5 + (float64(len(awayInjuries))-float64(len(homeInjuries)))*0.1)
}

// keyPlayerAvailability degrades from near-full availability as the
// combined injury list grows.
func keyPlayerAvailability(homeInjuries, awayInjuries []models.Injury) Criterion {
	if homeInjuries == nil && awayInjuries == nil {
		return neutral()
	}
	v := 0.9 - 0.08*float64(len(homeInjuries)+len(awayInjuries))
	if v < 0.1 {
		v = 0.1
	}
	return signal(v)
}

func cardsPerGame(stats *models.TeamStatistics) (float64, bool) {
	if stats == nil || stats.Played.Total <= 0 {
		return 0, false
	}
	return float64(stats.YellowCards+3*stats.RedCards) / float64(stats.Played.Total), true
}

// disciplinaryRecord favors the side that collects fewer cards per game.
func disciplinaryRecord(home, away *models.TeamStatistics) Criterion {
	hc, hok := cardsPerGame(home)
	ac, aok := cardsPerGame(away)
	if !hok || !aok || hc+ac == 0 {
		return neutral()
	}
	return signal(ac / (hc + ac))
}

func penaltyConversion(stats *models.TeamStatistics) (float64, bool) {
	if stats == nil {
		return 0, false
	}
	attempts := stats.PenaltyScored + stats.PenaltyMissed
	if attempts == 0 {
		return 0, false
	}
	return float64(stats.PenaltyScored) / float64(attempts), true
}

// penaltyRecord compares spot-kick conversion rates.
func penaltyRecord(home, away *models.TeamStatistics) Criterion {
	hc, hok := penaltyConversion(home)
	ac, aok := penaltyConversion(away)
	if !hok || !aok || hc+ac == 0 {
		return neutral()
	}
	return signal(hc / (hc + ac))
}

// formationConsistency is the share of fixtures played in the dominant
// formation, a proxy for a settled tactical setup.
func formationConsistency(stats *models.TeamStatistics) (float64, bool) {
	if stats == nil || len(stats.Formations) == 0 {
		return 0, false
	}
	max, total := 0, 0
	for _, f := range stats.Formations {
		total += f.Played
		if f.Played > max {
			max = f.Played
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(max) / float64(total), true
}

// tacticalSetup compares how settled each side's formation is.
func tacticalSetup(home, away *models.TeamStatistics) Criterion {
	hc, hok := formationConsistency(home)
	ac, aok := formationConsistency(away)
	if !hok || !aok || hc+ac == 0 {
		return neutral()
	}
	return signal(hc / (hc + ac))
}

func cleanSheetRate(stats *models.TeamStatistics) (float64, bool) {
	if stats == nil || stats.Played.Total <= 0 {
		return 0, false
	}
	return float64(stats.CleanSheets.Total) / float64(stats.Played.Total), true
}

// goalkeepingForm compares clean-sheet rates.
func goalkeepingForm(home, away *models.TeamStatistics) Criterion {
	hr, hok := cleanSheetRate(home)
	ar, aok := cleanSheetRate(away)
	if !hok || !aok || hr+ar == 0 {
		return neutral()
	}
	return signal(hr / (hr + ar))
}

// weatherImpact degrades from neutral for extreme temperature, heavy rain
// and strong wind. Low values suppress expected scoring.
func weatherImpact(w *models.Weather) Criterion {
	if w == nil {
		return neutral()
	}
	impact := 0.5
	if w.TemperatureC < 0 || w.TemperatureC > 30 {
		impact -= 0.1
	}
	if w.PrecipitationMM > 5 {
		impact -= 0.2
	}
	if w.WindSpeedMS > 10 {
		impact -= 0.1
	}
	if impact < 0.1 {
		impact = 0.1
	}
	return signal(impact)
}

// crowdSupport is a mild home-crowd prior, applied only when the fixture
// has a known venue.
func crowdSupport(venue string) Criterion {
	if venue == "" {
		return neutral()
	}
	return signal(0.6)
}

// oddsImpact converts the first bookmaker's 1X2 market into the implied
// home share of the decisive outcomes.
func oddsImpact(odds []models.OddsRecord) Criterion {
	if len(odds) == 0 {
		return neutral()
	}
	market := odds[0]
	if market.Home <= 1 || market.Away <= 1 {
		return neutral()
	}
	homeImplied := 1 / market.Home
	awayImplied := 1 / market.Away
	return signal(homeImplied / (homeImplied + awayImplied))
}

// teamMorale averages the two form scores: a directionless read on how
// buoyant the fixture's mood is overall.
func teamMorale(homeForm, awayForm []models.FormResult) Criterion {
	hs := formScore(homeForm)
	as := formScore(awayForm)
	if !hs.Informative && !as.Informative {
		return neutral()
	}
	return signal((hs.Value + as.Value) / 2)
}
