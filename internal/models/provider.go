package models

import "time"

// FormResult is one entry of a recent-form sequence, most recent first.
type FormResult string

const (
	FormWin  FormResult = "W"
	FormDraw FormResult = "D"
	FormLoss FormResult = "L"
)

// FixtureSplit carries a season counter split by home/away.
type FixtureSplit struct {
	Total int `json:"total"`
	Home  int `json:"home"`
	Away  int `json:"away"`
}

// FormationUsage records how often a team lined up in a given formation.
type FormationUsage struct {
	Formation string `json:"formation"`
	Played    int    `json:"played"`
}

// TeamStatistics is the season aggregate the data provider exposes per team.
type TeamStatistics struct {
	TeamID        int              `json:"team_id"`
	Played        FixtureSplit     `json:"played"`
	Wins          FixtureSplit     `json:"wins"`
	Draws         FixtureSplit     `json:"draws"`
	Losses        FixtureSplit     `json:"losses"`
	GoalsFor      FixtureSplit     `json:"goals_for"`
	GoalsAgainst  FixtureSplit     `json:"goals_against"`
	CleanSheets   FixtureSplit     `json:"clean_sheets"`
	FailedToScore FixtureSplit     `json:"failed_to_score"`
	Formations    []FormationUsage `json:"formations,omitempty"`
	YellowCards   int              `json:"yellow_cards"`
	RedCards      int              `json:"red_cards"`
	PenaltyScored int              `json:"penalty_scored"`
	PenaltyMissed int              `json:"penalty_missed"`
}

// H2HFixture is one past meeting between two teams.
type H2HFixture struct {
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
	PlayedAt   time.Time `json:"played_at"`
}

// Injury is one unavailable-player record.
type Injury struct {
	PlayerName string `json:"player_name"`
	Reason     string `json:"reason"`
}

// Weather is the forecast at a venue's locality around kickoff.
type Weather struct {
	TemperatureC    float64 `json:"temperature_c"`
	Humidity        float64 `json:"humidity"`
	WindSpeedMS     float64 `json:"wind_speed_ms"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	Condition       string  `json:"condition"`
}

// OddsRecord is one bookmaker's 1X2 market in decimal odds.
type OddsRecord struct {
	Bookmaker string  `json:"bookmaker"`
	Home      float64 `json:"home"`
	Draw      float64 `json:"draw"`
	Away      float64 `json:"away"`
}

// NewsArticle is one item returned by the news provider for a team query.
type NewsArticle struct {
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
