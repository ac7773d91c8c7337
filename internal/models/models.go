package models

import "time"

// Country is a supported competition country.
type Country struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	FlagEmoji string `json:"flag_emoji,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// Team is a club taking part in scheduled fixtures.
// ExternalID is the upstream data-provider identifier used for
// statistics, form and injury lookups.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country"`
	League      string `json:"league"`
	ExternalID  int    `json:"external_id,omitempty"`
}

// Match is a scheduled fixture. Immutable once scheduled; owned by the store.
type Match struct {
	ID          string    `json:"id"`
	HomeTeamID  string    `json:"home_team_id"`
	AwayTeamID  string    `json:"away_team_id"`
	HomeTeam    *Team     `json:"home_team,omitempty"`
	AwayTeam    *Team     `json:"away_team,omitempty"`
	CountryCode string    `json:"country"`
	League      string    `json:"league"`
	Venue       string    `json:"venue,omitempty"`
	KickoffAt   time.Time `json:"kickoff_at"`
	Status      string    `json:"status"`
}

// FeatureImportance is one entry of the ranked explanatory factor list.
// Impact is signed and bounded to [-1, 1].
type FeatureImportance struct {
	Feature     string  `json:"feature"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// EvidenceSnippet is a short sourced text fragment supporting a prediction.
type EvidenceSnippet struct {
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
}

// Prediction is the assembled forecast for one match. Append-only: a new
// generation request for the same match produces a new record.
type Prediction struct {
	ID                 string              `json:"id"`
	MatchID            string              `json:"match_id"`
	HomeWinProb        float64             `json:"home_win_prob"`
	DrawProb           float64             `json:"draw_prob"`
	AwayWinProb        float64             `json:"away_win_prob"`
	PredictedHomeScore int                 `json:"predicted_home_score"`
	PredictedAwayScore int                 `json:"predicted_away_score"`
	ConfidenceScore    float64             `json:"confidence_score"`
	ModelVersion       string              `json:"model_version"`
	FeatureImportance  []FeatureImportance `json:"feature_importance"`
	EvidenceSnippets   []EvidenceSnippet   `json:"evidence_snippets"`
	Reasoning          string              `json:"reasoning"`
	CreatedAt          time.Time           `json:"created_at"`
}

// PredictionAudit is the flattened row written to the ClickHouse audit log
// for every generated prediction.
type PredictionAudit struct {
	PredictionID string
	MatchID      string
	ModelVersion string
	HomeWinProb  float64
	DrawProb     float64
	AwayWinProb  float64
	Confidence   float64
	HomeScore    int
	AwayScore    int
	EvidenceLen  int
	DurationMs   int64
	CreatedAt    time.Time
}
