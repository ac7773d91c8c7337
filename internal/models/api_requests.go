package models

import "time"

// CreateMatchRequest is the payload accepted by POST /api/v1/matches.
// Used by the fixture sync job and the seeder.
type CreateMatchRequest struct {
	HomeTeam  string    `json:"home_team" validate:"required,min=2,max=100"`
	AwayTeam  string    `json:"away_team" validate:"required,min=2,max=100"`
	Country   string    `json:"country" validate:"required,len=2,uppercase"`
	League    string    `json:"league" validate:"required,min=2,max=100"`
	Venue     string    `json:"venue" validate:"max=200"`
	KickoffAt time.Time `json:"kickoff_at" validate:"required"`
}
