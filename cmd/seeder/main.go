package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Config
const API_URL = "http://localhost:8080/api/v1/matches"

type fixture struct {
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Country   string    `json:"country"`
	League    string    `json:"league"`
	Venue     string    `json:"venue"`
	KickoffAt time.Time `json:"kickoff_at"`
}

func main() {
	// Nordic sample fixtures for local development
	nextSaturday := upcomingSaturday(time.Now())

	fixtures := []fixture{
		{
			HomeTeam: "FC Copenhagen", AwayTeam: "Brøndby IF",
			Country: "DK", League: "Superliga",
			Venue:     "Parken, Copenhagen",
			KickoffAt: nextSaturday.Add(17 * time.Hour),
		},
		{
			HomeTeam: "FC Midtjylland", AwayTeam: "AGF Aarhus",
			Country: "DK", League: "Superliga",
			Venue:     "MCH Arena, Herning",
			KickoffAt: nextSaturday.Add(15 * time.Hour),
		},
		{
			HomeTeam: "Malmö FF", AwayTeam: "AIK",
			Country: "SE", League: "Allsvenskan",
			Venue:     "Eleda Stadion, Malmö",
			KickoffAt: nextSaturday.Add(14 * time.Hour),
		},
		{
			HomeTeam: "Hammarby IF", AwayTeam: "IFK Göteborg",
			Country: "SE", League: "Allsvenskan",
			Venue:     "3Arena, Stockholm",
			KickoffAt: nextSaturday.Add(24*time.Hour + 16*time.Hour),
		},
		{
			HomeTeam: "Bodø/Glimt", AwayTeam: "Rosenborg BK",
			Country: "NO", League: "Eliteserien",
			Venue:     "Aspmyra Stadion, Bodø",
			KickoffAt: nextSaturday.Add(24*time.Hour + 18*time.Hour),
		},
		{
			HomeTeam: "HJK Helsinki", AwayTeam: "KuPS",
			Country: "FI", League: "Veikkausliiga",
			Venue:     "Bolt Arena, Helsinki",
			KickoffAt: nextSaturday.Add(13 * time.Hour),
		},
	}

	client := &http.Client{Timeout: 5 * time.Second}
	created := 0

	for _, f := range fixtures {
		payload, err := json.Marshal(f)
		if err != nil {
			log.Fatalf("Failed to marshal fixture: %v", err)
		}

		resp, err := client.Post(API_URL, "application/json", bytes.NewBuffer(payload))
		if err != nil {
			log.Fatalf("Failed to send request: %v", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
			fmt.Printf("✅ %s vs %s\n", f.HomeTeam, f.AwayTeam)
		} else {
			fmt.Printf("❌ %s vs %s: %s %s\n", f.HomeTeam, f.AwayTeam, resp.Status, string(body))
		}
	}

	fmt.Printf("Seeded %d/%d fixtures\n", created, len(fixtures))
}

// upcomingSaturday returns midnight UTC of the next Saturday.
func upcomingSaturday(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	offset := (int(time.Saturday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
