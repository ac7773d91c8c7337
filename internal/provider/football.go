package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/matchiq/predictions-api/internal/models"
)

// Response envelopes for the football API (api-football v3 shapes).

type fixtureSplitDTO struct {
	Total int `json:"total"`
	Home  int `json:"home"`
	Away  int `json:"away"`
}

type teamStatisticsResponse struct {
	Response struct {
		Team struct {
			ID int `json:"id"`
		} `json:"team"`
		Fixtures struct {
			Played fixtureSplitDTO `json:"played"`
			Wins   fixtureSplitDTO `json:"wins"`
			Draws  fixtureSplitDTO `json:"draws"`
			Loses  fixtureSplitDTO `json:"loses"`
		} `json:"fixtures"`
		Goals struct {
			For struct {
				Total fixtureSplitDTO `json:"total"`
			} `json:"for"`
			Against struct {
				Total fixtureSplitDTO `json:"total"`
			} `json:"against"`
		} `json:"goals"`
		CleanSheet    fixtureSplitDTO `json:"clean_sheet"`
		FailedToScore fixtureSplitDTO `json:"failed_to_score"`
		Penalty       struct {
			Scored struct {
				Total int `json:"total"`
			} `json:"scored"`
			Missed struct {
				Total int `json:"total"`
			} `json:"missed"`
		} `json:"penalty"`
		Lineups []struct {
			Formation string `json:"formation"`
			Played    int    `json:"played"`
		} `json:"lineups"`
		Cards struct {
			Yellow struct {
				Total int `json:"total"`
			} `json:"yellow"`
			Red struct {
				Total int `json:"total"`
			} `json:"red"`
		} `json:"cards"`
	} `json:"response"`
}

type fixtureDTO struct {
	Fixture struct {
		ID   int       `json:"id"`
		Date time.Time `json:"date"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			ID int `json:"id"`
		} `json:"home"`
		Away struct {
			ID int `json:"id"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type fixturesResponse struct {
	Response []fixtureDTO `json:"response"`
}

type injuriesResponse struct {
	Response []struct {
		Player struct {
			Name   string `json:"name"`
			Reason string `json:"reason"`
		} `json:"player"`
	} `json:"response"`
}

type oddsResponse struct {
	Response []struct {
		Bookmakers []struct {
			Name string `json:"name"`
			Bets []struct {
				Name   string `json:"name"`
				Values []struct {
					Value string `json:"value"`
					Odd   string `json:"odd"`
				} `json:"values"`
			} `json:"bets"`
		} `json:"bookmakers"`
	} `json:"response"`
}

// TeamStatistics fetches the season aggregate for one team.
func (c *Client) TeamStatistics(ctx context.Context, teamID int) (*models.TeamStatistics, error) {
	if teamID == 0 {
		return nil, fmt.Errorf("team statistics: unknown external team id")
	}

	params := url.Values{}
	params.Set("team", strconv.Itoa(teamID))
	params.Set("season", strconv.Itoa(c.cfg.Season))

	var resp teamStatisticsResponse
	if err := c.getJSON(ctx, "team_statistics", c.cfg.FootballBaseURL+"/teams/statistics", params, c.footballHeaders(), &resp); err != nil {
		return nil, err
	}

	r := resp.Response
	stats := &models.TeamStatistics{
		TeamID:        r.Team.ID,
		Played:        models.FixtureSplit(r.Fixtures.Played),
		Wins:          models.FixtureSplit(r.Fixtures.Wins),
		Draws:         models.FixtureSplit(r.Fixtures.Draws),
		Losses:        models.FixtureSplit(r.Fixtures.Loses),
		GoalsFor:      models.FixtureSplit(r.Goals.For.Total),
		GoalsAgainst:  models.FixtureSplit(r.Goals.Against.Total),
		CleanSheets:   models.FixtureSplit(r.CleanSheet),
		FailedToScore: models.FixtureSplit(r.FailedToScore),
		YellowCards:   r.Cards.Yellow.Total,
		RedCards:      r.Cards.Red.Total,
		PenaltyScored: r.Penalty.Scored.Total,
		PenaltyMissed: r.Penalty.Missed.Total,
	}
	for _, l := range r.Lineups {
		stats.Formations = append(stats.Formations, models.FormationUsage{Formation: l.Formation, Played: l.Played})
	}
	return stats, nil
}

// TeamForm fetches the last N finished fixtures and reduces them to a
// W/D/L sequence, most recent first.
func (c *Client) TeamForm(ctx context.Context, teamID, lastN int) ([]models.FormResult, error) {
	if teamID == 0 {
		return nil, fmt.Errorf("team form: unknown external team id")
	}

	params := url.Values{}
	params.Set("team", strconv.Itoa(teamID))
	params.Set("last", strconv.Itoa(lastN))
	params.Set("status", "FT")

	var resp fixturesResponse
	if err := c.getJSON(ctx, "team_form", c.cfg.FootballBaseURL+"/fixtures", params, c.footballHeaders(), &resp); err != nil {
		return nil, err
	}

	form := make([]models.FormResult, 0, len(resp.Response))
	for _, f := range resp.Response {
		if f.Goals.Home == nil || f.Goals.Away == nil {
			continue
		}
		home, away := *f.Goals.Home, *f.Goals.Away
		isHome := f.Teams.Home.ID == teamID
		switch {
		case home == away:
			form = append(form, models.FormDraw)
		case (home > away) == isHome:
			form = append(form, models.FormWin)
		default:
			form = append(form, models.FormLoss)
		}
	}
	return form, nil
}

// HeadToHead fetches the last N meetings between two teams.
func (c *Client) HeadToHead(ctx context.Context, homeID, awayID, lastN int) ([]models.H2HFixture, error) {
	if homeID == 0 || awayID == 0 {
		return nil, fmt.Errorf("head to head: unknown external team id")
	}

	params := url.Values{}
	params.Set("h2h", fmt.Sprintf("%d-%d", homeID, awayID))
	params.Set("last", strconv.Itoa(lastN))

	var resp fixturesResponse
	if err := c.getJSON(ctx, "head_to_head", c.cfg.FootballBaseURL+"/fixtures/headtohead", params, c.footballHeaders(), &resp); err != nil {
		return nil, err
	}

	h2h := make([]models.H2HFixture, 0, len(resp.Response))
	for _, f := range resp.Response {
		if f.Goals.Home == nil || f.Goals.Away == nil {
			continue
		}
		h2h = append(h2h, models.H2HFixture{
			HomeTeamID: f.Teams.Home.ID,
			AwayTeamID: f.Teams.Away.ID,
			HomeGoals:  *f.Goals.Home,
			AwayGoals:  *f.Goals.Away,
			PlayedAt:   f.Fixture.Date,
		})
	}
	return h2h, nil
}

// Injuries fetches the current unavailable-player list for a team.
func (c *Client) Injuries(ctx context.Context, teamID int) ([]models.Injury, error) {
	if teamID == 0 {
		return nil, fmt.Errorf("injuries: unknown external team id")
	}

	params := url.Values{}
	params.Set("team", strconv.Itoa(teamID))
	params.Set("season", strconv.Itoa(c.cfg.Season))

	var resp injuriesResponse
	if err := c.getJSON(ctx, "injuries", c.cfg.FootballBaseURL+"/injuries", params, c.footballHeaders(), &resp); err != nil {
		return nil, err
	}

	injuries := make([]models.Injury, 0, len(resp.Response))
	for _, r := range resp.Response {
		injuries = append(injuries, models.Injury{PlayerName: r.Player.Name, Reason: r.Player.Reason})
	}
	return injuries, nil
}

// Odds fetches the 1X2 markets for a fixture. The matchID is the upstream
// fixture identifier when known; lookups for unsynced fixtures fail and
// degrade to neutral at the caller.
func (c *Client) Odds(ctx context.Context, matchID string) ([]models.OddsRecord, error) {
	fixtureID, err := strconv.Atoi(matchID)
	if err != nil {
		return nil, fmt.Errorf("odds: no upstream fixture id for match %s", matchID)
	}

	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))

	var resp oddsResponse
	if err := c.getJSON(ctx, "odds", c.cfg.FootballBaseURL+"/odds", params, c.footballHeaders(), &resp); err != nil {
		return nil, err
	}

	var records []models.OddsRecord
	for _, r := range resp.Response {
		for _, bm := range r.Bookmakers {
			for _, bet := range bm.Bets {
				if bet.Name != "Match Winner" {
					continue
				}
				record := models.OddsRecord{Bookmaker: bm.Name}
				for _, v := range bet.Values {
					odd, err := strconv.ParseFloat(v.Odd, 64)
					if err != nil {
						continue
					}
					switch v.Value {
					case "Home":
						record.Home = odd
					case "Draw":
						record.Draw = odd
					case "Away":
						record.Away = odd
					}
				}
				if record.Home > 0 && record.Away > 0 {
					records = append(records, record)
				}
			}
		}
	}
	return records, nil
}
