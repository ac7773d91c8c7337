// Package store implements the persistence collaborators on Postgres and
// Redis. Matches are immutable once scheduled; predictions are append-only
// and retrieval-by-match returns the most recently created record.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/logic"
	"github.com/matchiq/predictions-api/internal/models"
)

type postgresStore struct {
	pg     logic.PgPool
	logger *zap.SugaredLogger
}

// Store bundles the match and prediction persistence interfaces.
type Store interface {
	logic.MatchStore
	logic.PredictionStore
}

func NewPostgresStore(pg logic.PgPool, logger *zap.Logger) Store {
	return &postgresStore{pg: pg, logger: logger.Sugar()}
}

const matchColumns = `
	m.id, m.home_team_id, m.away_team_id, m.country_code, m.league,
	COALESCE(m.venue, ''), m.kickoff_at, m.status,
	ht.name, COALESCE(ht.external_id, 0),
	at.name, COALESCE(at.external_id, 0)
`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	var home, away models.Team
	err := row.Scan(
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.CountryCode, &m.League,
		&m.Venue, &m.KickoffAt, &m.Status,
		&home.Name, &home.ExternalID,
		&away.Name, &away.ExternalID,
	)
	if err != nil {
		return nil, err
	}
	home.ID, home.CountryCode, home.League = m.HomeTeamID, m.CountryCode, m.League
	away.ID, away.CountryCode, away.League = m.AwayTeamID, m.CountryCode, m.League
	m.HomeTeam, m.AwayTeam = &home, &away
	return &m, nil
}

func (s *postgresStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	row := s.pg.QueryRow(ctx, `
		SELECT `+matchColumns+`
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE m.id = $1
	`, id)

	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, logic.ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	return match, nil
}

func (s *postgresStore) ListUpcomingMatches(ctx context.Context, countryCode string) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE m.status = 'scheduled' AND m.kickoff_at >= NOW()
	`
	args := []any{}
	if countryCode != "" {
		query += ` AND m.country_code = $1`
		args = append(args, countryCode)
	}
	query += ` ORDER BY m.kickoff_at`

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// CreateMatch schedules a fixture, creating the teams on first sight.
// Idempotent on (home, away, kickoff): re-posting the same fixture
// returns the existing record.
func (s *postgresStore) CreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	homeID, err := s.getOrCreateTeam(ctx, req.HomeTeam, req.Country, req.League)
	if err != nil {
		return nil, err
	}
	awayID, err := s.getOrCreateTeam(ctx, req.AwayTeam, req.Country, req.League)
	if err != nil {
		return nil, err
	}

	var id string
	err = s.pg.QueryRow(ctx, `
		INSERT INTO matches (home_team_id, away_team_id, country_code, league, venue, kickoff_at, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, 'scheduled')
		ON CONFLICT (home_team_id, away_team_id, kickoff_at)
		DO UPDATE SET league = EXCLUDED.league
		RETURNING id
	`, homeID, awayID, req.Country, req.League, req.Venue, req.KickoffAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	return s.GetMatch(ctx, id)
}

func (s *postgresStore) getOrCreateTeam(ctx context.Context, name, countryCode, league string) (string, error) {
	var id string
	err := s.pg.QueryRow(ctx, `
		INSERT INTO teams (name, country_code, league)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, country_code) DO UPDATE SET league = EXCLUDED.league
		RETURNING id
	`, name, countryCode, league).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("get or create team %q: %w", name, err)
	}
	return id, nil
}

func (s *postgresStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, name, code, COALESCE(flag_emoji, ''), COALESCE(timezone, '')
		FROM countries ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.FlagEmoji, &c.Timezone); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (s *postgresStore) ListTeamsByCountry(ctx context.Context, countryCode string) ([]models.Team, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, name, country_code, league, COALESCE(external_id, 0)
		FROM teams WHERE country_code = $1 ORDER BY name
	`, countryCode)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CountryCode, &t.League, &t.ExternalID); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *postgresStore) InsertPrediction(ctx context.Context, p *models.Prediction) (*models.Prediction, error) {
	importance, err := json.Marshal(p.FeatureImportance)
	if err != nil {
		return nil, fmt.Errorf("marshal feature importance: %w", err)
	}
	evidence, err := json.Marshal(p.EvidenceSnippets)
	if err != nil {
		return nil, fmt.Errorf("marshal evidence: %w", err)
	}

	_, err = s.pg.Exec(ctx, `
		INSERT INTO predictions (
			id, match_id, home_win_prob, draw_prob, away_win_prob,
			predicted_home_score, predicted_away_score, confidence_score,
			model_version, feature_importance, evidence_snippets, reasoning, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		p.ID, p.MatchID, p.HomeWinProb, p.DrawProb, p.AwayWinProb,
		p.PredictedHomeScore, p.PredictedAwayScore, p.ConfidenceScore,
		p.ModelVersion, importance, evidence, p.Reasoning, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert prediction: %w", err)
	}
	return p, nil
}

func (s *postgresStore) FindLatestPrediction(ctx context.Context, matchID string) (*models.Prediction, error) {
	row := s.pg.QueryRow(ctx, `
		SELECT id, match_id, home_win_prob, draw_prob, away_win_prob,
			predicted_home_score, predicted_away_score, confidence_score,
			model_version, feature_importance, evidence_snippets, reasoning, created_at
		FROM predictions
		WHERE match_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, matchID)

	var p models.Prediction
	var importance, evidence []byte
	err := row.Scan(
		&p.ID, &p.MatchID, &p.HomeWinProb, &p.DrawProb, &p.AwayWinProb,
		&p.PredictedHomeScore, &p.PredictedAwayScore, &p.ConfidenceScore,
		&p.ModelVersion, &importance, &evidence, &p.Reasoning, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, logic.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("find latest prediction: %w", err)
	}

	if err := json.Unmarshal(importance, &p.FeatureImportance); err != nil {
		s.logger.Warnw("malformed feature_importance payload", "prediction", p.ID, "error", err)
	}
	if err := json.Unmarshal(evidence, &p.EvidenceSnippets); err != nil {
		s.logger.Warnw("malformed evidence_snippets payload", "prediction", p.ID, "error", err)
	}
	return &p, nil
}
