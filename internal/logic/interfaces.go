package logic

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matchiq/predictions-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// DataProvider is the external signal source consumed by the criteria
// gatherer and the evidence collector. Every operation is independently
// failable; callers degrade to "no data" rather than aborting.
type DataProvider interface {
	TeamStatistics(ctx context.Context, teamID int) (*models.TeamStatistics, error)
	TeamForm(ctx context.Context, teamID, lastN int) ([]models.FormResult, error)
	HeadToHead(ctx context.Context, homeID, awayID, lastN int) ([]models.H2HFixture, error)
	Injuries(ctx context.Context, teamID int) ([]models.Injury, error)
	Weather(ctx context.Context, location string) (*models.Weather, error)
	Odds(ctx context.Context, matchID string) ([]models.OddsRecord, error)
	TeamNews(ctx context.Context, teamName string) ([]models.NewsArticle, error)
}

// MatchStore resolves scheduled fixtures.
type MatchStore interface {
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListUpcomingMatches(ctx context.Context, countryCode string) ([]models.Match, error)
	CreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListTeamsByCountry(ctx context.Context, countryCode string) ([]models.Team, error)
}

// PredictionStore owns persisted predictions. Insert returns the stored
// record; FindLatest returns the most recently created one for a match.
type PredictionStore interface {
	InsertPrediction(ctx context.Context, p *models.Prediction) (*models.Prediction, error)
	FindLatestPrediction(ctx context.Context, matchID string) (*models.Prediction, error)
}

// GenerationLocker enforces at most one in-flight generation per match.
type GenerationLocker interface {
	Acquire(ctx context.Context, matchID string) (bool, error)
	Release(ctx context.Context, matchID string)
}

// AuditQueue receives flattened prediction rows for the async audit log.
type AuditQueue interface {
	Enqueue(row *models.PredictionAudit) bool
	QueueDepth() int
}

// PredictionService generates and retrieves match forecasts.
type PredictionService interface {
	GeneratePrediction(ctx context.Context, matchID string) (*models.Prediction, error)
	GetLatestPrediction(ctx context.Context, matchID string) (*models.Prediction, error)
}
