package logic

import (
	"context"
	"errors"

	"github.com/matchiq/predictions-api/internal/models"
)

// Mocks

var errProviderDown = errors.New("provider unavailable")

// MockDataProvider fails every read by default; tests override the reads
// they need.
type MockDataProvider struct {
	TeamStatisticsFunc func(ctx context.Context, teamID int) (*models.TeamStatistics, error)
	TeamFormFunc       func(ctx context.Context, teamID, lastN int) ([]models.FormResult, error)
	HeadToHeadFunc     func(ctx context.Context, homeID, awayID, lastN int) ([]models.H2HFixture, error)
	InjuriesFunc       func(ctx context.Context, teamID int) ([]models.Injury, error)
	WeatherFunc        func(ctx context.Context, location string) (*models.Weather, error)
	OddsFunc           func(ctx context.Context, matchID string) ([]models.OddsRecord, error)
	TeamNewsFunc       func(ctx context.Context, teamName string) ([]models.NewsArticle, error)
}

func (m *MockDataProvider) TeamStatistics(ctx context.Context, teamID int) (*models.TeamStatistics, error) {
	if m.TeamStatisticsFunc != nil {
		return m.TeamStatisticsFunc(ctx, teamID)
	}
	return nil, errProviderDown
}

func (m *MockDataProvider) TeamForm(ctx context.Context, teamID, lastN int) ([]models.FormResult, error) {
	if m.TeamFormFunc != nil {
		return m.TeamFormFunc(ctx, teamID, lastN)
	}
	return nil, errProviderDown
}

func (m *MockDataProvider) HeadToHead(ctx context.Context, homeID, awayID, lastN int) ([]models.H2HFixture, error) {
	if m.HeadToHeadFunc != nil {
		return m.HeadToHeadFunc(ctx, homeID, awayID, lastN)
	}
	return nil, errProviderDown
}

func (m *MockDataProvider) Injuries(ctx context.Context, teamID int) ([]models.Injury, error) {
	if m.InjuriesFunc != nil {
		return m.InjuriesFunc(ctx, teamID)
	}
	return nil, errProviderDown
}

func (m *MockDataProvider) Weather(ctx context.Context, location string) (*models.Weather, error) {
	if m.WeatherFunc != nil {
		return m.WeatherFunc(ctx, location)
	}
	return nil, errProviderDown
}

func (m *MockDataProvider) Odds(ctx context.Context, matchID string) ([]models.OddsRecord, error) {
	if m.OddsFunc != nil {
		return m.OddsFunc(ctx, matchID)
	}
	return nil, errProviderDown
}

func (m *MockDataProvider) TeamNews(ctx context.Context, teamName string) ([]models.NewsArticle, error) {
	if m.TeamNewsFunc != nil {
		return m.TeamNewsFunc(ctx, teamName)
	}
	return nil, errProviderDown
}

type MockMatchStore struct {
	GetMatchFunc func(ctx context.Context, id string) (*models.Match, error)
}

func (m *MockMatchStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, id)
	}
	return &models.Match{ID: id}, nil
}

func (m *MockMatchStore) ListUpcomingMatches(ctx context.Context, countryCode string) ([]models.Match, error) {
	return nil, nil
}

func (m *MockMatchStore) CreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	return nil, nil
}

func (m *MockMatchStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	return nil, nil
}

func (m *MockMatchStore) ListTeamsByCountry(ctx context.Context, countryCode string) ([]models.Team, error) {
	return nil, nil
}

type MockPredictionStore struct {
	InsertPredictionFunc     func(ctx context.Context, p *models.Prediction) (*models.Prediction, error)
	FindLatestPredictionFunc func(ctx context.Context, matchID string) (*models.Prediction, error)
	inserted                 []*models.Prediction
}

func (m *MockPredictionStore) InsertPrediction(ctx context.Context, p *models.Prediction) (*models.Prediction, error) {
	m.inserted = append(m.inserted, p)
	if m.InsertPredictionFunc != nil {
		return m.InsertPredictionFunc(ctx, p)
	}
	return p, nil
}

func (m *MockPredictionStore) FindLatestPrediction(ctx context.Context, matchID string) (*models.Prediction, error) {
	if m.FindLatestPredictionFunc != nil {
		return m.FindLatestPredictionFunc(ctx, matchID)
	}
	return nil, ErrPredictionNotFound
}

type MockLocker struct {
	AcquireFunc func(ctx context.Context, matchID string) (bool, error)
	released    []string
}

func (m *MockLocker) Acquire(ctx context.Context, matchID string) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, matchID)
	}
	return true, nil
}

func (m *MockLocker) Release(ctx context.Context, matchID string) {
	m.released = append(m.released, matchID)
}

type MockAuditQueue struct {
	enqueued []*models.PredictionAudit
}

func (m *MockAuditQueue) Enqueue(audit *models.PredictionAudit) bool {
	m.enqueued = append(m.enqueued, audit)
	return true
}

func (m *MockAuditQueue) QueueDepth() int { return len(m.enqueued) }
