package handlers

import (
	"context"

	"github.com/matchiq/predictions-api/internal/models"
)

// Mocks

type MockMatchStore struct {
	GetMatchFunc            func(ctx context.Context, id string) (*models.Match, error)
	ListUpcomingMatchesFunc func(ctx context.Context, countryCode string) ([]models.Match, error)
	CreateMatchFunc         func(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error)
	ListCountriesFunc       func(ctx context.Context) ([]models.Country, error)
	ListTeamsByCountryFunc  func(ctx context.Context, countryCode string) ([]models.Team, error)
}

func (m *MockMatchStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, id)
	}
	return &models.Match{ID: id}, nil
}

func (m *MockMatchStore) ListUpcomingMatches(ctx context.Context, countryCode string) ([]models.Match, error) {
	if m.ListUpcomingMatchesFunc != nil {
		return m.ListUpcomingMatchesFunc(ctx, countryCode)
	}
	return []models.Match{}, nil
}

func (m *MockMatchStore) CreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error) {
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(ctx, req)
	}
	return &models.Match{}, nil
}

func (m *MockMatchStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	if m.ListCountriesFunc != nil {
		return m.ListCountriesFunc(ctx)
	}
	return []models.Country{}, nil
}

func (m *MockMatchStore) ListTeamsByCountry(ctx context.Context, countryCode string) ([]models.Team, error) {
	if m.ListTeamsByCountryFunc != nil {
		return m.ListTeamsByCountryFunc(ctx, countryCode)
	}
	return []models.Team{}, nil
}

type MockPredictionService struct {
	GeneratePredictionFunc  func(ctx context.Context, matchID string) (*models.Prediction, error)
	GetLatestPredictionFunc func(ctx context.Context, matchID string) (*models.Prediction, error)
}

func (m *MockPredictionService) GeneratePrediction(ctx context.Context, matchID string) (*models.Prediction, error) {
	if m.GeneratePredictionFunc != nil {
		return m.GeneratePredictionFunc(ctx, matchID)
	}
	return &models.Prediction{MatchID: matchID}, nil
}

func (m *MockPredictionService) GetLatestPrediction(ctx context.Context, matchID string) (*models.Prediction, error) {
	if m.GetLatestPredictionFunc != nil {
		return m.GetLatestPredictionFunc(ctx, matchID)
	}
	return &models.Prediction{MatchID: matchID}, nil
}

type MockAuditQueue struct {
	EnqueueFunc func(audit *models.PredictionAudit) bool
}

func (m *MockAuditQueue) Enqueue(audit *models.PredictionAudit) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(audit)
	}
	return true
}
func (m *MockAuditQueue) QueueDepth() int { return 0 }
