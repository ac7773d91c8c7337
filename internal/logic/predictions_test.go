package logic

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/models"
)

func newTestService(matches *MockMatchStore, store *MockPredictionStore, locker *MockLocker, audit *MockAuditQueue) PredictionService {
	return NewPredictionService(PredictionServiceConfig{
		Matches:  matches,
		Store:    store,
		Provider: &MockDataProvider{},
		Locker:   locker,
		Audit:    audit,
		Logger:   zap.NewNop(),
	})
}

func TestGeneratePrediction_DegradedPipeline(t *testing.T) {
	// Every provider read fails: the engine must still produce a complete,
	// neutral-prior prediction rather than an error.
	store := &MockPredictionStore{}
	locker := &MockLocker{}
	audit := &MockAuditQueue{}
	svc := newTestService(&MockMatchStore{
		GetMatchFunc: func(ctx context.Context, id string) (*models.Match, error) {
			return &models.Match{
				ID:       id,
				HomeTeam: &models.Team{Name: "Malmö FF", ExternalID: 10},
				AwayTeam: &models.Team{Name: "AIK", ExternalID: 11},
			}, nil
		},
	}, store, locker, audit)

	pred, err := svc.GeneratePrediction(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("GeneratePrediction: %v", err)
	}

	if pred.ID == "" {
		t.Error("prediction ID not assigned")
	}
	if pred.MatchID != "match-1" {
		t.Errorf("MatchID = %q", pred.MatchID)
	}
	if pred.ModelVersion != ModelVersion {
		t.Errorf("ModelVersion = %q, want %q", pred.ModelVersion, ModelVersion)
	}

	// All-neutral vector: draw hits its ceiling, home and away keep their
	// normalized shares.
	if pred.DrawProb != maxDrawProb {
		t.Errorf("DrawProb = %v, want %v", pred.DrawProb, maxDrawProb)
	}
	if math.Abs(pred.HomeWinProb-0.35/1.675) > epsilon {
		t.Errorf("HomeWinProb = %.9f, want %.9f", pred.HomeWinProb, 0.35/1.675)
	}
	if math.Abs(pred.AwayWinProb-0.40/1.675) > epsilon {
		t.Errorf("AwayWinProb = %.9f, want %.9f", pred.AwayWinProb, 0.40/1.675)
	}

	if pred.PredictedHomeScore != 1 || pred.PredictedAwayScore != 1 {
		t.Errorf("score = %d-%d, want 1-1", pred.PredictedHomeScore, pred.PredictedAwayScore)
	}

	// Only the two synthetic notes survive a dead news source; confidence
	// is base + their average confidence times the evidence bonus.
	if len(pred.EvidenceSnippets) != 2 {
		t.Errorf("evidence len = %d, want 2", len(pred.EvidenceSnippets))
	}
	wantConfidence := baseConfidence + (modelNoteConfidence+tacticalNoteConfidence)/2*evidenceBonus
	if math.Abs(pred.ConfidenceScore-wantConfidence) > epsilon {
		t.Errorf("ConfidenceScore = %.9f, want %.9f", pred.ConfidenceScore, wantConfidence)
	}

	if pred.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d predictions, want 1", len(store.inserted))
	}
	if len(audit.enqueued) != 1 {
		t.Fatalf("enqueued %d audit rows, want 1", len(audit.enqueued))
	}
	row := audit.enqueued[0]
	if row.PredictionID != pred.ID || row.MatchID != "match-1" || row.EvidenceLen != 2 {
		t.Errorf("audit row = %+v", row)
	}
	if len(locker.released) != 1 || locker.released[0] != "match-1" {
		t.Errorf("lock releases = %v, want [match-1]", locker.released)
	}
}

func TestGeneratePrediction_MatchNotFound(t *testing.T) {
	svc := newTestService(&MockMatchStore{
		GetMatchFunc: func(ctx context.Context, id string) (*models.Match, error) {
			return nil, ErrMatchNotFound
		},
	}, &MockPredictionStore{}, &MockLocker{}, &MockAuditQueue{})

	_, err := svc.GeneratePrediction(context.Background(), "missing")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("err = %v, want ErrMatchNotFound", err)
	}
}

func TestGeneratePrediction_LockBusy(t *testing.T) {
	store := &MockPredictionStore{}
	svc := newTestService(&MockMatchStore{}, store, &MockLocker{
		AcquireFunc: func(ctx context.Context, matchID string) (bool, error) {
			return false, nil
		},
	}, &MockAuditQueue{})

	_, err := svc.GeneratePrediction(context.Background(), "match-1")
	if !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("err = %v, want ErrGenerationInFlight", err)
	}
	if len(store.inserted) != 0 {
		t.Errorf("inserted %d predictions while locked, want 0", len(store.inserted))
	}
}

func TestGeneratePrediction_LockServiceDownProceeds(t *testing.T) {
	locker := &MockLocker{
		AcquireFunc: func(ctx context.Context, matchID string) (bool, error) {
			return false, errors.New("redis down")
		},
	}
	svc := newTestService(&MockMatchStore{}, &MockPredictionStore{}, locker, &MockAuditQueue{})

	if _, err := svc.GeneratePrediction(context.Background(), "match-1"); err != nil {
		t.Fatalf("lock outage must not block generation: %v", err)
	}
	if len(locker.released) != 0 {
		t.Errorf("released a lock that was never acquired: %v", locker.released)
	}
}

func TestGeneratePrediction_InsertFailure(t *testing.T) {
	svc := newTestService(&MockMatchStore{}, &MockPredictionStore{
		InsertPredictionFunc: func(ctx context.Context, p *models.Prediction) (*models.Prediction, error) {
			return nil, errors.New("connection refused")
		},
	}, &MockLocker{}, &MockAuditQueue{})

	_, err := svc.GeneratePrediction(context.Background(), "match-1")
	if !errors.Is(err, ErrStorage) {
		t.Errorf("err = %v, want ErrStorage", err)
	}
}

func TestGetLatestPrediction_ErrorMapping(t *testing.T) {
	svc := newTestService(&MockMatchStore{}, &MockPredictionStore{}, &MockLocker{}, &MockAuditQueue{})

	if _, err := svc.GetLatestPrediction(context.Background(), "match-1"); !errors.Is(err, ErrPredictionNotFound) {
		t.Errorf("err = %v, want ErrPredictionNotFound", err)
	}

	svc = newTestService(&MockMatchStore{}, &MockPredictionStore{
		FindLatestPredictionFunc: func(ctx context.Context, matchID string) (*models.Prediction, error) {
			return nil, errors.New("connection refused")
		},
	}, &MockLocker{}, &MockAuditQueue{})

	if _, err := svc.GetLatestPrediction(context.Background(), "match-1"); !errors.Is(err, ErrStorage) {
		t.Errorf("err = %v, want ErrStorage", err)
	}
}

func TestGetLatestPrediction_SecondGenerationSupersedesFirst(t *testing.T) {
	store := &MockPredictionStore{}
	store.FindLatestPredictionFunc = func(ctx context.Context, matchID string) (*models.Prediction, error) {
		var latest *models.Prediction
		for _, p := range store.inserted {
			if p.MatchID != matchID {
				continue
			}
			if latest == nil || !p.CreatedAt.Before(latest.CreatedAt) {
				latest = p
			}
		}
		if latest == nil {
			return nil, ErrPredictionNotFound
		}
		return latest, nil
	}
	svc := newTestService(&MockMatchStore{}, store, &MockLocker{}, &MockAuditQueue{})

	first, err := svc.GeneratePrediction(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("first GeneratePrediction: %v", err)
	}
	second, err := svc.GeneratePrediction(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("second GeneratePrediction: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("regeneration must append a new record, not reuse the first")
	}
	if len(store.inserted) != 2 {
		t.Fatalf("inserted %d predictions, want 2", len(store.inserted))
	}

	got, err := svc.GetLatestPrediction(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("GetLatestPrediction: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("latest = %s, want the newer prediction %s", got.ID, second.ID)
	}
}

func TestGetLatestPrediction_ReturnsStored(t *testing.T) {
	want := &models.Prediction{ID: "pred-1", MatchID: "match-1"}
	svc := newTestService(&MockMatchStore{}, &MockPredictionStore{
		FindLatestPredictionFunc: func(ctx context.Context, matchID string) (*models.Prediction, error) {
			return want, nil
		},
	}, &MockLocker{}, &MockAuditQueue{})

	got, err := svc.GetLatestPrediction(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("GetLatestPrediction: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
