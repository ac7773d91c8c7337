package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/models"
)

// ModelVersion tags every assembled prediction.
const ModelVersion = "v2.0-comprehensive"

var (
	predictionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predictions_generated_total",
		Help: "Total number of predictions generated successfully",
	})

	predictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predictions_failed_total",
		Help: "Total number of prediction generations that failed",
	})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_generation_duration_seconds",
		Help:    "End-to-end duration of prediction generation",
		Buckets: prometheus.DefBuckets,
	})
)

type predictionService struct {
	matches  MatchStore
	store    PredictionStore
	gatherer CriteriaGatherer
	evidence EvidenceCollector
	locker   GenerationLocker
	audit    AuditQueue
	weights  WeightTable
	logger   *zap.SugaredLogger
	now      func() time.Time
	newID    func() string
}

// PredictionServiceConfig wires the collaborators of the prediction
// engine. Locker and Audit are optional; absent, locking and audit
// logging are skipped.
type PredictionServiceConfig struct {
	Matches  MatchStore
	Store    PredictionStore
	Provider DataProvider
	Locker   GenerationLocker
	Audit    AuditQueue
	Weights  WeightTable
	Logger   *zap.Logger
}

func NewPredictionService(cfg PredictionServiceConfig) PredictionService {
	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights
	}
	return &predictionService{
		matches:  cfg.Matches,
		store:    cfg.Store,
		gatherer: NewCriteriaGatherer(cfg.Provider, cfg.Logger),
		evidence: NewEvidenceCollector(cfg.Provider, cfg.Logger),
		locker:   cfg.Locker,
		audit:    cfg.Audit,
		weights:  weights,
		logger:   cfg.Logger.Sugar(),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// GeneratePrediction runs the full scoring pipeline for a scheduled match
// and persists the assembled record. The criteria vector is built once and
// shared by every downstream component of this call; it is never re-fetched
// mid-call and never outlives it.
func (s *predictionService) GeneratePrediction(ctx context.Context, matchID string) (*models.Prediction, error) {
	start := s.now()

	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		predictionsFailed.Inc()
		if errors.Is(err, ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load match %s: %v", ErrStorage, matchID, err)
	}

	if s.locker != nil {
		acquired, err := s.locker.Acquire(ctx, matchID)
		if err != nil {
			// Lock service being down should not block predictions.
			s.logger.Warnw("generation lock unavailable, proceeding", "match", matchID, "error", err)
		} else if !acquired {
			return nil, ErrGenerationInFlight
		} else {
			defer s.locker.Release(ctx, matchID)
		}
	}

	criteria, err := s.gatherer.Gather(ctx, match)
	if err != nil {
		predictionsFailed.Inc()
		return nil, fmt.Errorf("gather criteria: %w", err)
	}

	probs := PredictProbabilities(criteria, s.weights)
	importance := RankFeatureImportance(criteria)
	evidence := s.evidence.Collect(ctx, match)
	confidence := EstimateConfidence(criteria, evidence)
	reasoning := GenerateReasoning(criteria, probs, match)

	if err := ctx.Err(); err != nil {
		predictionsFailed.Inc()
		return nil, err
	}

	prediction := &models.Prediction{
		ID:                 s.newID(),
		MatchID:            match.ID,
		HomeWinProb:        probs.Home,
		DrawProb:           probs.Draw,
		AwayWinProb:        probs.Away,
		PredictedHomeScore: PredictScore(criteria, HomeSide),
		PredictedAwayScore: PredictScore(criteria, AwaySide),
		ConfidenceScore:    confidence,
		ModelVersion:       ModelVersion,
		FeatureImportance:  importance,
		EvidenceSnippets:   evidence,
		Reasoning:          reasoning,
		CreatedAt:          s.now().UTC(),
	}

	stored, err := s.store.InsertPrediction(ctx, prediction)
	if err != nil {
		predictionsFailed.Inc()
		return nil, fmt.Errorf("%w: insert prediction for match %s: %v", ErrStorage, matchID, err)
	}

	elapsed := s.now().Sub(start)
	predictionsGenerated.Inc()
	generationDuration.Observe(elapsed.Seconds())

	if s.audit != nil {
		s.audit.Enqueue(&models.PredictionAudit{
			PredictionID: stored.ID,
			MatchID:      stored.MatchID,
			ModelVersion: stored.ModelVersion,
			HomeWinProb:  stored.HomeWinProb,
			DrawProb:     stored.DrawProb,
			AwayWinProb:  stored.AwayWinProb,
			Confidence:   stored.ConfidenceScore,
			HomeScore:    stored.PredictedHomeScore,
			AwayScore:    stored.PredictedAwayScore,
			EvidenceLen:  len(stored.EvidenceSnippets),
			DurationMs:   elapsed.Milliseconds(),
			CreatedAt:    stored.CreatedAt,
		})
	}

	s.logger.Infow("prediction generated",
		"match", matchID,
		"home", stored.HomeWinProb,
		"draw", stored.DrawProb,
		"away", stored.AwayWinProb,
		"confidence", stored.ConfidenceScore,
		"duration", elapsed,
	)

	return stored, nil
}

// GetLatestPrediction returns the most recently created prediction for the
// match, or ErrPredictionNotFound.
func (s *predictionService) GetLatestPrediction(ctx context.Context, matchID string) (*models.Prediction, error) {
	prediction, err := s.store.FindLatestPrediction(ctx, matchID)
	if err != nil {
		if errors.Is(err, ErrPredictionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: find prediction for match %s: %v", ErrStorage, matchID, err)
	}
	return prediction, nil
}
