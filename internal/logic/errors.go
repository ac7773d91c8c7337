package logic

import "errors"

var (
	// ErrMatchNotFound means the referenced match does not exist; generation
	// fails without producing a prediction.
	ErrMatchNotFound = errors.New("match not found")

	// ErrPredictionNotFound means no prediction has been generated for the
	// match yet.
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrGenerationInFlight means another caller currently holds the
	// per-match generation lock.
	ErrGenerationInFlight = errors.New("prediction generation already in flight")

	// ErrStorage wraps failures of the persistence layer. A prediction that
	// failed to persist is discarded, never returned as if saved.
	ErrStorage = errors.New("storage failure")
)
