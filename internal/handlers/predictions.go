package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matchiq/predictions-api/internal/logic"
)

// GetPrediction returns the latest stored prediction for a match
// @Summary Get Match Prediction
// @Tags Predictions
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} models.Prediction
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchId}/prediction [get]
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")
	if matchID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Match ID is required")
		return
	}

	pred, err := h.prediction.GetLatestPrediction(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, logic.ErrPredictionNotFound) {
			h.errorResponse(w, http.StatusNotFound, "No prediction for this match")
			return
		}
		h.logger.Errorw("Failed to get prediction", "error", err, "matchID", matchID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get prediction")
		return
	}

	h.jsonResponse(w, http.StatusOK, pred)
}

// GeneratePrediction runs the scoring engine for a match and stores the result
// @Summary Generate Match Prediction
// @Tags Predictions
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 201 {object} models.Prediction
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 409 {object} map[string]string "Generation already in progress"
// @Router /matches/{matchId}/prediction [post]
func (h *Handler) GeneratePrediction(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")
	if matchID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Match ID is required")
		return
	}

	pred, err := h.prediction.GeneratePrediction(r.Context(), matchID)
	if err != nil {
		switch {
		case errors.Is(err, logic.ErrMatchNotFound):
			h.errorResponse(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, logic.ErrGenerationInFlight):
			h.errorResponse(w, http.StatusConflict, "Prediction generation already in progress")
		case errors.Is(err, logic.ErrStorage):
			h.logger.Errorw("Prediction storage failed", "error", err, "matchID", matchID)
			h.errorResponse(w, http.StatusBadGateway, "Storage unavailable")
		default:
			h.logger.Errorw("Failed to generate prediction", "error", err, "matchID", matchID)
			h.errorResponse(w, http.StatusInternalServerError, "Failed to generate prediction")
		}
		return
	}

	h.jsonResponse(w, http.StatusCreated, pred)
}
