package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matchiq/predictions-api/internal/logic"
	"github.com/matchiq/predictions-api/internal/models"
)

// ListCountries returns the supported countries
// @Summary List Countries
// @Tags Matches
// @Produce json
// @Success 200 {array} models.Country
// @Router /countries [get]
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.matches.ListCountries(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list countries", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list countries")
		return
	}

	h.jsonResponse(w, http.StatusOK, countries)
}

// ListTeams returns the teams tracked for a country
// @Summary List Teams
// @Tags Matches
// @Produce json
// @Param code path string true "ISO country code"
// @Success 200 {array} models.Team
// @Router /countries/{code}/teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		h.errorResponse(w, http.StatusBadRequest, "Country code is required")
		return
	}

	teams, err := h.matches.ListTeamsByCountry(r.Context(), code)
	if err != nil {
		h.logger.Errorw("Failed to list teams", "error", err, "country", code)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	h.jsonResponse(w, http.StatusOK, teams)
}

// ListMatches returns upcoming fixtures, optionally filtered by country
// @Summary List Upcoming Matches
// @Tags Matches
// @Produce json
// @Param country query string false "ISO country code"
// @Success 200 {array} models.Match
// @Router /matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")

	matches, err := h.matches.ListUpcomingMatches(r.Context(), country)
	if err != nil {
		h.logger.Errorw("Failed to list matches", "error", err, "country", country)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	h.jsonResponse(w, http.StatusOK, matches)
}

// GetMatch returns a single fixture by ID
// @Summary Get Match
// @Tags Matches
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchId} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")
	if matchID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Match ID is required")
		return
	}

	match, err := h.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, logic.ErrMatchNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Match not found")
			return
		}
		h.logger.Errorw("Failed to get match", "error", err, "matchID", matchID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get match")
		return
	}

	h.jsonResponse(w, http.StatusOK, match)
}

// CreateMatch schedules a fixture
// @Summary Create Match
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Fixture"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string "Validation error"
// @Router /matches [post]
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.HomeTeam == req.AwayTeam {
		h.errorResponse(w, http.StatusBadRequest, "Home and away team must differ")
		return
	}

	match, err := h.matches.CreateMatch(r.Context(), &req)
	if err != nil {
		h.logger.Errorw("Failed to create match", "error", err, "home", req.HomeTeam, "away", req.AwayTeam)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to create match")
		return
	}

	h.jsonResponse(w, http.StatusCreated, match)
}
