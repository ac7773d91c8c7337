package logic

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matchiq/predictions-api/internal/models"
)

// formWindow is how many recent results feed the form criteria.
const formWindow = 10

// CriteriaGatherer converts raw provider signals into the fixed-shape
// criteria vector. Every derivation is total: missing or malformed input
// yields the neutral prior, never an error, and the output always contains
// the complete key set.
type CriteriaGatherer interface {
	Gather(ctx context.Context, match *models.Match) (CriteriaVector, error)
}

type criteriaGatherer struct {
	provider DataProvider
	logger   *zap.SugaredLogger
}

func NewCriteriaGatherer(provider DataProvider, logger *zap.Logger) CriteriaGatherer {
	return &criteriaGatherer{provider: provider, logger: logger.Sugar()}
}

// rawSignals is the bundle of provider responses one generation call reads.
// A nil or empty field means the corresponding read failed or returned
// nothing; derivations fall back to neutral.
type rawSignals struct {
	homeStats    *models.TeamStatistics
	awayStats    *models.TeamStatistics
	homeForm     []models.FormResult
	awayForm     []models.FormResult
	headToHead   []models.H2HFixture
	homeInjuries []models.Injury
	awayInjuries []models.Injury
	weather      *models.Weather
	odds         []models.OddsRecord
}

// Gather issues the nine provider reads concurrently, then derives all 50
// criteria. Only context cancellation is returned as an error; individual
// read failures degrade the criteria they feed.
func (g *criteriaGatherer) Gather(ctx context.Context, match *models.Match) (CriteriaVector, error) {
	homeID, awayID := externalTeamID(match.HomeTeam), externalTeamID(match.AwayTeam)

	var raw rawSignals
	var eg errgroup.Group

	eg.Go(func() error {
		raw.homeStats = g.fetchStats(ctx, homeID)
		return nil
	})
	eg.Go(func() error {
		raw.awayStats = g.fetchStats(ctx, awayID)
		return nil
	})
	eg.Go(func() error {
		raw.homeForm = g.fetchForm(ctx, homeID)
		return nil
	})
	eg.Go(func() error {
		raw.awayForm = g.fetchForm(ctx, awayID)
		return nil
	})
	eg.Go(func() error {
		var err error
		if raw.headToHead, err = g.provider.HeadToHead(ctx, homeID, awayID, formWindow); err != nil {
			g.logger.Debugw("head-to-head read failed", "match", match.ID, "error", err)
			raw.headToHead = nil
		}
		return nil
	})
	eg.Go(func() error {
		raw.homeInjuries = g.fetchInjuries(ctx, homeID)
		return nil
	})
	eg.Go(func() error {
		raw.awayInjuries = g.fetchInjuries(ctx, awayID)
		return nil
	})
	eg.Go(func() error {
		var err error
		if raw.weather, err = g.provider.Weather(ctx, venueLocality(match.Venue)); err != nil {
			g.logger.Debugw("weather read failed", "match", match.ID, "error", err)
			raw.weather = nil
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if raw.odds, err = g.provider.Odds(ctx, match.ID); err != nil {
			g.logger.Debugw("odds read failed", "match", match.ID, "error", err)
			raw.odds = nil
		}
		return nil
	})

	eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return deriveCriteria(match, &raw), nil
}

func (g *criteriaGatherer) fetchStats(ctx context.Context, teamID int) *models.TeamStatistics {
	stats, err := g.provider.TeamStatistics(ctx, teamID)
	if err != nil {
		g.logger.Debugw("team statistics read failed", "team", teamID, "error", err)
		return nil
	}
	return stats
}

func (g *criteriaGatherer) fetchForm(ctx context.Context, teamID int) []models.FormResult {
	form, err := g.provider.TeamForm(ctx, teamID, formWindow)
	if err != nil {
		g.logger.Debugw("team form read failed", "team", teamID, "error", err)
		return nil
	}
	return form
}

func (g *criteriaGatherer) fetchInjuries(ctx context.Context, teamID int) []models.Injury {
	injuries, err := g.provider.Injuries(ctx, teamID)
	if err != nil {
		g.logger.Debugw("injuries read failed", "team", teamID, "error", err)
		return nil
	}
	return injuries
}

// deriveCriteria computes the full 50-key vector from whatever raw signals
// survived. Pure given its inputs.
func deriveCriteria(match *models.Match, raw *rawSignals) CriteriaVector {
	homeID := externalTeamID(match.HomeTeam)
	cv := NeutralCriteria()

	// Form (10)
	cv[CritHomeTeamForm] = formScore(raw.homeForm)
	cv[CritAwayTeamForm] = formScore(raw.awayForm)
	cv[CritHomeFormSpecific] = homeVenueForm(raw.homeStats)
	cv[CritAwayFormSpecific] = awayVenueForm(raw.awayStats)
	cv[CritGoalScoringForm] = scoringForm(raw.homeStats, raw.awayStats)
	cv[CritDefensiveForm] = defensiveForm(raw.homeStats, raw.awayStats)

	// Head-to-head and venue (5)
	cv[CritHeadToHeadRecord] = headToHeadScore(raw.headToHead, homeID)
	cv[CritPreviousMeetingOutcome] = previousMeetingOutcome(raw.headToHead, homeID)
	cv[CritScoringTrends] = scoringTrends(raw.headToHead)
	cv[CritConcedingTrends] = concedingTrends(raw.headToHead, homeID)
	cv[CritHomeAdvantage] = homeAdvantage(match.Venue)

	// Squad condition (9)
	cv[CritInjuryImpact] = injuryImpact(raw.homeInjuries, raw.awayInjuries)
	cv[CritKeyPlayerAvailability] = keyPlayerAvailability(raw.homeInjuries, raw.awayInjuries)
	cv[CritDisciplinaryRecord] = disciplinaryRecord(raw.homeStats, raw.awayStats)
	cv[CritPenaltyRecord] = penaltyRecord(raw.homeStats, raw.awayStats)

	// Tactical (8)
	cv[CritTacticalSetup] = tacticalSetup(raw.homeStats, raw.awayStats)
	cv[CritGoalkeepingForm] = goalkeepingForm(raw.homeStats, raw.awayStats)

	// External (8)
	cv[CritWeatherConditions] = weatherImpact(raw.weather)
	cv[CritCrowdSupport] = crowdSupport(match.Venue)

	// Market (5)
	cv[CritBettingOdds] = oddsImpact(raw.odds)

	// Psychological (4)
	cv[CritTeamMorale] = teamMorale(raw.homeForm, raw.awayForm)

	// The remaining keys have no upstream source in the provider surface
	// (fatigue, transfers, media sentiment, standings context, ...) and
	// stay at the neutral prior set by NeutralCriteria.

	return cv
}

func externalTeamID(team *models.Team) int {
	if team == nil {
		return 0
	}
	return team.ExternalID
}

// venueLocality extracts the city part of a "Stadium, City" venue string.
func venueLocality(venue string) string {
	if venue == "" {
		return ""
	}
	parts := strings.Split(venue, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
