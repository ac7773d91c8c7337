package logic

import "github.com/matchiq/predictions-api/internal/models"

// Confidence bounds and term weights.
const (
	baseConfidence      = 0.50
	minConfidence       = 0.30
	maxConfidence       = 0.95
	completenessBonus   = 0.30
	evidenceBonus       = 0.20
	consensusBonus      = 0.20
	consensusHighCutoff = 0.6
	consensusLowCutoff  = 0.4
)

// EstimateConfidence summarizes data completeness, evidence quality and
// directional consensus into a single scalar in [0.30, 0.95]. Pure given
// its inputs.
//
// Completeness counts criteria flagged informative by the gatherer, not
// merely non-zero values, so neutral defaults never inflate confidence.
// The evidence term is skipped entirely (not zeroed against a division by
// zero) when no evidence was collected.
func EstimateConfidence(cv CriteriaVector, evidence []models.EvidenceSnippet) float64 {
	confidence := baseConfidence

	informative := 0
	homeLeaning := 0
	awayLeaning := 0
	for _, key := range CriteriaKeys {
		c := cv[key]
		if c.Informative {
			informative++
		}
		if c.Value > consensusHighCutoff {
			homeLeaning++
		} else if c.Value < consensusLowCutoff {
			awayLeaning++
		}
	}

	confidence += float64(informative) / CriteriaCount * completenessBonus

	if len(evidence) > 0 {
		var sum float64
		for _, e := range evidence {
			sum += e.Confidence
		}
		confidence += sum / float64(len(evidence)) * evidenceBonus
	}

	consensus := homeLeaning
	if awayLeaning > consensus {
		consensus = awayLeaning
	}
	confidence += float64(consensus) / CriteriaCount * consensusBonus

	return clamp(confidence, minConfidence, maxConfidence)
}
