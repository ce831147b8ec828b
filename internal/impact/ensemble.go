package impact

import (
	"context"
	"fmt"
	"math"
	"strings"

	"news-impact-engine/internal/types"
)

const combinedConfidenceCap = 0.95

// Combiner reconciles the rule-based verdict with an optional learned-model
// verdict using confidence-weighted scoring.
type Combiner struct {
	config EnsembleConfig
}

// NewCombiner creates a new combiner with the given configuration.
func NewCombiner(config EnsembleConfig) *Combiner {
	return &Combiner{config: config}
}

// Combine implements interfaces.VerdictCombiner. A nil learned verdict
// degrades to a rule-based-only passthrough, annotated in the rationale.
func (c *Combiner) Combine(_ context.Context, rule types.ImpactVerdict, learned *types.ImpactVerdict) (types.CombinedVerdict, error) {
	if learned == nil {
		return types.CombinedVerdict{
			ImpactVerdict: types.ImpactVerdict{
				Classification: rule.Classification,
				Confidence:     rule.Confidence,
				Rationale:      rule.Rationale + " (ML model not available or not trained)",
				Score:          rule.Classification.Score(),
			},
			Method: types.MethodRuleBasedOnly,
		}, nil
	}

	learnedWeight := c.config.LearnedWeightLow
	if learned.Confidence > c.config.HighConfidenceCutoff {
		learnedWeight = c.config.LearnedWeightHigh
	}
	ruleWeight := 1 - learnedWeight

	combinedScore := learned.Classification.Score()*learnedWeight*learned.Confidence +
		rule.Classification.Score()*ruleWeight*rule.Confidence

	classification, ok := types.FromScore(combinedScore)
	if !ok {
		// Near-zero band: defer to whichever source was more confident,
		// rule winning the tie.
		classification = rule.Classification
		if learned.Confidence > rule.Confidence {
			classification = learned.Classification
		}
	}

	confidence := math.Min(combinedConfidenceCap,
		learned.Confidence*learnedWeight+rule.Confidence*ruleWeight)

	rationale := fmt.Sprintf(
		"Enhanced prediction combining rule-based analysis (%.0f%% confidence) with ML model insights (%.0f%% confidence). Rule-based: %s. ML: %s. Combined result: %s.",
		rule.Confidence*100,
		learned.Confidence*100,
		humanize(rule.Classification),
		humanize(learned.Classification),
		humanize(classification))

	return types.CombinedVerdict{
		ImpactVerdict: types.ImpactVerdict{
			Classification: classification,
			Confidence:     confidence,
			Rationale:      rationale,
			Score:          combinedScore,
		},
		Method: types.MethodCombined,
	}, nil
}

func humanize(label types.Sentiment) string {
	return strings.ReplaceAll(string(label), "_", " ")
}
