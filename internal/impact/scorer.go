package impact

import (
	"context"
	"fmt"
	"math"
	"strings"

	"news-impact-engine/internal/types"
)

// Fixed cascade thresholds. The share bounds gate on how much of the batch
// sits at a given intensity grade; the weighted bounds gate on the graded
// population score (levels weighted 3/2/1).
const (
	dominantShareBound  = 0.3
	strongWeightedBound = 1.5
	modestWeightedBound = 1.0
	strongNetBound      = 1.0
	modestNetBound      = 0.5
	levelWeightStrongly = 3.0
	levelWeightModerate = 2.0
	levelWeightSlightly = 1.0
	fallbackConfidence  = 0.5
)

// RuleScorer aggregates per-item sentiment classifications into one
// six-level directional verdict with confidence and a textual rationale.
// It is stateless; every call is pure given its inputs.
type RuleScorer struct {
	config Config
}

// NewRuleScorer creates a new scorer with the given configuration.
func NewRuleScorer(config Config) *RuleScorer {
	return &RuleScorer{config: config}
}

// batchStats carries everything the cascade needs to pick a side and grade.
type batchStats struct {
	shares        map[types.Sentiment]float64 // population share per label
	counts        map[types.Sentiment]int
	weightedPos   float64
	weightedNeg   float64
	netWeighted   float64
	totalWeighted float64
}

// classificationRule is one step of the ordered cascade. Rules are evaluated
// in sequence; the first applicable rule wins.
type classificationRule struct {
	label   types.Sentiment
	cap     float64
	applies func(st batchStats) bool
}

// Score implements interfaces.ImpactScorer. Empty or zero-weight input yields
// the fixed default verdict and never an error.
func (s *RuleScorer) Score(_ context.Context, items []types.SentimentItem) (types.ImpactVerdict, error) {
	if len(items) == 0 {
		return defaultVerdict("No articles available for prediction."), nil
	}

	// Weighted aggregation: each item contributes score x intensity
	// multiplier into its polarity bucket.
	var posWeight, negWeight, totalWeight float64
	counts := make(map[types.Sentiment]int)
	for _, item := range items {
		weight := item.Score * s.intensityMultiplier(item.Sentiment)
		switch polarity(item.Sentiment) {
		case sidePositive:
			posWeight += weight
		case sideNegative:
			negWeight += weight
		}
		totalWeight += weight
		counts[item.Sentiment]++
	}

	if totalWeight == 0 {
		return defaultVerdict("Insufficient data for prediction."), nil
	}

	st := buildStats(items, counts)

	label, cap := s.classify(st)
	confidence := s.confidence(st, label, cap)
	rationale := s.buildRationale(items, st, label)

	return types.ImpactVerdict{
		Classification: label,
		Confidence:     confidence,
		Rationale:      rationale,
		Score:          label.Score(),
	}, nil
}

// buildStats computes per-label population shares and the graded directional
// scores (levels weighted 3/2/1 by intensity).
func buildStats(items []types.SentimentItem, counts map[types.Sentiment]int) batchStats {
	total := float64(len(items))
	shares := make(map[types.Sentiment]float64, len(types.AllSentiments))
	for _, label := range types.AllSentiments {
		shares[label] = float64(counts[label]) / total
	}

	weightedPos := shares[types.StronglyPositive]*levelWeightStrongly +
		shares[types.ModeratelyPositive]*levelWeightModerate +
		shares[types.SlightlyPositive]*levelWeightSlightly
	weightedNeg := shares[types.StronglyNegative]*levelWeightStrongly +
		shares[types.ModeratelyNegative]*levelWeightModerate +
		shares[types.SlightlyNegative]*levelWeightSlightly

	return batchStats{
		shares:        shares,
		counts:        counts,
		weightedPos:   weightedPos,
		weightedNeg:   weightedNeg,
		netWeighted:   weightedPos - weightedNeg,
		totalWeighted: weightedPos + weightedNeg,
	}
}

// classify runs the ordered cascade for the winning side. The exact tie
// (netWeighted == 0) falls back to raw item counts, defaulting positive.
func (s *RuleScorer) classify(st batchStats) (types.Sentiment, float64) {
	switch {
	case st.netWeighted > 0:
		return firstApplicable(s.positiveRules(), st)
	case st.netWeighted < 0:
		return firstApplicable(s.negativeRules(), st)
	}

	posCount := st.counts[types.StronglyPositive] + st.counts[types.ModeratelyPositive] + st.counts[types.SlightlyPositive]
	negCount := st.counts[types.StronglyNegative] + st.counts[types.ModeratelyNegative] + st.counts[types.SlightlyNegative]
	if posCount >= negCount {
		return types.SlightlyPositive, fallbackConfidence
	}
	return types.SlightlyNegative, fallbackConfidence
}

func firstApplicable(rules []classificationRule, st batchStats) (types.Sentiment, float64) {
	for _, rule := range rules {
		if rule.applies(st) {
			return rule.label, rule.cap
		}
	}
	// Unreachable: the last rule of each cascade always applies.
	return types.SlightlyPositive, fallbackConfidence
}

func (s *RuleScorer) positiveRules() []classificationRule {
	return []classificationRule{
		{
			label: types.StronglyPositive,
			cap:   s.config.Caps.Strongly,
			applies: func(st batchStats) bool {
				return st.shares[types.StronglyPositive] > dominantShareBound ||
					(st.weightedPos > strongWeightedBound && st.netWeighted > strongNetBound)
			},
		},
		{
			label: types.ModeratelyPositive,
			cap:   s.config.Caps.Moderately,
			applies: func(st batchStats) bool {
				return st.shares[types.ModeratelyPositive] > dominantShareBound ||
					(st.weightedPos > modestWeightedBound && st.netWeighted > modestNetBound)
			},
		},
		{
			label:   types.SlightlyPositive,
			cap:     s.config.Caps.Slightly,
			applies: func(batchStats) bool { return true },
		},
	}
}

func (s *RuleScorer) negativeRules() []classificationRule {
	return []classificationRule{
		{
			label: types.StronglyNegative,
			cap:   s.config.Caps.Strongly,
			applies: func(st batchStats) bool {
				return st.shares[types.StronglyNegative] > dominantShareBound ||
					(st.weightedNeg > strongWeightedBound && math.Abs(st.netWeighted) > strongNetBound)
			},
		},
		{
			label: types.ModeratelyNegative,
			cap:   s.config.Caps.Moderately,
			applies: func(st batchStats) bool {
				return st.shares[types.ModeratelyNegative] > dominantShareBound ||
					(st.weightedNeg > modestWeightedBound && math.Abs(st.netWeighted) > modestNetBound)
			},
		},
		{
			label:   types.SlightlyNegative,
			cap:     s.config.Caps.Slightly,
			applies: func(batchStats) bool { return true },
		},
	}
}

// confidence is the dominant side's share of the graded population score,
// bounded by the cap of the chosen intensity grade.
func (s *RuleScorer) confidence(st batchStats, label types.Sentiment, cap float64) float64 {
	if st.totalWeighted == 0 {
		return fallbackConfidence
	}
	dominant := st.weightedPos
	if !label.Positive() {
		dominant = st.weightedNeg
	}
	if st.netWeighted == 0 {
		return fallbackConfidence
	}
	return math.Min(cap, dominant/st.totalWeighted)
}

// classificationNotes is the fixed closing sentence per verdict.
var classificationNotes = map[types.Sentiment]string{
	types.StronglyPositive:   "Strong positive sentiment with clear upward momentum suggests significant potential for price appreciation.",
	types.ModeratelyPositive: "Moderate positive sentiment indicates favorable conditions with potential for modest upward movement.",
	types.SlightlyPositive:   "Slight positive bias suggests minimal upward pressure, but sentiment is not strongly bullish.",
	types.SlightlyNegative:   "Slight negative bias suggests minimal downward pressure, but sentiment is not strongly bearish.",
	types.ModeratelyNegative: "Moderate negative sentiment indicates unfavorable conditions with potential for modest downward movement.",
	types.StronglyNegative:   "Strong negative sentiment with clear downward momentum suggests significant potential for price decline.",
}

// buildRationale reports the six population percentages followed by the
// fixed sentence for the chosen classification.
func (s *RuleScorer) buildRationale(items []types.SentimentItem, st batchStats, label types.Sentiment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on %d articles analyzed: ", len(items))
	fmt.Fprintf(&b, "%.1f%% strongly positive, %.1f%% moderately positive, %.1f%% slightly positive, ",
		st.shares[types.StronglyPositive]*100,
		st.shares[types.ModeratelyPositive]*100,
		st.shares[types.SlightlyPositive]*100)
	fmt.Fprintf(&b, "%.1f%% slightly negative, %.1f%% moderately negative, %.1f%% strongly negative. ",
		st.shares[types.SlightlyNegative]*100,
		st.shares[types.ModeratelyNegative]*100,
		st.shares[types.StronglyNegative]*100)
	b.WriteString(classificationNotes[label])
	return b.String()
}

// intensityMultiplier maps the label's intensity prefix to its weight.
// Unknown labels get full weight.
func (s *RuleScorer) intensityMultiplier(label types.Sentiment) float64 {
	switch {
	case strings.HasPrefix(string(label), "strongly_"):
		return s.config.Multipliers.Strongly
	case strings.HasPrefix(string(label), "moderately_"):
		return s.config.Multipliers.Moderately
	case strings.HasPrefix(string(label), "slightly_"):
		return s.config.Multipliers.Slightly
	}
	return 1.0
}

type side int

const (
	sideNeutral side = iota
	sidePositive
	sideNegative
)

// polarity strips the intensity grade off a label. Labels outside the known
// six (mixed, neutral, future additions) fold into the neutral bucket and
// take no qualitative side.
func polarity(label types.Sentiment) side {
	switch {
	case strings.HasSuffix(string(label), "positive"):
		return sidePositive
	case strings.HasSuffix(string(label), "negative"):
		return sideNegative
	}
	return sideNeutral
}

func defaultVerdict(reason string) types.ImpactVerdict {
	return types.ImpactVerdict{
		Classification: types.SlightlyPositive,
		Confidence:     fallbackConfidence,
		Rationale:      reason,
		Score:          types.SlightlyPositive.Score(),
	}
}
