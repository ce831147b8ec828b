package impact

import (
	"context"
	"math"
	"strings"
	"testing"

	"news-impact-engine/internal/types"
)

func verdict(label types.Sentiment, confidence float64) types.ImpactVerdict {
	return types.ImpactVerdict{
		Classification: label,
		Confidence:     confidence,
		Rationale:      "test rationale",
		Score:          label.Score(),
	}
}

func TestCombineWithoutLearned(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())
	rule := verdict(types.ModeratelyPositive, 0.8)

	combined, err := combiner.Combine(context.Background(), rule, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if combined.Method != types.MethodRuleBasedOnly {
		t.Errorf("Expected rule_based_only method, got %s", combined.Method)
	}
	if combined.Classification != rule.Classification {
		t.Errorf("Expected passthrough classification, got %s", combined.Classification)
	}
	if combined.Confidence != rule.Confidence {
		t.Errorf("Expected passthrough confidence, got %f", combined.Confidence)
	}
	if !strings.Contains(combined.Rationale, "ML model not available") {
		t.Errorf("Expected rationale note about missing model: %q", combined.Rationale)
	}
}

func TestCombineAgreementStrengthens(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())
	rule := verdict(types.StronglyPositive, 0.9)
	learned := verdict(types.StronglyPositive, 0.9)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// 3*0.7*0.9 + 3*0.3*0.9 = 2.7
	if math.Abs(combined.Score-2.7) > 1e-9 {
		t.Errorf("Expected combined score 2.7, got %f", combined.Score)
	}
	if combined.Classification != types.StronglyPositive {
		t.Errorf("Expected strongly_positive, got %s", combined.Classification)
	}
	if combined.Method != types.MethodCombined {
		t.Errorf("Expected combined method, got %s", combined.Method)
	}
	// 0.9*0.7 + 0.9*0.3 = 0.9
	if math.Abs(combined.Confidence-0.9) > 1e-9 {
		t.Errorf("Expected confidence 0.9, got %f", combined.Confidence)
	}
}

func TestCombineConflictLeansTowardLearned(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())
	rule := verdict(types.StronglyPositive, 0.9)
	learned := verdict(types.StronglyNegative, 0.9)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// -3*0.7*0.9 + 3*0.3*0.9 = -1.08, outside the tie band.
	if math.Abs(combined.Score-(-1.08)) > 1e-9 {
		t.Errorf("Expected combined score -1.08, got %f", combined.Score)
	}
	if combined.Classification != types.ModeratelyNegative {
		t.Errorf("Expected moderately_negative, got %s", combined.Classification)
	}
}

func TestCombineNearZeroTieBreak(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())

	// Equal low confidence keeps both weights at 0.5 and the scores cancel
	// exactly; the rule verdict wins the equal-confidence tie.
	rule := verdict(types.StronglyPositive, 0.5)
	learned := verdict(types.StronglyNegative, 0.5)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(combined.Score) > 1e-9 {
		t.Errorf("Expected near-zero combined score, got %f", combined.Score)
	}
	if combined.Classification != types.StronglyPositive {
		t.Errorf("Expected rule classification to win the tie, got %s", combined.Classification)
	}
}

func TestCombineNearZeroPrefersMoreConfidentLearned(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())

	// Scores land inside the band but the learned source is more confident.
	rule := verdict(types.SlightlyPositive, 0.3)
	learned := verdict(types.SlightlyNegative, 0.5)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// -1*0.5*0.5 + 1*0.5*0.3 = -0.1, inside the band.
	if combined.Classification != types.SlightlyNegative {
		t.Errorf("Expected learned classification, got %s", combined.Classification)
	}
}

func TestCombineConfidenceCap(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())
	rule := verdict(types.StronglyPositive, 1.0)
	learned := verdict(types.StronglyPositive, 1.0)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if combined.Confidence > 0.95 {
		t.Errorf("Expected confidence capped at 0.95, got %f", combined.Confidence)
	}
}

func TestCombineLowLearnedConfidenceLowersWeight(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())
	rule := verdict(types.ModeratelyPositive, 0.9)
	learned := verdict(types.ModeratelyNegative, 0.5)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Learned confidence 0.5 <= 0.6 cutoff, so weights split evenly:
	// -2*0.5*0.5 + 2*0.5*0.9 = 0.4, slightly_positive.
	if math.Abs(combined.Score-0.4) > 1e-9 {
		t.Errorf("Expected combined score 0.4, got %f", combined.Score)
	}
	if combined.Classification != types.SlightlyPositive {
		t.Errorf("Expected slightly_positive, got %s", combined.Classification)
	}
}

func TestCombineRationaleMentionsBothSources(t *testing.T) {
	combiner := NewCombiner(DefaultEnsembleConfig())
	rule := verdict(types.ModeratelyPositive, 0.8)
	learned := verdict(types.SlightlyPositive, 0.7)

	combined, err := combiner.Combine(context.Background(), rule, &learned)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, want := range []string{"80% confidence", "70% confidence", "moderately positive", "slightly positive"} {
		if !strings.Contains(combined.Rationale, want) {
			t.Errorf("Rationale missing %q: %q", want, combined.Rationale)
		}
	}
}
