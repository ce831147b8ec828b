// Package ml provides the optional learned impact scorer, backed by an
// ONNX model trained on historical sentiment batches. Any load or inference
// failure means "unavailable"; callers degrade to rule-based-only scoring.
package ml

import (
	"context"
	"fmt"
	"math"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/types"
)

// featureCount is the width of the model input: six per-label population
// shares, the mean sentiment score, and a capped batch-size term.
const featureCount = 8

// Scorer is the learned counterpart of the rule-based impact scorer.
type Scorer struct {
	model *ONNXModel
}

var _ interfaces.LearnedScorer = (*Scorer)(nil)

// NewScorer loads the model from modelPath. A missing or unreadable model
// is an error; the caller decides whether to run without a learned scorer.
func NewScorer(modelPath string) (*Scorer, error) {
	model, err := LoadONNXModel(modelPath)
	if err != nil {
		return nil, err
	}
	return &Scorer{model: model}, nil
}

// Score implements interfaces.LearnedScorer.
func (s *Scorer) Score(_ context.Context, items []types.SentimentItem) (types.ImpactVerdict, error) {
	if len(items) == 0 {
		return types.ImpactVerdict{}, fmt.Errorf("no items to score")
	}

	label, probs, err := s.model.Predict(extractFeatures(items))
	if err != nil {
		return types.ImpactVerdict{}, err
	}

	confidence := probs[label]

	return types.ImpactVerdict{
		Classification: label,
		Confidence:     confidence,
		Rationale: fmt.Sprintf("ML model prediction based on %d articles. Model confidence: %.2f%%",
			len(items), confidence*100),
		Score: label.Score(),
	}, nil
}

// Close releases the underlying ONNX session.
func (s *Scorer) Close() {
	if s.model != nil {
		s.model.Destroy()
	}
}

// extractFeatures builds the tabular input vector: label population shares
// in class order, mean item score, and batch size capped at 10 articles.
func extractFeatures(items []types.SentimentItem) []float64 {
	counts := make(map[types.Sentiment]int)
	var scoreSum float64
	for _, item := range items {
		counts[item.Sentiment]++
		scoreSum += item.Score
	}

	total := float64(len(items))
	features := make([]float64, 0, featureCount)
	for _, label := range impactClasses {
		features = append(features, float64(counts[label])/total)
	}
	features = append(features, scoreSum/total)
	features = append(features, math.Min(total/10.0, 1.0))
	return features
}
