package interfaces

import (
	"context"

	"news-impact-engine/internal/types"
)

// ImpactScorer produces a rule-based impact verdict from a batch of
// sentiment-scored news items. Implementations never fail on degenerate
// input; an empty batch yields the documented default verdict.
type ImpactScorer interface {
	Score(ctx context.Context, items []types.SentimentItem) (types.ImpactVerdict, error)
}

// LearnedScorer produces an independent verdict from a trained model. An
// error means the model is unavailable for this call; callers degrade to
// rule-based-only.
type LearnedScorer interface {
	Score(ctx context.Context, items []types.SentimentItem) (types.ImpactVerdict, error)
}

// VerdictCombiner reconciles the rule-based verdict with an optional learned
// verdict. learned may be nil.
type VerdictCombiner interface {
	Combine(ctx context.Context, rule types.ImpactVerdict, learned *types.ImpactVerdict) (types.CombinedVerdict, error)
}
