package impactobs

import (
	"context"
	"time"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/trace"
	"news-impact-engine/internal/types"
)

type observableScorer struct {
	scorer interfaces.ImpactScorer
}

var _ interfaces.ImpactScorer = (*observableScorer)(nil)

// WrapScorer adds tracing and logging around an impact scorer.
func WrapScorer(scorer interfaces.ImpactScorer) interfaces.ImpactScorer {
	return &observableScorer{
		scorer: scorer,
	}
}

func (os *observableScorer) Score(ctx context.Context, items []types.SentimentItem) (types.ImpactVerdict, error) {
	ctx, span := trace.StartSpan(ctx, "impact.Score")
	defer span.End()

	start := time.Now()

	verdict, err := os.scorer.Score(ctx, items)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Rule-based scoring failed", err,
			"items", len(items),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return verdict, err
	}

	logger.InfoSkip(ctx, 1, "Rule-based scoring completed",
		"items", len(items),
		"classification", string(verdict.Classification),
		"confidence", verdict.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return verdict, nil
}

type observableCombiner struct {
	combiner interfaces.VerdictCombiner
}

var _ interfaces.VerdictCombiner = (*observableCombiner)(nil)

// WrapCombiner adds tracing and logging around a verdict combiner.
func WrapCombiner(combiner interfaces.VerdictCombiner) interfaces.VerdictCombiner {
	return &observableCombiner{
		combiner: combiner,
	}
}

func (oc *observableCombiner) Combine(ctx context.Context, rule types.ImpactVerdict, learned *types.ImpactVerdict) (types.CombinedVerdict, error) {
	ctx, span := trace.StartSpan(ctx, "impact.Combine")
	defer span.End()

	start := time.Now()

	combined, err := oc.combiner.Combine(ctx, rule, learned)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Verdict combination failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return combined, err
	}

	logger.InfoSkip(ctx, 1, "Verdict combination completed",
		"method", string(combined.Method),
		"classification", string(combined.Classification),
		"confidence", combined.Confidence,
		"score", combined.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return combined, nil
}
