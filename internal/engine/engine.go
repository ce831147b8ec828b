package engine

import (
	"context"
	"time"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/store"
	"news-impact-engine/internal/types"
)

// Engine runs one full prediction cycle per symbol: rule-based scoring,
// optional learned scoring, ensemble combination, and forecast simulation.
// It holds no per-call state; instances are safe for concurrent use.
type Engine struct {
	cfg        *store.Config
	scorer     interfaces.ImpactScorer
	learned    interfaces.LearnedScorer // nil when no model is configured
	combiner   interfaces.VerdictCombiner
	forecaster interfaces.Forecaster
	prices     interfaces.PriceSource
}

// New creates an engine. learned may be nil; every other dependency is
// required.
func New(cfg *store.Config, scorer interfaces.ImpactScorer, learned interfaces.LearnedScorer,
	combiner interfaces.VerdictCombiner, forecaster interfaces.Forecaster, prices interfaces.PriceSource) *Engine {
	return &Engine{
		cfg:        cfg,
		scorer:     scorer,
		learned:    learned,
		combiner:   combiner,
		forecaster: forecaster,
		prices:     prices,
	}
}

// Predict implements interfaces.Engine.
func (e *Engine) Predict(ctx context.Context, symbol string, items []types.SentimentItem) (*types.PredictionResult, error) {
	logger.Debug(ctx, "Starting prediction cycle", "symbol", symbol, "items", len(items))

	rule, err := e.scorer.Score(ctx, items)
	if err != nil {
		logger.ErrorWithErr(ctx, "Rule-based scoring failed", err, "symbol", symbol)
		return nil, err
	}

	// A failing learned scorer degrades to rule-based-only, never an error.
	var learned *types.ImpactVerdict
	if e.learned != nil {
		verdict, err := e.learned.Score(ctx, items)
		if err != nil {
			logger.Warn(ctx, "Learned scorer unavailable, using rule-based only",
				"symbol", symbol, "error", err)
		} else {
			learned = &verdict
		}
	}

	combined, err := e.combiner.Combine(ctx, rule, learned)
	if err != nil {
		logger.ErrorWithErr(ctx, "Verdict combination failed", err, "symbol", symbol)
		return nil, err
	}

	logger.Verdict(ctx, symbol, string(combined.Classification), combined.Confidence, string(combined.Method))

	return &types.PredictionResult{
		Symbol:       symbol,
		RuleBased:    rule,
		Learned:      learned,
		Combined:     combined,
		Distribution: distribution(items),
		ArticleCount: len(items),
		Time:         time.Now().Unix(),
	}, nil
}

// PredictWithForecast implements interfaces.Engine. currentPrice <= 0 means
// "fetch from the price source"; a failed price lookup yields a result
// without a forecast rather than an error.
func (e *Engine) PredictWithForecast(ctx context.Context, symbol string, items []types.SentimentItem, currentPrice float64, horizonDays int) (*types.PredictionResult, error) {
	result, err := e.Predict(ctx, symbol, items)
	if err != nil {
		return nil, err
	}

	if currentPrice <= 0 {
		price, err := e.prices.CurrentPrice(ctx, symbol)
		if err != nil {
			logger.Warn(ctx, "Price lookup failed, returning prediction without forecast",
				"symbol", symbol, "error", err)
			return result, nil
		}
		currentPrice = price
	}
	result.CurrentPrice = currentPrice

	if horizonDays <= 0 {
		horizonDays = e.cfg.Forecast.HorizonDays
	}

	path, err := e.forecaster.Simulate(ctx, currentPrice, result.Combined, horizonDays)
	if err != nil {
		logger.ErrorWithErr(ctx, "Forecast simulation failed", err, "symbol", symbol)
		return nil, err
	}
	result.Forecast = &path

	return result, nil
}

func distribution(items []types.SentimentItem) types.SentimentDistribution {
	dist := make(types.SentimentDistribution, len(types.AllSentiments))
	for _, label := range types.AllSentiments {
		dist[label] = 0
	}
	for _, item := range items {
		dist[item.Sentiment]++
	}
	return dist
}
