package engineobs

import (
	"context"
	"time"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/trace"
	"news-impact-engine/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Predict(ctx context.Context, symbol string, items []types.SentimentItem) (*types.PredictionResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Predict")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting prediction cycle",
		"symbol", symbol,
		"items", len(items),
	)

	result, err := oe.engine.Predict(ctx, symbol, items)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Prediction cycle failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Prediction cycle completed",
		"symbol", symbol,
		"classification", string(result.Combined.Classification),
		"confidence", result.Combined.Confidence,
		"method", string(result.Combined.Method),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

func (oe *observableEngine) PredictWithForecast(ctx context.Context, symbol string, items []types.SentimentItem, currentPrice float64, horizonDays int) (*types.PredictionResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.PredictWithForecast")
	defer span.End()

	start := time.Now()

	result, err := oe.engine.PredictWithForecast(ctx, symbol, items, currentPrice, horizonDays)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Prediction with forecast failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	fields := []any{
		"symbol", symbol,
		"classification", string(result.Combined.Classification),
		"method", string(result.Combined.Method),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if result.Forecast != nil {
		fields = append(fields,
			"target_change_pct", result.Forecast.TargetChangePct,
			"horizon_days", len(result.Forecast.Prices),
		)
	}
	logger.InfoSkip(ctx, 1, "Prediction with forecast completed", fields...)

	return result, nil
}
