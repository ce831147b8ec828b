package forecastobs

import (
	"context"
	"time"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/trace"
	"news-impact-engine/internal/types"
)

type observableForecaster struct {
	forecaster interfaces.Forecaster
}

var _ interfaces.Forecaster = (*observableForecaster)(nil)

// Wrap adds tracing and logging around a forecaster.
func Wrap(forecaster interfaces.Forecaster) interfaces.Forecaster {
	return &observableForecaster{
		forecaster: forecaster,
	}
}

func (of *observableForecaster) Simulate(ctx context.Context, currentPrice float64, verdict types.CombinedVerdict, horizonDays int) (types.ForecastPath, error) {
	ctx, span := trace.StartSpan(ctx, "forecast.Simulate")
	defer span.End()

	start := time.Now()

	path, err := of.forecaster.Simulate(ctx, currentPrice, verdict, horizonDays)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Forecast simulation failed", err,
			"current_price", currentPrice,
			"horizon_days", horizonDays,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return path, err
	}

	if path.Degraded {
		logger.WarnSkip(ctx, 1, "Forecast degraded to flat path",
			"reason", path.Error,
			"current_price", currentPrice,
			"horizon_days", horizonDays,
		)
	}

	logger.InfoSkip(ctx, 1, "Forecast simulation completed",
		"current_price", currentPrice,
		"horizon_days", horizonDays,
		"target_change_pct", path.TargetChangePct,
		"classification", string(path.Classification),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return path, nil
}
