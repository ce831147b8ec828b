package interfaces

import (
	"context"

	"news-impact-engine/internal/types"
)

// Forecaster simulates a bounded, direction-consistent price path for a
// combined verdict. Internal numeric failures degrade to a flat path; the
// returned error is reserved for violated preconditions (currentPrice <= 0,
// horizonDays <= 0).
type Forecaster interface {
	Simulate(ctx context.Context, currentPrice float64, verdict types.CombinedVerdict, horizonDays int) (types.ForecastPath, error)
}
