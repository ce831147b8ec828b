package interfaces

import (
	"context"

	"news-impact-engine/internal/types"
)

// Engine orchestrates one prediction cycle for a symbol: rule-based scoring,
// optional learned scoring, ensemble combination, and (optionally) forecast
// simulation against the current market price.
type Engine interface {
	// Predict runs scoring and combination only.
	Predict(ctx context.Context, symbol string, items []types.SentimentItem) (*types.PredictionResult, error)

	// PredictWithForecast additionally simulates a price path over
	// horizonDays. currentPrice <= 0 means "fetch from the price source".
	PredictWithForecast(ctx context.Context, symbol string, items []types.SentimentItem, currentPrice float64, horizonDays int) (*types.PredictionResult, error)
}
