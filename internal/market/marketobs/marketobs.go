package marketobs

import (
	"context"
	"time"

	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/trace"
)

type observableSource struct {
	source interfaces.PriceSource
}

var _ interfaces.PriceSource = (*observableSource)(nil)

// Wrap adds tracing and logging around a price source.
func Wrap(source interfaces.PriceSource) interfaces.PriceSource {
	return &observableSource{
		source: source,
	}
}

func (os *observableSource) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "market.CurrentPrice")
	defer span.End()

	start := time.Now()

	price, err := os.source.CurrentPrice(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Price lookup failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return 0, err
	}

	logger.InfoSkip(ctx, 1, "Price lookup completed",
		"symbol", symbol,
		"price", price,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return price, nil
}
