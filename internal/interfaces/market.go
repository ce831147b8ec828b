package interfaces

import "context"

// PriceSource supplies the current market price for a symbol.
type PriceSource interface {
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}
