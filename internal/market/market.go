// Package market supplies current prices for forecast simulation, either
// from Yahoo Finance or from a static value for offline runs.
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"news-impact-engine/internal/interfaces"
)

// Quote is a point-in-time snapshot of a symbol's market price.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	PrevClose decimal.Decimal `json:"prev_close"`
	ChangePct float64         `json:"change_pct"`
	Time      time.Time       `json:"time"`
}

// YahooSource fetches live quotes from Yahoo Finance.
type YahooSource struct{}

var _ interfaces.PriceSource = (*YahooSource)(nil)

// NewYahooSource creates a live price source.
func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// CurrentPrice implements interfaces.PriceSource.
func (y *YahooSource) CurrentPrice(_ context.Context, symbol string) (float64, error) {
	q, err := y.GetQuote(symbol)
	if err != nil {
		return 0, err
	}
	price, _ := q.Price.Float64()
	if price <= 0 {
		return 0, fmt.Errorf("yahoo returned non-positive price %.2f for %s", price, symbol)
	}
	return price, nil
}

// GetQuote fetches the full quote snapshot for a symbol.
func (y *YahooSource) GetQuote(symbol string) (*Quote, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	price := decimal.NewFromFloat(q.RegularMarketPrice)
	prevClose := decimal.NewFromFloat(q.RegularMarketPreviousClose)

	changePct := 0.0
	if q.RegularMarketPreviousClose != 0 {
		changePct = (q.RegularMarketPrice - q.RegularMarketPreviousClose) / q.RegularMarketPreviousClose * 100
	}

	return &Quote{
		Symbol:    symbol,
		Price:     price.Round(2),
		PrevClose: prevClose.Round(2),
		ChangePct: changePct,
		Time:      time.Now(),
	}, nil
}

// StaticSource returns a fixed price for every symbol. Used in DRY_RUN mode
// and in tests, mirroring the static candle source of live-market systems.
type StaticSource struct {
	price float64
}

var _ interfaces.PriceSource = (*StaticSource)(nil)

// NewStaticSource creates a source that always returns price.
func NewStaticSource(price float64) *StaticSource {
	return &StaticSource{price: price}
}

// CurrentPrice implements interfaces.PriceSource.
func (s *StaticSource) CurrentPrice(_ context.Context, symbol string) (float64, error) {
	if s.price <= 0 {
		return 0, fmt.Errorf("static price not configured")
	}
	return s.price, nil
}

// NewSource selects the price source by config mode.
func NewSource(mode string, staticPrice float64) (interfaces.PriceSource, error) {
	switch mode {
	case "LIVE":
		return NewYahooSource(), nil
	case "STATIC":
		return NewStaticSource(staticPrice), nil
	}
	return nil, fmt.Errorf("unknown price source mode '%s'", mode)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
