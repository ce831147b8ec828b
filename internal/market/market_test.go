package market

import (
	"context"
	"testing"
)

func TestStaticSourceReturnsConfiguredPrice(t *testing.T) {
	src := NewStaticSource(123.45)

	price, err := src.CurrentPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if price != 123.45 {
		t.Errorf("Expected 123.45, got %f", price)
	}
}

func TestStaticSourceUnconfigured(t *testing.T) {
	src := NewStaticSource(0)

	if _, err := src.CurrentPrice(context.Background(), "AAPL"); err == nil {
		t.Error("Expected error for unconfigured static price")
	}
}

func TestNewSourceSelection(t *testing.T) {
	if _, err := NewSource("STATIC", 100); err != nil {
		t.Errorf("Expected STATIC source, got error %v", err)
	}
	if _, err := NewSource("LIVE", 0); err != nil {
		t.Errorf("Expected LIVE source, got error %v", err)
	}
	if _, err := NewSource("RANDOM", 0); err == nil {
		t.Error("Expected error for unknown source mode")
	}
}

func TestNormalizeSymbol(t *testing.T) {
	cases := map[string]string{
		" aapl ":   "AAPL",
		"TSLA":     "TSLA",
		"reliance": "RELIANCE",
		"":         "",
	}
	for in, want := range cases {
		if got := normalizeSymbol(in); got != want {
			t.Errorf("normalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
