package engine

import (
	"context"
	"errors"
	"testing"

	"news-impact-engine/internal/forecast"
	"news-impact-engine/internal/impact"
	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/store"
	"news-impact-engine/internal/types"
)

type stubLearnedScorer struct {
	verdict types.ImpactVerdict
	err     error
}

func (s *stubLearnedScorer) Score(_ context.Context, _ []types.SentimentItem) (types.ImpactVerdict, error) {
	return s.verdict, s.err
}

type stubPriceSource struct {
	price float64
	err   error

	lastSymbol string
}

func (s *stubPriceSource) CurrentPrice(_ context.Context, symbol string) (float64, error) {
	s.lastSymbol = symbol
	return s.price, s.err
}

func testConfig() *store.Config {
	cfg := &store.Config{}
	cfg.Forecast.HorizonDays = 7
	return cfg
}

func testEngine(learned interfaces.LearnedScorer, prices interfaces.PriceSource) *Engine {
	return New(
		testConfig(),
		impact.NewRuleScorer(impact.DefaultConfig()),
		learned,
		impact.NewCombiner(impact.DefaultEnsembleConfig()),
		forecast.NewSimulator(forecast.DefaultConfig()),
		prices,
	)
}

func newsItems(labels ...types.Sentiment) []types.SentimentItem {
	items := make([]types.SentimentItem, 0, len(labels))
	for i, label := range labels {
		items = append(items, types.SentimentItem{
			SourceID:  string(rune('a' + i)),
			Sentiment: label,
			Score:     0.9,
		})
	}
	return items
}

func TestPredictWithoutLearnedScorer(t *testing.T) {
	eng := testEngine(nil, &stubPriceSource{price: 100})
	items := newsItems(types.StronglyPositive, types.StronglyPositive, types.StronglyPositive)

	result, err := eng.Predict(context.Background(), "AAPL", items)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", result.Symbol)
	}
	if result.Combined.Method != types.MethodRuleBasedOnly {
		t.Errorf("Expected rule_based_only method, got %s", result.Combined.Method)
	}
	if result.Learned != nil {
		t.Error("Expected no learned verdict")
	}
	if result.Combined.Classification != types.StronglyPositive {
		t.Errorf("Expected strongly_positive, got %s", result.Combined.Classification)
	}
	if result.ArticleCount != 3 {
		t.Errorf("Expected article count 3, got %d", result.ArticleCount)
	}
	if result.Distribution[types.StronglyPositive] != 3 {
		t.Errorf("Expected 3 strongly_positive in distribution, got %d", result.Distribution[types.StronglyPositive])
	}
	if result.Distribution[types.StronglyNegative] != 0 {
		t.Errorf("Expected zero strongly_negative in distribution, got %d", result.Distribution[types.StronglyNegative])
	}
}

func TestPredictLearnedScorerFailureDegrades(t *testing.T) {
	learned := &stubLearnedScorer{err: errors.New("model not loaded")}
	eng := testEngine(learned, &stubPriceSource{price: 100})

	result, err := eng.Predict(context.Background(), "AAPL", newsItems(types.ModeratelyPositive))
	if err != nil {
		t.Fatalf("Expected degradation instead of error, got %v", err)
	}

	if result.Combined.Method != types.MethodRuleBasedOnly {
		t.Errorf("Expected rule_based_only after learned failure, got %s", result.Combined.Method)
	}
	if result.Learned != nil {
		t.Error("Expected no learned verdict after failure")
	}
}

func TestPredictCombinesLearnedVerdict(t *testing.T) {
	learned := &stubLearnedScorer{verdict: types.ImpactVerdict{
		Classification: types.ModeratelyPositive,
		Confidence:     0.8,
		Rationale:      "model output",
		Score:          2,
	}}
	eng := testEngine(learned, &stubPriceSource{price: 100})

	result, err := eng.Predict(context.Background(), "AAPL", newsItems(types.ModeratelyPositive, types.ModeratelyPositive))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Combined.Method != types.MethodCombined {
		t.Errorf("Expected combined method, got %s", result.Combined.Method)
	}
	if result.Learned == nil {
		t.Fatal("Expected learned verdict in result")
	}
	if result.Learned.Classification != types.ModeratelyPositive {
		t.Errorf("Expected learned moderately_positive, got %s", result.Learned.Classification)
	}
}

func TestPredictWithForecastFetchesPrice(t *testing.T) {
	prices := &stubPriceSource{price: 184.25}
	eng := testEngine(nil, prices)

	result, err := eng.PredictWithForecast(context.Background(), "AAPL", newsItems(types.StronglyPositive), 0, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prices.lastSymbol != "AAPL" {
		t.Errorf("Expected price lookup for AAPL, got %q", prices.lastSymbol)
	}
	if result.CurrentPrice != 184.25 {
		t.Errorf("Expected fetched price 184.25, got %f", result.CurrentPrice)
	}
	if result.Forecast == nil {
		t.Fatal("Expected forecast in result")
	}
	if len(result.Forecast.Prices) != 7 {
		t.Errorf("Expected config horizon of 7 days, got %d", len(result.Forecast.Prices))
	}
}

func TestPredictWithForecastSuppliedPriceWins(t *testing.T) {
	prices := &stubPriceSource{price: 184.25}
	eng := testEngine(nil, prices)

	result, err := eng.PredictWithForecast(context.Background(), "AAPL", newsItems(types.StronglyPositive), 250, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prices.lastSymbol != "" {
		t.Error("Expected no price lookup when price is supplied")
	}
	if result.CurrentPrice != 250 {
		t.Errorf("Expected supplied price 250, got %f", result.CurrentPrice)
	}
	if len(result.Forecast.Prices) != 3 {
		t.Errorf("Expected 3-day forecast, got %d days", len(result.Forecast.Prices))
	}
}

func TestPredictWithForecastPriceLookupFailure(t *testing.T) {
	prices := &stubPriceSource{err: errors.New("quote service down")}
	eng := testEngine(nil, prices)

	result, err := eng.PredictWithForecast(context.Background(), "AAPL", newsItems(types.StronglyPositive), 0, 0)
	if err != nil {
		t.Fatalf("Expected prediction without forecast, got error %v", err)
	}

	if result.Forecast != nil {
		t.Error("Expected no forecast after price lookup failure")
	}
	if result.Combined.Classification != types.StronglyPositive {
		t.Errorf("Expected prediction to survive, got %s", result.Combined.Classification)
	}
}

func TestPredictEmptyItemsYieldsDefault(t *testing.T) {
	eng := testEngine(nil, &stubPriceSource{price: 100})

	result, err := eng.Predict(context.Background(), "AAPL", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Combined.Classification != types.SlightlyPositive {
		t.Errorf("Expected default slightly_positive, got %s", result.Combined.Classification)
	}
	if result.Combined.Confidence != 0.5 {
		t.Errorf("Expected default confidence 0.5, got %f", result.Combined.Confidence)
	}
	if result.ArticleCount != 0 {
		t.Errorf("Expected zero article count, got %d", result.ArticleCount)
	}
}
