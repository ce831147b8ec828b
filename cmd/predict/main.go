package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"news-impact-engine/internal/engine"
	"news-impact-engine/internal/forecast"
	"news-impact-engine/internal/impact"
	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/market"
	"news-impact-engine/internal/ml"
	"news-impact-engine/internal/store"
	"news-impact-engine/internal/types"
)

func main() {
	symbol := flag.String("symbol", "", "instrument symbol to analyze")
	itemsPath := flag.String("items", "", "path to a JSON file of sentiment items")
	price := flag.Float64("price", 0, "current price (0 = fetch from the configured source)")
	days := flag.Int("days", 0, "forecast horizon in days (0 = config default)")
	jsonOut := flag.String("json", "", "write the full result to this JSON file")
	flag.Parse()

	if *symbol == "" || *itemsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: predict -symbol SYM -items items.json [-price P] [-days N] [-json out.json]")
		os.Exit(1)
	}

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	items, err := loadItems(*itemsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load items: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║       News Impact Engine - Market Impact Prediction         ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("🔍 Analyzing %d sentiment items for %s...\n\n", len(items), *symbol)

	var learned interfaces.LearnedScorer
	if cfg.ML.Enabled {
		scorer, err := ml.NewScorer(cfg.ML.ModelPath)
		if err != nil {
			fmt.Printf("⚠️  ML model unavailable (%v) - using rule-based scoring only\n\n", err)
		} else {
			defer scorer.Close()
			learned = scorer
		}
	}

	prices, err := market.NewSource(cfg.PriceSource, cfg.Market.StaticPrice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create price source: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(cfg,
		impact.NewRuleScorer(impact.Config{
			Multipliers: impact.IntensityMultipliers{
				Strongly:   cfg.Impact.IntensityMultipliers.Strongly,
				Moderately: cfg.Impact.IntensityMultipliers.Moderately,
				Slightly:   cfg.Impact.IntensityMultipliers.Slightly,
			},
			Caps: impact.ConfidenceCaps{
				Strongly:   cfg.Impact.ConfidenceCaps.Strongly,
				Moderately: cfg.Impact.ConfidenceCaps.Moderately,
				Slightly:   cfg.Impact.ConfidenceCaps.Slightly,
			},
		}),
		learned,
		impact.NewCombiner(impact.EnsembleConfig{
			LearnedWeightHigh:    cfg.Ensemble.LearnedWeightHigh,
			LearnedWeightLow:     cfg.Ensemble.LearnedWeightLow,
			HighConfidenceCutoff: cfg.Ensemble.HighConfidenceCutoff,
		}),
		forecast.NewSimulator(forecast.Config{
			HorizonDays:    cfg.Forecast.HorizonDays,
			MaxMovePct:     cfg.Forecast.MaxMovePct,
			BaseVolatility: cfg.Forecast.BaseVolatility,
			HighVolatility: cfg.Forecast.HighVolatility,
			MomentumFactor: cfg.Forecast.MomentumFactor,
		}),
		prices)

	ctx := context.Background()
	result, err := eng.PredictWithForecast(ctx, *symbol, items, *price, *days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Prediction failed: %v\n", err)
		os.Exit(1)
	}

	printResult(result)

	if *jsonOut != "" {
		if err := saveResultJSON(result, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("📄 Full result saved to: %s\n", *jsonOut)
	}
}

func loadItems(path string) ([]types.SentimentItem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []types.SentimentItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("invalid items file: %w", err)
	}
	return items, nil
}

func printResult(result *types.PredictionResult) {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                      PREDICTION SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Symbol:             %s\n", result.Symbol)
	fmt.Printf("Articles analyzed:  %d\n", result.ArticleCount)
	fmt.Println()

	fmt.Println("Sentiment distribution:")
	for _, label := range types.AllSentiments {
		fmt.Printf("  %-22s %d\n", string(label)+":", result.Distribution[label])
	}
	fmt.Println()

	fmt.Printf("Rule-based:  %s (%.0f%% confidence)\n",
		result.RuleBased.Classification, result.RuleBased.Confidence*100)
	if result.Learned != nil {
		fmt.Printf("ML model:    %s (%.0f%% confidence)\n",
			result.Learned.Classification, result.Learned.Confidence*100)
	} else {
		fmt.Println("ML model:    not available")
	}
	fmt.Printf("Combined:    %s (%.0f%% confidence, method=%s)\n",
		result.Combined.Classification, result.Combined.Confidence*100, result.Combined.Method)
	fmt.Println()
	fmt.Println(result.Combined.Rationale)
	fmt.Println()

	if result.Forecast != nil {
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Printf("Forecast (from price %.2f, target %+.2f%%):\n",
			result.CurrentPrice, result.Forecast.TargetChangePct)
		if result.Forecast.Degraded {
			fmt.Printf("⚠️  Degraded forecast: %s\n", result.Forecast.Error)
		}
		for i, date := range result.Forecast.Dates {
			fmt.Printf("  %s  %8.2f\n", date, result.Forecast.Prices[i])
		}
		fmt.Println()
	}
}

func saveResultJSON(result *types.PredictionResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}
