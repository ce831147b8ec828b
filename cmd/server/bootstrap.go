package main

import (
	"context"
	"fmt"
	"os"

	"news-impact-engine/internal/engine"
	"news-impact-engine/internal/engine/engineobs"
	"news-impact-engine/internal/forecast"
	"news-impact-engine/internal/forecast/forecastobs"
	"news-impact-engine/internal/impact"
	"news-impact-engine/internal/impact/impactobs"
	"news-impact-engine/internal/interfaces"
	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/market"
	"news-impact-engine/internal/market/marketobs"
	"news-impact-engine/internal/ml"
	"news-impact-engine/internal/store"
	"news-impact-engine/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger, and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// impactConfig converts the yaml config into scorer parameters
func impactConfig(cfg *store.Config) impact.Config {
	return impact.Config{
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
	}
}

// ensembleConfig converts the yaml config into combiner parameters
func ensembleConfig(cfg *store.Config) impact.EnsembleConfig {
	return impact.EnsembleConfig{
		LearnedWeightHigh:    cfg.Ensemble.LearnedWeightHigh,
		LearnedWeightLow:     cfg.Ensemble.LearnedWeightLow,
		HighConfidenceCutoff: cfg.Ensemble.HighConfidenceCutoff,
	}
}

// forecastConfig converts the yaml config into simulator parameters
func forecastConfig(cfg *store.Config) forecast.Config {
	return forecast.Config{
		HorizonDays:    cfg.Forecast.HorizonDays,
		MaxMovePct:     cfg.Forecast.MaxMovePct,
		BaseVolatility: cfg.Forecast.BaseVolatility,
		HighVolatility: cfg.Forecast.HighVolatility,
		MomentumFactor: cfg.Forecast.MomentumFactor,
	}
}

// initializeLearnedScorer loads the ONNX model if configured. A load
// failure is not fatal: the engine degrades to rule-based-only scoring.
func initializeLearnedScorer(ctx context.Context, cfg *store.Config) interfaces.LearnedScorer {
	if !cfg.ML.Enabled {
		logger.Info(ctx, "Learned scorer disabled in config - rule-based scoring only")
		return nil
	}

	scorer, err := ml.NewScorer(cfg.ML.ModelPath)
	if err != nil {
		logger.Warn(ctx, "Could not load ML model - falling back to rule-based scoring",
			"model_path", cfg.ML.ModelPath, "error", err)
		return nil
	}

	logger.Info(ctx, "ML model loaded successfully", "model_path", cfg.ML.ModelPath)
	return scorer
}

// initializePriceSource selects the price source with observability
func initializePriceSource(ctx context.Context, cfg *store.Config) (interfaces.PriceSource, error) {
	src, err := market.NewSource(cfg.PriceSource, cfg.Market.StaticPrice)
	if err != nil {
		return nil, err
	}

	if cfg.PriceSource == "LIVE" {
		logger.Info(ctx, "Using LIVE quotes from Yahoo Finance")
	} else {
		logger.Info(ctx, "Using STATIC mock prices for testing", "price", cfg.Market.StaticPrice)
	}

	return marketobs.Wrap(src), nil
}

// initializeEngine wires the full prediction pipeline with observability
func initializeEngine(ctx context.Context, cfg *store.Config) (interfaces.Engine, error) {
	scorer := impactobs.WrapScorer(impact.NewRuleScorer(impactConfig(cfg)))
	combiner := impactobs.WrapCombiner(impact.NewCombiner(ensembleConfig(cfg)))
	forecaster := forecastobs.Wrap(forecast.NewSimulator(forecastConfig(cfg)))
	learned := initializeLearnedScorer(ctx, cfg)

	prices, err := initializePriceSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	eng := engine.New(cfg, scorer, learned, combiner, forecaster, prices)
	return engineobs.Wrap(eng), nil
}
