package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigMinimalYAMLGetsDefaults(t *testing.T) {
	path := writeConfigFile(t, "mode: DRY_RUN\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.PriceSource != "STATIC" {
		t.Errorf("Expected default price source STATIC, got %s", cfg.PriceSource)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Market.StaticPrice != 100.0 {
		t.Errorf("Expected default static price 100.0, got %f", cfg.Market.StaticPrice)
	}
	if cfg.Impact.IntensityMultipliers.Strongly != 1.2 {
		t.Errorf("Expected strongly multiplier 1.2, got %f", cfg.Impact.IntensityMultipliers.Strongly)
	}
	if cfg.Impact.ConfidenceCaps.Moderately != 0.90 {
		t.Errorf("Expected moderately cap 0.90, got %f", cfg.Impact.ConfidenceCaps.Moderately)
	}
	if cfg.Ensemble.LearnedWeightHigh != 0.7 {
		t.Errorf("Expected learned weight high 0.7, got %f", cfg.Ensemble.LearnedWeightHigh)
	}
	if cfg.Forecast.HorizonDays != 7 {
		t.Errorf("Expected default horizon 7, got %d", cfg.Forecast.HorizonDays)
	}
	if cfg.Forecast.BaseVolatility != 0.015 {
		t.Errorf("Expected base volatility 0.015, got %f", cfg.Forecast.BaseVolatility)
	}
	if cfg.ML.Enabled {
		t.Error("Expected ML disabled by default")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
mode: LIVE
price_source: LIVE
server:
  addr: ":9090"
forecast:
  horizon_days: 14
  max_move_pct: 0.1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Mode != "LIVE" {
		t.Errorf("Expected mode LIVE, got %s", cfg.Mode)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Forecast.HorizonDays != 14 {
		t.Errorf("Expected horizon 14, got %d", cfg.Forecast.HorizonDays)
	}
	if cfg.Forecast.MaxMovePct != 0.1 {
		t.Errorf("Expected max move 0.1, got %f", cfg.Forecast.MaxMovePct)
	}
	// Untouched sections still get defaults.
	if cfg.Forecast.MomentumFactor != 0.2 {
		t.Errorf("Expected default momentum 0.2, got %f", cfg.Forecast.MomentumFactor)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "mode: [unbalanced\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestValidateRejections(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.Mode = "DRY_RUN"
		applyDefaults(c)
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "PAPER" }},
		{"bad price source", func(c *Config) { c.PriceSource = "RANDOM" }},
		{"zero horizon", func(c *Config) { c.Forecast.HorizonDays = 0 }},
		{"negative volatility", func(c *Config) { c.Forecast.BaseVolatility = -0.01 }},
		{"max move above one", func(c *Config) { c.Forecast.MaxMovePct = 1.5 }},
		{"ml enabled without path", func(c *Config) { c.ML.Enabled = true; c.ML.ModelPath = "" }},
		{"static source without price", func(c *Config) { c.Market.StaticPrice = -5 }},
	}

	for _, tc := range cases {
		cfg := base()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Baseline config should validate, got %v", err)
	}
}
