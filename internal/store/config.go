package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode        string `yaml:"mode"`
	PriceSource string `yaml:"price_source"`
	Server      struct {
		Addr            string `yaml:"addr"`
		ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
		WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	} `yaml:"server"`
	Market struct {
		StaticPrice float64 `yaml:"static_price"`
	} `yaml:"market"`
	Impact struct {
		IntensityMultipliers struct {
			Strongly   float64 `yaml:"strongly"`
			Moderately float64 `yaml:"moderately"`
			Slightly   float64 `yaml:"slightly"`
		} `yaml:"intensity_multipliers"`
		ConfidenceCaps struct {
			Strongly   float64 `yaml:"strongly"`
			Moderately float64 `yaml:"moderately"`
			Slightly   float64 `yaml:"slightly"`
		} `yaml:"confidence_caps"`
	} `yaml:"impact"`
	Ensemble struct {
		LearnedWeightHigh    float64 `yaml:"learned_weight_high"`
		LearnedWeightLow     float64 `yaml:"learned_weight_low"`
		HighConfidenceCutoff float64 `yaml:"high_confidence_cutoff"`
	} `yaml:"ensemble"`
	Forecast struct {
		HorizonDays    int     `yaml:"horizon_days"`
		MaxMovePct     float64 `yaml:"max_move_pct"`
		BaseVolatility float64 `yaml:"base_volatility"`
		HighVolatility float64 `yaml:"high_volatility"`
		MomentumFactor float64 `yaml:"momentum_factor"`
	} `yaml:"forecast"`
	ML struct {
		Enabled   bool   `yaml:"enabled"`
		ModelPath string `yaml:"model_path"`
	} `yaml:"ml"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if c.PriceSource != "STATIC" && c.PriceSource != "LIVE" {
		return fmt.Errorf("invalid price_source '%s': must be 'STATIC' or 'LIVE'", c.PriceSource)
	}
	if c.Forecast.HorizonDays < 1 {
		return fmt.Errorf("forecast.horizon_days must be >= 1, got %d", c.Forecast.HorizonDays)
	}
	if c.Forecast.BaseVolatility <= 0 || c.Forecast.HighVolatility <= 0 {
		return fmt.Errorf("forecast volatilities must be positive, got base=%.4f high=%.4f",
			c.Forecast.BaseVolatility, c.Forecast.HighVolatility)
	}
	if c.Forecast.MaxMovePct <= 0 || c.Forecast.MaxMovePct > 1 {
		return fmt.Errorf("forecast.max_move_pct must be in (0,1], got %.4f", c.Forecast.MaxMovePct)
	}
	if c.ML.Enabled && c.ML.ModelPath == "" {
		return fmt.Errorf("ml.model_path required when ml.enabled is true")
	}
	if c.PriceSource == "STATIC" && c.Market.StaticPrice <= 0 {
		return fmt.Errorf("market.static_price must be positive in STATIC mode, got %.2f", c.Market.StaticPrice)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyDefaults fills zero-valued fields with the documented defaults so a
// minimal config.yaml still produces the canonical scoring behavior.
func applyDefaults(c *Config) {
	if c.PriceSource == "" {
		c.PriceSource = "STATIC"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = 10
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = 15
	}
	if c.Market.StaticPrice == 0 {
		c.Market.StaticPrice = 100.0
	}

	im := &c.Impact.IntensityMultipliers
	if im.Strongly == 0 {
		im.Strongly = 1.2
	}
	if im.Moderately == 0 {
		im.Moderately = 1.0
	}
	if im.Slightly == 0 {
		im.Slightly = 0.8
	}

	caps := &c.Impact.ConfidenceCaps
	if caps.Strongly == 0 {
		caps.Strongly = 0.95
	}
	if caps.Moderately == 0 {
		caps.Moderately = 0.90
	}
	if caps.Slightly == 0 {
		caps.Slightly = 0.85
	}

	if c.Ensemble.LearnedWeightHigh == 0 {
		c.Ensemble.LearnedWeightHigh = 0.7
	}
	if c.Ensemble.LearnedWeightLow == 0 {
		c.Ensemble.LearnedWeightLow = 0.5
	}
	if c.Ensemble.HighConfidenceCutoff == 0 {
		c.Ensemble.HighConfidenceCutoff = 0.6
	}

	fc := &c.Forecast
	if fc.HorizonDays == 0 {
		fc.HorizonDays = 7
	}
	if fc.MaxMovePct == 0 {
		fc.MaxMovePct = 0.06
	}
	if fc.BaseVolatility == 0 {
		fc.BaseVolatility = 0.015
	}
	if fc.HighVolatility == 0 {
		fc.HighVolatility = 0.025
	}
	if fc.MomentumFactor == 0 {
		fc.MomentumFactor = 0.2
	}
}
