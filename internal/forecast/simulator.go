package forecast

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"news-impact-engine/internal/types"
)

// Thresholds of the directional-consistency guarantee: when the driving
// score is clearly off zero, the final simulated price must land at least
// half a percent on the matching side of the current price.
const (
	directionalScoreBound = 0.5
	upwardFloorFactor     = 1.005
	downwardCeilFactor    = 0.995
	priceFloor            = 0.01
	strongScoreBound      = 2.0
)

// Config holds the simulation tunables.
type Config struct {
	HorizonDays    int     // default forecast length in days
	MaxMovePct     float64 // expected move for a +-3 score over the horizon
	BaseVolatility float64 // daily relative standard deviation
	HighVolatility float64 // volatility when |score| > 2
	MomentumFactor float64 // autocorrelation carried from the previous day
}

// DefaultConfig returns the canonical simulation parameters.
func DefaultConfig() Config {
	return Config{
		HorizonDays:    7,
		MaxMovePct:     0.06,
		BaseVolatility: 0.015,
		HighVolatility: 0.025,
		MomentumFactor: 0.2,
	}
}

// Simulator turns a combined verdict and a current price into a bounded,
// direction-consistent multi-day price path. Each call draws fresh noise
// from its own generator, so concurrent forecasts stay independent.
type Simulator struct {
	config Config
	now    func() time.Time
}

// NewSimulator creates a new simulator with the given configuration.
func NewSimulator(config Config) *Simulator {
	return &Simulator{config: config, now: time.Now}
}

// stepState is the accumulator of the day-by-day walk.
type stepState struct {
	price     float64 // current simulated price
	prevDelta float64 // previous day's price change, feeds momentum
}

// Simulate implements interfaces.Forecaster. Internal numeric failures
// degrade to a flat path; only violated preconditions return an error.
func (s *Simulator) Simulate(_ context.Context, currentPrice float64, verdict types.CombinedVerdict, horizonDays int) (types.ForecastPath, error) {
	if currentPrice <= 0 || math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) {
		return types.ForecastPath{}, fmt.Errorf("current price must be a positive finite number, got %v", currentPrice)
	}
	if horizonDays <= 0 {
		return types.ForecastPath{}, fmt.Errorf("horizon must be at least 1 day, got %d", horizonDays)
	}

	score := verdict.Score
	if score == 0 {
		score = verdict.Classification.Score()
	}
	confidence := verdict.Confidence

	dates := s.forecastDates(horizonDays)

	if math.IsNaN(score) || math.IsInf(score, 0) || math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return s.flatPath(dates, currentPrice, verdict, "non-finite verdict inputs"), nil
	}

	// A +-3 score maps to at most +-MaxMovePct over the horizon.
	targetReturnPct := (score / 3.0) * s.config.MaxMovePct

	volatility := s.config.BaseVolatility
	if math.Abs(score) > strongScoreBound {
		volatility = s.config.HighVolatility
	}

	rng := rand.New(rand.NewSource(s.now().UnixNano()))
	targetPrice := currentPrice * (1 + targetReturnPct)

	prices := make([]float64, 0, horizonDays)
	st := stepState{price: currentPrice}
	for day := 0; day < horizonDays; day++ {
		st = s.step(st, stepParams{
			day:           day,
			remainingDays: horizonDays - day,
			targetPrice:   targetPrice,
			shockStdDev:   volatility * currentPrice,
			confidence:    confidence,
		}, rng)
		prices = append(prices, round2(st.price))
	}

	prices = s.enforceDirection(prices, currentPrice, score, horizonDays)

	for _, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return s.flatPath(dates, currentPrice, verdict, "simulation produced non-finite price"), nil
		}
	}

	return types.ForecastPath{
		Dates:           dates,
		Prices:          prices,
		TargetChangePct: round2(targetReturnPct * 100),
		Confidence:      confidence,
		Classification:  verdict.Classification,
		Score:           score,
	}, nil
}

type stepParams struct {
	day           int
	remainingDays int
	targetPrice   float64
	shockStdDev   float64
	confidence    float64
}

// step advances the walk one day: a drift re-targeted at the remaining
// distance, a normal shock, and momentum carried from the previous day.
// Pure in (state, params, draw) so each day is testable in isolation.
func (s *Simulator) step(st stepState, p stepParams, rng *rand.Rand) stepState {
	dailyDrift := (p.targetPrice - st.price) / float64(p.remainingDays)
	shock := rng.NormFloat64() * p.shockStdDev

	momentum := 0.0
	if p.day > 0 {
		momentum = st.prevDelta * s.config.MomentumFactor
	}

	change := dailyDrift*p.confidence + shock + momentum
	next := math.Max(priceFloor, st.price+change)

	return stepState{
		price:     next,
		prevDelta: next - st.price,
	}
}

// enforceDirection applies the post-hoc consistency correction: a clearly
// directional score must not end on the wrong side of the current price.
// The additive correction is redistributed linearly across the path.
func (s *Simulator) enforceDirection(prices []float64, currentPrice, score float64, horizon int) []float64 {
	if len(prices) == 0 {
		return prices
	}
	final := prices[len(prices)-1]

	var adjustment float64
	switch {
	case score > directionalScoreBound && final < currentPrice:
		adjustment = currentPrice*upwardFloorFactor - final
	case score < -directionalScoreBound && final > currentPrice:
		adjustment = currentPrice*downwardCeilFactor - final
	default:
		return prices
	}

	adjusted := make([]float64, len(prices))
	for i, p := range prices {
		adjusted[i] = round2(p + adjustment*float64(i+1)/float64(horizon))
	}
	return adjusted
}

// forecastDates labels the path with calendar days starting tomorrow.
func (s *Simulator) forecastDates(horizonDays int) []string {
	start := s.now()
	dates := make([]string, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		dates = append(dates, start.AddDate(0, 0, i+1).Format("2006-01-02"))
	}
	return dates
}

// flatPath is the fail-safe result: every day at the current price, zero
// target, explicit degradation marker.
func (s *Simulator) flatPath(dates []string, currentPrice float64, verdict types.CombinedVerdict, reason string) types.ForecastPath {
	prices := make([]float64, len(dates))
	for i := range prices {
		prices[i] = round2(currentPrice)
	}
	return types.ForecastPath{
		Dates:           dates,
		Prices:          prices,
		TargetChangePct: 0,
		Confidence:      verdict.Confidence,
		Classification:  verdict.Classification,
		Degraded:        true,
		Error:           reason,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
