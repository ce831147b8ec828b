package types

// Sentiment is one of the six intensity-graded labels. There is no neutral
// value; every classified item resolves to a side.
type Sentiment string

const (
	StronglyPositive   Sentiment = "strongly_positive"
	ModeratelyPositive Sentiment = "moderately_positive"
	SlightlyPositive   Sentiment = "slightly_positive"
	SlightlyNegative   Sentiment = "slightly_negative"
	ModeratelyNegative Sentiment = "moderately_negative"
	StronglyNegative   Sentiment = "strongly_negative"
)

// AllSentiments lists the six labels from most positive to most negative.
// Rationale text and distribution reports follow this order.
var AllSentiments = []Sentiment{
	StronglyPositive,
	ModeratelyPositive,
	SlightlyPositive,
	SlightlyNegative,
	ModeratelyNegative,
	StronglyNegative,
}

// sentimentScores is the single shared label-to-numeric table. The combiner
// and the forecaster both depend on it agreeing with the scorer.
var sentimentScores = map[Sentiment]float64{
	StronglyPositive:   3,
	ModeratelyPositive: 2,
	SlightlyPositive:   1,
	SlightlyNegative:   -1,
	ModeratelyNegative: -2,
	StronglyNegative:   -3,
}

// Score returns the linear encoding of s (strongly_negative=-3 ..
// strongly_positive=3). Unknown labels score 0.
func (s Sentiment) Score() float64 {
	return sentimentScores[s]
}

// FromScore maps a combined score back to a label using the fixed ensemble
// thresholds. ok is false inside the near-zero band where no label applies.
func FromScore(score float64) (Sentiment, bool) {
	switch {
	case score >= 2.0:
		return StronglyPositive, true
	case score >= 1.0:
		return ModeratelyPositive, true
	case score >= 0.3:
		return SlightlyPositive, true
	case score <= -2.0:
		return StronglyNegative, true
	case score <= -1.0:
		return ModeratelyNegative, true
	case score <= -0.3:
		return SlightlyNegative, true
	}
	return "", false
}

// Valid reports whether s is one of the six known labels.
func (s Sentiment) Valid() bool {
	_, ok := sentimentScores[s]
	return ok
}

// Positive reports whether s sits on the positive side.
func (s Sentiment) Positive() bool {
	return sentimentScores[s] > 0
}

// SentimentItem is one sentiment-scored news item, produced by the external
// sentiment service. Score is the classifier confidence in [0,1].
type SentimentItem struct {
	SourceID  string    `json:"source_id"`
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
}

// CombineMethod records how a CombinedVerdict was produced.
type CombineMethod string

const (
	MethodRuleBasedOnly CombineMethod = "rule_based_only"
	MethodCombined      CombineMethod = "combined"
)

// ImpactVerdict is a six-level classification with supporting confidence and
// rationale. Score is the numeric encoding of Classification.
type ImpactVerdict struct {
	Classification Sentiment `json:"classification"`
	Confidence     float64   `json:"confidence"`
	Rationale      string    `json:"rationale"`
	Score          float64   `json:"score"`
}

// CombinedVerdict is the terminal output of scoring and the input to
// forecasting.
type CombinedVerdict struct {
	ImpactVerdict
	Method CombineMethod `json:"method"`
}

// ForecastPath is a simulated multi-day price path. Dates and Prices always
// have the same length (the requested horizon). Degraded is set when the
// simulator fell back to a flat path after an internal failure.
type ForecastPath struct {
	Dates           []string  `json:"dates"`
	Prices          []float64 `json:"prices"`
	TargetChangePct float64   `json:"target_change_pct"`
	Confidence      float64   `json:"confidence"`
	Classification  Sentiment `json:"classification"`
	Score           float64   `json:"score"`
	Degraded        bool      `json:"degraded,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// SentimentDistribution counts items per label.
type SentimentDistribution map[Sentiment]int

// PredictionResult is the engine output for one symbol.
type PredictionResult struct {
	Symbol       string                `json:"symbol"`
	RuleBased    ImpactVerdict         `json:"rule_based"`
	Learned      *ImpactVerdict        `json:"learned,omitempty"`
	Combined     CombinedVerdict       `json:"combined"`
	Distribution SentimentDistribution `json:"sentiment_distribution"`
	ArticleCount int                   `json:"article_count"`
	Forecast     *ForecastPath         `json:"forecast,omitempty"`
	CurrentPrice float64               `json:"current_price,omitempty"`
	Time         int64                 `json:"time"`
}
