package analysis

// Sentiment is the classification assigned to a review text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Classification thresholds. A score strictly above the positive threshold
// classifies as positive, strictly below the negative threshold as negative.
// The closed interval between them is neutral.
const (
	positiveThreshold = 0.6
	negativeThreshold = 0.4
)

// neutralScore is the score reported when no classification can be made.
const neutralScore = 0.5

// Fallback confidence values for degenerate inputs.
const (
	confidenceEmpty      = 0.0
	confidenceTooShort   = 0.1
	confidenceNoMatches  = 0.2
	confidenceZeroWeight = 0.1
)

// DefaultMaxKeywords is the keyword cap used when the caller does not
// specify one.
const DefaultMaxKeywords = 10

// RawScores carries the unnormalized totals behind a sentiment classification.
type RawScores struct {
	PositiveWeight   float64 `json:"positive_weight"`
	NegativeWeight   float64 `json:"negative_weight"`
	MatchedWordCount int     `json:"matched_word_count"`
}

// SentimentResult is the output of analyzing a single review text.
//
// Score is the fraction of weighted-positive over weighted-total, in [0,1].
// Confidence is the fraction of tokens that contributed to scoring, in [0,1],
// or a fixed fallback value when no sentiment words matched.
type SentimentResult struct {
	Sentiment  Sentiment `json:"sentiment"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	RawScores  RawScores `json:"raw_scores"`
}

// ReviewAnalysis couples the sentiment result for one text with its
// extracted keywords. It is the per-text element of a batch result.
type ReviewAnalysis struct {
	SentimentResult
	Keywords []string `json:"keywords"`
}

// neutralResult returns the documented neutral fallback with the given
// confidence and zero raw totals.
func neutralResult(confidence float64) SentimentResult {
	return SentimentResult{
		Sentiment:  SentimentNeutral,
		Score:      neutralScore,
		Confidence: confidence,
	}
}
