package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDegenerateInput(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	tests := []struct {
		name           string
		input          string
		wantConfidence float64
	}{
		{name: "empty string", input: "", wantConfidence: 0.0},
		{name: "whitespace only collapses below minimum", input: "  a ", wantConfidence: 0.1},
		{name: "too short after cleanup", input: "ok", wantConfidence: 0.1},
		{name: "no sentiment words", input: "leveransen kom på onsdagen", wantConfidence: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.input)
			assert.Equal(t, SentimentNeutral, result.Sentiment)
			assert.Equal(t, 0.5, result.Score)
			assert.Equal(t, tt.wantConfidence, result.Confidence)
			assert.Equal(t, RawScores{}, result.RawScores)
		})
	}
}

func TestAnalyzeClassification(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	tests := []struct {
		name          string
		input         string
		wantSentiment Sentiment
	}{
		{name: "single positive word", input: "bra", wantSentiment: SentimentPositive},
		{name: "single negative word", input: "dålig", wantSentiment: SentimentNegative},
		{name: "english positive", input: "excellent service", wantSentiment: SentimentPositive},
		{name: "english negative", input: "terrible experience", wantSentiment: SentimentNegative},
		{name: "mixed swedish english", input: "bra produkt but slow delivery problem", wantSentiment: SentimentNegative},
		{name: "balanced is neutral", input: "bra men dålig", wantSentiment: SentimentNeutral},
		{name: "uppercase diacritics", input: "UTMÄRKT KVALITET", wantSentiment: SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.input)
			assert.Equal(t, tt.wantSentiment, result.Sentiment)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 1.0)
			assert.GreaterOrEqual(t, result.Confidence, 0.0)
			assert.LessOrEqual(t, result.Confidence, 1.0)
		})
	}
}

func TestAnalyzeNegation(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	t.Run("negation flips positive word", func(t *testing.T) {
		result := analyzer.Analyze("inte bra")
		assert.Equal(t, SentimentNegative, result.Sentiment)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, 1.0, result.RawScores.NegativeWeight)
		assert.Equal(t, 0.0, result.RawScores.PositiveWeight)
	})

	t.Run("negation flips negative word", func(t *testing.T) {
		result := analyzer.Analyze("inte dålig")
		assert.Equal(t, SentimentPositive, result.Sentiment)
		assert.Equal(t, 1.0, result.RawScores.PositiveWeight)
	})

	t.Run("negation two tokens back", func(t *testing.T) {
		result := analyzer.Analyze("inte alls bra")
		assert.Equal(t, SentimentNegative, result.Sentiment)
	})

	t.Run("negation three tokens back has no effect", func(t *testing.T) {
		result := analyzer.Analyze("inte alls helt okej bra")
		assert.Equal(t, SentimentPositive, result.Sentiment)
	})
}

func TestAnalyzeIntensifiers(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	t.Run("intensifier amplifies without changing polarity", func(t *testing.T) {
		plain := analyzer.Analyze("bra")
		boosted := analyzer.Analyze("mycket bra")

		assert.Equal(t, SentimentPositive, plain.Sentiment)
		assert.Equal(t, SentimentPositive, boosted.Sentiment)
		assert.Equal(t, 1.0, plain.RawScores.PositiveWeight)
		assert.Equal(t, 1.5, boosted.RawScores.PositiveWeight)
	})

	t.Run("nearest intensifier wins", func(t *testing.T) {
		result := analyzer.Analyze("mycket extremt bra")
		assert.Equal(t, 2.0, result.RawScores.PositiveWeight)
	})

	t.Run("intensifier two tokens back applies", func(t *testing.T) {
		result := analyzer.Analyze("extremt helt enkelt dålig")
		// "enkelt" is unknown, so "helt" at distance two supplies 1.3.
		assert.Equal(t, 1.3, result.RawScores.NegativeWeight)
	})

	t.Run("negation and intensifier combine independently", func(t *testing.T) {
		result := analyzer.Analyze("inte mycket bra")
		assert.Equal(t, SentimentNegative, result.Sentiment)
		assert.Equal(t, 1.5, result.RawScores.NegativeWeight)
	})
}

func TestAnalyzeScoreAndConfidence(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	t.Run("weighted fraction of positive over total", func(t *testing.T) {
		result := analyzer.Analyze("bra bra dålig")
		require.Equal(t, 3, result.RawScores.MatchedWordCount)
		assert.InDelta(t, 2.0/3.0, result.Score, 1e-9)
		assert.Equal(t, SentimentPositive, result.Sentiment)
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("confidence is matched fraction of tokens", func(t *testing.T) {
		result := analyzer.Analyze("leveransen var bra igår")
		assert.InDelta(t, 0.25, result.Confidence, 1e-9)
	})
}

func TestAnalyzeThresholdBoundaries(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	t.Run("score exactly 0.6 is neutral", func(t *testing.T) {
		result := analyzer.Analyze("bra bra bra dålig dålig")
		require.InDelta(t, 0.6, result.Score, 1e-9)
		assert.Equal(t, SentimentNeutral, result.Sentiment)
	})

	t.Run("score exactly 0.4 is neutral", func(t *testing.T) {
		result := analyzer.Analyze("bra bra dålig dålig dålig")
		require.InDelta(t, 0.4, result.Score, 1e-9)
		assert.Equal(t, SentimentNeutral, result.Sentiment)
	})
}

func TestAnalyzePreprocessing(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	t.Run("urls are stripped before scoring", func(t *testing.T) {
		result := analyzer.Analyze("bra https://example.com/review")
		assert.Equal(t, 1, result.RawScores.MatchedWordCount)
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("email addresses are stripped", func(t *testing.T) {
		result := analyzer.Analyze("kontakta support@example.se dålig service")
		assert.Equal(t, SentimentNegative, result.Sentiment)
	})

	t.Run("whitespace runs collapse", func(t *testing.T) {
		result := analyzer.Analyze("  mycket \t\n  bra  ")
		assert.Equal(t, 1.5, result.RawScores.PositiveWeight)
	})
}

func TestAnalyzeIdempotent(t *testing.T) {
	analyzer := NewSentimentAnalyzer(DefaultLexicon())

	text := "mycket bra leverans men inte nöjd med priset"
	first := analyzer.Analyze(text)
	second := analyzer.Analyze(text)
	assert.Equal(t, first, second)
}
