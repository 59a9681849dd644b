package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	urlPattern        = regexp.MustCompile(`http[s]?://\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
)

// SentimentAnalyzer performs lexicon-based sentiment scoring of short
// Swedish/English review texts. A single left-to-right pass over the tokens
// applies negation and intensifier context from the two preceding tokens.
//
// Analyze is a pure function of its input and the lexicon; it never returns
// an error. Degenerate input resolves to a documented neutral default.
type SentimentAnalyzer struct {
	lexicon *Lexicon
}

// NewSentimentAnalyzer creates a sentiment analyzer over the given lexicon.
func NewSentimentAnalyzer(lexicon *Lexicon) *SentimentAnalyzer {
	return &SentimentAnalyzer{lexicon: lexicon}
}

// Analyze scores one review text and returns its sentiment classification.
//
// Empty input returns neutral with confidence 0.0. Input whose cleaned form
// is shorter than 3 characters returns neutral with confidence 0.1. Input
// with no recognized sentiment words returns neutral with confidence 0.2.
// Any internal fault is absorbed and mapped to the neutral zero-confidence
// default so a batch caller never needs an error path.
func (a *SentimentAnalyzer) Analyze(text string) (result SentimentResult) {
	defer func() {
		if r := recover(); r != nil {
			result = neutralResult(confidenceEmpty)
		}
	}()

	if text == "" {
		return neutralResult(confidenceEmpty)
	}

	clean := strings.ToLower(a.preprocess(text))
	if utf8.RuneCountInString(clean) < 3 {
		return neutralResult(confidenceTooShort)
	}

	words := strings.Fields(clean)

	var positiveWeight, negativeWeight float64
	matched := 0

	for i, word := range words {
		// Context lookback is deliberately limited to the two preceding
		// tokens, nearest first, checked independently for negation and
		// intensity.
		negated := false
		if i > 0 && a.lexicon.IsNegation(words[i-1]) {
			negated = true
		} else if i > 1 && a.lexicon.IsNegation(words[i-2]) {
			negated = true
		}

		intensity := 1.0
		if i > 0 {
			if factor, ok := a.lexicon.IntensifierFactor(words[i-1]); ok {
				intensity = factor
			} else if i > 1 {
				if factor, ok := a.lexicon.IntensifierFactor(words[i-2]); ok {
					intensity = factor
				}
			}
		}

		switch {
		case a.lexicon.IsPositive(word):
			weight := 1.0 * intensity
			if negated {
				negativeWeight += weight
			} else {
				positiveWeight += weight
			}
			matched++

		case a.lexicon.IsNegative(word):
			weight := 1.0 * intensity
			if negated {
				positiveWeight += weight
			} else {
				negativeWeight += weight
			}
			matched++
		}
	}

	if matched == 0 {
		return neutralResult(confidenceNoMatches)
	}

	raw := RawScores{
		PositiveWeight:   positiveWeight,
		NegativeWeight:   negativeWeight,
		MatchedWordCount: matched,
	}

	totalWeight := positiveWeight + negativeWeight
	if totalWeight == 0 {
		// Unreachable given matched > 0, kept as a guard.
		result = neutralResult(confidenceZeroWeight)
		result.RawScores = raw
		return result
	}

	score := positiveWeight / totalWeight
	confidence := float64(matched) / float64(len(words))
	if confidence > 1.0 {
		confidence = 1.0
	}

	return SentimentResult{
		Sentiment:  classify(score),
		Score:      score,
		Confidence: confidence,
		RawScores:  raw,
	}
}

// preprocess collapses whitespace and strips URL and email tokens. The
// result is trimmed but not yet lowercased.
func (a *SentimentAnalyzer) preprocess(text string) string {
	text = whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// classify maps a score to a sentiment label. The interval
// [negativeThreshold, positiveThreshold] is neutral, inclusive of both ends.
func classify(score float64) Sentiment {
	switch {
	case score > positiveThreshold:
		return SentimentPositive
	case score < negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
