package report

import (
	"sort"

	"github.com/benjaminneilan16/NeilanX/pkg/analysis"
	"github.com/benjaminneilan16/NeilanX/pkg/ingest"
)

// ScoredReview pairs a raw review with its analysis result. This is the
// shape the upload pipeline persists and the report renderer consumes.
type ScoredReview struct {
	Review   ingest.Review           `json:"review"`
	Analysis analysis.ReviewAnalysis `json:"analysis"`
}

// KeywordCount is one aggregated keyword with the number of reviews it
// appeared in.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Summary aggregates per-review results into the counts and percentages a
// report presents. The analysis core itself never aggregates; this layering
// keeps per-text scoring pure.
type Summary struct {
	TotalReviews int `json:"total_reviews"`

	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`

	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`

	AverageScore float64        `json:"average_score"`
	TopKeywords  []KeywordCount `json:"top_keywords"`
}

// maxSummaryKeywords caps the aggregated keyword list in a summary.
const maxSummaryKeywords = 10

// Summarize aggregates a set of scored reviews. An empty input produces a
// zero summary.
func Summarize(reviews []ScoredReview) Summary {
	summary := Summary{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return summary
	}

	keywordCounts := make(map[string]int)
	keywordOrder := []string{}
	scoreTotal := 0.0

	for _, review := range reviews {
		switch review.Analysis.Sentiment {
		case analysis.SentimentPositive:
			summary.Positive++
		case analysis.SentimentNegative:
			summary.Negative++
		default:
			summary.Neutral++
		}
		scoreTotal += review.Analysis.Score

		for _, keyword := range review.Analysis.Keywords {
			if keywordCounts[keyword] == 0 {
				keywordOrder = append(keywordOrder, keyword)
			}
			keywordCounts[keyword]++
		}
	}

	total := float64(summary.TotalReviews)
	summary.PositivePct = float64(summary.Positive) / total * 100
	summary.NegativePct = float64(summary.Negative) / total * 100
	summary.NeutralPct = float64(summary.Neutral) / total * 100
	summary.AverageScore = scoreTotal / total

	sort.SliceStable(keywordOrder, func(i, j int) bool {
		return keywordCounts[keywordOrder[i]] > keywordCounts[keywordOrder[j]]
	})
	if len(keywordOrder) > maxSummaryKeywords {
		keywordOrder = keywordOrder[:maxSummaryKeywords]
	}
	for _, keyword := range keywordOrder {
		summary.TopKeywords = append(summary.TopKeywords, KeywordCount{
			Keyword: keyword,
			Count:   keywordCounts[keyword],
		})
	}

	return summary
}
