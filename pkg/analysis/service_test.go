package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatchPreservesOrderAndLength(t *testing.T) {
	service := NewService(nil)

	texts := []string{
		"mycket bra leverans",
		"",
		"hemsk kundtjänst och trasig produkt",
	}

	results := service.AnalyzeBatch(texts)
	require.Len(t, results, len(texts))

	assert.Equal(t, SentimentPositive, results[0].Sentiment)
	assert.NotEmpty(t, results[0].Keywords)

	// The empty text degrades in place without aborting the batch.
	assert.Equal(t, SentimentNeutral, results[1].Sentiment)
	assert.Equal(t, 0.0, results[1].Confidence)
	assert.Empty(t, results[1].Keywords)

	assert.Equal(t, SentimentNegative, results[2].Sentiment)
}

func TestAnalyzeBatchEmptyInput(t *testing.T) {
	service := NewService(nil)

	results := service.AnalyzeBatch(nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	results = service.AnalyzeBatch([]string{})
	assert.Empty(t, results)
}

func TestServiceUsesProvidedLexicon(t *testing.T) {
	lexicon, err := LoadLexicon("")
	require.NoError(t, err)

	service := NewService(lexicon)
	result := service.Analyze("inte bra")
	assert.Equal(t, SentimentNegative, result.Sentiment)
}

func TestServiceKeywords(t *testing.T) {
	service := NewService(nil)

	keywords := service.Keywords("leverans leverans kvalitet")
	assert.Equal(t, []string{"leverans", "kvalitet"}, keywords)
}
