package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexiconLookups(t *testing.T) {
	lexicon := DefaultLexicon()

	assert.True(t, lexicon.IsPositive("bra"))
	assert.True(t, lexicon.IsPositive("excellent"))
	assert.True(t, lexicon.IsNegative("dålig"))
	assert.True(t, lexicon.IsNegative("terrible"))
	assert.True(t, lexicon.IsNegation("inte"))
	assert.True(t, lexicon.IsNegation("not"))
	assert.True(t, lexicon.IsStopWord("och"))

	factor, ok := lexicon.IntensifierFactor("mycket")
	require.True(t, ok)
	assert.Equal(t, 1.5, factor)

	factor, ok = lexicon.IntensifierFactor("extremt")
	require.True(t, ok)
	assert.Equal(t, 2.0, factor)
}

func TestDefaultLexiconUnknownWords(t *testing.T) {
	lexicon := DefaultLexicon()

	assert.False(t, lexicon.IsPositive("leverans"))
	assert.False(t, lexicon.IsNegative("leverans"))
	assert.False(t, lexicon.IsNegation("leverans"))
	assert.False(t, lexicon.IsStopWord("leverans"))

	factor, ok := lexicon.IntensifierFactor("leverans")
	assert.False(t, ok)
	assert.Equal(t, 1.0, factor)
}

func TestDefaultLexiconNoPolarityOverlap(t *testing.T) {
	lexicon := DefaultLexicon()
	require.NoError(t, lexicon.validate())

	for word := range lexicon.positiveWords {
		assert.False(t, lexicon.negativeWords[word], "word in both sets: %s", word)
	}
}

func TestLoadLexicon(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		lexicon, err := LoadLexicon("")
		require.NoError(t, err)
		assert.True(t, lexicon.IsPositive("bra"))
	})

	t.Run("file extends defaults", func(t *testing.T) {
		path := writeLexiconFile(t, `
positive_words: [smidig]
negative_words: [krånglig]
negation_words: [knappast]
intensifiers:
  enormt: 1.9
stop_words: [liksom]
`)
		lexicon, err := LoadLexicon(path)
		require.NoError(t, err)

		assert.True(t, lexicon.IsPositive("smidig"))
		assert.True(t, lexicon.IsNegative("krånglig"))
		assert.True(t, lexicon.IsNegation("knappast"))
		assert.True(t, lexicon.IsStopWord("liksom"))

		factor, ok := lexicon.IntensifierFactor("enormt")
		require.True(t, ok)
		assert.Equal(t, 1.9, factor)

		// Defaults are still present.
		assert.True(t, lexicon.IsPositive("bra"))
	})

	t.Run("entries are lowercased", func(t *testing.T) {
		path := writeLexiconFile(t, "positive_words: [SMIDIG]\n")
		lexicon, err := LoadLexicon(path)
		require.NoError(t, err)
		assert.True(t, lexicon.IsPositive("smidig"))
	})

	t.Run("intensifier at or below one is rejected", func(t *testing.T) {
		path := writeLexiconFile(t, "intensifiers:\n  lite: 0.8\n")
		_, err := LoadLexicon(path)
		assert.Error(t, err)
	})

	t.Run("polarity overlap is rejected", func(t *testing.T) {
		path := writeLexiconFile(t, "positive_words: [dålig]\n")
		_, err := LoadLexicon(path)
		assert.Error(t, err)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func writeLexiconFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
