package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordRunes is the exclusive lower bound on keyword length: tokens of
// this many runes or fewer are discarded.
const minKeywordRunes = 3

// KeywordExtractor extracts the most frequent non-stop-word terms from a
// review text. Ordering is deterministic: descending frequency with ties
// broken by first occurrence in the input.
type KeywordExtractor struct {
	lexicon *Lexicon
}

// NewKeywordExtractor creates a keyword extractor over the given lexicon.
func NewKeywordExtractor(lexicon *Lexicon) *KeywordExtractor {
	return &KeywordExtractor{lexicon: lexicon}
}

// Extract returns up to maxKeywords keywords from text. A maxKeywords value
// of zero or less falls back to DefaultMaxKeywords. Empty input yields an
// empty slice, never an error.
func (e *KeywordExtractor) Extract(text string, maxKeywords int) []string {
	if text == "" {
		return []string{}
	}
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}

	words := strings.Fields(e.normalize(text))

	frequency := make(map[string]int)
	order := make([]string, 0, len(words))

	for _, word := range words {
		if utf8.RuneCountInString(word) <= minKeywordRunes {
			continue
		}
		if e.lexicon.IsStopWord(word) {
			continue
		}
		if frequency[word] == 0 {
			order = append(order, word)
		}
		frequency[word]++
	}

	// Stable sort keeps first-occurrence order among equal frequencies.
	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// normalize lowercases text and replaces every rune that is neither a word
// character nor whitespace with a space, so punctuation never glues tokens
// together.
func (e *KeywordExtractor) normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
