package ingest

import (
	"strings"
	"unicode/utf8"
)

// headerPrefixes mark lines that look like column headers rather than
// review content when parsing pasted text.
var headerPrefixes = []string{"review", "text", "comment", "feedback"}

// ParseText converts pasted free text into reviews, one per non-empty line.
// Header-looking lines and lines below the minimum length are skipped, overly
// long lines are truncated, and at most MaxTextReviews lines are consumed.
// Degenerate input yields an empty slice, never an error.
func ParseText(input string) []Review {
	reviews := []Review{}
	if strings.TrimSpace(input) == "" {
		return reviews
	}

	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || utf8.RuneCountInString(line) < MinReviewLength {
			continue
		}
		if looksLikeHeader(line) {
			continue
		}
		if len(reviews) >= MaxTextReviews {
			break
		}
		if utf8.RuneCountInString(line) > MaxReviewLength {
			line = truncateRunes(line, MaxReviewLength)
		}
		reviews = append(reviews, newReview(line, SourceTextInput))
	}

	return reviews
}

// SplitExtractedText converts an OCR-extracted text block into reviews.
// Paragraphs separated by blank lines become individual reviews; paragraphs
// longer than a thousand characters are re-split on sentence boundaries
// into fragments of roughly five hundred characters. When no usable
// paragraph is found the whole block becomes a single review.
func SplitExtractedText(text string) []Review {
	reviews := []Review{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return reviews
	}

	for _, paragraph := range strings.Split(trimmed, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if utf8.RuneCountInString(paragraph) < 10 {
			continue
		}

		if utf8.RuneCountInString(paragraph) > 1000 {
			for _, fragment := range splitBySentences(paragraph, 500) {
				reviews = append(reviews, newReview(fragment, SourceImageOCR))
			}
		} else {
			reviews = append(reviews, newReview(paragraph, SourceImageOCR))
		}
	}

	if len(reviews) == 0 {
		reviews = append(reviews, newReview(trimmed, SourceImageOCR))
	}

	if len(reviews) > MaxOCRReviews {
		reviews = reviews[:MaxOCRReviews]
	}
	return reviews
}

// splitBySentences breaks a long paragraph into fragments of at most
// roughly maxLen characters, cutting only at sentence boundaries.
func splitBySentences(paragraph string, maxLen int) []string {
	fragments := []string{}
	current := ""

	for _, sentence := range strings.Split(paragraph, ". ") {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence) > maxLen {
			if strings.TrimSpace(current) != "" {
				fragments = append(fragments, strings.TrimSpace(current))
			}
			current = sentence
		} else {
			current += sentence + ". "
		}
	}

	if strings.TrimSpace(current) != "" {
		fragments = append(fragments, strings.TrimSpace(current))
	}
	return fragments
}

// looksLikeHeader reports whether a pasted line starts with a known column
// header word.
func looksLikeHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
