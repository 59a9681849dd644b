package ingest

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies where a review entered the system.
type Source string

const (
	SourceCSV       Source = "csv"
	SourceTextInput Source = "text_input"
	SourceImageOCR  Source = "image_ocr"
)

// Review is one raw customer review extracted from an upload, before
// sentiment scoring. Rating, reviewer and date are optional; CSV columns
// that cannot be detected leave them unset.
type Review struct {
	ID           uuid.UUID  `json:"id"`
	Text         string     `json:"text"`
	Rating       *int       `json:"rating,omitempty"`
	Platform     string     `json:"platform"`
	ReviewerName string     `json:"reviewer_name,omitempty"`
	ReviewDate   *time.Time `json:"review_date,omitempty"`
	Source       Source     `json:"source"`
}

// RowError records a row that was rejected during parsing. Row errors are
// collected, not fatal: one bad row never discards the upload.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Validation limits, shared by all input formats.
const (
	MinReviewLength = 3
	MaxReviewLength = 5000

	// MaxCSVReviews caps how many rows are read from one CSV upload.
	MaxCSVReviews = 1000
	// MaxTextReviews caps how many lines are read from pasted text.
	MaxTextReviews = 100
	// MaxOCRReviews caps how many fragments one OCR block may produce.
	MaxOCRReviews = 50
)

// newReview constructs a review with a fresh ID and the given source.
func newReview(text string, source Source) Review {
	return Review{
		ID:       uuid.New(),
		Text:     text,
		Platform: string(source),
		Source:   source,
	}
}
