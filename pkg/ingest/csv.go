package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column name candidates for detecting review fields, matched
// case-insensitively against the CSV header. Swedish and English exports
// from the common review platforms use these.
var (
	textColumns     = []string{"review", "text", "comment", "feedback", "recensioner", "kommentar", "omdöme"}
	ratingColumns   = []string{"rating", "score", "stars", "betyg", "stjärnor"}
	platformColumns = []string{"platform", "source", "källa", "plattform"}
	nameColumns     = []string{"name", "reviewer", "customer", "namn", "kund"}
	dateColumns     = []string{"date", "created", "datum", "skapad"}
)

// dateLayouts are tried in order when parsing a review date column.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// ErrNoReviews is returned when a CSV upload contains no usable review rows.
var ErrNoReviews = errors.New("no valid reviews found in file")

// CSVResult is the outcome of parsing one CSV upload: the usable reviews
// plus the rows that were rejected and why.
type CSVResult struct {
	Reviews   []Review   `json:"reviews"`
	RowErrors []RowError `json:"row_errors,omitempty"`
}

// ParseCSV reads reviews from a CSV stream. The delimiter is sniffed from
// the first kilobyte (comma, semicolon or tab), a UTF-8/UTF-16 BOM is
// stripped, and the review text column is detected case-insensitively.
// Rows that fail validation are collected as RowErrors without aborting
// the upload; parsing stops after MaxCSVReviews rows.
func ParseCSV(r io.Reader) (*CSVResult, error) {
	// Strip a byte order mark the way spreadsheet exports tend to add one.
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	buffered := bufio.NewReader(decoded)

	sample, _ := buffered.Peek(1024)
	if strings.TrimSpace(string(sample)) == "" {
		return nil, errors.New("file is empty or contains only blank lines")
	}

	reader := csv.NewReader(buffered)
	reader.Comma = detectDelimiter(string(sample))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) == 0 {
		return nil, errors.New("no valid CSV header found")
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	result := &CSVResult{}
	row := 0
	for {
		if row >= MaxCSVReviews {
			break
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Row: row, Reason: err.Error()})
			continue
		}

		review, ok := parseRow(columns, record)
		if !ok {
			result.RowErrors = append(result.RowErrors, RowError{Row: row, Reason: "no review text found"})
			continue
		}

		if length := utf8.RuneCountInString(review.Text); length < MinReviewLength {
			result.RowErrors = append(result.RowErrors, RowError{Row: row, Reason: "review text too short"})
			continue
		} else if length > MaxReviewLength {
			result.RowErrors = append(result.RowErrors, RowError{Row: row, Reason: "review text too long"})
			continue
		}

		result.Reviews = append(result.Reviews, review)
	}

	if len(result.Reviews) == 0 {
		return nil, fmt.Errorf("%w: expected review text in a column named review, text, comment or similar", ErrNoReviews)
	}

	return result, nil
}

// detectDelimiter sniffs the CSV delimiter from a sample of the file.
// Semicolon wins over comma when it is more frequent (common for Swedish
// Excel exports), and a tab anywhere selects tab.
func detectDelimiter(sample string) rune {
	if strings.Count(sample, ";") > strings.Count(sample, ",") {
		return ';'
	}
	if strings.Contains(sample, "\t") {
		return '\t'
	}
	return ','
}

// parseRow extracts a review from one CSV record. The boolean is false when
// no review text could be located.
func parseRow(columns, record []string) (Review, bool) {
	values := make(map[string]string, len(columns))
	for i, column := range columns {
		if i < len(record) {
			values[column] = strings.TrimSpace(record[i])
		}
	}

	text := findColumn(values, textColumns)
	if text == "" {
		// No known column name matched; fall back to the first value that
		// looks like prose rather than an ID or a rating.
		for _, value := range record {
			value = strings.TrimSpace(value)
			if utf8.RuneCountInString(value) > 10 {
				text = value
				break
			}
		}
	}
	if text == "" {
		return Review{}, false
	}

	review := newReview(text, SourceCSV)
	review.Platform = "unknown"

	if platform := findColumn(values, platformColumns); platform != "" {
		review.Platform = platform
	}
	review.ReviewerName = findColumn(values, nameColumns)

	if raw := findColumn(values, ratingColumns); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			rating := int(f)
			review.Rating = &rating
		}
	}

	if raw := findColumn(values, dateColumns); raw != "" {
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				review.ReviewDate = &parsed
				break
			}
		}
	}

	return review, true
}

// findColumn returns the first non-empty value among the candidate columns.
func findColumn(values map[string]string, candidates []string) string {
	for _, candidate := range candidates {
		if value := values[candidate]; value != "" {
			return value
		}
	}
	return ""
}
