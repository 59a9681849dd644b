package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminneilan16/NeilanX/pkg/ingest"
	"github.com/benjaminneilan16/NeilanX/pkg/report"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore()

	created := s.Create("reviews.csv", "Testbolaget AB", ingest.SourceCSV)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, StatusPending, created.Status)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Testbolaget AB", got.CompanyName)
	assert.Equal(t, ingest.SourceCSV, got.Source)
}

func TestGetUnknownID(t *testing.T) {
	s := NewStore()

	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLifecycle(t *testing.T) {
	s := NewStore()
	created := s.Create("reviews.csv", "Testbolaget AB", ingest.SourceCSV)

	require.NoError(t, s.SetProcessing(created.ID))
	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)

	summary := report.Summary{TotalReviews: 1, Positive: 1, PositivePct: 100}
	require.NoError(t, s.Complete(created.ID, []report.ScoredReview{{}}, nil, summary, "/tmp/report.pdf"))

	got, err = s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 1, got.Summary.TotalReviews)
	assert.Equal(t, "/tmp/report.pdf", got.ReportPath)
}

func TestFail(t *testing.T) {
	s := NewStore()
	created := s.Create("", "Testbolaget AB", ingest.SourceTextInput)

	require.NoError(t, s.Fail(created.ID, "no reviews found"))

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "no reviews found", got.Error)
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	created := s.Create("", "Testbolaget AB", ingest.SourceTextInput)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	got.Status = StatusFailed

	fresh, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, fresh.Status)
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore()
	first := s.Create("a.csv", "A", ingest.SourceCSV)
	time.Sleep(2 * time.Millisecond)
	second := s.Create("b.csv", "B", ingest.SourceCSV)

	uploads := s.List()
	require.Len(t, uploads, 2)
	assert.Equal(t, second.ID, uploads[0].ID)
	assert.Equal(t, first.ID, uploads[1].ID)
}

func TestEvictOlderThan(t *testing.T) {
	s := NewStore()
	old := s.Create("old.csv", "A", ingest.SourceCSV)
	_ = s.Create("new.csv", "B", ingest.SourceCSV)

	evicted := s.EvictOlderThan(time.Now().UTC().Add(time.Minute))
	assert.Len(t, evicted, 2)
	assert.Equal(t, 0, s.Count())

	_, err := s.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvictKeepsRecent(t *testing.T) {
	s := NewStore()
	kept := s.Create("new.csv", "B", ingest.SourceCSV)

	evicted := s.EvictOlderThan(time.Now().UTC().Add(-time.Hour))
	assert.Empty(t, evicted)

	_, err := s.Get(kept.ID)
	assert.NoError(t, err)
}
