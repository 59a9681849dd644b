// Package store keeps analyzed uploads in memory. Results live for a
// bounded retention window and are evicted by the cleanup job; there is
// no durable persistence layer.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminneilan16/NeilanX/pkg/ingest"
	"github.com/benjaminneilan16/NeilanX/pkg/report"
)

// UploadStatus tracks an upload through its lifecycle.
type UploadStatus string

const (
	StatusPending    UploadStatus = "pending"
	StatusProcessing UploadStatus = "processing"
	StatusCompleted  UploadStatus = "completed"
	StatusFailed     UploadStatus = "failed"
)

// Upload is one analyzed batch of reviews.
type Upload struct {
	ID          uuid.UUID             `json:"id"`
	Filename    string                `json:"filename,omitempty"`
	CompanyName string                `json:"company_name"`
	Source      ingest.Source         `json:"source"`
	Status      UploadStatus          `json:"status"`
	Error       string                `json:"error,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Reviews     []report.ScoredReview `json:"-"`
	RowErrors   []ingest.RowError     `json:"row_errors,omitempty"`
	Summary     *report.Summary       `json:"summary,omitempty"`
	ReportPath  string                `json:"-"`
}

// ErrNotFound is returned when an upload ID is unknown.
var ErrNotFound = fmt.Errorf("upload not found")

// Store is a thread-safe in-memory upload registry.
type Store struct {
	mu      sync.RWMutex
	uploads map[uuid.UUID]*Upload
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		uploads: make(map[uuid.UUID]*Upload),
	}
}

// Create registers a new pending upload and returns it.
func (s *Store) Create(filename, companyName string, source ingest.Source) *Upload {
	upload := &Upload{
		ID:          uuid.New(),
		Filename:    filename,
		CompanyName: companyName,
		Source:      source,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.uploads[upload.ID] = upload
	s.mu.Unlock()

	return copyUpload(upload)
}

// Get returns a snapshot of the upload, or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upload, ok := s.uploads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUpload(upload), nil
}

// SetProcessing marks an upload as being analyzed.
func (s *Store) SetProcessing(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, ok := s.uploads[id]
	if !ok {
		return ErrNotFound
	}
	upload.Status = StatusProcessing
	return nil
}

// Complete stores the analysis results and marks the upload completed.
func (s *Store) Complete(id uuid.UUID, reviews []report.ScoredReview, rowErrors []ingest.RowError, summary report.Summary, reportPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, ok := s.uploads[id]
	if !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	upload.Status = StatusCompleted
	upload.CompletedAt = &now
	upload.Reviews = reviews
	upload.RowErrors = rowErrors
	upload.Summary = &summary
	upload.ReportPath = reportPath
	return nil
}

// Fail marks an upload as failed with a reason.
func (s *Store) Fail(id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, ok := s.uploads[id]
	if !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	upload.Status = StatusFailed
	upload.Error = reason
	upload.CompletedAt = &now
	return nil
}

// List returns snapshots of all uploads, newest first.
func (s *Store) List() []*Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uploads := make([]*Upload, 0, len(s.uploads))
	for _, upload := range s.uploads {
		uploads = append(uploads, copyUpload(upload))
	}
	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].CreatedAt.After(uploads[j].CreatedAt)
	})
	return uploads
}

// Count returns the number of stored uploads.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uploads)
}

// EvictOlderThan removes uploads created before the cutoff and returns the
// evicted snapshots so the caller can remove their report files.
func (s *Store) EvictOlderThan(cutoff time.Time) []*Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []*Upload
	for id, upload := range s.uploads {
		if upload.CreatedAt.Before(cutoff) {
			evicted = append(evicted, copyUpload(upload))
			delete(s.uploads, id)
		}
	}
	return evicted
}

// copyUpload returns a shallow snapshot safe to hand to callers.
func copyUpload(upload *Upload) *Upload {
	snapshot := *upload
	return &snapshot
}
