package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminneilan16/NeilanX/internal/server/response"
	"github.com/benjaminneilan16/NeilanX/internal/store"
	"github.com/benjaminneilan16/NeilanX/pkg/analysis"
	"github.com/benjaminneilan16/NeilanX/pkg/ingest"
	"github.com/benjaminneilan16/NeilanX/pkg/logger"
	"github.com/benjaminneilan16/NeilanX/pkg/notify"
	"github.com/benjaminneilan16/NeilanX/pkg/report"
)

// UploadHandler handles review upload, analysis and report requests
type UploadHandler struct {
	store      *store.Store
	service    *analysis.Service
	generator  *report.Generator
	mailer     *notify.Mailer
	logger     *logger.Logger
	reportsDir string
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads *store.Store, service *analysis.Service, generator *report.Generator, mailer *notify.Mailer, logger *logger.Logger, reportsDir string) *UploadHandler {
	return &UploadHandler{
		store:      uploads,
		service:    service,
		generator:  generator,
		mailer:     mailer,
		logger:     logger,
		reportsDir: reportsDir,
	}
}

// CreateUploadRequest represents a pasted-text upload request
type CreateUploadRequest struct {
	CompanyName string `json:"company_name"`
	Text        string `json:"text"`
	Source      string `json:"source,omitempty"` // text_input (default) or image_ocr
	Email       string `json:"email,omitempty"`
	Plan        string `json:"plan,omitempty"`
}

// UploadResponse represents an upload with its analysis results
type UploadResponse struct {
	*store.Upload
	Reviews []ReviewResult `json:"reviews,omitempty"`
}

// ReviewResult represents one scored review
type ReviewResult struct {
	ID         uuid.UUID  `json:"id"`
	Text       string     `json:"text"`
	Rating     *int       `json:"rating,omitempty"`
	Platform   string     `json:"platform,omitempty"`
	ReviewDate *time.Time `json:"review_date,omitempty"`
	Sentiment  string     `json:"sentiment"`
	Score      float64    `json:"score"`
	Confidence float64    `json:"confidence"`
	Keywords   []string   `json:"keywords"`
}

// Create handles POST {prefix}/uploads. CSV files arrive as multipart
// form data, pasted or OCR-extracted text as JSON.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteMethodNotAllowed(w, getRequestID(r), "Method not allowed")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.createFromCSV(w, r)
		return
	}
	h.createFromText(w, r)
}

func (h *UploadHandler) createFromCSV(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		response.WriteBadRequest(w, getRequestID(r), "File upload required", err.Error())
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		response.WriteError(w, getRequestID(r), http.StatusBadRequest,
			response.ErrorCodeInvalidFileFormat, "Only CSV files are supported", header.Filename)
		return
	}

	companyName := r.FormValue("company_name")
	if companyName == "" {
		response.WriteBadRequest(w, getRequestID(r), "company_name is required", nil)
		return
	}

	result, err := ingest.ParseCSV(file)
	if err != nil {
		response.WriteError(w, getRequestID(r), http.StatusUnprocessableEntity,
			response.ErrorCodeNoReviewsFound, "No reviews found in file", err.Error())
		return
	}

	upload := h.store.Create(header.Filename, companyName, ingest.SourceCSV)
	h.process(w, r, upload, result.Reviews, result.RowErrors, r.FormValue("email"), r.FormValue("plan"))
}

func (h *UploadHandler) createFromText(w http.ResponseWriter, r *http.Request) {
	var req CreateUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, getRequestID(r), "Invalid JSON request", err.Error())
		return
	}

	if req.CompanyName == "" {
		response.WriteBadRequest(w, getRequestID(r), "company_name is required", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.WriteBadRequest(w, getRequestID(r), "text is required", nil)
		return
	}

	var reviews []ingest.Review
	source := ingest.SourceTextInput
	switch req.Source {
	case "", string(ingest.SourceTextInput):
		reviews = ingest.ParseText(req.Text)
	case string(ingest.SourceImageOCR):
		source = ingest.SourceImageOCR
		reviews = ingest.SplitExtractedText(req.Text)
	default:
		response.WriteBadRequest(w, getRequestID(r), "Unknown source", req.Source)
		return
	}

	if len(reviews) == 0 {
		response.WriteError(w, getRequestID(r), http.StatusUnprocessableEntity,
			response.ErrorCodeNoReviewsFound, "No usable reviews in text", nil)
		return
	}

	upload := h.store.Create("", req.CompanyName, source)
	h.process(w, r, upload, reviews, nil, req.Email, req.Plan)
}

// process scores the reviews, renders the report and completes the upload.
func (h *UploadHandler) process(w http.ResponseWriter, r *http.Request, upload *store.Upload, reviews []ingest.Review, rowErrors []ingest.RowError, email, plan string) {
	requestID := getRequestID(r)
	log := h.logger.WithContext(r.Context()).WithField("upload_id", upload.ID.String())

	if err := h.store.SetProcessing(upload.ID); err != nil {
		response.WriteInternalServerError(w, requestID, "Failed to start processing", err.Error())
		return
	}

	texts := make([]string, 0, len(reviews))
	for _, review := range reviews {
		texts = append(texts, review.Text)
	}
	analyses := h.service.AnalyzeBatch(texts)

	scored := make([]report.ScoredReview, 0, len(reviews))
	for i, review := range reviews {
		scored = append(scored, report.ScoredReview{
			Review:   review,
			Analysis: analyses[i],
		})
	}
	summary := report.Summarize(scored)

	reportPath := filepath.Join(h.reportsDir, fmt.Sprintf("%s.pdf", upload.ID))
	if err := h.generator.Generate(upload.CompanyName, scored, reportPath); err != nil {
		log.WithField("error", err.Error()).Error("Report generation failed")
		if failErr := h.store.Fail(upload.ID, "report generation failed"); failErr != nil {
			log.WithField("error", failErr.Error()).Error("Failed to mark upload as failed")
		}
		response.WriteError(w, requestID, http.StatusInternalServerError,
			response.ErrorCodeProcessingFailed, "Failed to generate report", nil)
		return
	}

	if err := h.store.Complete(upload.ID, scored, rowErrors, summary, reportPath); err != nil {
		response.WriteInternalServerError(w, requestID, "Failed to complete upload", err.Error())
		return
	}

	log.WithFields(map[string]interface{}{
		"review_count": summary.TotalReviews,
		"positive_pct": summary.PositivePct,
		"negative_pct": summary.NegativePct,
	}).Info("Upload analyzed")

	h.notifyReportReady(r, upload.ID, email, plan, summary)

	completed, err := h.store.Get(upload.ID)
	if err != nil {
		response.WriteInternalServerError(w, requestID, "Failed to load upload", err.Error())
		return
	}
	response.WriteCreated(w, requestID, h.toResponse(completed, false))
}

// notifyReportReady sends the report-ready email when eligible. Failures
// are logged, never surfaced to the client.
func (h *UploadHandler) notifyReportReady(r *http.Request, uploadID uuid.UUID, email, plan string, summary report.Summary) {
	if email == "" {
		return
	}

	upload, err := h.store.Get(uploadID)
	if err != nil {
		return
	}

	reportURL := fmt.Sprintf("http://%s/api/v1/uploads/%s/report", r.Host, uploadID)
	sent, err := h.mailer.SendReportReady(email, plan, notify.ReportReady{
		CompanyName: upload.CompanyName,
		ReviewCount: summary.TotalReviews,
		PositivePct: summary.PositivePct,
		NegativePct: summary.NegativePct,
		ReportURL:   reportURL,
	})
	log := h.logger.WithContext(r.Context()).WithField("upload_id", uploadID.String())
	if err != nil {
		log.WithField("error", err.Error()).Warn("Report-ready email failed")
		return
	}
	if sent {
		log.Info("Report-ready email sent")
	}
}

// Get handles GET {prefix}/uploads/{id}
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodGet {
		response.WriteMethodNotAllowed(w, getRequestID(r), "Method not allowed")
		return
	}

	upload, err := h.store.Get(id)
	if err != nil {
		response.WriteError(w, getRequestID(r), http.StatusNotFound,
			response.ErrorCodeUploadNotFound, "Upload not found", id.String())
		return
	}

	response.WriteSuccess(w, getRequestID(r), h.toResponse(upload, true))
}

// Report handles GET {prefix}/uploads/{id}/report and streams the PDF.
func (h *UploadHandler) Report(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodGet {
		response.WriteMethodNotAllowed(w, getRequestID(r), "Method not allowed")
		return
	}

	upload, err := h.store.Get(id)
	if err != nil {
		response.WriteError(w, getRequestID(r), http.StatusNotFound,
			response.ErrorCodeUploadNotFound, "Upload not found", id.String())
		return
	}

	if upload.Status != store.StatusCompleted || upload.ReportPath == "" {
		response.WriteError(w, getRequestID(r), http.StatusConflict,
			response.ErrorCodeReportNotReady, "Report is not ready", string(upload.Status))
		return
	}

	file, err := os.Open(upload.ReportPath)
	if err != nil {
		response.WriteError(w, getRequestID(r), http.StatusNotFound,
			response.ErrorCodeReportNotReady, "Report file no longer available", nil)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("neilanx_rapport_%s.pdf", id)))
	io.Copy(w, file)
}

// toResponse builds the API view of an upload, with per-review results
// when includeReviews is set.
func (h *UploadHandler) toResponse(upload *store.Upload, includeReviews bool) UploadResponse {
	resp := UploadResponse{Upload: upload}
	if !includeReviews {
		return resp
	}

	resp.Reviews = make([]ReviewResult, 0, len(upload.Reviews))
	for _, scored := range upload.Reviews {
		resp.Reviews = append(resp.Reviews, ReviewResult{
			ID:         scored.Review.ID,
			Text:       scored.Review.Text,
			Rating:     scored.Review.Rating,
			Platform:   scored.Review.Platform,
			ReviewDate: scored.Review.ReviewDate,
			Sentiment:  string(scored.Analysis.Sentiment),
			Score:      scored.Analysis.Score,
			Confidence: scored.Analysis.Confidence,
			Keywords:   scored.Analysis.Keywords,
		})
	}
	return resp
}
