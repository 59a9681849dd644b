package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/benjaminneilan16/NeilanX/internal/server/response"
	"github.com/benjaminneilan16/NeilanX/pkg/analysis"
	"github.com/benjaminneilan16/NeilanX/pkg/logger"
)

const maxBatchTexts = 100

// AnalyzeHandler handles ad-hoc sentiment analysis requests
type AnalyzeHandler struct {
	service *analysis.Service
	logger  *logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(service *analysis.Service, logger *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzeRequest represents an analysis request. Either Text or Texts must
// be set; Texts takes precedence when both are present.
type AnalyzeRequest struct {
	Text  string   `json:"text,omitempty"`
	Texts []string `json:"texts,omitempty"`
}

// AnalyzeResult represents one analyzed text
type AnalyzeResult struct {
	Sentiment  string             `json:"sentiment"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	RawScores  analysis.RawScores `json:"raw_scores"`
	Keywords   []string           `json:"keywords"`
}

// BatchAnalyzeResponse represents a batch analysis response
type BatchAnalyzeResponse struct {
	Results []AnalyzeResult `json:"results"`
	Count   int             `json:"count"`
}

// Analyze handles POST {prefix}/reviews/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteMethodNotAllowed(w, getRequestID(r), "Method not allowed")
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, getRequestID(r), "Invalid JSON request", err.Error())
		return
	}

	if len(req.Texts) > 0 {
		h.analyzeBatch(w, r, req.Texts)
		return
	}

	if req.Text == "" {
		response.WriteBadRequest(w, getRequestID(r), "Either text or texts is required", nil)
		return
	}

	result := toAnalyzeResult(analysis.ReviewAnalysis{
		SentimentResult: h.service.Analyze(req.Text),
		Keywords:        h.service.Keywords(req.Text),
	})
	response.WriteSuccess(w, getRequestID(r), result)
}

func (h *AnalyzeHandler) analyzeBatch(w http.ResponseWriter, r *http.Request, texts []string) {
	if len(texts) > maxBatchTexts {
		response.WriteBadRequest(w, getRequestID(r), "Too many texts",
			map[string]int{"max": maxBatchTexts, "got": len(texts)})
		return
	}

	analyses := h.service.AnalyzeBatch(texts)
	results := make([]AnalyzeResult, 0, len(analyses))
	for _, a := range analyses {
		results = append(results, toAnalyzeResult(a))
	}

	h.logger.WithContext(r.Context()).WithField("count", len(results)).Info("Batch analysis completed")
	response.WriteSuccess(w, getRequestID(r), BatchAnalyzeResponse{
		Results: results,
		Count:   len(results),
	})
}

func toAnalyzeResult(a analysis.ReviewAnalysis) AnalyzeResult {
	return AnalyzeResult{
		Sentiment:  string(a.Sentiment),
		Score:      a.Score,
		Confidence: a.Confidence,
		RawScores:  a.RawScores,
		Keywords:   a.Keywords,
	}
}

func getRequestID(r *http.Request) string {
	return getRequestIDFromContext(r.Context())
}

func getRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return "unknown"
}
