package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminneilan16/NeilanX/internal/server/response"
	"github.com/benjaminneilan16/NeilanX/internal/store"
	"github.com/benjaminneilan16/NeilanX/pkg/analysis"
	"github.com/benjaminneilan16/NeilanX/pkg/logger"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	config := GetDefaultConfig()
	config.ReportsDir = t.TempDir()
	config.LogRequests = false
	config.RateLimitEnabled = false

	log := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: logger.JSONFormat,
		Output: io.Discard,
	})

	return NewRouter(config, store.NewStore(), analysis.NewService(nil), log)
}

func doJSON(t *testing.T, router *Router, method, path string, body interface{}) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope response.APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var health response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Checks["reports_dir"])
}

func TestAnalyzeSingleText(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/reviews/analyze",
		map[string]string{"text": "mycket bra leverans och fantastisk kvalitet"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "positive", data["sentiment"])
	assert.Greater(t, data["score"].(float64), 0.6)
}

func TestAnalyzeBatch(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/reviews/analyze",
		map[string][]string{"texts": {"mycket bra", "hemsk kundtjänst", ""}})

	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["count"])

	results := data["results"].([]interface{})
	require.Len(t, results, 3)
	assert.Equal(t, "positive", results[0].(map[string]interface{})["sentiment"])
	assert.Equal(t, "negative", results[1].(map[string]interface{})["sentiment"])
	assert.Equal(t, "neutral", results[2].(map[string]interface{})["sentiment"])
}

func TestAnalyzeRejectsEmptyRequest(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/reviews/analyze",
		map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
}

func TestAnalyzeRejectsGet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTextUploadLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/uploads", map[string]string{
		"company_name": "Testbolaget AB",
		"text":         "Fantastisk produkt och mycket bra service\nHemsk kundtjänst och trasig leverans\nPaketet levererades i tisdags",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)

	created := envelope.Data.(map[string]interface{})
	assert.Equal(t, "completed", created["status"])
	id := created["id"].(string)
	require.NotEmpty(t, id)

	summary := created["summary"].(map[string]interface{})
	assert.Equal(t, float64(3), summary["total_reviews"])

	// Fetch with per-review results.
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/uploads/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := envelope.Data.(map[string]interface{})
	reviews := fetched["reviews"].([]interface{})
	require.Len(t, reviews, 3)
	assert.Equal(t, "positive", reviews[0].(map[string]interface{})["sentiment"])
	assert.Equal(t, "negative", reviews[1].(map[string]interface{})["sentiment"])

	// Stream the PDF report.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+id+"/report", nil)
	pdfRec := httptest.NewRecorder()
	router.ServeHTTP(pdfRec, req)

	assert.Equal(t, http.StatusOK, pdfRec.Code)
	assert.Equal(t, "application/pdf", pdfRec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(pdfRec.Body.Bytes(), []byte("%PDF")))
}

func TestCSVUpload(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("company_name", "Testbolaget AB"))
	part, err := writer.CreateFormFile("file", "recensioner.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("review,rating\nMycket bra produkt och leverans,5\nHelt värdelös kvalitet,1\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	created := envelope.Data.(map[string]interface{})
	assert.Equal(t, "csv", created["source"])
	assert.Equal(t, "recensioner.csv", created["filename"])
}

func TestCSVUploadRejectsOtherExtensions(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("company_name", "Testbolaget AB"))
	part, err := writer.CreateFormFile("file", "recensioner.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a csv"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrorCodeInvalidFileFormat, envelope.Error.Code)
}

func TestUploadUnknownID(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet,
		"/api/v1/uploads/8b7f2e31-32c4-4a0e-9c19-000000000000", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrorCodeUploadNotFound, envelope.Error.Code)
}

func TestUploadInvalidID(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/uploads/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTextUploadNoUsableReviews(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/uploads", map[string]string{
		"company_name": "Testbolaget AB",
		"text":         "ab",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrorCodeNoReviewsFound, envelope.Error.Code)
}

func TestRequestIDHeaderSet(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
