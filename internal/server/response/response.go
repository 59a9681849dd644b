// Package response provides the JSON envelope used by all API handlers.
package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError represents an API error
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ResponseWriter provides utility methods for writing API responses
type ResponseWriter struct {
	w         http.ResponseWriter
	requestID string
}

// NewResponseWriter creates a new response writer
func NewResponseWriter(w http.ResponseWriter, requestID string) *ResponseWriter {
	return &ResponseWriter{
		w:         w,
		requestID: requestID,
	}
}

// Success writes a successful response
func (rw *ResponseWriter) Success(data interface{}) {
	response := APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rw.requestID,
	}

	rw.writeJSON(http.StatusOK, response)
}

// Created writes a created response (201)
func (rw *ResponseWriter) Created(data interface{}) {
	response := APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rw.requestID,
	}

	rw.writeJSON(http.StatusCreated, response)
}

// Accepted writes an accepted response (202)
func (rw *ResponseWriter) Accepted(data interface{}) {
	response := APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rw.requestID,
	}

	rw.writeJSON(http.StatusAccepted, response)
}

// Error writes an error response
func (rw *ResponseWriter) Error(statusCode int, code, message string, details interface{}) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
		RequestID: rw.requestID,
	}

	rw.writeJSON(statusCode, response)
}

// BadRequest writes a bad request error (400)
func (rw *ResponseWriter) BadRequest(message string, details interface{}) {
	rw.Error(http.StatusBadRequest, ErrorCodeBadRequest, message, details)
}

// NotFound writes a not found error (404)
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrorCodeNotFound, message, nil)
}

// MethodNotAllowed writes a method not allowed error (405)
func (rw *ResponseWriter) MethodNotAllowed(message string) {
	rw.Error(http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, message, nil)
}

// Conflict writes a conflict error (409)
func (rw *ResponseWriter) Conflict(message string, details interface{}) {
	rw.Error(http.StatusConflict, ErrorCodeConflict, message, details)
}

// UnprocessableEntity writes an unprocessable entity error (422)
func (rw *ResponseWriter) UnprocessableEntity(message string, details interface{}) {
	rw.Error(http.StatusUnprocessableEntity, ErrorCodeUnprocessableEntity, message, details)
}

// InternalServerError writes an internal server error (500)
func (rw *ResponseWriter) InternalServerError(message string, details interface{}) {
	rw.Error(http.StatusInternalServerError, ErrorCodeInternalError, message, details)
}

// ValidationError writes a validation error response
func (rw *ResponseWriter) ValidationError(errors interface{}) {
	rw.Error(http.StatusBadRequest, ErrorCodeValidationError, "Validation failed", errors)
}

// writeJSON writes a JSON response
func (rw *ResponseWriter) writeJSON(statusCode int, data interface{}) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(data); err != nil {
		http.Error(rw.w, "Internal server error", http.StatusInternalServerError)
	}
}

// Helper functions for common responses

// WriteSuccess writes a success response
func WriteSuccess(w http.ResponseWriter, requestID string, data interface{}) {
	NewResponseWriter(w, requestID).Success(data)
}

// WriteCreated writes a created response
func WriteCreated(w http.ResponseWriter, requestID string, data interface{}) {
	NewResponseWriter(w, requestID).Created(data)
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, requestID string, statusCode int, code, message string, details interface{}) {
	NewResponseWriter(w, requestID).Error(statusCode, code, message, details)
}

// WriteBadRequest writes a bad request error
func WriteBadRequest(w http.ResponseWriter, requestID string, message string, details interface{}) {
	NewResponseWriter(w, requestID).BadRequest(message, details)
}

// WriteNotFound writes a not found error
func WriteNotFound(w http.ResponseWriter, requestID string, message string) {
	NewResponseWriter(w, requestID).NotFound(message)
}

// WriteMethodNotAllowed writes a method not allowed error
func WriteMethodNotAllowed(w http.ResponseWriter, requestID string, message string) {
	NewResponseWriter(w, requestID).MethodNotAllowed(message)
}

// WriteInternalServerError writes an internal server error
func WriteInternalServerError(w http.ResponseWriter, requestID string, message string, details interface{}) {
	NewResponseWriter(w, requestID).InternalServerError(message, details)
}

// WriteValidationError writes a validation error
func WriteValidationError(w http.ResponseWriter, requestID string, errors interface{}) {
	NewResponseWriter(w, requestID).ValidationError(errors)
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// WriteHealthCheck writes a health check response
func WriteHealthCheck(w http.ResponseWriter, status string, version string, checks map[string]string) {
	response := HealthResponse{
		Status:    status,
		Version:   version,
		Timestamp: time.Now(),
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// ErrorCode constants
const (
	ErrorCodeBadRequest          = "BAD_REQUEST"
	ErrorCodeNotFound            = "NOT_FOUND"
	ErrorCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrorCodeConflict            = "CONFLICT"
	ErrorCodeValidationError     = "VALIDATION_ERROR"
	ErrorCodeInternalError       = "INTERNAL_SERVER_ERROR"
	ErrorCodeUnprocessableEntity = "UNPROCESSABLE_ENTITY"

	// Business logic error codes
	ErrorCodeUploadNotFound    = "UPLOAD_NOT_FOUND"
	ErrorCodeNoReviewsFound    = "NO_REVIEWS_FOUND"
	ErrorCodeInvalidFileFormat = "INVALID_FILE_FORMAT"
	ErrorCodeProcessingFailed  = "PROCESSING_FAILED"
	ErrorCodeReportNotReady    = "REPORT_NOT_READY"
)
