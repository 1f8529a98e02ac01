package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfworker/internal/domain"
)

// APIResponse is the standard envelope for all worker responses.
type APIResponse struct {
	Success          bool              `json:"success"`
	Result           interface{}       `json:"result,omitempty"`
	Format           string            `json:"format,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	ProcessingTimeMS int64             `json:"processing_time_ms,omitempty"`
	Error            *APIError         `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// RespondResult sends a 200 success response with the processed output.
func RespondResult(c *gin.Context, result interface{}, format string, metadata map[string]string, elapsedMS int64) {
	c.JSON(http.StatusOK, APIResponse{
		Success:          true,
		Result:           result,
		Format:           format,
		Metadata:         metadata,
		ProcessingTimeMS: elapsedMS,
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes, separating caller-correctable validation errors from fatal
// processing failures.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPageRange):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrInvalidDocument):
		return http.StatusBadRequest, "INVALID_DOCUMENT", "invalid or corrupted PDF document"
	case errors.Is(err, domain.ErrInvalidBase64):
		return http.StatusBadRequest, "INVALID_BASE64", "request data is not valid base64"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return http.StatusBadRequest, "INVALID_OPERATION", "operation is not supported"
	default:
		return http.StatusInternalServerError, "PROCESSING_FAILED", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// contentType maps an output format to its response content type.
func contentType(format string) string {
	switch format {
	case "html":
		return "text/html"
	case "markdown":
		return "text/markdown"
	case "csv":
		return "text/csv"
	default:
		return "application/json"
	}
}
