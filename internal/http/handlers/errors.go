package handlers

import (
	"net/http"

	"shopadmin/internal/domain"
	"shopadmin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
		Message:   message,
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	if se, ok := domain.AsStorage(err); ok {
		status := se.Status
		if status < 400 {
			status = http.StatusInternalServerError
		}
		// driver messages stay in the logs
		respondError(c, status, "storage_error", se.Msg, nil)
		return
	}
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		msg := "terjadi kesalahan"
		if ie, ok := domain.AsInternal(err); ok {
			msg = ie.Error()
		}
		respondError(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
