package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse is the standard error envelope returned by every endpoint.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError writes an error as an HTTP response. AppErrors are mapped to
// their status code; anything else is treated as an internal error.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPErrorResponse{
			Error: &HTTPErrorDetail{
				Message: "internal server error",
				Type:    "INTERNAL",
			},
		})
		return
	}

	LogError(log, appErr)

	c.AbortWithStatusJSON(ErrorTypeToHTTPStatus(appErr.Type), HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   appErr.Message,
			Type:      string(appErr.Type),
			Code:      appErr.UUID,
			RequestID: appErr.RequestID,
		},
	})
}
