package errors

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/internal/generator"
	"codeberg.org/wexar/server/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), errors.Generation(), etc.
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services and internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// nginx's non-standard status for a client that went away
const StatusClientClosedRequest = 499

// writes the error envelope and aborts the chain
func respond(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message: message,
			Code:    code,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	respond(c, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	respond(c, http.StatusNotFound, CodeNotFound, message, nil)
}

// returns a 404 error for session not found
func SessionNotFound(c *gin.Context) {
	respond(c, http.StatusNotFound, CodeSessionNotFound, "session not found", nil)
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	var details any
	if err != nil {
		details = sanitizeError(err)
	}

	respond(c, http.StatusBadRequest, CodeBadRequest, message, details)
}

// returns a 400 bad request error for validation failures.
// field errors from ozzo-validation are passed through as a map.
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"

	var details any
	if err != nil {
		details = validationDetails(err)
	}

	respond(c, http.StatusBadRequest, CodeValidationError, message, details)
}

// returns a 429 too many requests error, with Retry-After when known
func TooManyRequests(c *gin.Context, message string, retryAfter time.Duration) {
	if message == "" {
		message = "too many requests"
	}

	if retryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int((retryAfter+time.Second-1)/time.Second)))
	}

	respond(c, http.StatusTooManyRequests, CodeTooManyRequests, message, nil)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	var details any
	if err != nil {
		details = sanitizeError(err)
	}

	respond(c, http.StatusInternalServerError, CodeServerError, message, details)
}

// maps a generation failure to its status, code and details
func Generation(c *gin.Context, err error) {
	var genErr *generator.Error
	if !errors.As(err, &genErr) {
		InternalError(c, "generation failed", err)
		return
	}

	status, code := generationStatus(genErr.Kind)
	details := generationDetails(genErr)

	logArgs := []any{
		"path", c.Request.URL.Path,
		"kind", genErr.Kind,
		"status", status,
		"attempts", genErr.Attempts,
		"user_id", c.GetString("user_id"),
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorErr(err, "generation failed", logArgs...)
	} else {
		logger.Warn("generation rejected", append(logArgs, "error", err)...)
	}

	if genErr.Kind == generator.KindRateLimit {
		c.Header("Retry-After", "60")
	}

	respond(c, status, code, genErr.Message, details)
}

func generationStatus(kind generator.Kind) (int, string) {
	switch kind {
	case generator.KindInput:
		return http.StatusBadRequest, CodeValidationError
	case generator.KindRateLimit:
		return http.StatusTooManyRequests, CodeTooManyRequests
	case generator.KindCanceled:
		return StatusClientClosedRequest, CodeClientClosedRequest
	case generator.KindConfig:
		return http.StatusInternalServerError, CodeConfigError
	case generator.KindContent:
		return http.StatusInternalServerError, CodeInvalidGeneration
	case generator.KindProvider:
		return http.StatusInternalServerError, CodeProviderError
	}

	return http.StatusInternalServerError, CodeUpstreamError
}

func generationDetails(genErr *generator.Error) any {
	details := map[string]any{}

	if genErr.Attempts > 0 {
		details["attempts"] = genErr.Attempts
	}

	if genErr.StatusCode != 0 {
		details["upstreamStatus"] = genErr.StatusCode
	}

	if len(genErr.Details) > 0 {
		details["validationErrors"] = genErr.Details
	}

	if genErr.Err != nil && !isProduction() {
		details["cause"] = genErr.Err.Error()
	}

	if len(details) == 0 {
		return nil
	}

	return details
}
