package errors

// standardized error envelope
type ErrorResponse struct {
	Success   bool      `json:"success"` // always false
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"` // RFC3339, UTC
}

type ErrorBody struct {
	Message string `json:"message"`           // user-friendly message
	Code    string `json:"code"`              // error code (e.g., "validation_error", "not_found")
	Details any    `json:"details,omitempty"` // optional details (sanitized in production)
}

type ErrorInfo struct {
	category  string
	sanitized string
}
