package common

import (
	"github.com/gin-gonic/gin"
)

// Error codes shared by every endpoint.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeModelNotAvailable  = "MODEL_NOT_AVAILABLE"
	CodeAIProviderError    = "AI_PROVIDER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorBody{Error: msg, Code: code})
}

// FailDetails adds upstream detail without changing the public message.
func FailDetails(c *gin.Context, status int, code, msg, details string) {
	c.JSON(status, ErrorBody{Error: msg, Code: code, Details: details})
}
