package common

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ClassifyProviderError maps an upstream provider error to an HTTP status
// and error code. Upstream APIs report failures as free text, so this is a
// substring match; anything unrecognized is a generic provider error.
func ClassifyProviderError(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, CodeTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"):
		return http.StatusTooManyRequests, CodeRateLimitExceeded
	case strings.Contains(msg, "api key"), strings.Contains(msg, "authentication"), strings.Contains(msg, "unauthorized"):
		return http.StatusUnauthorized, CodeUnauthorized
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusBadGateway, CodeAIProviderError
	}
}
