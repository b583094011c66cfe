package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoUsableModels  = errors.New("no models with generateContent support")
	ErrAllModelsFailed = errors.New("no listed model could be bound")
)

// APIError carries the status triple the API reports on failure. Status is the
// google.rpc code string ("RESOURCE_EXHAUSTED", "NOT_FOUND", ...).
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini api error %d (%s): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api error %d (%s)", e.Code, e.Status)
}

func parseAPIError(statusCode int, body []byte) error {
	var parsed struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	apiErr := &APIError{Code: statusCode}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Code != 0 {
		apiErr.Code = parsed.Error.Code
		apiErr.Status = parsed.Error.Status
		apiErr.Message = parsed.Error.Message
	}
	return apiErr
}

func classify(err error, code int, statuses ...string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == code {
		return true
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}

// IsRateLimited matches the quota/rate-limit class, the only class the
// orchestrator retries.
func IsRateLimited(err error) bool {
	if classify(err, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED") {
		return true
	}
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource exhausted")
}

func IsUnauthenticated(err error) bool {
	return classify(err, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func IsPermissionDenied(err error) bool {
	return classify(err, http.StatusForbidden, "PERMISSION_DENIED")
}

func IsNotFound(err error) bool {
	return classify(err, http.StatusNotFound, "NOT_FOUND")
}
