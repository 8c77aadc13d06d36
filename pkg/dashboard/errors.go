package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const maxErrorBodyLength = 200

// APIError is returned when the dashboard answers a request with a non-2xx
// status after retries. Transport failures are reported as plain errors.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Reason     string
	Errors     []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s - %d %s", e.Method, e.Path, e.StatusCode, e.Reason)
	if len(e.Errors) > 0 {
		msg += ", " + strings.Join(e.Errors, "; ")
	}
	return msg
}

// IsAPIError reports whether err is, or wraps, an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func newAPIError(method, target string, resp *response) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       target,
		StatusCode: resp.statusCode,
		Reason:     http.StatusText(resp.statusCode),
	}
	if u, err := url.Parse(target); err == nil {
		apiErr.Path = u.Path
	}

	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(resp.body, &body); err == nil && len(body.Errors) > 0 {
		apiErr.Errors = body.Errors
		return apiErr
	}

	if text := strings.TrimSpace(string(resp.body)); text != "" {
		if len(text) > maxErrorBodyLength {
			text = text[:maxErrorBodyLength] + "..."
		}
		apiErr.Errors = []string{text}
	}
	return apiErr
}
