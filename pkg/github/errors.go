package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
)

// RateLimitInfo carries rate limit headers attached to an API error
type RateLimitInfo struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

// APIError represents an error response from the GitHub API
type APIError struct {
	StatusCode int
	Message    string
	RateLimit  *RateLimitInfo
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
}

// statusCode extracts the HTTP status from our APIError or a go-github
// error response, unwrapping as needed. Returns 0 when unavailable.
func statusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}

	return 0
}

// IsNotFoundError reports whether err is a 404 from the API
func IsNotFoundError(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

// IsAuthenticationError reports whether err is a 401 from the API
func IsAuthenticationError(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsAlreadyExistsError reports whether err is a validation failure caused by
// creating a resource that already exists (e.g. a duplicate label).
func IsAlreadyExistsError(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		if ghErr.Response == nil || ghErr.Response.StatusCode != http.StatusUnprocessableEntity {
			return false
		}
		for _, e := range ghErr.Errors {
			if e.Code == "already_exists" {
				return true
			}
		}
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnprocessableEntity
	}

	return false
}

// IsRateLimitError reports whether err indicates the API rate limit was hit.
// GitHub signals this with 429, or 403 carrying rate limit headers.
func IsRateLimitError(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		return apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimit != nil
	}

	return false
}
