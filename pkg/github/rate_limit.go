package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// defaultRateLimit is the documented core API limit for authenticated requests
const defaultRateLimit = 5000

// RateLimitStatus represents the current rate limit status
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
	Used      int       `json:"used"`
}

// RateLimitTracker tracks rate limit information from GitHub API responses
type RateLimitTracker struct {
	mu    sync.RWMutex
	limit RateLimitStatus
}

// NewRateLimitTracker creates a new rate limit tracker
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{
		limit: RateLimitStatus{
			Limit: defaultRateLimit,
		},
	}
}

// Update updates the rate limit status from HTTP response headers
func (r *RateLimitTracker) Update(resp *http.Response) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit.Limit = val
		}
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.limit.Remaining = val
		}
	}

	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.limit.Reset = time.Unix(val, 0)
		}
	}

	if used := resp.Header.Get("X-RateLimit-Used"); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			r.limit.Used = val
		}
	}
}

// GetStatus returns a copy of the current rate limit status
func (r *RateLimitTracker) GetStatus() RateLimitStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RateLimitStatus{
		Limit:     r.limit.Limit,
		Remaining: r.limit.Remaining,
		Reset:     r.limit.Reset,
		Used:      r.limit.Used,
	}
}
