// Package github wraps the GitHub REST API behind the small surface the
// sweeper needs: searching labeled issues, reading label history, managing
// labels, commenting, and changing issue state.
package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

// Client provides access to the GitHub issue and label operations used by
// the sweep workflows.
type Client struct {
	gh         *github.Client
	token      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	rateLimits *RateLimitTracker
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL (for GitHub Enterprise or tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient supplies a custom HTTP client (used by tests to inject a
// recording transport). The token is still attached via the auth header.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new GitHub API client authenticated with token
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		timeout:    30 * time.Second,
		rateLimits: NewRateLimitTracker(),
	}

	for _, opt := range opts {
		opt(c)
	}

	httpClient := c.httpClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = c.timeout
	}

	gh := github.NewClient(httpClient)
	if c.httpClient != nil && token != "" {
		gh = gh.WithAuthToken(token)
	}

	if c.baseURL != defaultBaseURL {
		if u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/"); err == nil {
			gh.BaseURL = u
		}
	}

	c.gh = gh
	return c
}

// GitHubClient exposes the underlying go-github client
func (c *Client) GitHubClient() *github.Client {
	return c.gh
}

// RateLimit returns the most recently observed rate limit status
func (c *Client) RateLimit() RateLimitStatus {
	return c.rateLimits.GetStatus()
}

// track records rate limit headers from an API response
func (c *Client) track(resp *github.Response) {
	if resp != nil && resp.Response != nil {
		c.rateLimits.Update(resp.Response)
	}
}
