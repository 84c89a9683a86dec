package github

import "time"

// IssueInfo is the subset of issue state consulted by the sweep workflows
type IssueInfo struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Author    string    `json:"author"`
	ClosedBy  string    `json:"closed_by,omitempty"`
	Labels    []string  `json:"labels"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LabelEvent is a single entry of an issue's label history, in occurrence order
type LabelEvent struct {
	Event     string    `json:"event"` // "labeled" or "unlabeled"
	Label     string    `json:"label"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LabelInfo describes a repository label
type LabelInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
