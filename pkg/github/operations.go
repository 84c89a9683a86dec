package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// SearchOldestLabeled returns the numbers of open issues carrying label,
// ordered oldest-updated-first. A single page of at most pageSize results is
// fetched; anything beyond the page is left for a later run.
func (c *Client) SearchOldestLabeled(ctx context.Context, owner, repo, label string, pageSize int) ([]int, error) {
	query := fmt.Sprintf("repo:%s/%s is:issue is:open label:%q", owner, repo, label)
	opts := &github.SearchOptions{
		Sort:        "updated",
		Order:       "asc",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	result, resp, err := c.gh.Search.Issues(ctx, query, opts)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	numbers := make([]int, 0, len(result.Issues))
	for _, issue := range result.Issues {
		if issue == nil {
			continue
		}
		numbers = append(numbers, issue.GetNumber())
	}

	return numbers, nil
}

// ListLabelEvents fetches the label history of an issue in chronological
// order, paginating through the issue timeline.
func (c *Client) ListLabelEvents(ctx context.Context, owner, repo string, number int) ([]LabelEvent, error) {
	opts := &github.ListOptions{PerPage: 100}

	var events []LabelEvent
	for {
		timeline, resp, err := c.gh.Issues.ListIssueTimeline(ctx, owner, repo, number, opts)
		c.track(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issue timeline: %w", err)
		}

		for _, entry := range timeline {
			if entry == nil {
				continue
			}
			kind := entry.GetEvent()
			if kind != "labeled" && kind != "unlabeled" {
				continue
			}

			event := LabelEvent{
				Event:     kind,
				CreatedAt: entry.GetCreatedAt().Time,
			}
			if label := entry.GetLabel(); label != nil {
				event.Label = label.GetName()
			}
			if actor := entry.GetActor(); actor != nil {
				event.Actor = actor.GetLogin()
			}
			events = append(events, event)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return events, nil
}

// ListIssueLabels returns the names of the labels currently on an issue
func (c *Client) ListIssueLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var names []string
	for {
		labels, resp, err := c.gh.Issues.ListLabelsByIssue(ctx, owner, repo, number, opts)
		c.track(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to list issue labels: %w", err)
		}

		for _, label := range labels {
			names = append(names, label.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// GetLabel fetches a repository label by name
func (c *Client) GetLabel(ctx context.Context, owner, repo, name string) (*LabelInfo, error) {
	label, resp, err := c.gh.Issues.GetLabel(ctx, owner, repo, name)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to get label %q: %w", name, err)
	}

	return &LabelInfo{
		Name:  label.GetName(),
		Color: label.GetColor(),
	}, nil
}

// EnsureLabel creates a repository label if it does not exist yet.
// A label that is already present, or a concurrent create racing ours,
// is treated as success.
func (c *Client) EnsureLabel(ctx context.Context, owner, repo, name, color string) error {
	_, err := c.GetLabel(ctx, owner, repo, name)
	if err == nil {
		return nil
	}
	if !IsNotFoundError(err) {
		return err
	}

	_, resp, err := c.gh.Issues.CreateLabel(ctx, owner, repo, &github.Label{
		Name:  github.String(name),
		Color: github.String(color),
	})
	c.track(resp)
	if err != nil && !IsAlreadyExistsError(err) {
		return fmt.Errorf("failed to create label %q: %w", name, err)
	}

	return nil
}

// AddLabels applies labels to an issue
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	_, resp, err := c.gh.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to add labels to issue #%d: %w", number, err)
	}
	return nil
}

// RemoveLabel removes a label from an issue. Removing a label that is not
// on the issue is treated as success, the desired end state already holds.
func (c *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	resp, err := c.gh.Issues.RemoveLabelForIssue(ctx, owner, repo, number, label)
	c.track(resp)
	if err != nil {
		if IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to remove label %q from issue #%d: %w", label, number, err)
	}
	return nil
}

// CreateComment posts a comment on an issue
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, resp, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", number, err)
	}
	return nil
}

// CloseIssue closes an issue with the given state reason
// ("completed" or "not_planned")
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, number int, reason string) error {
	req := &github.IssueRequest{
		State:       github.String("closed"),
		StateReason: github.String(reason),
	}
	_, resp, err := c.gh.Issues.Edit(ctx, owner, repo, number, req)
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

// ReopenIssue reopens a closed issue
func (c *Client) ReopenIssue(ctx context.Context, owner, repo string, number int) error {
	req := &github.IssueRequest{State: github.String("open")}
	_, resp, err := c.gh.Issues.Edit(ctx, owner, repo, number, req)
	c.track(resp)
	if err != nil {
		return fmt.Errorf("failed to reopen issue #%d: %w", number, err)
	}
	return nil
}

// GetIssue fetches an issue's author, state, closer, and current labels
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*IssueInfo, error) {
	issue, resp, err := c.gh.Issues.Get(ctx, owner, repo, number)
	c.track(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}

	return convertFromGitHubIssue(issue), nil
}

// convertFromGitHubIssue converts a github.Issue to our IssueInfo type
func convertFromGitHubIssue(issue *github.Issue) *IssueInfo {
	info := &IssueInfo{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		URL:       issue.GetHTMLURL(),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
	}

	if user := issue.GetUser(); user != nil {
		info.Author = user.GetLogin()
	}

	// ClosedBy is only populated on single-issue fetches
	if closer := issue.GetClosedBy(); closer != nil {
		info.ClosedBy = closer.GetLogin()
	}

	info.Labels = make([]string, len(issue.Labels))
	for i, label := range issue.Labels {
		info.Labels[i] = label.GetName()
	}

	return info
}
