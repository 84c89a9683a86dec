// Package event reads the webhook payloads the CI environment writes to
// disk (GITHUB_EVENT_PATH) and reduces them to the few fields the sweep
// workflows consult.
package event

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v68/github"

	gh "github.com/stalesweep/stalesweep/pkg/github"
)

// CommentEvent is an inbound issue_comment event reduced to the fields
// the unmark workflow needs
type CommentEvent struct {
	Repo          gh.Repo
	IssueNumber   int
	IssueAuthor   string
	CommentAuthor string
	Body          string
	IsPullRequest bool
}

// CloseEvent is an inbound issues/closed event reduced to the fields the
// label cleanup workflow needs
type CloseEvent struct {
	Repo        gh.Repo
	IssueNumber int
	IssueAuthor string
	Sender      string
}

// LoadCommentEvent reads and parses an issue_comment event payload.
// Only "created" comments are accepted.
func LoadCommentEvent(path string) (*CommentEvent, error) {
	data, err := readPayload(path)
	if err != nil {
		return nil, err
	}

	var payload github.IssueCommentEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse issue_comment event: %w", err)
	}

	if action := payload.GetAction(); action != "" && action != "created" {
		return nil, fmt.Errorf("unexpected issue_comment action %q, want created", action)
	}

	issue := payload.GetIssue()
	comment := payload.GetComment()
	if issue == nil || comment == nil {
		return nil, fmt.Errorf("issue_comment event is missing issue or comment")
	}

	ev := &CommentEvent{
		IssueNumber:   issue.GetNumber(),
		Body:          comment.GetBody(),
		IsPullRequest: issue.IsPullRequest(),
	}
	if user := issue.GetUser(); user != nil {
		ev.IssueAuthor = user.GetLogin()
	}
	if user := comment.GetUser(); user != nil {
		ev.CommentAuthor = user.GetLogin()
	}
	if repo := payload.GetRepo(); repo != nil {
		ev.Repo, err = gh.ParseRepo(repo.GetFullName())
		if err != nil {
			return nil, err
		}
	}

	return ev, nil
}

// LoadCloseEvent reads and parses an issues event payload.
// Only the "closed" action is accepted.
func LoadCloseEvent(path string) (*CloseEvent, error) {
	data, err := readPayload(path)
	if err != nil {
		return nil, err
	}

	var payload github.IssuesEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse issues event: %w", err)
	}

	if action := payload.GetAction(); action != "" && action != "closed" {
		return nil, fmt.Errorf("unexpected issues action %q, want closed", action)
	}

	issue := payload.GetIssue()
	if issue == nil {
		return nil, fmt.Errorf("issues event is missing issue")
	}

	ev := &CloseEvent{
		IssueNumber: issue.GetNumber(),
	}
	if user := issue.GetUser(); user != nil {
		ev.IssueAuthor = user.GetLogin()
	}
	if sender := payload.GetSender(); sender != nil {
		ev.Sender = sender.GetLogin()
	}
	if repo := payload.GetRepo(); repo != nil {
		ev.Repo, err = gh.ParseRepo(repo.GetFullName())
		if err != nil {
			return nil, err
		}
	}

	return ev, nil
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("no event payload available (GITHUB_EVENT_PATH is not set)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	return data, nil
}
