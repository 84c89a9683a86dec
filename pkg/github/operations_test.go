package github

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/dnaeon/go-vcr.v2/recorder"
)

// newReplayClient builds a Client whose transport replays a recorded cassette
func newReplayClient(t *testing.T, cassette string) *Client {
	t.Helper()

	r, err := recorder.NewAsMode(filepath.Join("testdata", "cassettes", cassette), recorder.ModeReplaying, nil)
	if err != nil {
		t.Fatalf("failed to open cassette %s: %v", cassette, err)
	}
	t.Cleanup(func() {
		if err := r.Stop(); err != nil {
			t.Errorf("failed to stop recorder: %v", err)
		}
	})

	return NewClient("", WithHTTPClient(&http.Client{Transport: r}))
}

func TestEnsureLabel_AlreadyExists(t *testing.T) {
	client := newReplayClient(t, "ensure_label_exists")

	err := client.EnsureLabel(context.Background(), "acme", "widgets", "response-required", "ffffff")
	if err != nil {
		t.Fatalf("EnsureLabel() error = %v", err)
	}
}

func TestEnsureLabel_CreatesWhenMissing(t *testing.T) {
	client := newReplayClient(t, "ensure_label_missing")

	err := client.EnsureLabel(context.Background(), "acme", "widgets", "follow-up", "cccccc")
	if err != nil {
		t.Fatalf("EnsureLabel() error = %v", err)
	}
}

func TestRemoveLabel_NotPresentIsSuccess(t *testing.T) {
	client := newReplayClient(t, "remove_label_not_present")

	err := client.RemoveLabel(context.Background(), "acme", "widgets", 7, "response-required")
	if err != nil {
		t.Fatalf("RemoveLabel() error = %v, want nil for absent label", err)
	}
}

func TestGetIssue(t *testing.T) {
	client := newReplayClient(t, "get_issue")

	issue, err := client.GetIssue(context.Background(), "acme", "widgets", 7)
	if err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}

	if issue.Number != 7 {
		t.Errorf("Number = %d, want 7", issue.Number)
	}
	if issue.Author != "reporter" {
		t.Errorf("Author = %q, want %q", issue.Author, "reporter")
	}
	if issue.State != "closed" {
		t.Errorf("State = %q, want %q", issue.State, "closed")
	}
	if issue.ClosedBy != "maintainer" {
		t.Errorf("ClosedBy = %q, want %q", issue.ClosedBy, "maintainer")
	}
	wantLabels := []string{"response-required", "bug"}
	if len(issue.Labels) != len(wantLabels) {
		t.Fatalf("Labels = %v, want %v", issue.Labels, wantLabels)
	}
	for i, want := range wantLabels {
		if issue.Labels[i] != want {
			t.Errorf("Labels[%d] = %q, want %q", i, issue.Labels[i], want)
		}
	}
}

func TestListLabelEvents(t *testing.T) {
	client := newReplayClient(t, "label_events")

	events, err := client.ListLabelEvents(context.Background(), "acme", "widgets", 7)
	if err != nil {
		t.Fatalf("ListLabelEvents() error = %v", err)
	}

	// The commented entry must be filtered out, label events kept in order
	want := []LabelEvent{
		{Event: "labeled", Label: "response-required", Actor: "maintainer", CreatedAt: time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)},
		{Event: "unlabeled", Label: "response-required", Actor: "maintainer", CreatedAt: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)},
		{Event: "labeled", Label: "bug", Actor: "maintainer", CreatedAt: time.Date(2026, 5, 12, 12, 0, 0, 0, time.UTC)},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		got := events[i]
		if got.Event != w.Event || got.Label != w.Label || got.Actor != w.Actor || !got.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("events[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestSearchOldestLabeled(t *testing.T) {
	client := newReplayClient(t, "search_oldest_labeled")

	numbers, err := client.SearchOldestLabeled(context.Background(), "acme", "widgets", "response-required", 30)
	if err != nil {
		t.Fatalf("SearchOldestLabeled() error = %v", err)
	}

	want := []int{5, 9}
	if len(numbers) != len(want) {
		t.Fatalf("got %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("numbers[%d] = %d, want %d", i, numbers[i], want[i])
		}
	}
}
