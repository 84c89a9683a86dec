package sweeper

import (
	"testing"
	"time"

	gh "github.com/stalesweep/stalesweep/pkg/github"
)

const requiredLabel = "response-required"

var t0 = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func labeled(label string, at time.Time) gh.LabelEvent {
	return gh.LabelEvent{Event: "labeled", Label: label, CreatedAt: at}
}

func unlabeled(label string, at time.Time) gh.LabelEvent {
	return gh.LabelEvent{Event: "unlabeled", Label: label, CreatedAt: at}
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func TestIsCloseable(t *testing.T) {
	tests := []struct {
		name   string
		events []gh.LabelEvent
		now    time.Time
		want   bool
	}{
		{
			name:   "labeled 15 days ago with 14 day window",
			events: []gh.LabelEvent{labeled(requiredLabel, t0)},
			now:    t0.Add(days(15)),
			want:   true,
		},
		{
			name:   "labeled 13 days ago with 14 day window",
			events: []gh.LabelEvent{labeled(requiredLabel, t0)},
			now:    t0.Add(days(13)),
			want:   false,
		},
		{
			name:   "exactly at threshold is not closeable",
			events: []gh.LabelEvent{labeled(requiredLabel, t0)},
			now:    t0.Add(days(14)),
			want:   false,
		},
		{
			name:   "no events",
			events: nil,
			now:    t0.Add(days(100)),
			want:   false,
		},
		{
			name: "relabeling resets the clock",
			events: []gh.LabelEvent{
				labeled(requiredLabel, t0),
				labeled(requiredLabel, t0.Add(days(10))),
			},
			now:  t0.Add(days(20)),
			want: false,
		},
		{
			name: "most recent application counts once elapsed",
			events: []gh.LabelEvent{
				labeled(requiredLabel, t0),
				labeled(requiredLabel, t0.Add(days(10))),
			},
			now:  t0.Add(days(25)),
			want: true,
		},
		{
			name: "only other labels in history",
			events: []gh.LabelEvent{
				labeled("bug", t0),
				labeled("help-wanted", t0.Add(days(1))),
			},
			now:  t0.Add(days(30)),
			want: false,
		},
		{
			name: "unlabeled entries do not count as applications",
			events: []gh.LabelEvent{
				labeled(requiredLabel, t0),
				unlabeled(requiredLabel, t0.Add(days(1))),
			},
			now:  t0.Add(days(30)),
			want: true,
		},
		{
			name: "required label buried under later unrelated events",
			events: []gh.LabelEvent{
				labeled(requiredLabel, t0),
				labeled("bug", t0.Add(days(12))),
			},
			now:  t0.Add(days(15)),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsCloseable(tt.events, requiredLabel, tt.now, 14)
			if got != tt.want {
				t.Errorf("IsCloseable() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Once an issue becomes closeable it must stay closeable as time passes,
// as long as no new labeled event appears.
func TestIsCloseableMonotonicInElapsedTime(t *testing.T) {
	events := []gh.LabelEvent{labeled(requiredLabel, t0)}

	first := t0.Add(days(15))
	if !IsCloseable(events, requiredLabel, first, 14) {
		t.Fatal("expected issue to be closeable at first instant")
	}

	for _, later := range []time.Time{
		first.Add(time.Second),
		first.Add(days(1)),
		first.Add(days(365)),
	} {
		if !IsCloseable(events, requiredLabel, later, 14) {
			t.Errorf("closeable at %v but not at later time %v", first, later)
		}
	}
}

func TestIsUnmarkable(t *testing.T) {
	tests := []struct {
		name          string
		labels        []string
		issueAuthor   string
		commentAuthor string
		want          bool
	}{
		{
			name:          "author comments on labeled issue",
			labels:        []string{"bug", requiredLabel},
			issueAuthor:   "reporter",
			commentAuthor: "reporter",
			want:          true,
		},
		{
			name:          "other commenter on labeled issue",
			labels:        []string{requiredLabel},
			issueAuthor:   "reporter",
			commentAuthor: "maintainer",
			want:          false,
		},
		{
			name:          "author comments on unlabeled issue",
			labels:        []string{"bug"},
			issueAuthor:   "reporter",
			commentAuthor: "reporter",
			want:          false,
		},
		{
			name:          "empty author never matches",
			labels:        []string{requiredLabel},
			issueAuthor:   "",
			commentAuthor: "",
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUnmarkable(tt.labels, tt.issueAuthor, tt.commentAuthor, requiredLabel)
			if got != tt.want {
				t.Errorf("IsUnmarkable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldReopen(t *testing.T) {
	tests := []struct {
		name        string
		state       string
		closedBy    string
		issueAuthor string
		want        bool
	}{
		{
			name:        "closed by someone else",
			state:       "closed",
			closedBy:    "sweep-bot",
			issueAuthor: "reporter",
			want:        true,
		},
		{
			name:        "closed by the author",
			state:       "closed",
			closedBy:    "reporter",
			issueAuthor: "reporter",
			want:        false,
		},
		{
			name:        "still open",
			state:       "open",
			closedBy:    "",
			issueAuthor: "reporter",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldReopen(tt.state, tt.closedBy, tt.issueAuthor)
			if got != tt.want {
				t.Errorf("ShouldReopen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelsToStripOnClose(t *testing.T) {
	tests := []struct {
		name        string
		closedBy    string
		issueAuthor string
		labels      []string
		followUp    string
		want        []string
	}{
		{
			name:        "author closes with both labels",
			closedBy:    "reporter",
			issueAuthor: "reporter",
			labels:      []string{requiredLabel, "follow-up", "bug"},
			followUp:    "follow-up",
			want:        []string{requiredLabel, "follow-up"},
		},
		{
			name:        "author closes with only required label",
			closedBy:    "reporter",
			issueAuthor: "reporter",
			labels:      []string{requiredLabel},
			followUp:    "follow-up",
			want:        []string{requiredLabel},
		},
		{
			name:        "maintainer closes",
			closedBy:    "maintainer",
			issueAuthor: "reporter",
			labels:      []string{requiredLabel, "follow-up"},
			followUp:    "follow-up",
			want:        nil,
		},
		{
			name:        "no follow-up label configured",
			closedBy:    "reporter",
			issueAuthor: "reporter",
			labels:      []string{requiredLabel, "follow-up"},
			followUp:    "",
			want:        []string{requiredLabel},
		},
		{
			name:        "author closes with neither label present",
			closedBy:    "reporter",
			issueAuthor: "reporter",
			labels:      []string{"bug"},
			followUp:    "follow-up",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabelsToStripOnClose(tt.closedBy, tt.issueAuthor, tt.labels, requiredLabel, tt.followUp)
			if len(got) != len(tt.want) {
				t.Fatalf("LabelsToStripOnClose() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("LabelsToStripOnClose()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
