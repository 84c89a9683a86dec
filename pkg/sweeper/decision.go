// Package sweeper implements the stale-issue workflows: the scheduled sweep
// that closes issues whose reporter never responded, the unmark path driven
// by reporter comments, and the label cleanup when a reporter closes their
// own issue. Decision logic is pure; all I/O goes through the Service
// interface.
package sweeper

import (
	"slices"
	"time"

	gh "github.com/stalesweep/stalesweep/pkg/github"
)

// labeledEvent is the timeline event kind recorded when a label is applied
const labeledEvent = "labeled"

// IsCloseable reports whether an issue's reporter has run out the grace
// period. events is the issue's label history in chronological order; the
// scan walks it newest-first looking for the most recent application of
// label. Re-applying the label resets the clock. An issue with no matching
// labeled event is never closeable: the label may have been removed and the
// remaining history is stale.
//
// The comparison is a strict less-than: an event exactly daysUntilClose old
// does not qualify yet.
func IsCloseable(events []gh.LabelEvent, label string, now time.Time, daysUntilClose int) bool {
	threshold := now.Add(-time.Duration(daysUntilClose) * 24 * time.Hour)

	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Event != labeledEvent || ev.Label != label {
			continue
		}
		return ev.CreatedAt.Before(threshold)
	}

	return false
}

// IsUnmarkable reports whether a comment clears the response-required
// marker: the label must currently be on the issue and the commenter must
// be the issue's original author. Anyone else's reply does not count as the
// requested response.
func IsUnmarkable(currentLabels []string, issueAuthor, commentAuthor, label string) bool {
	if issueAuthor == "" || commentAuthor != issueAuthor {
		return false
	}
	return slices.Contains(currentLabels, label)
}

// ShouldReopen reports whether an issue should be reopened as a side effect
// of a qualifying unmark: it is currently closed and was closed by someone
// other than its author (typically the sweep itself). An issue the reporter
// closed deliberately stays closed.
func ShouldReopen(state, closedBy, issueAuthor string) bool {
	return state == "closed" && closedBy != issueAuthor
}

// LabelsToStripOnClose returns the workflow labels to remove when an issue
// transitions to closed. Only a close by the issue's own author strips
// labels; any other close leaves them untouched. followUpLabel may be empty
// when none is configured. Labels not currently on the issue are skipped.
func LabelsToStripOnClose(closedBy, issueAuthor string, currentLabels []string, requiredLabel, followUpLabel string) []string {
	if issueAuthor == "" || closedBy != issueAuthor {
		return nil
	}

	var strip []string
	if slices.Contains(currentLabels, requiredLabel) {
		strip = append(strip, requiredLabel)
	}
	if followUpLabel != "" && slices.Contains(currentLabels, followUpLabel) {
		strip = append(strip, followUpLabel)
	}

	return strip
}
