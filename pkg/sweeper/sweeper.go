package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stalesweep/stalesweep/pkg/config"
	"github.com/stalesweep/stalesweep/pkg/event"
	gh "github.com/stalesweep/stalesweep/pkg/github"
	"github.com/stalesweep/stalesweep/pkg/log"
)

const (
	// sweepPageSize caps the number of candidates examined per run. Issues
	// beyond the page are picked up by the next scheduled run.
	sweepPageSize = 30

	// closeReason is the state reason recorded on inactivity closes
	closeReason = "not_planned"
)

// Service is the remote gateway consumed by the sweeper. *github.Client
// implements it; tests substitute an in-memory fake.
type Service interface {
	SearchOldestLabeled(ctx context.Context, owner, repo, label string, pageSize int) ([]int, error)
	ListLabelEvents(ctx context.Context, owner, repo string, number int) ([]gh.LabelEvent, error)
	ListIssueLabels(ctx context.Context, owner, repo string, number int) ([]string, error)
	EnsureLabel(ctx context.Context, owner, repo, name, color string) error
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	CloseIssue(ctx context.Context, owner, repo string, number int, reason string) error
	ReopenIssue(ctx context.Context, owner, repo string, number int) error
	GetIssue(ctx context.Context, owner, repo string, number int) (*gh.IssueInfo, error)
}

// SweepResult summarizes one sweep pass
type SweepResult struct {
	Scanned int `json:"scanned"`
	Closed  int `json:"closed"`
	Failed  int `json:"failed"`
}

// Sweeper orchestrates the three workflows against the remote service
type Sweeper struct {
	svc Service
	cfg *config.Config
	now func() time.Time
}

// Option configures a Sweeper
type Option func(*Sweeper)

// WithClock overrides the time source (for tests)
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		s.now = now
	}
}

// New creates a Sweeper over the given gateway and configuration
func New(svc Service, cfg *config.Config, opts ...Option) *Sweeper {
	s := &Sweeper{
		svc: svc,
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sweep closes every currently closeable issue. It ensures the marker label
// exists, fetches one page of open labeled issues oldest-updated-first,
// filters them concurrently against their label history, and then closes
// the qualifying ones sequentially. One issue's failure never aborts the
// rest of the pass.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	owner, repo := s.cfg.Repo.Owner, s.cfg.Repo.Name

	if err := s.svc.EnsureLabel(ctx, owner, repo, s.cfg.ResponseRequiredLabel, s.cfg.ResponseRequiredColor); err != nil {
		return res, fmt.Errorf("failed to ensure label exists: %w", err)
	}

	numbers, err := s.svc.SearchOldestLabeled(ctx, owner, repo, s.cfg.ResponseRequiredLabel, sweepPageSize)
	if err != nil {
		return res, err
	}
	res.Scanned = len(numbers)

	log.Debug("sweep candidates fetched", "count", len(numbers))

	// Fan out the history fetches; they only gate membership in the result
	// set, so no ordering is needed among them. Close actions below stay in
	// search order.
	type verdict struct {
		closeable bool
		err       error
	}
	verdicts := make([]verdict, len(numbers))
	now := s.now()

	var wg sync.WaitGroup
	for i, number := range numbers {
		wg.Add(1)
		go func(i, number int) {
			defer wg.Done()
			events, err := s.svc.ListLabelEvents(ctx, owner, repo, number)
			if err != nil {
				verdicts[i] = verdict{err: err}
				return
			}
			verdicts[i] = verdict{
				closeable: IsCloseable(events, s.cfg.ResponseRequiredLabel, now, s.cfg.DaysUntilClose),
			}
		}(i, number)
	}
	wg.Wait()

	for i, number := range numbers {
		v := verdicts[i]
		if v.err != nil {
			log.Warn("failed to evaluate issue, skipping", "issue", number, "error", v.err)
			res.Failed++
			continue
		}
		if !v.closeable {
			continue
		}

		if err := s.closeStale(ctx, number); err != nil {
			log.Warn("failed to close issue", "issue", number, "error", err)
			res.Failed++
			continue
		}
		log.Info("closed stale issue", "issue", number)
		res.Closed++
	}

	return res, nil
}

// closeStale posts the configured close comment, if any, then closes the issue
func (s *Sweeper) closeStale(ctx context.Context, number int) error {
	owner, repo := s.cfg.Repo.Owner, s.cfg.Repo.Name

	if s.cfg.CloseComment != "" {
		if err := s.svc.CreateComment(ctx, owner, repo, number, s.cfg.CloseComment); err != nil {
			return err
		}
	}

	return s.svc.CloseIssue(ctx, owner, repo, number, closeReason)
}

// Unmark handles a comment-created event. When the commenter is the issue's
// original author and the marker label is present, the label is removed, the
// optional follow-up label is applied, and the issue is reopened if someone
// else had closed it. The steps are best-effort: a later failure does not
// undo earlier mutations, but every failure is reported.
func (s *Sweeper) Unmark(ctx context.Context, ev *event.CommentEvent) error {
	if ev.IsPullRequest {
		log.Debug("ignoring comment on pull request", "number", ev.IssueNumber)
		return nil
	}

	owner, repo := ev.Repo.Owner, ev.Repo.Name

	labels, err := s.svc.ListIssueLabels(ctx, owner, repo, ev.IssueNumber)
	if err != nil {
		return err
	}

	if !IsUnmarkable(labels, ev.IssueAuthor, ev.CommentAuthor, s.cfg.ResponseRequiredLabel) {
		log.Debug("comment does not unmark issue", "issue", ev.IssueNumber, "commenter", ev.CommentAuthor)
		return nil
	}

	var errs []error

	if err := s.svc.RemoveLabel(ctx, owner, repo, ev.IssueNumber, s.cfg.ResponseRequiredLabel); err != nil {
		errs = append(errs, err)
	} else {
		log.Info("removed label after reporter response", "issue", ev.IssueNumber, "label", s.cfg.ResponseRequiredLabel)
	}

	if s.cfg.HasFollowUpLabel() {
		if err := s.applyFollowUpLabel(ctx, owner, repo, ev.IssueNumber); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.reopenIfSweptClosed(ctx, owner, repo, ev.IssueNumber, ev.IssueAuthor); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (s *Sweeper) applyFollowUpLabel(ctx context.Context, owner, repo string, number int) error {
	if err := s.svc.EnsureLabel(ctx, owner, repo, s.cfg.FollowUpLabel, s.cfg.FollowUpLabelColor); err != nil {
		return err
	}
	return s.svc.AddLabels(ctx, owner, repo, number, []string{s.cfg.FollowUpLabel})
}

func (s *Sweeper) reopenIfSweptClosed(ctx context.Context, owner, repo string, number int, issueAuthor string) error {
	issue, err := s.svc.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return err
	}

	if !ShouldReopen(issue.State, issue.ClosedBy, issueAuthor) {
		return nil
	}

	if err := s.svc.ReopenIssue(ctx, owner, repo, number); err != nil {
		return err
	}
	log.Info("reopened issue after reporter response", "issue", number)
	return nil
}

// RemoveLabelsOnClose handles an issue-closed event. A reporter closing
// their own issue no longer needs either workflow marker, so both are
// stripped; any other close leaves labels untouched.
func (s *Sweeper) RemoveLabelsOnClose(ctx context.Context, ev *event.CloseEvent) error {
	owner, repo := ev.Repo.Owner, ev.Repo.Name

	if ev.Sender != ev.IssueAuthor {
		log.Debug("issue closed by someone other than its author, keeping labels", "issue", ev.IssueNumber)
		return nil
	}

	labels, err := s.svc.ListIssueLabels(ctx, owner, repo, ev.IssueNumber)
	if err != nil {
		return err
	}

	strip := LabelsToStripOnClose(ev.Sender, ev.IssueAuthor, labels, s.cfg.ResponseRequiredLabel, s.cfg.FollowUpLabel)
	for _, label := range strip {
		if err := s.svc.RemoveLabel(ctx, owner, repo, ev.IssueNumber, label); err != nil {
			return err
		}
		log.Info("removed label from self-closed issue", "issue", ev.IssueNumber, "label", label)
	}

	return nil
}
