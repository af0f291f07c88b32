package rules

import (
	"time"

	"github.com/deckardlabs/baseline/pkg/models"
)

// Rule is the interface every behavioral check implements.
//
// Evaluate returns at most one Flag. Checks with several severity tiers
// (high vs extreme burst, wide vs very wide spread) pick one tier inside
// the rule, so mutual exclusivity within a check is guaranteed by the
// return type rather than by evaluation order.
type Rule interface {
	// Name is the unique identifier of the rule (e.g. "AccountAge").
	Name() string

	// Description is a short explanation of what the rule looks for.
	Description() string

	// Evaluate inspects the context and returns a Flag when the signal
	// fires, nil otherwise. Evaluate must be pure: no I/O, no clock reads,
	// no mutation of the context.
	Evaluate(ctx *Context) *models.Flag
}

// TemporalRule marks rules that draw conclusions from event timing
// patterns. The engine detects the interface dynamically and skips these
// rules entirely unless the account is still young and has enough recorded
// activity; established accounts legitimately produce burst-like activity,
// and sparse streams prove nothing.
type TemporalRule interface {
	Rule

	// Temporal is a marker method.
	Temporal()
}

// Context is the evaluation context shared by every rule: the profile, the
// raw event list, the partitioned event views, and the single "now" instant
// captured once per evaluation. Rules treat all of it as read-only.
type Context struct {
	Profile models.AccountProfile

	// Now is the capture instant for the whole evaluation. Rules must use
	// it for every recency computation and never read the wall clock, so a
	// fixed (inputs, Now) pair always reproduces the same result.
	Now time.Time

	// AgeDays is the account age in whole days at Now.
	AgeDays int

	// Events is the full event list in retrieval order. Not sorted; rules
	// that need ordering sort their own copy.
	Events []models.ActivityEvent

	Partition Partition
}

// Partition holds the event groupings computed once up front and reused by
// every rule, so no two rules can disagree about what counts as external
// or as coding activity.
type Partition struct {
	// External are events on repositories the account does not own
	// (case-insensitive owner comparison). Events without a repository are
	// never external.
	External []models.ActivityEvent

	// Pushes and PullRequests are the "coding" subsets used for burst and
	// rate analysis.
	Pushes       []models.ActivityEvent
	PullRequests []models.ActivityEvent

	// ExternalPulls is the intersection of PullRequests and External.
	ExternalPulls []models.ActivityEvent

	// CodingWithReviews additionally includes review and review-comment
	// events: reviewing is still active engagement, so the daily
	// hour-diversity check uses this broader set.
	CodingWithReviews []models.ActivityEvent

	// ForkCount is the number of fork events.
	ForkCount int

	// ExternalRepoCount is the number of distinct external repositories
	// touched by any event.
	ExternalRepoCount int

	// ZeroRepoActive is true when the account owns no repositories, every
	// event is external, and there is enough activity for that to mean
	// something. Exactly one rule fires on it; the external-ratio rule
	// skips itself when it is set, so the same underlying signal is never
	// penalized twice.
	ZeroRepoActive bool
}
