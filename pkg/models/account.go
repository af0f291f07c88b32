package models

import (
	"strings"
	"time"
)

// EventType enumerates the public activity event kinds the engine cares
// about. Anything else the events feed produces maps to EventOther.
type EventType string

const (
	EventPush          EventType = "push"
	EventPullRequest   EventType = "pull_request"
	EventFork          EventType = "fork"
	EventReview        EventType = "pull_request_review"
	EventReviewComment EventType = "pull_request_review_comment"
	EventOther         EventType = "other"
)

// AccountProfile is the immutable profile snapshot of the account under
// analysis. It is supplied by the retrieval layer and never mutated by
// the engine.
type AccountProfile struct {
	// Login is the case-insensitive identity key of the account.
	Login string

	// CreatedAt is when the account was registered.
	CreatedAt time.Time

	// Name and Bio are optional; either being non-empty counts as
	// "has identity" in the profile checks.
	Name string
	Bio  string

	PublicRepos int
	Followers   int
	Following   int
}

// HasIdentity reports whether the profile carries any human-facing
// identity: a display name or a bio.
func (p AccountProfile) HasIdentity() bool {
	return p.Name != "" || p.Bio != ""
}

// ActivityEvent is one timestamped public activity event. Events arrive
// in retrieval order, which is not guaranteed to be chronological; every
// consumer that needs ordering sorts its own copy.
type ActivityEvent struct {
	Type      EventType
	CreatedAt time.Time

	// Repo is the owning repository in "owner/name" form, empty when the
	// event carries no repository.
	Repo string
}

// RepoOwner returns the lowercased owner half of the event's repository,
// or "" when the event has no repository.
func (e ActivityEvent) RepoOwner() string {
	owner, _, _ := strings.Cut(e.Repo, "/")
	return strings.ToLower(owner)
}

// IsExternal reports whether the event happened on a repository not owned
// by the given login. Events without a repository are never external.
func (e ActivityEvent) IsExternal(login string) bool {
	owner := e.RepoOwner()
	return owner != "" && owner != strings.ToLower(login)
}
