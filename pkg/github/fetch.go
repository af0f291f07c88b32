package github

import (
	"context"

	gogithub "github.com/google/go-github/v72/github"

	"github.com/deckardlabs/baseline/pkg/models"
)

// maxEvents bounds the event history we pull. GitHub only serves the last
// 300 public events (90 days) anyway.
const maxEvents = 300

// FetchAccount retrieves a user's profile and recent public events.
//
// The profile is mandatory: if it cannot be fetched an error is returned.
// The event history is best-effort: an inaccessible or partially fetched
// event stream degrades to whatever was retrieved (possibly nothing),
// never into an error, so the engine can still score the profile signals.
func (c *Client) FetchAccount(ctx context.Context, login string) (models.AccountProfile, []models.ActivityEvent, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return models.AccountProfile{}, nil, wrapAPIError("fetch user", err)
	}

	profile := models.AccountProfile{
		Login:       user.GetLogin(),
		CreatedAt:   user.GetCreatedAt().Time,
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}

	return profile, c.fetchEvents(ctx, login), nil
}

func (c *Client) fetchEvents(ctx context.Context, login string) []models.ActivityEvent {
	events := make([]models.ActivityEvent, 0)
	opts := &gogithub.ListOptions{PerPage: 100}

	for {
		page, resp, err := c.gh.Activity.ListEventsPerformedByUser(ctx, login, true, opts)
		if err != nil {
			// Partial history is still useful; the engine treats a short
			// stream as "not enough data", not as a failure.
			return events
		}
		for _, ev := range page {
			if mapped, ok := mapEvent(ev); ok {
				events = append(events, mapped)
			}
		}
		if resp == nil || resp.NextPage == 0 || len(events) >= maxEvents {
			break
		}
		opts.Page = resp.NextPage
	}

	return events
}

// mapEvent converts one API event into the engine's model. Events missing
// a timestamp are dropped here; an event missing its repository is kept,
// it just never counts as external.
func mapEvent(ev *gogithub.Event) (models.ActivityEvent, bool) {
	if ev == nil || ev.CreatedAt == nil {
		return models.ActivityEvent{}, false
	}
	return models.ActivityEvent{
		Type:      mapEventType(ev.GetType()),
		CreatedAt: ev.GetCreatedAt().Time,
		Repo:      ev.GetRepo().GetName(),
	}, true
}

func mapEventType(apiType string) models.EventType {
	switch apiType {
	case "PushEvent":
		return models.EventPush
	case "PullRequestEvent":
		return models.EventPullRequest
	case "ForkEvent":
		return models.EventFork
	case "PullRequestReviewEvent":
		return models.EventReview
	case "PullRequestReviewCommentEvent":
		return models.EventReviewComment
	default:
		return models.EventOther
	}
}
