package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckardlabs/baseline/pkg/models"
)

// newTestClient points a Client at a local fake of the GitHub API.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return client
}

func TestFetchAccount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/deckard", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"login": "deckard",
			"name": "Rick Deckard",
			"bio": "blade runner",
			"created_at": "2020-01-15T00:00:00Z",
			"public_repos": 12,
			"followers": 34,
			"following": 5
		}`)
	})
	mux.HandleFunc("/users/deckard/events/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"type": "PushEvent", "created_at": "2025-06-01T10:00:00Z", "repo": {"name": "deckard/esper"}},
			{"type": "PullRequestEvent", "created_at": "2025-06-01T11:00:00Z", "repo": {"name": "tyrell/nexus"}},
			{"type": "ForkEvent", "created_at": "2025-06-01T12:00:00Z", "repo": {"name": "tyrell/nexus"}},
			{"type": "WatchEvent", "created_at": "2025-06-01T13:00:00Z", "repo": {"name": "tyrell/nexus"}},
			{"type": "PushEvent", "repo": {"name": "deckard/esper"}}
		]`)
	})

	client := newTestClient(t, mux)
	profile, events, err := client.FetchAccount(context.Background(), "deckard")
	require.NoError(t, err)

	assert.Equal(t, models.AccountProfile{
		Login:       "deckard",
		Name:        "Rick Deckard",
		Bio:         "blade runner",
		CreatedAt:   time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		PublicRepos: 12,
		Followers:   34,
		Following:   5,
	}, profile)

	// The timestampless push is dropped, the watch maps to the catch-all.
	require.Len(t, events, 4)
	assert.Equal(t, models.EventPush, events[0].Type)
	assert.Equal(t, "deckard/esper", events[0].Repo)
	assert.Equal(t, models.EventPullRequest, events[1].Type)
	assert.Equal(t, models.EventFork, events[2].Type)
	assert.Equal(t, models.EventOther, events[3].Type)
	assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), events[1].CreatedAt)
}

func TestFetchAccountUserNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	client := newTestClient(t, mux)
	_, _, err := client.FetchAccount(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFetchAccountRateLimited(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/deckard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	client := newTestClient(t, mux)
	_, _, err := client.FetchAccount(context.Background(), "deckard")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchAccountEventsAreBestEffort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/deckard", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login": "deckard", "created_at": "2020-01-15T00:00:00Z"}`)
	})
	mux.HandleFunc("/users/deckard/events/public", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, mux)
	profile, events, err := client.FetchAccount(context.Background(), "deckard")
	require.NoError(t, err)
	assert.Equal(t, "deckard", profile.Login)
	assert.Empty(t, events)
}

func TestMapEventType(t *testing.T) {
	tests := map[string]models.EventType{
		"PushEvent":                     models.EventPush,
		"PullRequestEvent":              models.EventPullRequest,
		"ForkEvent":                     models.EventFork,
		"PullRequestReviewEvent":        models.EventReview,
		"PullRequestReviewCommentEvent": models.EventReviewComment,
		"IssuesEvent":                   models.EventOther,
		"":                              models.EventOther,
	}
	for apiType, want := range tests {
		assert.Equal(t, want, mapEventType(apiType), "apiType=%q", apiType)
	}
}
