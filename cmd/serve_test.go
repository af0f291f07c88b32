package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckardlabs/baseline/pkg/cache"
	"github.com/deckardlabs/baseline/pkg/engine"
	"github.com/deckardlabs/baseline/pkg/github"
)

// fakeGitHub serves a five-day-old anonymous account and counts how many
// profile fetches reach it.
func fakeGitHub(t *testing.T, fetches *atomic.Int32) *github.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/leon", func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		fmt.Fprint(w, `{"login": "leon", "created_at": "2025-06-10T00:00:00Z"}`)
	})
	mux.HandleFunc("/users/leon/events/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"type": "PushEvent", "created_at": "2025-06-14T10:00:00Z", "repo": {"name": "leon/kipple"}}]`)
	})
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	mux.HandleFunc("/users/throttled", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := github.NewClient(github.Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return client
}

func newTestServer(t *testing.T, fetches *atomic.Int32) (*apiServer, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := &apiServer{
		client: fakeGitHub(t, fetches),
		engine: engine.New(engine.DefaultConfig()),
		cache:  cache.NewLRUCache(16, time.Minute),
		now:    func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}

	r := gin.New()
	r.GET("/api/v1/users/:login", srv.handleAnalyze)
	return srv, r
}

func doRequest(r *gin.Engine, login string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+login, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHandleAnalyze(t *testing.T) {
	var fetches atomic.Int32
	_, r := newTestServer(t, &fetches)

	w := doRequest(r, "leon")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			Login string `json:"login"`
		} `json:"user"`
		Analysis struct {
			Score          int    `json:"score"`
			Classification string `json:"classification"`
			Flags          []struct {
				Label  string `json:"label"`
				Points int    `json:"points"`
			} `json:"flags"`
		} `json:"analysis"`
		EventCount int `json:"event_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "leon", body.User.Login)
	assert.Equal(t, 1, body.EventCount)
	// Five days old with no name or bio: two profile flags, 65 points left.
	assert.Equal(t, 65, body.Analysis.Score)
	assert.Equal(t, "suspicious", body.Analysis.Classification)
	require.Len(t, body.Analysis.Flags, 2)
	assert.Equal(t, "Recently created", body.Analysis.Flags[0].Label)
	assert.Equal(t, "Minimal profile", body.Analysis.Flags[1].Label)
}

func TestHandleAnalyzeServesCachedResult(t *testing.T) {
	var fetches atomic.Int32
	_, r := newTestServer(t, &fetches)

	first := doRequest(r, "leon")
	require.Equal(t, http.StatusOK, first.Code)
	second := doRequest(r, "leon")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, int32(1), fetches.Load(), "second request must come from the cache")
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHandleAnalyzeCacheIgnoresLoginCase(t *testing.T) {
	var fetches atomic.Int32
	_, r := newTestServer(t, &fetches)

	require.Equal(t, http.StatusOK, doRequest(r, "leon").Code)
	require.Equal(t, http.StatusOK, doRequest(r, "LEON").Code)

	assert.Equal(t, int32(1), fetches.Load())
}

func TestHandleAnalyzeUserNotFound(t *testing.T) {
	var fetches atomic.Int32
	_, r := newTestServer(t, &fetches)

	w := doRequest(r, "ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "user not found"}`, w.Body.String())
}

func TestHandleAnalyzeRateLimited(t *testing.T) {
	var fetches atomic.Int32
	_, r := newTestServer(t, &fetches)

	w := doRequest(r, "throttled")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHandleAnalyzeUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("/users/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := github.NewClient(github.Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	api := &apiServer{
		client: client,
		engine: engine.New(engine.DefaultConfig()),
		cache:  cache.NewLRUCache(16, time.Minute),
		now:    time.Now,
	}
	router := gin.New()
	router.GET("/api/v1/users/:login", api.handleAnalyze)

	w := doRequest(router, "broken")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
