package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deckardlabs/baseline/pkg/cache"
	"github.com/deckardlabs/baseline/pkg/engine"
	"github.com/deckardlabs/baseline/pkg/github"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRun()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// apiServer wires the fetcher, the engine, and the response cache behind
// the HTTP handlers. The clock is a field so handler tests can pin it.
type apiServer struct {
	client *github.Client
	engine *engine.Engine
	cache  cache.ResultCache
	now    func() time.Time
}

func serveRun() error {
	client, err := newGitHubClient()
	if err != nil {
		return err
	}

	srv := &apiServer{
		client: client,
		engine: engine.New(engine.DefaultConfig()),
		cache:  cache.NewLRUCache(viper.GetInt("cache.size"), viper.GetDuration("cache.ttl")),
		now:    time.Now,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.GET("/api/v1/users/:login", srv.handleAnalyze)

	addr := viper.GetString("server.addr")
	slog.Info("listening", "addr", addr)
	return r.Run(addr)
}

// handleAnalyze serves one account analysis, from cache when fresh.
func (s *apiServer) handleAnalyze(c *gin.Context) {
	login := c.Param("login")
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing login"})
		return
	}

	if entry, ok := s.cache.Get(login); ok {
		c.JSON(http.StatusOK, analysisResponse(entry))
		return
	}

	profile, events, err := s.client.FetchAccount(c.Request.Context(), login)
	if err != nil {
		switch {
		case errors.Is(err, github.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, github.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "GitHub API rate limit reached, please try again later"})
		default:
			slog.Error("fetch failed", "login", login, "err", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch user data from GitHub"})
		}
		return
	}

	entry := &cache.Entry{
		Profile:    profile,
		Analysis:   s.engine.Evaluate(profile, events, s.now()),
		EventCount: len(events),
	}
	s.cache.Put(login, entry)

	c.JSON(http.StatusOK, analysisResponse(entry))
}

func analysisResponse(entry *cache.Entry) gin.H {
	return gin.H{
		"user": gin.H{
			"login":     entry.Profile.Login,
			"name":      entry.Profile.Name,
			"bio":       entry.Profile.Bio,
			"followers": entry.Profile.Followers,
			"following": entry.Profile.Following,
			"repos":     entry.Profile.PublicRepos,
			"created":   entry.Profile.CreatedAt,
		},
		"analysis":    entry.Analysis,
		"event_count": entry.EventCount,
	}
}
