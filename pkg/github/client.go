// Package github retrieves the account profile and public event stream the
// scoring engine consumes. It is the only part of the system that talks to
// the network; the engine itself never fetches anything.
package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gogithub "github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com/"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRateLimited  = errors.New("rate limited")
)

// Config controls client construction.
type Config struct {
	// Token is an optional GitHub API token. Unauthenticated access works
	// but is limited to 60 requests per hour.
	Token string

	// BaseURL overrides the GitHub API endpoint, used by tests.
	BaseURL string

	// HTTPClient overrides the underlying transport.
	HTTPClient *http.Client
}

// Client fetches users and their public activity.
type Client struct {
	gh *gogithub.Client
}

// NewClient builds a Client, wiring the token through an oauth2 transport
// when one is configured.
func NewClient(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		baseTransport := httpClient.Transport
		if baseTransport == nil {
			baseTransport = http.DefaultTransport
		}
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: ts,
				Base:   baseTransport,
			},
			Timeout: httpClient.Timeout,
		}
	}

	client := gogithub.NewClient(httpClient)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	client.BaseURL = parsed

	return &Client{gh: client}, nil
}

// wrapAPIError translates go-github errors into the package sentinels so
// callers can map them to status codes without importing go-github.
func wrapAPIError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gogithub.RateLimitError
	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %w", op, ErrRateLimited)
	}

	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w", op, ErrRateLimited)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
