package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// GraphQLPoster sends one GraphQL document and returns the decoded response
type GraphQLPoster interface {
	Post(ctx context.Context, query string, variables map[string]interface{}) (*models.GraphQLResponse, error)
}

// GitHubGraphQLClient posts queries to the GitHub GraphQL endpoint with a
// static bearer token. It never retries.
type GitHubGraphQLClient struct {
	client      *github.Client
	endpoint    string
	timeout     time.Duration
	rateLimiter *rate.Limiter
}

// NewGitHubGraphQLClient creates a client for endpoint. requestsPerSecond <= 0
// disables outbound pacing.
func NewGitHubGraphQLClient(endpoint, token string, timeout time.Duration, requestsPerSecond float64) *GitHubGraphQLClient {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), tokenSource)
	httpClient.Timeout = timeout

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &GitHubGraphQLClient{
		client:      github.NewClient(httpClient),
		endpoint:    endpoint,
		timeout:     timeout,
		rateLimiter: rate.NewLimiter(limit, 1),
	}
}

// Post sends exactly one POST with {query, variables}. The GraphQL errors
// array is decoded but left to the caller.
func (c *GitHubGraphQLClient) Post(ctx context.Context, query string, variables map[string]interface{}) (*models.GraphQLResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(fmt.Errorf("rate limiter: %w", err))
	}

	req, err := c.client.NewRequest(http.MethodPost, c.endpoint, &models.GraphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUpstreamTransport, err)
	}

	var response models.GraphQLResponse
	if _, err := c.client.Do(ctx, req, &response); err != nil {
		return nil, classifyTransportError(err)
	}

	return &response, nil
}

// classifyTransportError separates timeouts from every other failure to reach the endpoint
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstreamTransport, err)
}
