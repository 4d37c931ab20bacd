package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubGraphQLClientPost(t *testing.T) {
	var received models.GraphQLRequest
	var authHeader, contentType, method, path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		method = r.Method
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&received)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"viewer": {"login": "octocat"}}, "errors": [{"message": "partial", "path": ["viewer", 0]}]}`))
	}))
	defer server.Close()

	client := NewGitHubGraphQLClient(server.URL+"/graphql", "test-token", 5*time.Second, 0)

	response, err := client.Post(context.Background(), "query { viewer { login } }", map[string]interface{}{"owner": "octocat"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/graphql", path)
	assert.Equal(t, "Bearer test-token", authHeader)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "query { viewer { login } }", received.Query)
	assert.Equal(t, "octocat", received.Variables["owner"])

	assert.JSONEq(t, `{"viewer": {"login": "octocat"}}`, string(response.Data))
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "partial", response.Errors[0].Message)
}

func TestGitHubGraphQLClientSendsOneRequestPerCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message": "bad gateway"}`))
	}))
	defer server.Close()

	client := NewGitHubGraphQLClient(server.URL+"/graphql", "test-token", 5*time.Second, 0)

	_, err := client.Post(context.Background(), "query { viewer { login } }", nil)
	assert.ErrorIs(t, err, ErrUpstreamTransport)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGitHubGraphQLClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
	}))
	defer server.Close()

	client := NewGitHubGraphQLClient(server.URL+"/graphql", "wrong", 5*time.Second, 0)

	response, err := client.Post(context.Background(), "query { viewer { login } }", nil)
	assert.Nil(t, response)
	assert.ErrorIs(t, err, ErrUpstreamTransport)
	assert.NotErrorIs(t, err, ErrUpstreamTimeout)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestGitHubGraphQLClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewGitHubGraphQLClient(server.URL+"/graphql", "test-token", 50*time.Millisecond, 0)

	response, err := client.Post(context.Background(), "query { viewer { login } }", nil)
	assert.Nil(t, response)
	assert.ErrorIs(t, err, ErrUpstreamTimeout)
	assert.NotErrorIs(t, err, ErrUpstreamTransport)
}

func TestGitHubGraphQLClientConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL + "/graphql"
	server.Close()

	client := NewGitHubGraphQLClient(endpoint, "test-token", time.Second, 0)

	_, err := client.Post(context.Background(), "query { viewer { login } }", nil)
	assert.ErrorIs(t, err, ErrUpstreamTransport)
}

func TestGitHubGraphQLClientFeedsCommitService(t *testing.T) {
	var pages int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := atomic.AddInt32(&pages, 1)
		w.Header().Set("Content-Type", "application/json")
		if page == 1 {
			_, _ = w.Write([]byte(historyPage(0, 100, true, "cursor-1")))
			return
		}
		_, _ = w.Write([]byte(historyPage(100, 5, false, "")))
	}))
	defer server.Close()

	client := NewGitHubGraphQLClient(server.URL+"/graphql", "test-token", 5*time.Second, 100)
	service := NewCommitService(client, "octocat", "hello-world")

	commits, err := service.FetchAll(context.Background(), testWindow())
	require.NoError(t, err)
	assert.Len(t, commits, 105)
	assert.Equal(t, int32(2), atomic.LoadInt32(&pages))
}
