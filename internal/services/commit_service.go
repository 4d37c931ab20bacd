package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/alimgiray/gscope-analytics/pkg/logger"
	"github.com/sirupsen/logrus"
)

// CommitPageSize is the number of history edges requested per GraphQL call
const CommitPageSize = 100

const commitHistoryQuery = `
query($owner: String!, $name: String!, $from: GitTimestamp!, $to: GitTimestamp!, $after: String, $pageSize: Int!) {
  repository(owner: $owner, name: $name) {
    defaultBranchRef {
      target {
        ... on Commit {
          history(first: $pageSize, since: $from, until: $to, after: $after) {
            pageInfo {
              hasNextPage
              endCursor
            }
            edges {
              node {
                oid
                message
                committedDate
                author {
                  name
                  email
                  user { login }
                }
                additions
                deletions
              }
            }
          }
        }
      }
    }
  }
}`

// CommitFetcher loads every commit of the configured repository inside a window
type CommitFetcher interface {
	FetchAll(ctx context.Context, window *models.QueryWindow) ([]models.CommitRecord, error)
}

// CommitService pages through the default branch history of one repository
type CommitService struct {
	client GraphQLPoster
	owner  string
	repo   string
}

func NewCommitService(client GraphQLPoster, owner, repo string) *CommitService {
	return &CommitService{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

// FetchAll requests pages of CommitPageSize until the API reports no next
// page and returns the commits in the order the pages arrived. There is no
// page cap: a long history means many sequential calls.
func (s *CommitService) FetchAll(ctx context.Context, window *models.QueryWindow) ([]models.CommitRecord, error) {
	commits := make([]models.CommitRecord, 0)
	var cursor *string

	log := logger.WithFields(logrus.Fields{
		"owner": s.owner,
		"repo":  s.repo,
		"from":  window.From,
		"to":    window.To,
	})

	for page := 1; ; page++ {
		response, err := s.client.Post(ctx, commitHistoryQuery, map[string]interface{}{
			"owner":    s.owner,
			"name":     s.repo,
			"from":     window.From,
			"to":       window.To,
			"after":    cursor,
			"pageSize": CommitPageSize,
		})
		if err != nil {
			return nil, err
		}

		history, err := decodeHistory(response)
		if err != nil {
			return nil, err
		}

		for _, edge := range history.Edges {
			if edge.Node == nil {
				continue
			}
			commits = append(commits, edge.Node.ToCommitRecord())
		}

		log.WithFields(logrus.Fields{
			"page":  page,
			"edges": len(history.Edges),
		}).Debug("Fetched commit history page")

		if !history.PageInfo.HasNextPage {
			break
		}
		if history.PageInfo.EndCursor == nil || *history.PageInfo.EndCursor == "" {
			return nil, fmt.Errorf("%w: hasNextPage without endCursor on page %d", ErrUpstreamDataShape, page)
		}
		cursor = history.PageInfo.EndCursor
	}

	log.WithField("commits", len(commits)).Info("Fetched commit history")
	return commits, nil
}

// decodeHistory reads the history connection out of a response. Missing
// edges decode as an empty page; a missing history or pageInfo is an error
// since the loop cannot decide whether to continue without it.
func decodeHistory(response *models.GraphQLResponse) (*models.CommitHistory, error) {
	var data models.CommitHistoryData
	if len(response.Data) > 0 && string(response.Data) != "null" {
		if err := json.Unmarshal(response.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamDataShape, err)
		}
	}

	history := data.History()
	if history == nil || history.PageInfo == nil {
		return nil, fmt.Errorf("%w: history.pageInfo missing%s", ErrUpstreamDataShape, describeGraphQLErrors(response.Errors))
	}

	return history, nil
}

func describeGraphQLErrors(errs []models.GraphQLError) string {
	if len(errs) == 0 {
		return ""
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return " (" + strings.Join(messages, "; ") + ")"
}
