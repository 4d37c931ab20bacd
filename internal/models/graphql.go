package models

import (
	"encoding/json"
	"time"
)

// GraphQLRequest is the JSON body posted to the GraphQL endpoint
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// GraphQLResponse is a decoded GraphQL document. Data is left raw so each
// caller can decode the shape it asked for.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string        `json:"message"`
	Type    string        `json:"type,omitempty"`
	Path    []interface{} `json:"path,omitempty"`
}

// CommitHistoryData mirrors data.repository.defaultBranchRef.target.history.
// Every level is a pointer so a missing level can be told apart from an empty one.
type CommitHistoryData struct {
	Repository *struct {
		DefaultBranchRef *struct {
			Target *struct {
				History *CommitHistory `json:"history"`
			} `json:"target"`
		} `json:"defaultBranchRef"`
	} `json:"repository"`
}

// History returns the history connection, or nil if any level of the path is missing
func (d *CommitHistoryData) History() *CommitHistory {
	if d == nil || d.Repository == nil || d.Repository.DefaultBranchRef == nil ||
		d.Repository.DefaultBranchRef.Target == nil {
		return nil
	}
	return d.Repository.DefaultBranchRef.Target.History
}

type CommitHistory struct {
	PageInfo *PageInfo    `json:"pageInfo"`
	Edges    []CommitEdge `json:"edges"`
}

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type CommitEdge struct {
	Node *CommitNode `json:"node"`
}

type CommitNode struct {
	Oid           string        `json:"oid"`
	Message       string        `json:"message"`
	CommittedDate time.Time     `json:"committedDate"`
	Author        *CommitAuthor `json:"author"`
	Additions     *int          `json:"additions"`
	Deletions     *int          `json:"deletions"`
}

type CommitAuthor struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	User  *struct {
		Login *string `json:"login"`
	} `json:"user"`
}

// ToCommitRecord flattens the node; null counters become zero
func (n *CommitNode) ToCommitRecord() CommitRecord {
	record := CommitRecord{
		SHA:         n.Oid,
		Message:     n.Message,
		CommittedAt: n.CommittedDate,
	}
	if n.Additions != nil {
		record.Additions = *n.Additions
	}
	if n.Deletions != nil {
		record.Deletions = *n.Deletions
	}
	if n.Author != nil {
		record.AuthorName = n.Author.Name
		record.AuthorEmail = n.Author.Email
		if n.Author.User != nil {
			record.AuthorLogin = n.Author.User.Login
		}
	}
	return record
}
