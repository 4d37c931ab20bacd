package models

import "time"

// CommitRecord is one commit from the default branch history, flattened from
// a GraphQL history edge. Author fields are nil when the API did not report them.
type CommitRecord struct {
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	CommittedAt time.Time `json:"committed_at"`
	AuthorName  string    `json:"author_name"`
	AuthorLogin *string   `json:"author_login"`
	AuthorEmail *string   `json:"author_email"`
	Additions   int       `json:"additions"`
	Deletions   int       `json:"deletions"`
}

// AuthorIdentity resolves the author as login, falling back to email.
// ok is false when neither is known.
func (c CommitRecord) AuthorIdentity() (identity string, ok bool) {
	if c.AuthorLogin != nil && *c.AuthorLogin != "" {
		return *c.AuthorLogin, true
	}
	if c.AuthorEmail != nil && *c.AuthorEmail != "" {
		return *c.AuthorEmail, true
	}
	return "", false
}

// TotalChanges returns additions plus deletions
func (c CommitRecord) TotalChanges() int {
	return c.Additions + c.Deletions
}
