package docsystem

import "time"

// Comment is a remark on a document. WorkspaceID is copied from the document
// when the comment is written; AuthorID is NULL for legacy anonymous rows.
type Comment struct {
	ID          string    `json:"id" db:"id"`
	DocumentID  string    `json:"document_id" db:"document_id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	AuthorID    *string   `json:"author_id" db:"author_id"`
	Author      string    `json:"author" db:"author"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsAuthor reports whether userID wrote the comment
func (c *Comment) IsAuthor(userID string) bool {
	return c.AuthorID != nil && userID != "" && *c.AuthorID == userID
}
