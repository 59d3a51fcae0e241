package docsystem

import "time"

// DefaultAuthor is stored when neither the request nor the previous version names an author
const DefaultAuthor = "Anonymous"

// Version is an immutable snapshot of a document's title and body
type Version struct {
	ID            string    `json:"id" db:"id"`
	DocumentID    string    `json:"document_id" db:"document_id"`
	VersionNumber int       `json:"version_number" db:"version_number"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body,omitempty" db:"body"`
	Author        string    `json:"author" db:"author"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// VersionSnapshot is a single version as seen from its document
type VersionSnapshot struct {
	Version     *Version
	Attachments []Attachment
	IsLatest    bool
}
