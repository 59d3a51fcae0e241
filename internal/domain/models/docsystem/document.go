package docsystem

import (
	"time"
)

// Document is the versioned article entity.
// Title and body live exclusively in its versions.
type Document struct {
	ID                   string    `json:"id" db:"id"`
	WorkspaceID          string    `json:"workspace_id" db:"workspace_id"`
	CreatorID            *string   `json:"creator_id" db:"creator_id"` // NULL for legacy records
	CurrentVersionNumber int       `json:"current_version_number" db:"current_version_number"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// IsCreator reports whether userID created the document
func (d *Document) IsCreator(userID string) bool {
	return d.CreatorID != nil && userID != "" && *d.CreatorID == userID
}

// DocumentSummary is a list row: the document plus a preview of its current version
type DocumentSummary struct {
	Document
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// DocumentView aggregates everything shown on a document page
type DocumentView struct {
	Document    *Document
	Current     *Version
	Versions    []Version    // newest first, bodies omitted
	Attachments []Attachment // bound to Current, payloads omitted
	Comments    []Comment    // newest first
	Workspace   *Workspace
}
