package docsystem

import "time"

// Attachment is a binary blob bound to one version of a document.
// VersionID is NULL only for rows that predate version-scoped attachments.
type Attachment struct {
	ID         string    `json:"id" db:"id"`
	DocumentID string    `json:"document_id" db:"document_id"`
	VersionID  *string   `json:"version_id" db:"version_id"`
	Filename   string    `json:"filename" db:"filename"`
	MimeType   string    `json:"mime_type" db:"mime_type"`
	Size       int64     `json:"size" db:"size"`
	Data       []byte    `json:"-" db:"data"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// UploadedFile is an already-decoded upload handed to the attachment binder
type UploadedFile struct {
	Filename string
	MimeType string
	Data     []byte
}
