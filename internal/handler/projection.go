package handler

import (
	"fmt"
	"time"

	"inkwell/internal/domain/models/docsystem"
	"inkwell/internal/handler/sanitizer"
)

var bodySanitizer = sanitizer.NewHTMLSanitizer()

// Response shapes are explicit per view; storage models are never serialized directly.

type workspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type documentSummaryResponse struct {
	ID                   string    `json:"id"`
	WorkspaceID          string    `json:"workspace_id"`
	Title                string    `json:"title"`
	Excerpt              string    `json:"excerpt"`
	CurrentVersionNumber int       `json:"current_version_number"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type versionResponse struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id"`
	VersionNumber int       `json:"version_number"`
	Title         string    `json:"title"`
	Body          string    `json:"body,omitempty"`
	BodyHTML      string    `json:"body_html,omitempty"` // Body with unsafe markup removed
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
}

type versionSnapshotResponse struct {
	versionResponse
	Attachments []attachmentResponse `json:"attachments"`
	IsLatest    bool                 `json:"is_latest"`
}

type attachmentResponse struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	VersionID   *string   `json:"version_id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type commentResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	AuthorID   *string   `json:"author_id"`
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// documentResponse is returned by create and revise: the document and the version just written
type documentResponse struct {
	ID                   string          `json:"id"`
	WorkspaceID          string          `json:"workspace_id"`
	CreatorID            *string         `json:"creator_id"`
	CurrentVersionNumber int             `json:"current_version_number"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	CurrentVersion       versionResponse `json:"current_version"`
}

// documentDetailResponse is the document page
type documentDetailResponse struct {
	documentResponse
	Workspace   *workspaceResponse   `json:"workspace,omitempty"`
	Versions    []versionResponse    `json:"versions"`
	Attachments []attachmentResponse `json:"attachments"`
	Comments    []commentResponse    `json:"comments"`
}

func toWorkspace(ws *docsystem.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Slug:        ws.Slug,
		Description: ws.Description,
		CreatedAt:   ws.CreatedAt,
	}
}

func toDocumentSummary(s *docsystem.DocumentSummary) documentSummaryResponse {
	return documentSummaryResponse{
		ID:                   s.ID,
		WorkspaceID:          s.WorkspaceID,
		Title:                s.Title,
		Excerpt:              s.Excerpt,
		CurrentVersionNumber: s.CurrentVersionNumber,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func toVersion(v *docsystem.Version) versionResponse {
	resp := versionResponse{
		ID:            v.ID,
		DocumentID:    v.DocumentID,
		VersionNumber: v.VersionNumber,
		Title:         v.Title,
		Body:          v.Body,
		Author:        v.Author,
		CreatedAt:     v.CreatedAt,
	}
	if v.Body != "" {
		resp.BodyHTML = bodySanitizer.Sanitize(v.Body)
	}
	return resp
}

func toVersionSnapshot(s *docsystem.VersionSnapshot) versionSnapshotResponse {
	return versionSnapshotResponse{
		versionResponse: toVersion(s.Version),
		Attachments:     toAttachmentMetas(s.Attachments),
		IsLatest:        s.IsLatest,
	}
}

func toAttachmentMeta(a *docsystem.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:          a.ID,
		DocumentID:  a.DocumentID,
		VersionID:   a.VersionID,
		Filename:    a.Filename,
		MimeType:    a.MimeType,
		Size:        a.Size,
		DownloadURL: fmt.Sprintf("/api/documents/%s/attachments/%s", a.DocumentID, a.ID),
		CreatedAt:   a.CreatedAt,
	}
}

func toAttachmentMetas(attachments []docsystem.Attachment) []attachmentResponse {
	out := make([]attachmentResponse, 0, len(attachments))
	for i := range attachments {
		out = append(out, toAttachmentMeta(&attachments[i]))
	}
	return out
}

func toComment(c *docsystem.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		AuthorID:   c.AuthorID,
		Author:     c.Author,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toComments(comments []docsystem.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toComment(&comments[i]))
	}
	return out
}

func toDocument(doc *docsystem.Document, current *docsystem.Version) documentResponse {
	return documentResponse{
		ID:                   doc.ID,
		WorkspaceID:          doc.WorkspaceID,
		CreatorID:            doc.CreatorID,
		CurrentVersionNumber: doc.CurrentVersionNumber,
		CreatedAt:            doc.CreatedAt,
		UpdatedAt:            doc.UpdatedAt,
		CurrentVersion:       toVersion(current),
	}
}

func toDocumentDetail(view *docsystem.DocumentView) documentDetailResponse {
	detail := documentDetailResponse{
		documentResponse: toDocument(view.Document, view.Current),
		Versions:         make([]versionResponse, 0, len(view.Versions)),
		Attachments:      toAttachmentMetas(view.Attachments),
		Comments:         toComments(view.Comments),
	}
	if view.Workspace != nil {
		ws := toWorkspace(view.Workspace)
		detail.Workspace = &ws
	}
	for i := range view.Versions {
		detail.Versions = append(detail.Versions, toVersion(&view.Versions[i]))
	}
	return detail
}
