package handler

import "net/http"

// PublicPaths are served without a bearer token
var PublicPaths = []string{
	"/health",
	"/api/auth/register",
	"/api/auth/login",
	"/api/events",
	"/ws",
}

// Routes groups the handlers mounted on the API mux
type Routes struct {
	Health      *HealthHandler
	Workspaces  *WorkspaceHandler
	Documents   *DocumentHandler
	Attachments *AttachmentHandler
	Comments    *CommentHandler
	Events      *SSEHandler
	WebSocket   *WebSocketHandler
	Auth        *AuthHandler // nil when no signing secret is configured
}

// Register mounts every route on mux (Go 1.22+ method and wildcard patterns)
func (rt *Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", rt.Health.Health)

	if rt.Auth != nil {
		mux.HandleFunc("POST /api/auth/register", rt.Auth.Register)
		mux.HandleFunc("POST /api/auth/login", rt.Auth.Login)
	}

	mux.HandleFunc("GET /api/workspaces", rt.Workspaces.ListWorkspaces)

	// Documents and versions
	mux.HandleFunc("GET /api/documents", rt.Documents.ListDocuments)
	mux.HandleFunc("POST /api/documents", rt.Documents.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", rt.Documents.GetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", rt.Documents.ReviseDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", rt.Documents.DeleteDocument)
	mux.HandleFunc("GET /api/documents/{id}/versions", rt.Documents.ListVersions)
	mux.HandleFunc("GET /api/documents/{id}/versions/{number}", rt.Documents.GetVersion)

	// Attachments
	mux.HandleFunc("GET /api/documents/{id}/attachments", rt.Attachments.ListAttachments)
	mux.HandleFunc("POST /api/documents/{id}/attachments", rt.Attachments.UploadAttachment)
	mux.HandleFunc("GET /api/documents/{id}/attachments/{attachmentId}", rt.Attachments.DownloadAttachment)
	mux.HandleFunc("DELETE /api/documents/{id}/attachments/{attachmentId}", rt.Attachments.DeleteAttachment)

	// Comments
	mux.HandleFunc("GET /api/documents/{id}/comments", rt.Comments.ListComments)
	mux.HandleFunc("POST /api/documents/{id}/comments", rt.Comments.AddComment)
	mux.HandleFunc("PUT /api/documents/{id}/comments/{commentId}", rt.Comments.EditComment)
	mux.HandleFunc("DELETE /api/documents/{id}/comments/{commentId}", rt.Comments.RemoveComment)

	// Change notifications
	mux.HandleFunc("GET /api/events", rt.Events.StreamEvents)
	mux.HandleFunc("GET /ws", rt.WebSocket.Serve)
}
