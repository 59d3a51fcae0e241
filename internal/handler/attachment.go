package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"inkwell/internal/domain/models/docsystem"
	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/httputil"
)

// multipartOverhead is the slack allowed on top of the file size for multipart framing
const multipartOverhead = 1 << 20

// AttachmentHandler handles attachment upload, download and removal
type AttachmentHandler struct {
	attachmentService docsysSvc.AttachmentService
	maxUploadBytes    int64
	logger            *slog.Logger
}

// NewAttachmentHandler creates a new attachment handler.
// maxUploadBytes caps the request body; the upload policy performs the exact size check.
func NewAttachmentHandler(attachmentService docsysSvc.AttachmentService, maxUploadBytes int64, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		maxUploadBytes:    maxUploadBytes,
		logger:            logger,
	}
}

// ListAttachments lists attachments bound to the current version
// GET /api/documents/{id}/attachments
func (h *AttachmentHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	attachments, err := h.attachmentService.CurrentAttachments(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toAttachmentMetas(attachments))
}

// UploadAttachment attaches a file to the current version.
// Accepts multipart/form-data with a "file" field, or a raw body with a ?filename= query.
// POST /api/documents/{id}/attachments
func (h *AttachmentHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	file, err := h.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes))
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	attachment, err := h.attachmentService.Attach(r.Context(), httputil.GetCaller(r), r.PathValue("id"), file)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, toAttachmentMeta(attachment))
}

func (h *AttachmentHandler) readUpload(r *http.Request) (*docsystem.UploadedFile, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		part, header, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, errors.New("multipart field \"file\" is required")
			}
			return nil, err
		}
		defer part.Close()

		data, err := io.ReadAll(part)
		if err != nil {
			return nil, err
		}
		return &docsystem.UploadedFile{
			Filename: header.Filename,
			MimeType: detectMimeType(header.Header.Get("Content-Type"), data),
			Data:     data,
		}, nil
	}

	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		return nil, errors.New("filename query parameter is required for raw uploads")
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return &docsystem.UploadedFile{
		Filename: filename,
		MimeType: detectMimeType(r.Header.Get("Content-Type"), data),
		Data:     data,
	}, nil
}

// detectMimeType trusts an explicit declared type, else sniffs the payload
func detectMimeType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

// DownloadAttachment streams an attachment's payload
// GET /api/documents/{id}/attachments/{attachmentId}
func (h *AttachmentHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	attachment, err := h.attachmentService.GetAttachment(r.Context(), r.PathValue("id"), r.PathValue("attachmentId"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", attachment.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(attachment.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": attachment.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(attachment.Data); err != nil {
		h.logger.Warn("attachment download interrupted", "attachment_id", attachment.ID, "error", err)
	}
}

// DeleteAttachment removes an attachment
// DELETE /api/documents/{id}/attachments/{attachmentId}
func (h *AttachmentHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	attachmentID := r.PathValue("attachmentId")
	if err := h.attachmentService.Detach(r.Context(), httputil.GetCaller(r), r.PathValue("id"), attachmentID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deletedResponse{DeletedID: attachmentID})
}
