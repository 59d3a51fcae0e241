package docsystem

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	docmodels "inkwell/internal/domain/models/docsystem"
	"inkwell/internal/domain/repositories"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/domain/services"
	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/service/auth"
	"inkwell/internal/upload"
)

// attachmentService implements the AttachmentService interface
type attachmentService struct {
	docRepo        docsysRepo.DocumentRepository
	versionRepo    docsysRepo.VersionRepository
	attachmentRepo docsysRepo.AttachmentRepository
	txManager      repositories.TransactionManager
	policy         *upload.Policy
	notifier       services.ChangeNotifier
	logger         *slog.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(
	docRepo docsysRepo.DocumentRepository,
	versionRepo docsysRepo.VersionRepository,
	attachmentRepo docsysRepo.AttachmentRepository,
	txManager repositories.TransactionManager,
	policy *upload.Policy,
	notifier services.ChangeNotifier,
	logger *slog.Logger,
) docsysSvc.AttachmentService {
	return &attachmentService{
		docRepo:        docRepo,
		versionRepo:    versionRepo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		policy:         policy,
		notifier:       notifier,
		logger:         logger,
	}
}

// Attach binds a file to the version that is current when the upload runs
func (s *attachmentService) Attach(ctx context.Context, caller *models.Caller, documentID string, file *docmodels.UploadedFile) (*docmodels.Attachment, error) {
	if err := auth.RequireCaller(caller); err != nil {
		return nil, err
	}
	if err := s.policy.Check(file); err != nil {
		return nil, err
	}

	var (
		attachment *docmodels.Attachment
		title      string
	)

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetForUpdate(txCtx, documentID)
		if err != nil {
			return err
		}

		current, err := s.versionRepo.GetByNumber(txCtx, doc.ID, doc.CurrentVersionNumber)
		if err != nil {
			return err
		}
		title = documentTitle(current)

		versionID := current.ID
		attachment = &docmodels.Attachment{
			DocumentID: doc.ID,
			VersionID:  &versionID,
			Filename:   strings.TrimSpace(file.Filename),
			MimeType:   file.MimeType,
			Size:       int64(len(file.Data)),
			Data:       file.Data,
		}
		return s.attachmentRepo.Create(txCtx, attachment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attachment added",
		"document_id", documentID,
		"attachment_id", attachment.ID,
		"version_id", *attachment.VersionID,
		"size", attachment.Size,
	)

	s.notifier.Publish(models.NewAttachmentAddedEvent(
		documentID, title, attachment.ID, attachment.Filename, attachment.MimeType, attachment.Size,
	))

	return attachment, nil
}

// Detach deletes an attachment. The notification names the attachment's own
// version title, else the document's current title.
func (s *attachmentService) Detach(ctx context.Context, caller *models.Caller, documentID, attachmentID string) error {
	if err := auth.RequireCaller(caller); err != nil {
		return err
	}

	var (
		filename string
		title    string
	)

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetForUpdate(txCtx, documentID)
		if err != nil {
			return err
		}

		attachment, err := s.attachmentRepo.GetForDocument(txCtx, doc.ID, attachmentID)
		if err != nil {
			return err
		}
		filename = attachment.Filename

		title, err = s.displayTitle(txCtx, doc, attachment)
		if err != nil {
			return err
		}

		return s.attachmentRepo.Delete(txCtx, doc.ID, attachment.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("attachment removed", "document_id", documentID, "attachment_id", attachmentID)

	s.notifier.Publish(models.NewAttachmentRemovedEvent(documentID, title, filename))

	return nil
}

func (s *attachmentService) displayTitle(ctx context.Context, doc *docmodels.Document, a *docmodels.Attachment) (string, error) {
	if a.VersionID != nil {
		v, err := s.versionRepo.GetByID(ctx, *a.VersionID)
		switch {
		case err == nil && v.Title != "":
			return v.Title, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return "", err
		}
	}

	current, err := s.versionRepo.GetByNumber(ctx, doc.ID, doc.CurrentVersionNumber)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	return documentTitle(current), nil
}

// CurrentAttachments lists the attachments bound to the current version
func (s *attachmentService) CurrentAttachments(ctx context.Context, documentID string) ([]docmodels.Attachment, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	current, err := s.versionRepo.GetByNumber(ctx, doc.ID, doc.CurrentVersionNumber)
	if err != nil {
		return nil, err
	}

	return s.attachmentRepo.ListByVersion(ctx, current.ID)
}

// GetAttachment returns an attachment with its payload, scoped to the document
func (s *attachmentService) GetAttachment(ctx context.Context, documentID, attachmentID string) (*docmodels.Attachment, error) {
	return s.attachmentRepo.GetForDocument(ctx, documentID, attachmentID)
}
