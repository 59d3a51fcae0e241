package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	docmodels "inkwell/internal/domain/models/docsystem"
	"inkwell/internal/domain/repositories"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/domain/services"
	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/service/auth"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo        docsysRepo.DocumentRepository
	versionRepo    docsysRepo.VersionRepository
	attachmentRepo docsysRepo.AttachmentRepository
	commentRepo    docsysRepo.CommentRepository
	workspaceRepo  docsysRepo.WorkspaceRepository
	txManager      repositories.TransactionManager
	notifier       services.ChangeNotifier
	logger         *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	versionRepo docsysRepo.VersionRepository,
	attachmentRepo docsysRepo.AttachmentRepository,
	commentRepo docsysRepo.CommentRepository,
	workspaceRepo docsysRepo.WorkspaceRepository,
	txManager repositories.TransactionManager,
	notifier services.ChangeNotifier,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:        docRepo,
		versionRepo:    versionRepo,
		attachmentRepo: attachmentRepo,
		commentRepo:    commentRepo,
		workspaceRepo:  workspaceRepo,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreateDocument creates a document and its version 1 in one transaction
func (s *documentService) CreateDocument(ctx context.Context, caller *models.Caller, req *docsysSvc.CreateDocumentRequest) (*docmodels.Document, *docmodels.Version, error) {
	if err := auth.RequireCaller(caller); err != nil {
		return nil, nil, err
	}

	content := newVersionContent(req.Title, req.Body, req.Author)
	if err := content.validate(); err != nil {
		return nil, nil, err
	}
	if content.Author == "" {
		content.Author = docmodels.DefaultAuthor
	}

	workspaceID := strings.TrimSpace(req.WorkspaceID)
	if workspaceID == "" {
		return nil, nil, fmt.Errorf("%w: workspace_id is required", domain.ErrValidation)
	}
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID); err != nil {
		return nil, nil, err
	}

	creatorID := caller.UserID
	doc := &docmodels.Document{
		WorkspaceID:          workspaceID,
		CreatorID:            &creatorID,
		CurrentVersionNumber: 1,
	}
	var version *docmodels.Version

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}

		version = &docmodels.Version{
			DocumentID:    doc.ID,
			VersionNumber: 1,
			Title:         content.Title,
			Body:          content.Body,
			Author:        content.Author,
		}
		return s.versionRepo.Create(txCtx, version)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"workspace_id", doc.WorkspaceID,
		"creator_id", creatorID,
	)

	s.notifier.Publish(models.NewDocumentCreatedEvent(doc.ID, version.Title, version.Author))

	return doc, version, nil
}

// ReviseDocument appends version current+1 under the document's row lock
func (s *documentService) ReviseDocument(ctx context.Context, caller *models.Caller, documentID string, req *docsysSvc.ReviseDocumentRequest) (*docmodels.Document, *docmodels.Version, error) {
	if err := auth.RequireCaller(caller); err != nil {
		return nil, nil, err
	}

	existing, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if err := auth.AuthorizeDocument(existing, caller, "edit"); err != nil {
		return nil, nil, err
	}

	content := newVersionContent(req.Title, req.Body, req.Author)
	if err := content.validate(); err != nil {
		return nil, nil, err
	}

	var targetWorkspace string
	if req.WorkspaceID != nil {
		targetWorkspace = strings.TrimSpace(*req.WorkspaceID)
	}
	if targetWorkspace != "" {
		if _, err := s.workspaceRepo.GetByID(ctx, targetWorkspace); err != nil {
			return nil, nil, err
		}
	}

	var (
		doc     *docmodels.Document
		version *docmodels.Version
	)

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		locked, err := s.docRepo.GetForUpdate(txCtx, documentID)
		if err != nil {
			return err
		}

		author := content.Author
		if author == "" {
			author = docmodels.DefaultAuthor
			current, err := s.versionRepo.GetByNumber(txCtx, locked.ID, locked.CurrentVersionNumber)
			switch {
			case err == nil && current.Author != "":
				author = current.Author
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return err
			}
		}

		next := locked.CurrentVersionNumber + 1
		version = &docmodels.Version{
			DocumentID:    locked.ID,
			VersionNumber: next,
			Title:         content.Title,
			Body:          content.Body,
			Author:        author,
		}
		if err := s.versionRepo.Create(txCtx, version); err != nil {
			return err
		}

		locked.CurrentVersionNumber = next
		if targetWorkspace != "" {
			locked.WorkspaceID = targetWorkspace
		}
		if err := s.docRepo.Update(txCtx, locked); err != nil {
			return err
		}

		doc = locked
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("document revised",
		"document_id", doc.ID,
		"version_number", version.VersionNumber,
		"user_id", caller.UserID,
	)

	s.notifier.Publish(models.NewDocumentUpdatedEvent(doc.ID, version.Title, version.VersionNumber))

	return doc, version, nil
}

// DeleteDocument removes a document and everything bound to it
func (s *documentService) DeleteDocument(ctx context.Context, caller *models.Caller, documentID string) error {
	if err := auth.RequireCaller(caller); err != nil {
		return err
	}

	existing, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeDocument(existing, caller, "delete"); err != nil {
		return err
	}

	title := fallbackTitle
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		locked, err := s.docRepo.GetForUpdate(txCtx, documentID)
		if err != nil {
			return err
		}

		current, err := s.versionRepo.GetByNumber(txCtx, locked.ID, locked.CurrentVersionNumber)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		title = documentTitle(current)

		return s.docRepo.Delete(txCtx, locked.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted", "document_id", documentID, "user_id", caller.UserID)

	s.notifier.Publish(models.NewDocumentDeletedEvent(documentID, title))

	return nil
}

// GetDocument assembles the document page. The history, attachments,
// comments and workspace are loaded concurrently.
func (s *documentService) GetDocument(ctx context.Context, documentID string) (*docmodels.DocumentView, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	current, err := s.versionRepo.GetByNumber(ctx, doc.ID, doc.CurrentVersionNumber)
	if err != nil {
		return nil, fmt.Errorf("current version of document %s: %w", doc.ID, err)
	}

	view := &docmodels.DocumentView{Document: doc, Current: current}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		versions, err := s.versionRepo.ListByDocument(gctx, doc.ID)
		view.Versions = versions
		return err
	})
	g.Go(func() error {
		attachments, err := s.attachmentRepo.ListByVersion(gctx, current.ID)
		view.Attachments = attachments
		return err
	})
	g.Go(func() error {
		comments, err := s.commentRepo.ListByDocument(gctx, doc.ID)
		view.Comments = comments
		return err
	})
	g.Go(func() error {
		ws, err := s.workspaceRepo.GetByID(gctx, doc.WorkspaceID)
		view.Workspace = ws
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return view, nil
}

// GetVersion returns a read-only snapshot of one version
func (s *documentService) GetVersion(ctx context.Context, documentID string, versionNumber int) (*docmodels.VersionSnapshot, error) {
	if versionNumber < 1 {
		return nil, fmt.Errorf("%w: version number must be a positive integer", domain.ErrValidation)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	version, err := s.versionRepo.GetByNumber(ctx, doc.ID, versionNumber)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListByVersion(ctx, version.ID)
	if err != nil {
		return nil, err
	}

	return &docmodels.VersionSnapshot{
		Version:     version,
		Attachments: attachments,
		IsLatest:    version.VersionNumber == doc.CurrentVersionNumber,
	}, nil
}

// ListVersions returns the version history, newest first
func (s *documentService) ListVersions(ctx context.Context, documentID string) ([]docmodels.Version, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByDocument(ctx, documentID)
}

// ListDocuments lists summaries, optionally for one workspace
func (s *documentService) ListDocuments(ctx context.Context, workspaceID *string) ([]docmodels.DocumentSummary, error) {
	var filter *string
	if workspaceID != nil {
		if id := strings.TrimSpace(*workspaceID); id != "" {
			if _, err := s.workspaceRepo.GetByID(ctx, id); err != nil {
				return nil, err
			}
			filter = &id
		}
	}

	return s.docRepo.ListSummaries(ctx, filter, config.ExcerptLength)
}
