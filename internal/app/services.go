package app

import (
	"log/slog"

	"inkwell/internal/domain/services"
	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/service"
	serviceDocsys "inkwell/internal/service/docsystem"
	"inkwell/internal/upload"
)

// Services bundles the domain services built on one Storage
type Services struct {
	Documents   docsysSvc.DocumentService
	Attachments docsysSvc.AttachmentService
	Comments    docsysSvc.CommentService
	Workspaces  docsysSvc.WorkspaceService
	Users       services.UserService
}

// NewServices wires the domain services. notifier receives change events after commit.
func NewServices(s *Storage, policy *upload.Policy, notifier services.ChangeNotifier, logger *slog.Logger) *Services {
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	return &Services{
		Documents: serviceDocsys.NewDocumentService(
			s.Documents, s.Versions, s.Attachments, s.Comments, s.Workspaces,
			s.TxManager, notifier, logger,
		),
		Attachments: serviceDocsys.NewAttachmentService(
			s.Documents, s.Versions, s.Attachments, s.TxManager, policy, notifier, logger,
		),
		Comments:   serviceDocsys.NewCommentService(s.Documents, s.Comments, logger),
		Workspaces: serviceDocsys.NewWorkspaceService(s.Workspaces, logger),
		Users:      service.NewUserService(s.Users, logger),
	}
}
