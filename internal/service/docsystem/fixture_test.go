package docsystem

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/models"
	docmodels "inkwell/internal/domain/models/docsystem"
	"inkwell/internal/domain/repositories"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/repository/memory"
	"inkwell/internal/upload"
)

// recordingNotifier captures published events
type recordingNotifier struct {
	mu     sync.Mutex
	events []*models.ChangeEvent
}

func (n *recordingNotifier) Publish(event *models.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []models.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.EventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

func (n *recordingNotifier) last() *models.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return nil
	}
	return n.events[len(n.events)-1]
}

type fixture struct {
	store     *memory.Store
	docRepo   docsysRepo.DocumentRepository
	txManager repositories.TransactionManager
	notifier  *recordingNotifier

	docs        docsysSvc.DocumentService
	attachments docsysSvc.AttachmentService
	comments    docsysSvc.CommentService
	workspaces  docsysSvc.WorkspaceService

	workspace *docmodels.Workspace
	owner     *models.Caller
	other     *models.Caller
	admin     *models.Caller
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithLockTimeout(t, 2*time.Second)
}

func newFixtureWithLockTimeout(t *testing.T, lockTimeout time.Duration) *fixture {
	t.Helper()

	logger := testLogger()
	store := memory.NewStore(lockTimeout, logger)
	docRepo := memory.NewDocumentRepository(store)
	versionRepo := memory.NewVersionRepository(store)
	attachmentRepo := memory.NewAttachmentRepository(store)
	commentRepo := memory.NewCommentRepository(store)
	workspaceRepo := memory.NewWorkspaceRepository(store)
	txManager := memory.NewTransactionManager(store)
	notifier := &recordingNotifier{}

	policy, err := upload.DefaultPolicy()
	require.NoError(t, err)

	f := &fixture{
		store:       store,
		docRepo:     docRepo,
		txManager:   txManager,
		notifier:    notifier,
		docs:        NewDocumentService(docRepo, versionRepo, attachmentRepo, commentRepo, workspaceRepo, txManager, notifier, logger),
		attachments: NewAttachmentService(docRepo, versionRepo, attachmentRepo, txManager, policy, notifier, logger),
		comments:    NewCommentService(docRepo, commentRepo, logger),
		workspaces:  NewWorkspaceService(workspaceRepo, logger),
		owner:       &models.Caller{UserID: uuid.NewString(), Email: "owner@example.com", Role: models.RoleUser},
		other:       &models.Caller{UserID: uuid.NewString(), Email: "other@example.com", Role: models.RoleUser},
		admin:       &models.Caller{UserID: uuid.NewString(), Email: "admin@example.com", Role: models.RoleAdmin},
	}

	f.workspace, err = f.workspaces.CreateWorkspace(context.Background(), &docsysSvc.CreateWorkspaceRequest{Name: "Engineering"})
	require.NoError(t, err)

	return f
}

func (f *fixture) createDocument(t *testing.T, caller *models.Caller, title, body string) (*docmodels.Document, *docmodels.Version) {
	t.Helper()
	doc, v, err := f.docs.CreateDocument(context.Background(), caller, &docsysSvc.CreateDocumentRequest{
		WorkspaceID: f.workspace.ID,
		Title:       title,
		Body:        body,
	})
	require.NoError(t, err)
	return doc, v
}

func (f *fixture) revise(t *testing.T, caller *models.Caller, documentID, title, body string) *docmodels.Version {
	t.Helper()
	_, v, err := f.docs.ReviseDocument(context.Background(), caller, documentID, &docsysSvc.ReviseDocumentRequest{
		Title: title,
		Body:  body,
	})
	require.NoError(t, err)
	return v
}

func (f *fixture) attach(t *testing.T, caller *models.Caller, documentID, filename string) *docmodels.Attachment {
	t.Helper()
	a, err := f.attachments.Attach(context.Background(), caller, documentID, &docmodels.UploadedFile{
		Filename: filename,
		MimeType: "application/pdf",
		Data:     []byte("%PDF-1.4 " + filename),
	})
	require.NoError(t, err)
	return a
}
