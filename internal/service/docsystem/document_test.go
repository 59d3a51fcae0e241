package docsystem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	docsysSvc "inkwell/internal/domain/services/docsystem"
)

func TestDocumentService_CreateReviseScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, v1 := f.createDocument(t, f.owner, "A", "hello")
	assert.Equal(t, 1, doc.CurrentVersionNumber)
	assert.Equal(t, 1, v1.VersionNumber)
	assert.Equal(t, "Anonymous", v1.Author)

	v2 := f.revise(t, f.owner, doc.ID, "A2", "world")
	assert.Equal(t, 2, v2.VersionNumber)

	snap, err := f.docs.GetVersion(ctx, doc.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", snap.Version.Title)
	assert.Equal(t, "hello", snap.Version.Body)
	assert.False(t, snap.IsLatest)

	_, _, err = f.docs.ReviseDocument(ctx, f.other, doc.ID, &docsysSvc.ReviseDocumentRequest{Title: "hijack", Body: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	v3 := f.revise(t, f.admin, doc.ID, "A3", "admin edit")
	assert.Equal(t, 3, v3.VersionNumber)

	latest, err := f.docs.GetVersion(ctx, doc.ID, 3)
	require.NoError(t, err)
	assert.True(t, latest.IsLatest)

	assert.Equal(t, []models.EventType{
		models.EventDocumentCreated,
		models.EventDocumentUpdated,
		models.EventDocumentUpdated,
	}, f.notifier.types())
}

func TestDocumentService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  *models.Caller
		req     docsysSvc.CreateDocumentRequest
		wantErr error
	}{
		{
			name:    "no caller",
			caller:  nil,
			req:     docsysSvc.CreateDocumentRequest{WorkspaceID: f.workspace.ID, Title: "t", Body: "b"},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "empty title",
			caller:  f.owner,
			req:     docsysSvc.CreateDocumentRequest{WorkspaceID: f.workspace.ID, Title: "   ", Body: "b"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "title too long",
			caller:  f.owner,
			req:     docsysSvc.CreateDocumentRequest{WorkspaceID: f.workspace.ID, Title: strings.Repeat("é", 201), Body: "b"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "empty body",
			caller:  f.owner,
			req:     docsysSvc.CreateDocumentRequest{WorkspaceID: f.workspace.ID, Title: "t", Body: ""},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "body too large",
			caller:  f.owner,
			req:     docsysSvc.CreateDocumentRequest{WorkspaceID: f.workspace.ID, Title: "t", Body: strings.Repeat("x", 1_000_001)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing workspace id",
			caller:  f.owner,
			req:     docsysSvc.CreateDocumentRequest{Title: "t", Body: "b"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown workspace",
			caller:  f.owner,
			req:     docsysSvc.CreateDocumentRequest{WorkspaceID: "00000000-0000-0000-0000-000000000000", Title: "t", Body: "b"},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, _, err := f.docs.CreateDocument(ctx, tt.caller, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	summaries, err := f.docs.ListDocuments(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestDocumentService_CreateAcceptsLimits(t *testing.T) {
	f := newFixture(t)

	_, v := f.createDocument(t, f.owner, strings.Repeat("é", 200), strings.Repeat("x", 1_000_000))
	assert.Equal(t, 1, v.VersionNumber)
}

func TestDocumentService_StoresBodyAsSupplied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	body := `if a < b && b > c then <script>x()</script>`
	doc, v := f.createDocument(t, f.owner, "Doc", "  "+body+"\n")
	assert.Equal(t, body, v.Body)

	snap, err := f.docs.GetVersion(ctx, doc.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, body, snap.Version.Body)

	// the byte limit applies to the raw body
	entities := strings.Repeat("&", 400_000) + strings.Repeat("x", 400_000)
	_, v = f.createDocument(t, f.owner, "Entities", entities)
	assert.Equal(t, entities, v.Body)

	revised := f.revise(t, f.owner, doc.ID, "Doc", strings.Repeat("<", 1_000_000))
	assert.Len(t, revised.Body, 1_000_000)
}

func TestDocumentService_ReviseInheritsAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, _, err := f.docs.CreateDocument(ctx, f.owner, &docsysSvc.CreateDocumentRequest{
		WorkspaceID: f.workspace.ID,
		Title:       "Guide",
		Body:        "v1",
		Author:      "Ada",
	})
	require.NoError(t, err)

	v2 := f.revise(t, f.owner, doc.ID, "Guide", "v2")
	assert.Equal(t, "Ada", v2.Author)

	_, v3, err := f.docs.ReviseDocument(ctx, f.owner, doc.ID, &docsysSvc.ReviseDocumentRequest{Title: "Guide", Body: "v3", Author: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", v3.Author)
}

func TestDocumentService_ReviseMovesWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target, err := f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "Design"})
	require.NoError(t, err)

	doc, _ := f.createDocument(t, f.owner, "Runbook", "body")
	moved, _, err := f.docs.ReviseDocument(ctx, f.owner, doc.ID, &docsysSvc.ReviseDocumentRequest{
		Title:       "Runbook",
		Body:        "body",
		WorkspaceID: &target.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, target.ID, moved.WorkspaceID)

	missing := "00000000-0000-0000-0000-000000000000"
	_, _, err = f.docs.ReviseDocument(ctx, f.owner, doc.ID, &docsysSvc.ReviseDocumentRequest{
		Title:       "Runbook",
		Body:        "body",
		WorkspaceID: &missing,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_ReviseErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "A", "b")

	_, _, err := f.docs.ReviseDocument(ctx, f.owner, "00000000-0000-0000-0000-000000000000", &docsysSvc.ReviseDocumentRequest{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.docs.ReviseDocument(ctx, f.owner, doc.ID, &docsysSvc.ReviseDocumentRequest{Title: "", Body: "b"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = f.docs.ReviseDocument(ctx, nil, doc.ID, &docsysSvc.ReviseDocumentRequest{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Failed revisions leave the chain untouched
	versions, err := f.docs.ListVersions(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestDocumentService_ConcurrentRevisionsAreSerialized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Counter", "0")

	const n = 25
	var (
		mu      sync.Mutex
		numbers []int
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, v, err := f.docs.ReviseDocument(gctx, f.owner, doc.ID, &docsysSvc.ReviseDocumentRequest{
				Title: "Counter",
				Body:  "edit",
			})
			if err != nil {
				return err
			}
			mu.Lock()
			numbers = append(numbers, v.VersionNumber)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Ints(numbers)
	want := make([]int, 0, n)
	for i := 2; i <= n+1; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, numbers)

	versions, err := f.docs.ListVersions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, n+1)
	for i, v := range versions {
		assert.Equal(t, n+1-i, v.VersionNumber, "history is newest first with no gaps")
	}

	view, err := f.docs.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, n+1, view.Document.CurrentVersionNumber)
}

func TestDocumentService_LockTimeoutIsRetryable(t *testing.T) {
	f := newFixtureWithLockTimeout(t, 50*time.Millisecond)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Locked", "body")

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- f.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			if _, err := f.docRepo.GetForUpdate(txCtx, doc.ID); err != nil {
				return err
			}
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	_, _, err := f.docs.ReviseDocument(ctx, f.owner, doc.ID, &docsysSvc.ReviseDocumentRequest{Title: "t", Body: "b"})
	var concurrencyErr *domain.ConcurrencyError
	require.ErrorAs(t, err, &concurrencyErr)
	assert.True(t, concurrencyErr.Retryable())

	close(release)
	require.NoError(t, <-done)

	// Once the lock is free the same revision succeeds
	v := f.revise(t, f.owner, doc.ID, "t", "b")
	assert.Equal(t, 2, v.VersionNumber)
}

func TestDocumentService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, _ := f.createDocument(t, f.owner, "Doomed", "v1")
	f.revise(t, f.owner, doc.ID, "Doomed", "v2")
	f.attach(t, f.owner, doc.ID, "one.pdf")
	f.revise(t, f.owner, doc.ID, "Doomed", "v3")
	f.attach(t, f.owner, doc.ID, "two.pdf")
	for i := 0; i < 5; i++ {
		_, err := f.comments.AddComment(ctx, f.other, doc.ID, &docsysSvc.CommentRequest{Body: "remark"})
		require.NoError(t, err)
	}

	before := f.store.CountRows(doc.ID)
	require.Equal(t, 3, before.Versions)
	require.Equal(t, 2, before.Attachments)
	require.Equal(t, 5, before.Comments)

	require.NoError(t, f.docs.DeleteDocument(ctx, f.owner, doc.ID))

	after := f.store.CountRows(doc.ID)
	assert.Zero(t, after.Versions)
	assert.Zero(t, after.Attachments)
	assert.Zero(t, after.Comments)

	_, err := f.docs.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	last := f.notifier.last()
	require.NotNil(t, last)
	assert.Equal(t, models.EventDocumentDeleted, last.Type)
	assert.Equal(t, "Doomed", last.DocumentTitle)
}

func TestDocumentService_DeleteAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, _ := f.createDocument(t, f.owner, "Mine", "b")
	theirs, _ := f.createDocument(t, f.other, "Theirs", "b")

	assert.ErrorIs(t, f.docs.DeleteDocument(ctx, f.owner, theirs.ID), domain.ErrForbidden)
	assert.NoError(t, f.docs.DeleteDocument(ctx, f.owner, mine.ID))
	assert.NoError(t, f.docs.DeleteDocument(ctx, f.admin, theirs.ID))
	assert.ErrorIs(t, f.docs.DeleteDocument(ctx, f.admin, theirs.ID), domain.ErrNotFound)
}

func TestDocumentService_GetVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "A", "b")

	_, err := f.docs.GetVersion(ctx, doc.ID, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.docs.GetVersion(ctx, doc.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.GetVersion(ctx, "00000000-0000-0000-0000-000000000000", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_GetDocumentView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, _ := f.createDocument(t, f.owner, "Page", "first")
	f.attach(t, f.owner, doc.ID, "old.pdf")
	f.revise(t, f.owner, doc.ID, "Page v2", "second")
	current := f.attach(t, f.owner, doc.ID, "new.pdf")
	_, err := f.comments.AddComment(ctx, f.other, doc.ID, &docsysSvc.CommentRequest{Body: "nice"})
	require.NoError(t, err)

	view, err := f.docs.GetDocument(ctx, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, "Page v2", view.Current.Title)
	assert.Equal(t, "second", view.Current.Body)
	require.Len(t, view.Versions, 2)
	assert.Equal(t, 2, view.Versions[0].VersionNumber)
	require.Len(t, view.Attachments, 1)
	assert.Equal(t, current.ID, view.Attachments[0].ID)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "other@example.com", view.Comments[0].Author)
	require.NotNil(t, view.Workspace)
	assert.Equal(t, f.workspace.ID, view.Workspace.ID)
}

func TestDocumentService_ListDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.workspaces.CreateWorkspace(ctx, &docsysSvc.CreateWorkspaceRequest{Name: "Other"})
	require.NoError(t, err)

	first, _ := f.createDocument(t, f.owner, "First", "<p>Hello <b>world</b></p>")
	_, _, err = f.docs.CreateDocument(ctx, f.owner, &docsysSvc.CreateDocumentRequest{
		WorkspaceID: other.ID,
		Title:       "Elsewhere",
		Body:        "body",
	})
	require.NoError(t, err)

	all, err := f.docs.ListDocuments(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.docs.ListDocuments(ctx, &f.workspace.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
	assert.Equal(t, "First", filtered[0].Title)
	assert.Equal(t, "Hello world", filtered[0].Excerpt)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = f.docs.ListDocuments(ctx, &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
