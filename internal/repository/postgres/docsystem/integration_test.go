package docsystem_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	models "inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/repository/postgres/docsystem"
)

// openTestPool migrates TEST_DATABASE_URL and connects to it.
// Tests are skipped when the variable is unset.
func openTestPool(t *testing.T) (*pgxpool.Pool, *postgres.RepositoryConfig) {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	migrator, err := postgres.NewMigrator(databaseURL, logger)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	pool, err := postgres.CreateConnectionPool(context.Background(), databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool, &postgres.RepositoryConfig{Pool: pool, Tables: postgres.NewTableNames(), Logger: logger}
}

type repos struct {
	workspaces  docsysRepo.WorkspaceRepository
	documents   docsysRepo.DocumentRepository
	versions    docsysRepo.VersionRepository
	attachments docsysRepo.AttachmentRepository
	comments    docsysRepo.CommentRepository
}

func newRepos(cfg *postgres.RepositoryConfig) repos {
	return repos{
		workspaces:  docsystem.NewWorkspaceRepository(cfg),
		documents:   docsystem.NewDocumentRepository(cfg),
		versions:    docsystem.NewVersionRepository(cfg),
		attachments: docsystem.NewAttachmentRepository(cfg),
		comments:    docsystem.NewCommentRepository(cfg),
	}
}

func seedDocument(t *testing.T, ctx context.Context, r repos) (*models.Workspace, *models.Document, *models.Version) {
	t.Helper()

	ws := &models.Workspace{Name: "Integration", Slug: "it-" + uuid.NewString()}
	require.NoError(t, r.workspaces.Create(ctx, ws))

	doc := &models.Document{WorkspaceID: ws.ID, CurrentVersionNumber: 1}
	require.NoError(t, r.documents.Create(ctx, doc))

	v := &models.Version{DocumentID: doc.ID, VersionNumber: 1, Title: "First", Body: "<p>Hello <b>world</b></p>", Author: "Ada"}
	require.NoError(t, r.versions.Create(ctx, v))

	return ws, doc, v
}

func TestPostgres_VersionNumbersAreUnique(t *testing.T) {
	_, cfg := openTestPool(t)
	ctx := context.Background()
	r := newRepos(cfg)

	_, doc, _ := seedDocument(t, ctx, r)

	err := r.versions.Create(ctx, &models.Version{DocumentID: doc.ID, VersionNumber: 1, Title: "Dup", Body: "x", Author: "Ada"})
	var constraint *domain.ConstraintError
	require.ErrorAs(t, err, &constraint)
	assert.Equal(t, "document_versions_number_key", constraint.Constraint)
}

func TestPostgres_AttachmentMustMatchDocument(t *testing.T) {
	_, cfg := openTestPool(t)
	ctx := context.Background()
	r := newRepos(cfg)

	_, docA, vA := seedDocument(t, ctx, r)
	_, docB, _ := seedDocument(t, ctx, r)

	err := r.attachments.Create(ctx, &models.Attachment{
		DocumentID: docB.ID,
		VersionID:  &vA.ID,
		Filename:   "a.pdf",
		MimeType:   "application/pdf",
		Size:       3,
		Data:       []byte("pdf"),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	a := &models.Attachment{DocumentID: docA.ID, VersionID: &vA.ID, Filename: "a.pdf", MimeType: "application/pdf", Size: 3, Data: []byte("pdf")}
	require.NoError(t, r.attachments.Create(ctx, a))

	_, err = r.attachments.GetForDocument(ctx, docB.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := r.attachments.GetForDocument(ctx, docA.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), got.Data)
}

func TestPostgres_ListSummariesStripsMarkup(t *testing.T) {
	_, cfg := openTestPool(t)
	ctx := context.Background()
	r := newRepos(cfg)

	ws, doc, _ := seedDocument(t, ctx, r)

	summaries, err := r.documents.ListSummaries(ctx, &ws.ID, 8)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, doc.ID, summaries[0].ID)
	assert.Equal(t, "First", summaries[0].Title)
	assert.Equal(t, "Hello wo", summaries[0].Excerpt)
}

func TestPostgres_MalformedIDIsNotFound(t *testing.T) {
	_, cfg := openTestPool(t)
	r := newRepos(cfg)

	_, err := r.documents.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_LockTimeout(t *testing.T) {
	pool, cfg := openTestPool(t)
	ctx := context.Background()
	r := newRepos(cfg)

	_, doc, _ := seedDocument(t, ctx, r)

	holder := postgres.NewTransactionManager(pool, 5*time.Second, cfg.Logger)
	waiter := postgres.NewTransactionManager(pool, 50*time.Millisecond, cfg.Logger)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- holder.ExecTx(ctx, func(txCtx context.Context) error {
			if _, err := r.documents.GetForUpdate(txCtx, doc.ID); err != nil {
				close(locked)
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()

	<-locked

	err := waiter.ExecTx(ctx, func(txCtx context.Context) error {
		_, err := r.documents.GetForUpdate(txCtx, doc.ID)
		return err
	})
	var concurrency *domain.ConcurrencyError
	require.ErrorAs(t, err, &concurrency)
	assert.True(t, concurrency.Retryable())

	close(release)
	require.NoError(t, <-done)
}

func TestPostgres_DeleteCascades(t *testing.T) {
	pool, cfg := openTestPool(t)
	ctx := context.Background()
	r := newRepos(cfg)

	ws, doc, v1 := seedDocument(t, ctx, r)

	v2 := &models.Version{DocumentID: doc.ID, VersionNumber: 2, Title: "Second", Body: "b", Author: "Ada"}
	require.NoError(t, r.versions.Create(ctx, v2))
	require.NoError(t, r.attachments.Create(ctx, &models.Attachment{
		DocumentID: doc.ID, VersionID: &v1.ID, Filename: "a.pdf", MimeType: "application/pdf", Size: 1, Data: []byte("a"),
	}))
	require.NoError(t, r.comments.Create(ctx, &models.Comment{
		DocumentID: doc.ID, WorkspaceID: ws.ID, Author: "Ada", Body: "nice",
	}))

	require.NoError(t, r.documents.Delete(ctx, doc.ID))

	for _, table := range []string{"document_versions", "attachments", "comments"} {
		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM "+table+" WHERE document_id = $1", doc.ID).Scan(&n))
		assert.Zero(t, n, table)
	}

	assert.ErrorIs(t, r.documents.Delete(ctx, doc.ID), domain.ErrNotFound)
}
