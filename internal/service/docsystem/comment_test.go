package docsystem

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	docsysSvc "inkwell/internal/domain/services/docsystem"
)

func TestCommentService_AddStampsAuthorAndWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Doc", "body")

	c, err := f.comments.AddComment(ctx, f.other, doc.ID, &docsysSvc.CommentRequest{Body: "  looks good  "})
	require.NoError(t, err)

	require.NotNil(t, c.AuthorID)
	assert.Equal(t, f.other.UserID, *c.AuthorID)
	assert.Equal(t, f.other.Email, c.Author)
	assert.Equal(t, f.workspace.ID, c.WorkspaceID)
	assert.Equal(t, "looks good", c.Body)
}

func TestCommentService_AddValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Doc", "body")

	_, err := f.comments.AddComment(ctx, nil, doc.ID, &docsysSvc.CommentRequest{Body: "hi"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.comments.AddComment(ctx, f.owner, doc.ID, &docsysSvc.CommentRequest{Body: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.comments.AddComment(ctx, f.owner, doc.ID, &docsysSvc.CommentRequest{Body: strings.Repeat("ü", 5001)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.comments.AddComment(ctx, f.owner, doc.ID, &docsysSvc.CommentRequest{Body: strings.Repeat("ü", 5000)})
	assert.NoError(t, err)

	_, err = f.comments.AddComment(ctx, f.owner, "00000000-0000-0000-0000-000000000000", &docsysSvc.CommentRequest{Body: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommentService_OnlyAuthorMayChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Doc", "body")

	c, err := f.comments.AddComment(ctx, f.other, doc.ID, &docsysSvc.CommentRequest{Body: "original"})
	require.NoError(t, err)

	edited := "edited"

	// Neither the document's creator nor an admin may touch someone else's comment
	for name, caller := range map[string]*models.Caller{"creator": f.owner, "admin": f.admin} {
		t.Run(name, func(t *testing.T) {
			_, err := f.comments.EditComment(ctx, caller, doc.ID, c.ID, &docsysSvc.EditCommentRequest{Body: &edited})
			assert.ErrorIs(t, err, domain.ErrForbidden)
			assert.ErrorIs(t, f.comments.RemoveComment(ctx, caller, doc.ID, c.ID), domain.ErrForbidden)
		})
	}

	updated, err := f.comments.EditComment(ctx, f.other, doc.ID, c.ID, &docsysSvc.EditCommentRequest{Body: &edited})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)

	unchanged, err := f.comments.EditComment(ctx, f.other, doc.ID, c.ID, &docsysSvc.EditCommentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "edited", unchanged.Body)

	require.NoError(t, f.comments.RemoveComment(ctx, f.other, doc.ID, c.ID))

	comments, err := f.comments.ListComments(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentService_ScopedToDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	docA, _ := f.createDocument(t, f.owner, "A", "body")
	docB, _ := f.createDocument(t, f.owner, "B", "body")

	c, err := f.comments.AddComment(ctx, f.owner, docA.ID, &docsysSvc.CommentRequest{Body: "on A"})
	require.NoError(t, err)

	body := "moved?"
	_, err = f.comments.EditComment(ctx, f.owner, docB.ID, c.ID, &docsysSvc.EditCommentRequest{Body: &body})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.comments.RemoveComment(ctx, f.owner, docB.ID, c.ID), domain.ErrNotFound)
}

func TestCommentService_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Doc", "body")

	for _, body := range []string{"first", "second", "third"} {
		_, err := f.comments.AddComment(ctx, f.owner, doc.ID, &docsysSvc.CommentRequest{Body: body})
		require.NoError(t, err)
	}

	comments, err := f.comments.ListComments(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Body)
	assert.Equal(t, "first", comments[2].Body)
}
