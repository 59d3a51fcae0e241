package docsystem

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	docmodels "inkwell/internal/domain/models/docsystem"
)

func TestAttachmentService_ScopedToUploadVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, _ := f.createDocument(t, f.owner, "Report", "v1")
	v2 := f.revise(t, f.owner, doc.ID, "Report", "v2")

	a := f.attach(t, f.owner, doc.ID, "chart.pdf")
	require.NotNil(t, a.VersionID)
	assert.Equal(t, v2.ID, *a.VersionID)

	current, err := f.attachments.CurrentAttachments(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, a.ID, current[0].ID)

	f.revise(t, f.owner, doc.ID, "Report", "v3")

	current, err = f.attachments.CurrentAttachments(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, current)

	// Still reachable by id and still listed on its own version
	fetched, err := f.attachments.GetAttachment(ctx, doc.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 chart.pdf"), fetched.Data)

	snap, err := f.docs.GetVersion(ctx, doc.ID, 2)
	require.NoError(t, err)
	require.Len(t, snap.Attachments, 1)
	assert.Equal(t, a.ID, snap.Attachments[0].ID)
}

func TestAttachmentService_AttachRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, _ := f.createDocument(t, f.owner, "Doc", "body")

	tests := []struct {
		name       string
		caller     *models.Caller
		documentID string
		file       *docmodels.UploadedFile
		wantErr    error
	}{
		{
			name:       "no caller",
			documentID: doc.ID,
			file:       &docmodels.UploadedFile{Filename: "a.png", MimeType: "image/png", Data: []byte("x")},
			wantErr:    domain.ErrUnauthorized,
		},
		{
			name:       "disallowed type",
			caller:     f.owner,
			documentID: doc.ID,
			file:       &docmodels.UploadedFile{Filename: "a.exe", MimeType: "application/x-msdownload", Data: []byte("x")},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "too large",
			caller:     f.owner,
			documentID: doc.ID,
			file:       &docmodels.UploadedFile{Filename: "big.png", MimeType: "image/png", Data: make([]byte, 10<<20+1)},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "empty file",
			caller:     f.owner,
			documentID: doc.ID,
			file:       &docmodels.UploadedFile{Filename: "empty.png", MimeType: "image/png"},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "filename too long",
			caller:     f.owner,
			documentID: doc.ID,
			file:       &docmodels.UploadedFile{Filename: strings.Repeat("a", 256) + ".png", MimeType: "image/png", Data: []byte("x")},
			wantErr:    domain.ErrValidation,
		},
		{
			name:       "unknown document",
			caller:     f.owner,
			documentID: "00000000-0000-0000-0000-000000000000",
			file:       &docmodels.UploadedFile{Filename: "a.png", MimeType: "image/png", Data: []byte("x")},
			wantErr:    domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.attachments.Attach(ctx, tt.caller, tt.documentID, tt.file)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, f.store.CountRows(doc.ID).Attachments)
}

func TestAttachmentService_DetachIsScopedToDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	docA, _ := f.createDocument(t, f.owner, "A", "body")
	docB, _ := f.createDocument(t, f.owner, "B", "body")
	a := f.attach(t, f.owner, docA.ID, "a.pdf")

	err := f.attachments.Detach(ctx, f.owner, docB.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.attachments.GetAttachment(ctx, docB.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.attachments.Detach(ctx, f.owner, docA.ID, a.ID))
	_, err = f.attachments.GetAttachment(ctx, docA.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachmentService_DetachNotificationUsesOwningVersionTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, _ := f.createDocument(t, f.owner, "Original title", "body")
	a := f.attach(t, f.owner, doc.ID, "scan.pdf")
	f.revise(t, f.owner, doc.ID, "Renamed", "body")

	require.NoError(t, f.attachments.Detach(ctx, f.owner, doc.ID, a.ID))

	last := f.notifier.last()
	require.NotNil(t, last)
	assert.Equal(t, models.EventAttachmentRemoved, last.Type)
	assert.Equal(t, "Original title", last.DocumentTitle)
	assert.Equal(t, "scan.pdf", last.Payload["filename"])
}

func TestAttachmentService_AttachPublishesEvent(t *testing.T) {
	f := newFixture(t)

	doc, _ := f.createDocument(t, f.owner, "Doc", "body")
	a := f.attach(t, f.owner, doc.ID, "x.pdf")

	last := f.notifier.last()
	require.NotNil(t, last)
	assert.Equal(t, models.EventAttachmentAdded, last.Type)
	assert.Equal(t, doc.ID, last.DocumentID)
	assert.Equal(t, "Doc", last.DocumentTitle)

	meta, ok := last.Payload["attachment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, a.ID, meta["id"])
}

func TestAttachmentService_AnyCallerMayAttachAndDetach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, _ := f.createDocument(t, f.owner, "Doc", "body")
	a := f.attach(t, f.other, doc.ID, "notes.pdf")
	require.NoError(t, f.attachments.Detach(ctx, f.other, doc.ID, a.ID))

	_, err := f.attachments.Attach(ctx, nil, doc.ID, &docmodels.UploadedFile{Filename: "a.pdf", MimeType: "application/pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
