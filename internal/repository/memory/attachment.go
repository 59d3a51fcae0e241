package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
)

type attachmentRepository struct {
	s *Store
}

// NewAttachmentRepository creates an attachment repository backed by the store
func NewAttachmentRepository(store *Store) docsysRepo.AttachmentRepository {
	return &attachmentRepository{s: store}
}

func (r *attachmentRepository) Create(ctx context.Context, a *docsystem.Attachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[a.DocumentID]; !ok {
		return &domain.ConstraintError{Constraint: "attachments_document_id_fkey"}
	}
	if a.VersionID != nil {
		v, ok := r.s.versions[*a.VersionID]
		if !ok || v.DocumentID != a.DocumentID {
			return &domain.ConstraintError{Constraint: "attachments_version_fkey"}
		}
	}

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()

	row := copyAttachment(a, true)
	r.s.attachments[row.ID] = row
	r.s.stamp(row.ID)
	r.s.record(ctx, func() { delete(r.s.attachments, row.ID) })
	return nil
}

func (r *attachmentRepository) GetForDocument(_ context.Context, documentID, id string) (*docsystem.Attachment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attachments[id]
	if !ok || a.DocumentID != documentID {
		return nil, fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}
	return copyAttachment(a, true), nil
}

func (r *attachmentRepository) ListByVersion(_ context.Context, versionID string) ([]docsystem.Attachment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	attachments := []docsystem.Attachment{}
	for _, a := range r.s.attachments {
		if a.VersionID != nil && *a.VersionID == versionID {
			attachments = append(attachments, *copyAttachment(a, false))
		}
	}

	sort.Slice(attachments, func(i, j int) bool {
		return r.s.ordinal[attachments[i].ID] < r.s.ordinal[attachments[j].ID]
	})
	return attachments, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, documentID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attachments[id]
	if !ok || a.DocumentID != documentID {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}

	delete(r.s.attachments, id)
	r.s.record(ctx, func() { r.s.attachments[a.ID] = a })
	return nil
}

func copyAttachment(a *docsystem.Attachment, withData bool) *docsystem.Attachment {
	c := *a
	c.VersionID = cloneString(a.VersionID)
	c.Data = nil
	if withData {
		c.Data = bytes.Clone(a.Data)
	}
	return &c
}
