package memory

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

type documentRepository struct {
	s *Store
}

// NewDocumentRepository creates a document repository backed by the store
func NewDocumentRepository(store *Store) docsysRepo.DocumentRepository {
	return &documentRepository{s: store}
}

func (r *documentRepository) Create(ctx context.Context, doc *docsystem.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workspaces[doc.WorkspaceID]; !ok {
		return &domain.ConstraintError{Constraint: "documents_workspace_id_fkey"}
	}

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	row := copyDocument(doc)
	r.s.documents[row.ID] = row
	r.s.stamp(row.ID)
	r.s.record(ctx, func() { delete(r.s.documents, row.ID) })
	return nil
}

func (r *documentRepository) GetByID(_ context.Context, id string) (*docsystem.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return copyDocument(doc), nil
}

func (r *documentRepository) GetForUpdate(ctx context.Context, id string) (*docsystem.Document, error) {
	if err := r.s.lockDocument(ctx, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *documentRepository) Update(ctx context.Context, doc *docsystem.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.documents[doc.ID]
	if !ok {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	if _, ok := r.s.workspaces[doc.WorkspaceID]; !ok {
		return &domain.ConstraintError{Constraint: "documents_workspace_id_fkey"}
	}

	doc.UpdatedAt = time.Now().UTC()
	row := copyDocument(doc)
	r.s.documents[doc.ID] = row
	r.s.record(ctx, func() { r.s.documents[prev.ID] = prev })
	return nil
}

// Delete removes the document and cascades to its versions, attachments and comments
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.documents[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	var (
		versions    []*docsystem.Version
		attachments []*docsystem.Attachment
		comments    []*docsystem.Comment
	)
	for key, v := range r.s.versions {
		if v.DocumentID == id {
			versions = append(versions, v)
			delete(r.s.versions, key)
		}
	}
	for key, a := range r.s.attachments {
		if a.DocumentID == id {
			attachments = append(attachments, a)
			delete(r.s.attachments, key)
		}
	}
	for key, c := range r.s.comments {
		if c.DocumentID == id {
			comments = append(comments, c)
			delete(r.s.comments, key)
		}
	}
	delete(r.s.documents, id)
	r.s.afterCommit(ctx, func() { r.s.forgetLock(id) })

	r.s.record(ctx, func() {
		r.s.documents[doc.ID] = doc
		for _, v := range versions {
			r.s.versions[v.ID] = v
		}
		for _, a := range attachments {
			r.s.attachments[a.ID] = a
		}
		for _, c := range comments {
			r.s.comments[c.ID] = c
		}
	})
	return nil
}

func (r *documentRepository) ListSummaries(_ context.Context, workspaceID *string, excerptLength int) ([]docsystem.DocumentSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current := make(map[string]*docsystem.Version, len(r.s.documents))
	for _, v := range r.s.versions {
		if doc, ok := r.s.documents[v.DocumentID]; ok && doc.CurrentVersionNumber == v.VersionNumber {
			current[v.DocumentID] = v
		}
	}

	summaries := []docsystem.DocumentSummary{}
	for _, doc := range r.s.documents {
		if workspaceID != nil && doc.WorkspaceID != *workspaceID {
			continue
		}
		v, ok := current[doc.ID]
		if !ok {
			continue
		}
		summaries = append(summaries, docsystem.DocumentSummary{
			Document: *copyDocument(doc),
			Title:    v.Title,
			Excerpt:  excerpt(v.Body, excerptLength),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return r.s.ordinal[summaries[i].ID] > r.s.ordinal[summaries[j].ID]
	})
	return summaries, nil
}

func excerpt(body string, n int) string {
	runes := []rune(htmlTag.ReplaceAllString(body, ""))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func copyDocument(d *docsystem.Document) *docsystem.Document {
	c := *d
	c.CreatorID = cloneString(d.CreatorID)
	return &c
}
