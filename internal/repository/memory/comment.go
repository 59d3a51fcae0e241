package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
)

type commentRepository struct {
	s *Store
}

// NewCommentRepository creates a comment repository backed by the store
func NewCommentRepository(store *Store) docsysRepo.CommentRepository {
	return &commentRepository{s: store}
}

func (r *commentRepository) Create(ctx context.Context, c *docsystem.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[c.DocumentID]; !ok {
		return &domain.ConstraintError{Constraint: "comments_document_id_fkey"}
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	row := copyComment(c)
	r.s.comments[row.ID] = row
	r.s.stamp(row.ID)
	r.s.record(ctx, func() { delete(r.s.comments, row.ID) })
	return nil
}

func (r *commentRepository) GetForDocument(_ context.Context, documentID, id string) (*docsystem.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	if !ok || c.DocumentID != documentID {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return copyComment(c), nil
}

func (r *commentRepository) Update(ctx context.Context, c *docsystem.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.comments[c.ID]
	if !ok || prev.DocumentID != c.DocumentID {
		return fmt.Errorf("comment %s: %w", c.ID, domain.ErrNotFound)
	}

	row := copyComment(prev)
	row.Body = c.Body
	row.UpdatedAt = time.Now().UTC()
	c.UpdatedAt = row.UpdatedAt

	r.s.comments[c.ID] = row
	r.s.record(ctx, func() { r.s.comments[prev.ID] = prev })
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, documentID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	if !ok || c.DocumentID != documentID {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	delete(r.s.comments, id)
	r.s.record(ctx, func() { r.s.comments[c.ID] = c })
	return nil
}

func (r *commentRepository) ListByDocument(_ context.Context, documentID string) ([]docsystem.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comments := []docsystem.Comment{}
	for _, c := range r.s.comments {
		if c.DocumentID == documentID {
			comments = append(comments, *copyComment(c))
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		return r.s.ordinal[comments[i].ID] > r.s.ordinal[comments[j].ID]
	})
	return comments, nil
}

func copyComment(c *docsystem.Comment) *docsystem.Comment {
	cp := *c
	cp.AuthorID = cloneString(c.AuthorID)
	return &cp
}
