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

type versionRepository struct {
	s *Store
}

// NewVersionRepository creates a version repository backed by the store
func NewVersionRepository(store *Store) docsysRepo.VersionRepository {
	return &versionRepository{s: store}
}

func (r *versionRepository) Create(ctx context.Context, v *docsystem.Version) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[v.DocumentID]; !ok {
		return &domain.ConstraintError{Constraint: "document_versions_document_id_fkey"}
	}
	for _, existing := range r.s.versions {
		if existing.DocumentID == v.DocumentID && existing.VersionNumber == v.VersionNumber {
			return &domain.ConstraintError{Constraint: "document_versions_number_key"}
		}
	}

	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()

	row := *v
	r.s.versions[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.versions, row.ID) })
	return nil
}

func (r *versionRepository) GetByNumber(_ context.Context, documentID string, number int) (*docsystem.Version, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, v := range r.s.versions {
		if v.DocumentID == documentID && v.VersionNumber == number {
			c := *v
			return &c, nil
		}
	}
	return nil, fmt.Errorf("version %d of document %s: %w", number, documentID, domain.ErrNotFound)
}

func (r *versionRepository) GetByID(_ context.Context, id string) (*docsystem.Version, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.versions[id]
	if !ok {
		return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
	}
	c := *v
	return &c, nil
}

func (r *versionRepository) ListByDocument(_ context.Context, documentID string) ([]docsystem.Version, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	versions := []docsystem.Version{}
	for _, v := range r.s.versions {
		if v.DocumentID == documentID {
			c := *v
			c.Body = ""
			versions = append(versions, c)
		}
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNumber > versions[j].VersionNumber
	})
	return versions, nil
}
