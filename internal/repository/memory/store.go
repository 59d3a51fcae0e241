// Package memory is an in-process storage backend implementing the same
// repository and transaction contracts as the Postgres backend.
//
// Writes made inside ExecTx are undone when the transaction function fails.
// Row locks are per document, held until the transaction ends, and waiting
// for one is bounded by the store's lock timeout. Reads are not isolated from
// uncommitted writes of concurrent transactions.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/models/docsystem"
)

// Store holds every table in maps guarded by one mutex
type Store struct {
	mu          sync.Mutex
	workspaces  map[string]*docsystem.Workspace
	users       map[string]*models.User
	documents   map[string]*docsystem.Document
	versions    map[string]*docsystem.Version
	attachments map[string]*docsystem.Attachment
	comments    map[string]*docsystem.Comment

	// insertion order by row id; timestamps can tie
	seq     uint64
	ordinal map[string]uint64

	locksMu     sync.Mutex
	locks       map[string]chan struct{}
	lockTimeout time.Duration

	logger *slog.Logger
}

// NewStore creates an empty store. lockTimeout bounds row lock waits; zero waits forever.
func NewStore(lockTimeout time.Duration, logger *slog.Logger) *Store {
	return &Store{
		workspaces:  make(map[string]*docsystem.Workspace),
		users:       make(map[string]*models.User),
		documents:   make(map[string]*docsystem.Document),
		versions:    make(map[string]*docsystem.Version),
		attachments: make(map[string]*docsystem.Attachment),
		comments:    make(map[string]*docsystem.Comment),
		ordinal:     make(map[string]uint64),
		locks:       make(map[string]chan struct{}),
		lockTimeout: lockTimeout,
		logger:      logger,
	}
}

// RowCounts reports how many child rows reference a document
type RowCounts struct {
	Versions    int
	Attachments int
	Comments    int
}

// CountRows counts the versions, attachments and comments of a document
func (s *Store) CountRows(documentID string) RowCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c RowCounts
	for _, v := range s.versions {
		if v.DocumentID == documentID {
			c.Versions++
		}
	}
	for _, a := range s.attachments {
		if a.DocumentID == documentID {
			c.Attachments++
		}
	}
	for _, cm := range s.comments {
		if cm.DocumentID == documentID {
			c.Comments++
		}
	}
	return c
}

// stamp assigns the next insertion ordinal to a row id. Must be called with s.mu held.
func (s *Store) stamp(id string) {
	s.seq++
	s.ordinal[id] = s.seq
}

// record registers an undo step with the transaction in ctx, if any.
// Must be called with s.mu held.
func (s *Store) record(ctx context.Context, undo func()) {
	if tx := txFromContext(ctx); tx != nil {
		tx.undo = append(tx.undo, undo)
	}
}

// afterCommit runs f once the transaction in ctx has committed and released
// its row locks, or right away outside a transaction
func (s *Store) afterCommit(ctx context.Context, f func()) {
	if tx := txFromContext(ctx); tx != nil {
		tx.afterRelease = append(tx.afterRelease, f)
		return
	}
	f()
}

// forgetLock drops the row lock entry of a deleted document
func (s *Store) forgetLock(documentID string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	delete(s.locks, documentID)
}

func (s *Store) rowLock(documentID string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	ch, ok := s.locks[documentID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[documentID] = ch
	}
	return ch
}

// lockDocument takes the document's row lock for the transaction in ctx.
// Outside a transaction the lock is taken and released immediately.
func (s *Store) lockDocument(ctx context.Context, documentID string) error {
	tx := txFromContext(ctx)
	if tx != nil && tx.holds(documentID) {
		return nil
	}

	ch := s.rowLock(documentID)

	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		timer := time.NewTimer(s.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case ch <- struct{}{}:
	case <-timeout:
		return &domain.ConcurrencyError{
			Message: fmt.Sprintf("document %s is being modified, retry", documentID),
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	if tx == nil {
		<-ch
		return nil
	}

	tx.held = append(tx.held, ch)
	tx.heldIDs[documentID] = struct{}{}
	return nil
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
