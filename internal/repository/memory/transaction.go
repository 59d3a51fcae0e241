package memory

import (
	"context"

	"inkwell/internal/domain/repositories"
)

type txContextKey struct{}

type txState struct {
	undo         []func()
	afterRelease []func() // run once the transaction committed and released its locks
	held         []chan struct{}
	heldIDs      map[string]struct{}
}

func (tx *txState) holds(documentID string) bool {
	_, ok := tx.heldIDs[documentID]
	return ok
}

func txFromContext(ctx context.Context) *txState {
	tx, _ := ctx.Value(txContextKey{}).(*txState)
	return tx
}

// TransactionManager implements the TransactionManager interface over a Store
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager for the store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx runs fn; if fn fails its writes are undone in reverse order.
// Row locks taken by fn are released when ExecTx returns.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx := &txState{heldIDs: make(map[string]struct{})}
	committed := false
	defer func() {
		for _, ch := range tx.held {
			<-ch
		}
		if committed {
			for _, f := range tx.afterRelease {
				f()
			}
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		tm.store.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		tm.store.mu.Unlock()
		return err
	}

	committed = true
	return nil
}
