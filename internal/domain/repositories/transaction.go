package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes a function within a transaction.
	// Row locks taken inside fn are held until fn returns; waiting for a lock
	// longer than the configured lock timeout fails with domain.ErrConcurrency.
	// A nested call joins the transaction already present in ctx.
	ExecTx(ctx context.Context, fn TxFn) error
}
