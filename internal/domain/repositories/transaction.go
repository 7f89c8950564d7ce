package repositories

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs a function with all-or-nothing semantics. The
// revision and rollback commit groups depend on this: a credit debit must
// never land without its version, nor a pointer without its snapshot.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
