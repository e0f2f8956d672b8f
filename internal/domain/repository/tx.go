package repository

import "context"

// TxManager runs a function inside one atomic transaction. Repositories pick the
// transaction up from the context, so a service composes multiple repository
// calls into a single all-or-nothing unit. Any error aborts the whole
// transaction; there are no partial effects.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
