package domain

import "context"

// TxManager runs fn inside a single database transaction. Repository calls
// made with the context passed to fn join that transaction; any error from
// fn rolls the whole batch back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
