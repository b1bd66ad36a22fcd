package lob

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Registry performs large object namespace operations within a single
// transaction.
//
// The Registry borrows its transaction: it must not be used once the
// transaction commits or rolls back, and it never ends the transaction
// itself. All statements go through pgx, which prepares and caches them per
// connection.
type Registry struct {
	tx pgx.Tx
}

// NewRegistry returns a Registry bound to tx.
func NewRegistry(tx pgx.Tx) *Registry {
	return &Registry{tx: tx}
}

// Create creates a new, empty large object and returns its OID.
func (r *Registry) Create(ctx context.Context) (uint32, error) {
	var oid uint32
	err := r.tx.QueryRow(ctx, "select pg_catalog.lo_create(0)").Scan(&oid)
	if err != nil {
		return 0, mapPgError(err, "create")
	}
	return oid, nil
}

// Unlink removes the large object with the given OID from the store.
// Unlinking a nonexistent OID fails with ErrNotFound.
func (r *Registry) Unlink(ctx context.Context, oid uint32) error {
	_, err := r.tx.Exec(ctx, "select pg_catalog.lo_unlink($1)", oid)
	return mapPgError(err, "unlink")
}

// Open opens the large object with the given OID in the given mode and
// returns a stream handle bound to this transaction. Opening a nonexistent
// OID fails with ErrNotFound.
//
// The returned Object captures ctx for its io.Reader/Writer/Seeker methods,
// following the shape of pgx's own transaction-scoped helpers.
func (r *Registry) Open(ctx context.Context, oid uint32, mode Mode) (*Object, error) {
	has64, err := serverSupports64(r.tx)
	if err != nil {
		return nil, err
	}

	var fd int32
	err = r.tx.QueryRow(ctx, "select pg_catalog.lo_open($1, $2)", oid, int32(mode)).Scan(&fd)
	if err != nil {
		return nil, mapPgError(err, "open")
	}

	return &Object{
		ctx:   ctx,
		tx:    r.tx,
		fd:    fd,
		has64: has64,
	}, nil
}
