// Package lob provides random-access streaming over PostgreSQL large
// objects.
//
// All access goes through the server-side lo_* call family and is scoped to
// a transaction: a Registry bound to a pgx.Tx creates, unlinks and opens
// objects, and an open Object implements io.Reader, io.Writer, io.Seeker and
// io.Closer on top of the remote descriptor returned by lo_open.
//
// A typical round trip:
//
//	store, err := lob.NewStore(ctx, &cfg)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	err = store.WithTransaction(ctx, func(r *lob.Registry) error {
//		oid, err := r.Create(ctx)
//		if err != nil {
//			return err
//		}
//		obj, err := r.Open(ctx, oid, lob.ModeWrite)
//		if err != nil {
//			return err
//		}
//		defer obj.Close()
//		if _, err := io.Copy(obj, file); err != nil {
//			return err
//		}
//		return obj.Close()
//	})
//
// Objects are bound to their transaction and must not be used after it
// commits or rolls back. A single Object is not safe for concurrent use;
// open one handle per goroutine instead. Two handles on the same OID each
// keep their own descriptor and cursor, and see each other's writes under
// whatever isolation the surrounding transactions provide.
package lob
