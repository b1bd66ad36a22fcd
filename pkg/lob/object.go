package lob

import (
	"context"
	"io"
	"math"

	"github.com/jackc/pgx/v5"
)

// maxTransferChunk is the largest byte count a single loread/lowrite call
// can address; the protocol carries it as a signed 32-bit integer.
const maxTransferChunk = math.MaxInt32

// Object is an open large object.
//
// An Object is bound to the transaction that opened it and must not outlive
// it. It is not safe for concurrent use. Whether the server's 64-bit call
// family is used was decided once at open time and never re-derived.
//
// Close must be called to release the server-side descriptor. It is
// idempotent: call it explicitly to observe any error and keep a deferred
// Close as the cleanup path that never fails.
type Object struct {
	ctx    context.Context
	tx     pgx.Tx
	fd     int32
	has64  bool
	closed bool
}

// Fd returns the remote descriptor of the opened object. It is only
// meaningful within the owning transaction.
func (o *Object) Fd() int32 {
	return o.fd
}

// Read reads up to len(p) bytes from the object's cursor into p. An empty
// result from the server means end of stream and is reported as io.EOF, like
// any other io.Reader.
func (o *Object) Read(p []byte) (int, error) {
	if o.closed {
		return 0, errClosed("read")
	}
	if len(p) == 0 {
		return 0, nil
	}

	count := len(p)
	if count > maxTransferChunk {
		count = maxTransferChunk
	}

	var res []byte
	err := o.tx.QueryRow(o.ctx, "select pg_catalog.loread($1, $2)", o.fd, int32(count)).Scan(&res)
	if err != nil {
		return 0, mapPgError(err, "read")
	}

	if len(res) == 0 {
		return 0, io.EOF
	}

	return copy(p, res), nil
}

// Write writes p at the object's cursor. The whole buffer is transmitted or
// an error is returned: buffers larger than the per-call protocol limit are
// split into chunks, stopping at the first failing chunk.
//
// Writing through a handle opened with ModeRead is rejected by the server
// and surfaces as ErrPermission; there is no local pre-check.
func (o *Object) Write(p []byte) (int, error) {
	if o.closed {
		return 0, errClosed("write")
	}

	written := 0
	for written < len(p) {
		chunk := p[written:]
		if len(chunk) > maxTransferChunk {
			chunk = chunk[:maxTransferChunk]
		}

		var n int32
		err := o.tx.QueryRow(o.ctx, "select pg_catalog.lowrite($1, $2)", o.fd, chunk).Scan(&n)
		if err != nil {
			return written, mapPgError(err, "write")
		}
		if int(n) != len(chunk) {
			written += int(n)
			return written, &Error{
				Code:    ErrProtocol,
				Op:      "write",
				Message: "server accepted a partial chunk",
			}
		}

		written += len(chunk)
	}

	return written, nil
}

// Seek moves the object's cursor and returns the resulting absolute
// position. Whence is one of io.SeekStart, io.SeekCurrent or io.SeekEnd,
// which match the server's whence codes directly.
//
// On servers without 64-bit addressing the offset must fit in a signed
// 32-bit integer; out-of-range offsets fail with ErrInvalidArgument before
// any remote call.
func (o *Object) Seek(offset int64, whence int) (int64, error) {
	if o.closed {
		return 0, errClosed("seek")
	}

	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, &Error{
			Code:    ErrInvalidArgument,
			Op:      "seek",
			Message: "invalid whence",
		}
	}

	if o.has64 {
		var pos int64
		err := o.tx.QueryRow(o.ctx, "select pg_catalog.lo_lseek64($1, $2, $3)", o.fd, offset, int32(whence)).Scan(&pos)
		if err != nil {
			return 0, mapPgError(err, "seek")
		}
		return pos, nil
	}

	if offset > math.MaxInt32 || offset < math.MinInt32 {
		return 0, &Error{
			Code:    ErrInvalidArgument,
			Op:      "seek",
			Message: "seek position exceeds the server's supported range",
		}
	}

	var pos int32
	err := o.tx.QueryRow(o.ctx, "select pg_catalog.lo_lseek($1, $2, $3)", o.fd, int32(offset), int32(whence)).Scan(&pos)
	if err != nil {
		return 0, mapPgError(err, "seek")
	}
	return int64(pos), nil
}

// Tell returns the current cursor position.
func (o *Object) Tell() (int64, error) {
	if o.closed {
		return 0, errClosed("tell")
	}

	if o.has64 {
		var pos int64
		err := o.tx.QueryRow(o.ctx, "select pg_catalog.lo_tell64($1)", o.fd).Scan(&pos)
		if err != nil {
			return 0, mapPgError(err, "tell")
		}
		return pos, nil
	}

	var pos int32
	err := o.tx.QueryRow(o.ctx, "select pg_catalog.lo_tell($1)", o.fd).Scan(&pos)
	if err != nil {
		return 0, mapPgError(err, "tell")
	}
	return int64(pos), nil
}

// Truncate resizes the object to size bytes. Growing pads the new region
// with zero bytes; shrinking discards the trailing region. These are the
// server's semantics, passed through untouched.
//
// On servers without 64-bit addressing the size must fit in a signed 32-bit
// integer; larger sizes fail with ErrInvalidArgument before any remote call.
func (o *Object) Truncate(size int64) error {
	if o.closed {
		return errClosed("truncate")
	}

	if o.has64 {
		_, err := o.tx.Exec(o.ctx, "select pg_catalog.lo_truncate64($1, $2)", o.fd, size)
		return mapPgError(err, "truncate")
	}

	if size > math.MaxInt32 {
		return &Error{
			Code:    ErrInvalidArgument,
			Op:      "truncate",
			Message: "server does not support large objects over 2 GiB without 64-bit addressing",
		}
	}

	_, err := o.tx.Exec(o.ctx, "select pg_catalog.lo_truncate($1, $2)", o.fd, int32(size))
	return mapPgError(err, "truncate")
}

// Close releases the server-side descriptor.
//
// The first call issues lo_close exactly once and reports its outcome; every
// later call returns nil without a remote round trip. The closed flag flips
// before the remote call, so a failed close is not retried.
func (o *Object) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	_, err := o.tx.Exec(o.ctx, "select pg_catalog.lo_close($1)", o.fd)
	return mapPgError(err, "close")
}
