package lob

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUnlink(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		oid, err := r.Create(context.Background())
		require.NoError(t, err)
		require.NotZero(t, oid)

		return r.Unlink(context.Background(), oid)
	})
	require.NoError(t, err)
}

func TestUnlinkBogus(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		return r.Unlink(context.Background(), 0)
	})
	require.Error(t, err)
	assert.Equal(t, ErrNotFound, CodeOf(err))
}

func TestOpenBogus(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		_, err := r.Open(context.Background(), 0, ModeRead)
		return err
	})
	require.Error(t, err)
	assert.Equal(t, ErrNotFound, CodeOf(err))
}

func TestOpenClose(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)

		return obj.Close()
	})
	require.NoError(t, err)
}

func TestWriteRead(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeWrite)
		require.NoError(t, err)

		n, err := obj.Write([]byte("hello world!!!"))
		require.NoError(t, err)
		require.Equal(t, 14, n)
		require.NoError(t, obj.Close())

		// A second handle on the same OID gets its own cursor at offset 0.
		obj, err = r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)
		defer obj.Close()

		out, err := io.ReadAll(obj)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello world!!!"), out)

		return obj.Close()
	})
	require.NoError(t, err)
}

func TestSeekTell(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeWrite)
		require.NoError(t, err)
		defer obj.Close()

		_, err = obj.Write([]byte("hello world!!!"))
		require.NoError(t, err)

		pos, err := obj.Tell()
		require.NoError(t, err)
		assert.Equal(t, int64(14), pos)

		pos, err = obj.Seek(1, io.SeekStart)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pos)

		buf := make([]byte, 1)
		n, err := obj.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		assert.Equal(t, byte('e'), buf[0])

		pos, err = obj.Tell()
		require.NoError(t, err)
		assert.Equal(t, int64(2), pos)

		pos, err = obj.Seek(-4, io.SeekEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(10), pos)

		n, err = obj.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		assert.Equal(t, byte('d'), buf[0])

		pos, err = obj.Seek(-3, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, int64(8), pos)

		n, err = obj.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		assert.Equal(t, byte('r'), buf[0])

		return nil
	})
	require.NoError(t, err)
}

func TestSeekThenTellAgree(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeWrite)
		require.NoError(t, err)
		defer obj.Close()

		_, err = obj.Write(bytes.Repeat([]byte("x"), 128))
		require.NoError(t, err)

		for _, offset := range []int64{0, 1, 64, 127, 128, 1000} {
			pos, err := obj.Seek(offset, io.SeekStart)
			require.NoError(t, err)
			require.Equal(t, offset, pos)

			told, err := obj.Tell()
			require.NoError(t, err)
			assert.Equal(t, offset, told)
		}

		return nil
	})
	require.NoError(t, err)
}

func TestSeekInvalidWhence(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)
		defer obj.Close()

		_, err = obj.Seek(0, 7)
		require.Error(t, err)
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))

		return nil
	})
	require.NoError(t, err)
}

func TestTruncate(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeWrite)
		require.NoError(t, err)
		defer obj.Close()

		_, err = obj.Write([]byte("hello world!!!"))
		require.NoError(t, err)

		// Shrink discards the tail.
		require.NoError(t, obj.Truncate(5))
		_, err = obj.Seek(0, io.SeekStart)
		require.NoError(t, err)

		out, err := io.ReadAll(obj)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), out)

		// Grow pads with zero bytes.
		require.NoError(t, obj.Truncate(10))
		_, err = obj.Seek(0, io.SeekStart)
		require.NoError(t, err)

		out, err = io.ReadAll(obj)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello\x00\x00\x00\x00\x00"), out)

		return nil
	})
	require.NoError(t, err)
}

func TestWriteWithReadOnlyHandle(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)
		defer obj.Close()

		_, err = obj.Write([]byte("hello world!!!"))
		require.Error(t, err)
		assert.Equal(t, ErrPermission, CodeOf(err))

		return nil
	})
	require.NoError(t, err)
}

func TestWriteModeGrantsRead(t *testing.T) {
	store := setupTestStore(t)

	// The server does not distinguish write from read-write mode: a handle
	// opened with ModeWrite can read.
	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeWrite)
		require.NoError(t, err)
		defer obj.Close()

		_, err = obj.Write([]byte("abc"))
		require.NoError(t, err)

		_, err = obj.Seek(0, io.SeekStart)
		require.NoError(t, err)

		out, err := io.ReadAll(obj)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), out)

		return nil
	})
	require.NoError(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)

		require.NoError(t, obj.Close())
		require.NoError(t, obj.Close())

		// The descriptor is gone after the first close; further operations
		// are rejected locally without a remote call.
		_, err = obj.Read(make([]byte, 1))
		require.Error(t, err)
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))

		return nil
	})
	require.NoError(t, err)
}

func TestOperationsAfterClose(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeReadWrite)
		require.NoError(t, err)
		require.NoError(t, obj.Close())

		_, err = obj.Write([]byte("x"))
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))

		_, err = obj.Seek(0, io.SeekStart)
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))

		_, err = obj.Tell()
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))

		err = obj.Truncate(0)
		assert.Equal(t, ErrInvalidArgument, CodeOf(err))

		return nil
	})
	require.NoError(t, err)
}

func TestIndependentCursors(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		writer, err := r.Open(ctx, oid, ModeWrite)
		require.NoError(t, err)
		defer writer.Close()

		_, err = writer.Write([]byte("hello"))
		require.NoError(t, err)

		reader, err := r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)
		defer reader.Close()

		require.NotEqual(t, writer.Fd(), reader.Fd())

		// The writer's cursor sits at 5; the reader's own cursor starts at 0.
		pos, err := reader.Tell()
		require.NoError(t, err)
		assert.Equal(t, int64(0), pos)

		out, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), out)

		return nil
	})
	require.NoError(t, err)
}

func TestEmptyObjectReadsEOF(t *testing.T) {
	store := setupTestStore(t)

	err := store.WithTransaction(context.Background(), func(r *Registry) error {
		ctx := context.Background()

		oid, err := r.Create(ctx)
		require.NoError(t, err)

		obj, err := r.Open(ctx, oid, ModeRead)
		require.NoError(t, err)
		defer obj.Close()

		n, err := obj.Read(make([]byte, 16))
		assert.Equal(t, 0, n)
		assert.ErrorIs(t, err, io.EOF)

		// Zero-length destination reads nothing and is not EOF.
		n, err = obj.Read(nil)
		assert.Equal(t, 0, n)
		assert.NoError(t, err)

		return nil
	})
	require.NoError(t, err)
}
