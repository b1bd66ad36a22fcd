package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pglo/pglo/internal/logger"
	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/cobra"
)

var putNew bool

var putCmd = &cobra.Command{
	Use:   "put [<oid>] <file>",
	Short: "Stream a file into a large object",
	Long: `Stream a local file (or stdin with "-") into a large object.

With --new a fresh object is created and its OID printed; otherwise the
first argument names the object to overwrite. The object is truncated to
the uploaded size, so shorter uploads do not leave stale trailing bytes.

Examples:
  # Upload into a new object
  pglo put --new vacation_photos.tar.gz

  # Overwrite object 16403 from stdin
  cat backup.dump | pglo put 16403 -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

func init() {
	putCmd.Flags().BoolVar(&putNew, "new", false, "Create a new object instead of overwriting one")
}

func runPut(cmd *cobra.Command, args []string) error {
	var oid uint32
	var src string
	var err error

	if putNew {
		if len(args) != 1 {
			return fmt.Errorf("--new takes a single <file> argument")
		}
		src = args[0]
	} else {
		if len(args) != 2 {
			return fmt.Errorf("expected <oid> <file> (or use --new)")
		}
		if oid, err = parseOID(args[0]); err != nil {
			return err
		}
		src = args[1]
	}

	in := os.Stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var written int64
	err = store.WithTransaction(ctx, func(r *lob.Registry) error {
		if putNew {
			if oid, err = r.Create(ctx); err != nil {
				return err
			}
		}

		obj, err := r.Open(ctx, oid, lob.ModeWrite)
		if err != nil {
			return err
		}
		defer obj.Close()

		if written, err = io.Copy(obj, in); err != nil {
			return err
		}
		if err := obj.Truncate(written); err != nil {
			return err
		}

		return obj.Close()
	})
	if err != nil {
		return err
	}

	logger.Info("object written", "oid", oid, "bytes", written)
	if putNew {
		fmt.Println(oid)
	}
	return nil
}
