package commands

import (
	"context"
	"io"
	"os"

	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <oid> <file>",
	Short: "Stream a large object into a file",
	Long: `Stream the large object with the given OID into a local file,
or to stdout with "-".

Examples:
  # Download object 16403
  pglo get 16403 vacation_photos_copy.tar.gz

  # Pipe an object through another tool
  pglo get 16403 - | tar tzf -`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	oid, err := parseOID(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return store.WithObject(ctx, oid, lob.ModeRead, func(o *lob.Object) error {
		_, err := io.Copy(out, o)
		return err
	})
}
