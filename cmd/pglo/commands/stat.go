package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <oid>",
	Short: "Show the size of a large object",
	Long:  `Print the size in bytes of the large object with the given OID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

func runStat(cmd *cobra.Command, args []string) error {
	oid, err := parseOID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var size int64
	err = store.WithObject(ctx, oid, lob.ModeRead, func(o *lob.Object) error {
		size, err = o.Seek(0, io.SeekEnd)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("oid:  %d\nsize: %d bytes\n", oid, size)
	return nil
}
