package commands

import (
	"context"

	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <oid>",
	Short: "Remove a large object",
	Long:  `Unlink the large object with the given OID from the store.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
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

	return store.WithTransaction(ctx, func(r *lob.Registry) error {
		return r.Unlink(ctx, oid)
	})
}
