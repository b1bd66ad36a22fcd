package commands

import (
	"context"
	"fmt"

	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty large object",
	Long: `Create a new, empty large object and print its OID.

The OID names the object in later put, get, stat and rm commands.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var oid uint32
	err = store.WithTransaction(ctx, func(r *lob.Registry) error {
		oid, err = r.Create(ctx)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Println(oid)
	return nil
}
