// Package commands implements the pglo CLI.
package commands

import (
	"context"
	"strconv"

	"github.com/pglo/pglo/internal/logger"
	"github.com/pglo/pglo/pkg/config"
	"github.com/pglo/pglo/pkg/lob"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pglo",
	Short: "pglo - stream PostgreSQL large objects",
	Long: `pglo moves data in and out of PostgreSQL large objects.

Large objects are server-managed binary blobs addressed by OID and accessed
through the lo_* call family within a transaction. pglo wraps that call
family behind ordinary stream commands: create and remove objects, stream
files into them, and stream them back out.

Use "pglo [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pglo/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(statCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// openStore loads the configuration, initializes logging and connects the
// large object store. Callers must Close the returned store.
func openStore(ctx context.Context) (*lob.Store, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, err
	}

	return lob.NewStore(ctx, &cfg.Database)
}

// parseOID parses an OID command-line argument.
func parseOID(arg string) (uint32, error) {
	oid, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(oid), nil
}
