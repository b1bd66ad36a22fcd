package commands

import (
	"fmt"
	"os"

	"github.com/pglo/pglo/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Write a configuration file with default values.

The file is created at $XDG_CONFIG_HOME/pglo/config.yaml unless --config
points somewhere else. Edit the database section afterwards to match your
PostgreSQL instance.

Examples:
  # Initialize config at the default location
  pglo init

  # Initialize config at a custom location
  pglo init --config /etc/pglo/config.yaml`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.Database.Database = "postgres"
	cfg.Database.User = "postgres"

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Printf("Config file written to %s\n", path)
	return nil
}
