package cmd

import (
	"fmt"

	"dtl-import/core/logger"
	"dtl-import/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var skipPullFlag bool

// syncCmd runs one import.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import the device-type library into NetBox",
	Long: `Updates the library checkout and creates every manufacturer, device role, device type
and module type that NetBox does not have yet, with their port and bay templates.

Examples:
  # Import everything
  dtl-import sync

  # Import two vendors and show what would be created
  dtl-import sync --vendors Juniper,Arista --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&skipPullFlag, "skip-pull", false, "Import the checkout without updating it")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	c, err := wire(cfg, l)
	if err != nil {
		return err
	}

	l.Info("Starting import", zap.String("repo", cfg.Repo.URL), zap.String("branch", cfg.Repo.Branch), zap.Bool("dry_run", dryRunFlag))
	_, err = c.service.Run(cmd.Context(), importer.RunOptions{DryRun: dryRunFlag, SkipPull: skipPullFlag})
	return err
}
