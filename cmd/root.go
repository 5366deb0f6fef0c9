package cmd

import (
	"fmt"
	"os"
	"strings"

	"dtl-import/core/config"
	"dtl-import/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verboseFlag bool
	dryRunFlag  bool
	vendorsFlag []string
	slugsFlag   []string
	urlFlag     string
	branchFlag  string
)

// RootCmd represents the base command when called without any subcommands.
// Without a subcommand it runs an import.
var RootCmd = &cobra.Command{
	Use:   "dtl-import",
	Short: "NetBox device-type library importer",
	Long: `dtl-import keeps a checkout of the NetBox devicetype-library and creates the
manufacturers, device roles, device types and module types it describes in NetBox.
Existing records are never updated or deleted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives ISO8601 timestamps on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Print verbose output")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "Read NetBox but create nothing")
	flags.StringSliceVar(&vendorsFlag, "vendors", nil, "Vendor folders to import (comma separated)")
	flags.StringSliceVar(&slugsFlag, "slugs", nil, "Device-type slugs to import")
	flags.StringVar(&urlFlag, "url", "", "Git URL of the device-type library")
	flags.StringVar(&branchFlag, "branch", "", "Branch of the device-type library")
}

// loadConfig loads the configuration and applies the command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("vendors") {
		cfg.Catalog.Vendors = strings.Join(vendorsFlag, ",")
	}
	if flags.Changed("slugs") {
		cfg.Catalog.Slugs = strings.Join(slugsFlag, " ")
	}
	if flags.Changed("url") {
		cfg.Repo.URL = urlFlag
	}
	if flags.Changed("branch") {
		cfg.Repo.Branch = branchFlag
	}
	if verboseFlag {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
